package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mauimtb/leaderboard-api/internal/models"
	"github.com/mauimtb/leaderboard-api/internal/store"
)

// DefaultStorageKey is the key the site script always used for the blob.
const DefaultStorageKey = "mmba_leaderboard_demo"

// LeaderboardConfig configures the leaderboard service
type LeaderboardConfig struct {
	Store  store.BlobStore
	Key    string
	Logger *zap.Logger
	Tracer trace.Tracer
	// NewID generates entry ids. Defaults to random UUIDs.
	NewID func() string
}

// Leaderboard owns the only in-memory copy of the persisted state.
type Leaderboard struct {
	store  store.BlobStore
	key    string
	logger *zap.SugaredLogger
	tracer trace.Tracer
	newID  func() string

	mu    sync.RWMutex
	state models.LeaderboardState
}

// NewLeaderboard creates the service. Call Init before serving views.
func NewLeaderboard(cfg LeaderboardConfig) *Leaderboard {
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("github.com/mauimtb/leaderboard-api/internal/logic")
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Leaderboard{
		store:  cfg.Store,
		key:    cfg.Key,
		logger: cfg.Logger.Sugar(),
		tracer: cfg.Tracer,
		newID:  cfg.NewID,
	}
}

// Init loads the persisted state and seeds it when empty. A failed seed write
// is returned but the seeded state is kept in memory, so views still render.
func (l *Leaderboard) Init(ctx context.Context) error {
	state, err := l.SeedIfEmpty(ctx, l.LoadState(ctx))

	l.mu.Lock()
	l.state = state
	l.mu.Unlock()

	l.logger.Infow("Leaderboard initialized", "key", l.key, "entries", state.Len())
	return err
}

// Reset overwrites the blob with an empty state and seeds it again.
func (l *Leaderboard) Reset(ctx context.Context) error {
	if err := l.SaveState(ctx, models.LeaderboardState{Entries: []models.Entry{}}); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return l.Init(ctx)
}

// State returns a copy of the current in-memory state
func (l *Leaderboard) State() models.LeaderboardState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Clone()
}

// LoadState reads the blob. A missing key, unreadable backend or corrupt
// payload all yield an empty state; the seed step repairs it.
func (l *Leaderboard) LoadState(ctx context.Context) models.LeaderboardState {
	ctx, span := l.tracer.Start(ctx, "Leaderboard.LoadState")
	defer span.End()

	empty := models.LeaderboardState{Entries: []models.Entry{}}

	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, store.ErrNotFound) {
		stateLoads.WithLabelValues("missing").Inc()
		l.logger.Infow("No stored leaderboard state", "key", l.key)
		return empty
	}
	if err != nil {
		stateLoads.WithLabelValues("error").Inc()
		span.RecordError(err)
		l.logger.Warnw("Failed to read leaderboard state", "key", l.key, "error", err)
		return empty
	}

	var state models.LeaderboardState
	if err := json.Unmarshal(data, &state); err != nil {
		stateLoads.WithLabelValues("corrupt").Inc()
		span.RecordError(err)
		l.logger.Warnw("Discarding corrupt leaderboard state", "key", l.key, "error", err)
		return empty
	}
	if state.Entries == nil {
		state.Entries = []models.Entry{}
	}

	stateLoads.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("entries", state.Len()))
	return state
}

// SeedIfEmpty returns state unchanged when it has entries. Otherwise it builds
// the demo set, persists it and returns it.
func (l *Leaderboard) SeedIfEmpty(ctx context.Context, state models.LeaderboardState) (models.LeaderboardState, error) {
	if state.Len() > 0 {
		return state, nil
	}

	ctx, span := l.tracer.Start(ctx, "Leaderboard.SeedIfEmpty")
	defer span.End()

	seeded := DemoState(l.newID)
	stateSeeds.Inc()
	l.logger.Infow("Seeding demo leaderboard", "key", l.key, "entries", seeded.Len())

	if err := l.SaveState(ctx, seeded); err != nil {
		span.SetStatus(codes.Error, "seed not persisted")
		return seeded, fmt.Errorf("persist seeded state: %w", err)
	}
	return seeded, nil
}

// SaveState overwrites the whole blob in a single write.
func (l *Leaderboard) SaveState(ctx context.Context, state models.LeaderboardState) error {
	ctx, span := l.tracer.Start(ctx, "Leaderboard.SaveState")
	defer span.End()

	if state.Entries == nil {
		state.Entries = []models.Entry{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		stateSaves.WithLabelValues("error").Inc()
		return fmt.Errorf("encode state: %w", err)
	}

	if err := l.store.Put(ctx, l.key, data); err != nil {
		stateSaves.WithLabelValues("error").Inc()
		span.RecordError(err)
		l.logger.Errorw("Failed to write leaderboard state", "key", l.key, "error", err)
		return err
	}

	stateSaves.WithLabelValues("ok").Inc()
	return nil
}

// Routes returns the route catalog
func (l *Leaderboard) Routes() []models.Route {
	return Routes()
}

// DefaultRouteID returns the catalog's first route
func (l *Leaderboard) DefaultRouteID() string {
	return DefaultRouteID()
}

// View selects a route and renders its ranked table. An empty routeID
// selects the default route; an unknown one yields no preview and the
// placeholder row.
func (l *Leaderboard) View(ctx context.Context, routeID string) models.LeaderboardView {
	_, span := l.tracer.Start(ctx, "Leaderboard.View")
	defer span.End()

	if routeID == "" {
		routeID = DefaultRouteID()
	}
	span.SetAttributes(attribute.String("route_id", routeID))

	l.mu.RLock()
	entries := EntriesForRoute(l.state, routeID)
	l.mu.RUnlock()

	view := models.LeaderboardView{
		RouteID: routeID,
		Rows:    RenderTable(entries),
	}
	if preview, ok := SelectRoute(routeID); ok {
		view.Route = &preview
	}

	viewsRendered.Inc()
	return view
}
