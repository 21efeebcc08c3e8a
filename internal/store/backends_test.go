package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRedisClient keeps values in a map and answers with canned command results
type MockRedisClient struct {
	values  map[string]string
	PingErr error
	SetErr  error
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.SetErr != nil {
		return redis.NewStatusResult("", m.SetErr)
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.PingErr)
}

func TestRedis_RoundTrip(t *testing.T) {
	roundTrip(t, NewRedis(&MockRedisClient{}))
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	s := NewRedis(&MockRedisClient{SetErr: boom, PingErr: boom})

	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), boom)
	assert.ErrorIs(t, s.Ping(ctx), boom)
}

// MockPgRow returns a scripted Scan result
type MockPgRow struct {
	payload []byte
	err     error
}

func (r *MockPgRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

// MockPgPool keeps rows in a map keyed by storage key
type MockPgPool struct {
	rows     map[string][]byte
	execSQL  []string
	PingFunc func(ctx context.Context) error
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	key := args[0].(string)
	v, ok := m.rows[key]
	if !ok {
		return &MockPgRow{err: pgx.ErrNoRows}
	}
	return &MockPgRow{payload: v}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execSQL = append(m.execSQL, sql)
	if len(args) == 2 {
		if m.rows == nil {
			m.rows = make(map[string][]byte)
		}
		m.rows[args[0].(string)] = args[1].([]byte)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func TestPostgres_RoundTrip(t *testing.T) {
	pool := &MockPgPool{}
	pg := NewPostgres(pool)
	require.NoError(t, pg.Migrate(context.Background()))
	assert.Contains(t, pool.execSQL[0], "CREATE TABLE IF NOT EXISTS leaderboard_blobs")

	roundTrip(t, pg)
	assert.Contains(t, pool.execSQL[len(pool.execSQL)-1], "ON CONFLICT (storage_key)")
}

func TestPostgres_ScanError(t *testing.T) {
	boom := errors.New("conn reset")
	pool := &mockErrPool{err: boom}
	_, err := NewPostgres(pool).Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type mockErrPool struct {
	MockPgPool
	err error
}

func (m *mockErrPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &MockPgRow{err: m.err}
}

func TestMySQL_GetPut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewMySQLStore(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS leaderboard_blobs")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Migrate(ctx))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM leaderboard_blobs WHERE storage_key = ?")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE payload = VALUES(payload)")).
		WithArgs("k", `{"entries":[]}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Put(ctx, "k", []byte(`{"entries":[]}`)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM leaderboard_blobs")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"entries":[]}`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, string(got))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQL_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("too many connections")
	mock.ExpectQuery("SELECT payload").WillReturnError(boom)

	_, err = NewMySQLStore(db).Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}
