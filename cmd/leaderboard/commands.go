package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mauimtb/leaderboard-api/internal/handlers"
	"github.com/mauimtb/leaderboard-api/internal/models"
	"github.com/mauimtb/leaderboard-api/internal/store"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "load or seed the leaderboard and serve it over HTTP",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := setup(ctx, c)
			if err != nil {
				return err
			}
			defer rt.Close()
			log := rt.logger.Sugar()

			if err := rt.leaderboard.Init(ctx); err != nil {
				// the seeded state is still served from memory
				log.Warnw("Seeded state was not persisted", "error", err)
			}

			h := handlers.New(handlers.Config{
				Leaderboard:        rt.leaderboard,
				Store:              rt.store,
				Logger:             rt.logger,
				AllowedOrigins:     rt.cfg.AllowedOrigins,
				RateLimitPerSecond: rt.cfg.RateLimitPerSecond,
				RateLimitBurst:     rt.cfg.RateLimitBurst,
			})

			srv := &http.Server{
				Addr:              rt.cfg.Addr(),
				Handler:           h.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Infow("Starting server", "addr", srv.Addr, "env", rt.cfg.Env, "backend", rt.cfg.Storage.Backend)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("listen: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Infow("Shutting down server", "timeout", rt.cfg.ShutdownTimeout)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}

func routesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "list the route catalog",
		Action: func(c *cli.Context) error {
			rt, err := setup(c.Context, c)
			if err != nil {
				return err
			}
			defer rt.Close()

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLINK")
			def := rt.leaderboard.DefaultRouteID()
			for _, r := range rt.leaderboard.Routes() {
				id := r.ID
				if id == def {
					id += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", id, r.Name, r.Link)
			}
			return tw.Flush()
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print the ranked table for one route",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "route", Usage: "route id; defaults to the first catalog route"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c.Context, c)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.leaderboard.Init(c.Context); err != nil {
				return err
			}
			return writeView(c.App.Writer, rt.leaderboard.View(c.Context, c.String("route")))
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "seed the demo entries when storage is empty",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "discard stored entries and reseed"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c.Context, c)
			if err != nil {
				return err
			}
			defer rt.Close()

			if c.Bool("force") {
				err = rt.leaderboard.Reset(c.Context)
			} else {
				err = rt.leaderboard.Init(c.Context)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%d entries stored under %q\n", rt.leaderboard.State().Len(), rt.cfg.Storage.Key)
			return nil
		},
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "print the raw stored blob",
		Action: func(c *cli.Context) error {
			rt, err := setup(c.Context, c)
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := rt.store.Get(c.Context, rt.cfg.Storage.Key)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("nothing stored under %q", rt.cfg.Storage.Key)
			}
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if json.Indent(&pretty, data, "", "  ") != nil {
				// not JSON; print it as stored
				pretty.Reset()
				pretty.Write(data)
			}
			pretty.WriteByte('\n')
			_, err = c.App.Writer.Write(pretty.Bytes())
			return err
		},
	}
}

func writeView(w io.Writer, view models.LeaderboardView) error {
	if view.Route == nil {
		fmt.Fprintf(w, "Route %q is not in the catalog\n\n", view.RouteID)
	} else {
		fmt.Fprintf(w, "%s\n%s\n\n", view.Route.Name, view.Route.Link)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tRIDER\tTIME\tDATE")
	for _, row := range view.Rows {
		if row.IsPlaceholder() {
			fmt.Fprintf(tw, "\t%s\t\t\n", row.Message)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Rank, row.Rider, row.Time, row.Date)
	}
	return tw.Flush()
}
