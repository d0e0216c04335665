// @title			Punchclock API
// @version		1.0
// @description	Attendance tracking service over an append-only clock event log.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/punchclock/internal/config"
	"github.com/mtlprog/punchclock/internal/database"
	"github.com/mtlprog/punchclock/internal/handler"
	"github.com/mtlprog/punchclock/internal/logger"
	"github.com/mtlprog/punchclock/internal/repository"
	"github.com/mtlprog/punchclock/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "punchclock",
		Usage: "Attendance tracking over an append-only event log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:  "scan-stale",
				Usage: "Scan for users with a suspected forgotten clock-out",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "stale-after",
						Value:   config.DefaultStaleAfter,
						Usage:   "How long a clocked-in user may go silent before being flagged",
						EnvVars: []string{"STALE_AFTER"},
					},
				},
				Action: runScanStale,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// runScanStale runs the forgotten clock-out scan once and logs one warning
// per flagged user. Delivery of the warnings (mail, chat, dashboards) is
// intentionally left to whatever consumes the logs.
func runScanStale(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")
	threshold := c.Duration("stale-after")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	eventRepo := repository.NewEventRepository(db.Pool())
	userRepo := repository.NewUserRepository(db.Pool())
	attendanceService := service.NewAttendanceService(db.Pool(), eventRepo, userRepo)

	stale, err := attendanceService.ScanStaleClockIns(ctx, time.Now().UTC(), threshold)
	if err != nil {
		return fmt.Errorf("scan stale clock-ins: %w", err)
	}

	for _, entry := range stale {
		slog.Warn("suspected forgotten clock-out",
			"user_id", entry.UserID,
			"last_event_at", entry.LastEventAt,
			"threshold", threshold.String(),
		)
	}

	return nil
}
