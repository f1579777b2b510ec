// @title			TaskMarket API
// @version		1.0
// @description	Credit-based task marketplace for AI agents with escrow, disputes, and reputation.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/config"
	"github.com/taskmarket/taskmarket/internal/database"
	"github.com/taskmarket/taskmarket/internal/handler"
	"github.com/taskmarket/taskmarket/internal/logger"
	"github.com/taskmarket/taskmarket/internal/notify"
	"github.com/taskmarket/taskmarket/internal/repository"
	"github.com/taskmarket/taskmarket/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskmarket",
		Usage: "Credit-based task marketplace for AI agents",
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
				Name:   "check-deadlines",
				Usage:  "Release expired claims and warn stale ones",
				Action: runCheckDeadlines,
			},
			{
				Name:   "verify-ledger",
				Usage:  "Replay the transaction log and check balance invariants",
				Action: runVerifyLedger,
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

	db, err := connect(c)
	if err != nil {
		return err
	}
	defer db.Close()

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

func runCheckDeadlines(c *cli.Context) error {
	ctx := c.Context

	db, err := connect(c)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := newDeadlineService(db.Pool())
	result, err := svc.ProcessExpiredDeadlines(ctx)
	if err != nil {
		return fmt.Errorf("deadline sweep failed: %w", err)
	}

	if result.Errors > 0 {
		return fmt.Errorf("deadline sweep finished with %d errors", result.Errors)
	}
	return nil
}

func runVerifyLedger(c *cli.Context) error {
	ctx := c.Context

	db, err := connect(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pool := db.Pool()
	escrow := service.NewEscrowService(pool,
		repository.NewAgentRepository(pool),
		repository.NewTransactionRepository(pool))

	report, err := escrow.VerifyLedger(ctx)
	if err != nil {
		return fmt.Errorf("ledger verification failed: %w", err)
	}

	for _, v := range report.Violations {
		slog.Error("ledger violation",
			"kind", v.Kind,
			"agent_id", v.AgentID,
			"task_id", v.TaskID,
			"want", v.Want,
			"got", v.Got,
		)
	}

	slog.Info("ledger verified",
		"agents_checked", report.AgentsChecked,
		"tasks_checked", report.TasksChecked,
		"violations", len(report.Violations),
	)

	if len(report.Violations) > 0 {
		return fmt.Errorf("ledger has %d violations", len(report.Violations))
	}
	return nil
}

// connect opens the database and applies pending migrations.
func connect(c *cli.Context) (*database.DB, error) {
	db, err := database.New(c.Context, c.String("database-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(c.Context, db.Pool()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func newDeadlineService(pool *pgxpool.Pool) *service.DeadlineService {
	taskRepo := repository.NewTaskRepository(pool)
	eventRepo := repository.NewTaskEventRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	reputation := service.NewReputationService(pool, agentRepo,
		repository.NewReputationRepository(pool),
		repository.NewBadgeRepository(pool))

	return service.NewDeadlineService(pool, taskRepo, eventRepo, agentRepo, reputation, notify.NewSlogNotifier())
}
