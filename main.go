package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/ideabox/internal/config"
	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/handler"
	"github.com/msomdec/ideabox/internal/metrics"
	"github.com/msomdec/ideabox/internal/repository/postgres"
	"github.com/msomdec/ideabox/internal/repository/sqlite"
	"github.com/msomdec/ideabox/internal/service"
	"golang.org/x/term"
)

const usage = `usage:
  ideabox [serve]                           run the HTTP server
  ideabox adduser -login ID -nickname NAME  create a user, prompting for the password
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = serve(cfg)
	case "adduser":
		err = addUser(cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error(cmd+" failed", "error", err)
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (domain.Database, error) {
	var (
		db  domain.Database
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.New(ctx, cfg.DatabaseURL)
	default:
		db, err = sqlite.New(cfg.DatabaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	slog.Info("database ready", "driver", cfg.Driver)
	return db, nil
}

func serve(cfg config.Config) error {
	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	authService := service.NewAuthService(db.Users(), db.Revocations(), cfg.JWTSecret, cfg.BcryptCost, cfg.SessionTTL)
	go authService.RunRevocationJanitor(ctx, time.Hour)

	app := handler.App{
		Auth:         authService,
		Ideas:        service.NewIdeaService(db.Ideas()),
		DB:           db,
		Metrics:      metrics.New(),
		CookieSecure: cfg.CookieSecure,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func addUser(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	loginID := fs.String("login", "", "login id")
	nickname := fs.String("nickname", "", "display nickname")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := service.NewAuthService(db.Users(), db.Revocations(), cfg.JWTSecret, cfg.BcryptCost, cfg.SessionTTL)
	user, err := auth.Register(ctx, *loginID, *nickname, string(pw))
	if err != nil {
		return err
	}
	slog.Info("user created", "id", user.ID, "login_id", user.LoginID)
	return nil
}
