package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adekomen/portfolio/config"
	"github.com/adekomen/portfolio/internal/jobs"
	"github.com/adekomen/portfolio/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

type flags struct {
	port       string
	sqlitePath string
	catalog    string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio site and terminal viewer",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the site (default)
  portfolio

  # Browse the portfolio in the terminal
  portfolio tui
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}

	cmd.PersistentFlags().StringVar(&f.sqlitePath, "db", "", "SQLite database path (overrides SQLITE_PATH)")
	cmd.PersistentFlags().StringVar(&f.catalog, "catalog", "", "Project catalog YAML file (overrides CATALOG_FILE)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}
	serve.Flags().StringVarP(&f.port, "port", "p", "", "Listen port (overrides PORT)")
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), f)
		},
	})
	return cmd
}

func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.port != "" {
		cfg.Server.Port = f.port
	}
	if f.sqlitePath != "" {
		cfg.Storage.SQLitePath = f.sqlitePath
	}
	if f.catalog != "" {
		cfg.Server.CatalogFile = f.catalog
	}
	return cfg, cfg.Validate()
}

func runServe(ctx context.Context, f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	srv, err := d.webServer(cfg)
	if err != nil {
		return err
	}

	sched := jobs.NewScheduler(d.tracker, srv.Sessions(), jobs.Config{
		Retention:  cfg.Storage.Retention,
		SessionTTL: cfg.Server.SessionTTL,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Server.Port, cfg.App.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := srv.Wait(shutdownCtx); err != nil {
		log.Printf("Contact deliveries still in flight: %v", err)
	}
	log.Println("Server exited")
	return nil
}

func runTUI(ctx context.Context, f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// The alternate screen owns stdout; keep log lines off it.
	if os.Getenv("DEBUG") != "" {
		lf, err := tea.LogToFile("portfolio-tui.log", "tui")
		if err != nil {
			return err
		}
		defer lf.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	return tui.Run(ctx, tui.Options{
		Model:           d.model(cfg, cfg.UI.TerminalBreakpoint),
		Prefs:           d.prefs,
		Contact:         d.contact,
		CVPath:          cfg.Server.CVPath,
		DeliveryTimeout: cfg.Contact.Timeout,
	})
}
