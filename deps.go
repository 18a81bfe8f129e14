package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/adekomen/portfolio/config"
	"github.com/adekomen/portfolio/internal/analytics"
	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
	"github.com/adekomen/portfolio/internal/diagram"
	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/storage"
	"github.com/adekomen/portfolio/internal/tracing"
	"github.com/adekomen/portfolio/internal/viewstate"
	"github.com/adekomen/portfolio/internal/web"

	"github.com/redis/go-redis/v9"
)

// deps holds everything both front-ends share.
type deps struct {
	catalog *catalog.Catalog
	db      *sql.DB
	redis   *redis.Client
	prefs   prefs.Store
	tracker *analytics.Tracker
	contact contact.Deliverer

	shutdownTracing tracing.ShutdownFunc
}

func buildDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{}

	shutdown, err := tracing.Setup(ctx, cfg.Tracing.OTLPEndpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	d.shutdownTracing = shutdown

	d.catalog, err = catalog.Load(cfg.Server.CatalogFile)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.db, err = storage.OpenSQLite(ctx, cfg.Storage.SQLitePath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	switch cfg.Storage.PrefsBackend {
	case "redis":
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		if err := d.redis.Ping(ctx).Err(); err != nil {
			d.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Storage.RedisAddr, err)
		}
		d.prefs = prefs.NewRedis(d.redis)
	default:
		d.prefs, err = prefs.NewSQLite(ctx, d.db)
		if err != nil {
			d.Close()
			return nil, err
		}
	}

	d.tracker, err = analytics.NewTracker(ctx, d.db)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.contact = contact.NewService(newDeliverer(cfg), contact.ServiceConfig{
		Provider: cfg.Contact.Provider,
		Timeout:  cfg.Contact.Timeout,
		Rate:     cfg.Contact.PerMinute,
		Burst:    cfg.Contact.Burst,
	})
	return d, nil
}

func newDeliverer(cfg *config.Config) contact.Deliverer {
	if cfg.Contact.Provider == "smtp" {
		return contact.NewSMTP(contact.SMTPConfig{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		})
	}
	if cfg.EmailJS.PublicKey == "" {
		log.Println("WARNING: EMAILJS_PUBLIC_KEY is not set; contact messages will be rejected")
	}
	return contact.NewEmailJS(contact.EmailJSConfig{
		Endpoint:   cfg.EmailJS.Endpoint,
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
		PublicKey:  cfg.EmailJS.PublicKey,
		PrivateKey: cfg.EmailJS.PrivateKey,
	})
}

func (d *deps) model(cfg *config.Config, breakpoint int) viewstate.Model {
	return viewstate.Model{
		Catalog:    d.catalog,
		PageSize:   cfg.UI.PageSize,
		Breakpoint: viewstate.Breakpoint(breakpoint),
	}
}

func (d *deps) webServer(cfg *config.Config) (*web.Server, error) {
	mermaid := diagram.NewMermaid(cfg.Diagram.MermaidBin)
	if !mermaid.Available() {
		log.Printf("Mermaid CLI %q not found; diagrams render in the browser", cfg.Diagram.MermaidBin)
	}
	return web.NewServer(web.Config{
		AssetsDir:     cfg.Server.AssetsDir,
		CVPath:        cfg.Server.CVPath,
		CORSOrigins:   cfg.Server.CORSOrigins,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
		Retention:     cfg.Storage.Retention,
		ServiceName:   cfg.Tracing.ServiceName,
		Version:       cfg.App.Version,
	}, web.Deps{
		Model:     d.model(cfg, cfg.UI.WebBreakpoint),
		Prefs:     d.prefs,
		Contact:   d.contact,
		Diagrams:  mermaid,
		Analytics: d.tracker,
		DB:        d.db,
	})
}

// Close releases whatever buildDeps managed to open.
func (d *deps) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Printf("Failed to close redis client: %v", err)
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}
	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(context.Background()); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}
}
