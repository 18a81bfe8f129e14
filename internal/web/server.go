package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/adekomen/portfolio/internal/analytics"
	"github.com/adekomen/portfolio/internal/contact"
	"github.com/adekomen/portfolio/internal/diagram"
	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

type Config struct {
	// AssetsDir is served at /assets (project images, the CV file).
	AssetsDir   string
	CVPath      string
	CORSOrigins []string

	AdminUsername string
	AdminPassword string
	// Retention bounds how long visitor rows are kept.
	Retention time.Duration

	ServiceName string
	Version     string
}

// Deps are the collaborators the handlers drive.
type Deps struct {
	Model     viewstate.Model
	Prefs     prefs.Store
	Contact   contact.Deliverer
	Diagrams  diagram.Renderer
	Analytics *analytics.Tracker // nil disables tracking and the admin pages
	DB        *sql.DB            // pinged by /health when set
}

type Server struct {
	cfg      Config
	deps     Deps
	sessions *Sessions
	tmpl     *template.Template

	adminToken string

	// in-flight deliveries
	wg sync.WaitGroup
}

func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.Model.Catalog == nil {
		return nil, errors.New("web: catalog is nil")
	}
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewMemory()
	}
	if deps.Contact == nil {
		return nil, errors.New("web: contact deliverer is nil")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "portfolio"
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"markdown": renderMarkdownHTML,
		"join":     strings.Join,
		"seq":      seq,
		"add":      func(a, b int) int { return a + b },
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:        cfg,
		deps:       deps,
		sessions:   NewSessions(deps.Model, deps.Prefs),
		tmpl:       tmpl,
		adminToken: analytics.RandomToken(),
	}, nil
}

// Sessions exposes the registry so the scheduler can sweep it.
func (s *Server) Sessions() *Sessions { return s.sessions }

// Wait blocks until in-flight contact deliveries have reported back.
func (s *Server) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware())
	r.SetHTMLTemplate(s.tmpl)

	static, _ := fs.Sub(assetsFS, "static")
	r.StaticFS("/static", http.FS(static))
	if s.cfg.AssetsDir != "" {
		r.Static("/assets", s.cfg.AssetsDir)
	}

	NewHealthHandler(s.cfg.ServiceName, s.cfg.Version, s.deps.DB).RegisterRoutes(r)
	r.GET("/particles.json", s.handleParticles)

	api := r.Group("/api")
	api.Use(cors.New(s.corsConfig()))
	api.GET("/projects", s.handleAPIProjects)
	api.GET("/projects/:id", s.handleAPIProject)

	site := r.Group("/")
	site.Use(sessionMiddleware(), visitorTrackingMiddleware(s.deps.Analytics))
	site.GET("/", s.handleHome)
	site.POST("/theme", s.handleToggleTheme)
	site.POST("/sidebar/toggle", s.handleToggleSidebar)
	site.POST("/viewport", s.handleViewport)
	site.POST("/gallery/filter", s.handleFilter)
	site.POST("/gallery/next", s.handleNextPage)
	site.POST("/gallery/prev", s.handlePrevPage)
	site.POST("/gallery/page/:n", s.handleGotoPage)
	site.GET("/projects/:id", s.handleOpenProject)
	site.DELETE("/projects/modal", s.handleCloseModal)
	site.POST("/contact", s.handleContact)
	site.GET("/contact/status", s.handleContactStatus)
	site.GET("/cv/open", s.handleCVOpen)
	site.GET("/cv/download", s.handleCVDownload)
	site.GET("/cv/file", s.handleCVFile)

	if s.deps.Analytics != nil {
		s.setupAdminRoutes(r)
	}
	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "OPTIONS"}
	cfg.MaxAge = 12 * time.Hour
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// seq returns 1..n for page links.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
