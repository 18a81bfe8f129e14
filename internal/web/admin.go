package web

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/adekomen/portfolio/internal/reqlog"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// adminCredentials falls back to development defaults with a warning.
func (s *Server) adminCredentials() (string, string) {
	username, password := s.cfg.AdminUsername, s.cfg.AdminPassword
	if username == "" {
		username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if password == "" {
		password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return username, password
}

// Middleware to check admin authentication
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	tracker := s.deps.Analytics
	log.Printf("Admin access available at: /admin/login")

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Politique de confidentialité",
			"retentionDays": int(s.retention().Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username, password := s.adminCredentials()
		userOK := subtle.ConstantTimeCompare([]byte(c.PostForm("username")), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(password)) == 1

		if userOK && passOK {
			// 24 hours
			c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", tracker.HashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", tracker.HashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", tracker.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := tracker.Stats(c.Request.Context())
		if err != nil {
			reqlog.New(c.Request.Context()).Error("admin_stats", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		titles := make(map[int]string)
		for _, p := range s.deps.Model.Catalog.All() {
			titles[p.ID] = p.Title
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":  stats,
			"titles": titles,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := tracker.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := tracker.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			reqlog.New(c.Request.Context()).Error("admin_visitors", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Privacy compliance endpoint: purge rows past the retention window now.
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		rid := c.GetString("request_id")
		go func() {
			ctx, cancel := context.WithTimeout(reqlog.WithRequestID(context.Background(), rid), time.Minute)
			defer cancel()
			if _, err := tracker.Cleanup(ctx, s.retention()); err != nil {
				reqlog.New(ctx).Error("privacy_cleanup", err)
			}
		}()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := tracker.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", tracker.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) retention() time.Duration {
	if s.cfg.Retention <= 0 {
		return 365 * 24 * time.Hour
	}
	return s.cfg.Retention
}
