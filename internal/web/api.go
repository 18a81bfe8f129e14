package web

import (
	"net/http"
	"strconv"

	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/gin-gonic/gin"
)

type apiPage struct {
	catalog.Page
	Filter  string   `json:"filter"`
	Filters []string `json:"filters"`
}

// handleAPIProjects serves the gallery page for ?filter=&page= without
// touching any session. Unknown filters fall back to the whole catalog.
func (s *Server) handleAPIProjects(c *gin.Context) {
	cat := s.deps.Model.Catalog
	filter := c.DefaultQuery("filter", catalog.FilterAll)
	if !cat.IsFilter(filter) {
		filter = catalog.FilterAll
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}

	c.JSON(http.StatusOK, apiPage{
		Page:    s.deps.Model.Visible(viewstate.State{Filter: filter, Cursor: page}),
		Filter:  filter,
		Filters: cat.Technologies(),
	})
}

func (s *Server) handleAPIProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	p, ok := s.deps.Model.Catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
