// Package api exposes the simulation over HTTP and a websocket event feed.
package api

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/easeaico/worldsim/internal/types"
	"github.com/easeaico/worldsim/internal/world"
)

// MemoryBrowser lists stored memories for the sidebar.
type MemoryBrowser interface {
	Recent(ctx context.Context, characterName string, limit int) ([]types.Memory, error)
	Recall(ctx context.Context, characterName, query string, k int) ([]types.RetrievedMemory, error)
}

// Server wires the gin router to one world. The simulation is built for a
// single active session; all mutating handlers serialize behind mu.
type Server struct {
	mu       sync.Mutex
	world    *world.World
	memories MemoryBrowser
	hub      *Hub
}

// NewServer creates the API server and subscribes the event hub to world
// notifications.
func NewServer(w *world.World, memories MemoryBrowser) *Server {
	s := &Server{
		world:    w,
		memories: memories,
		hub:      NewHub(),
	}
	w.OnNotice(s.hub.Broadcast)
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(staticDir string) *gin.Engine {
	r := gin.Default()

	// staticDir is empty in tests; the page routes need the template glob.
	if staticDir != "" {
		r.Static("/static", filepath.Join(staticDir, "static"))
		r.LoadHTMLGlob(filepath.Join(staticDir, "templates", "*.html"))
		r.GET("/", s.IndexPage)
	}

	api := r.Group("/api")
	{
		api.GET("/world", s.GetWorld)
		api.POST("/world/advance", s.AdvanceTime)
		api.GET("/characters", s.ListCharacters)
		api.GET("/characters/:name", s.GetCharacter)
		api.GET("/characters/:name/memories", s.GetMemories)
		api.POST("/characters/:name/move", s.MoveCharacter)
		api.POST("/characters/:name/friendship", s.UpdateFriendship)
		api.POST("/characters/:name/skill", s.DevelopSkill)
		api.POST("/characters/:name/task", s.RecommendTask)
		api.POST("/characters/:name/share", s.ShareInfo)
		api.POST("/chat", s.Chat)
	}

	r.GET("/ws/events", s.EventsWebSocket)

	return r
}

// IndexPage serves the single-page chat UI.
func (s *Server) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": s.world.Name,
	})
}

func (s *Server) character(c *gin.Context) (*world.Character, bool) {
	name := c.Param("name")
	character, ok := s.world.Character(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return nil, false
	}
	return character, true
}
