package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easeaico/worldsim/internal/world"
)

// friendshipDeltaBound limits a single UI adjustment; larger requests
// saturate instead of failing.
const friendshipDeltaBound = 0.5

type characterSummary struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Age       int    `json:"age"`
	JetLagged bool   `json:"jet_lagged"`
	Weather   string `json:"weather"`
	LocalTime string `json:"local_time"`
}

func (s *Server) summarize(c *world.Character) characterSummary {
	return characterSummary{
		Name:      c.Name,
		Location:  c.Location,
		Age:       c.Age(s.world.CurrentDate()),
		JetLagged: c.JetLagged,
		Weather:   s.world.Weather(c.Location),
		LocalTime: c.LocalTime().Format("03:04 PM"),
	}
}

// GetWorld returns the world overview.
func (s *Server) GetWorld(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	characters := make([]characterSummary, 0)
	for _, character := range s.world.Characters() {
		characters = append(characters, s.summarize(character))
	}
	c.JSON(http.StatusOK, gin.H{
		"name":        s.world.Name,
		"description": s.world.Description,
		"date":        s.world.CurrentDate().Format("2006-01-02"),
		"locations":   s.world.Locations(),
		"characters":  characters,
	})
}

// AdvanceTime advances the simulation clock.
func (s *Server) AdvanceTime(c *gin.Context) {
	var req struct {
		Days int `json:"days"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Days <= 0 {
		req.Days = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.world.AdvanceTime(c.Request.Context(), req.Days); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": s.world.CurrentDate().Format("2006-01-02")})
}

// ListCharacters returns summaries for the character selector.
func (s *Server) ListCharacters(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	characters := make([]characterSummary, 0)
	for _, character := range s.world.Characters() {
		characters = append(characters, s.summarize(character))
	}
	c.JSON(http.StatusOK, characters)
}

// GetCharacter returns the full profile for the sidebar.
func (s *Server) GetCharacter(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":               character.Name,
		"description":        character.Description,
		"date_of_birth":      character.DateOfBirth.Format("2006-01-02"),
		"age":                character.Age(s.world.CurrentDate()),
		"location":           character.Location,
		"utc_offset":         character.UTCOffset,
		"weather":            s.world.Weather(character.Location),
		"personality":        character.Personality,
		"interests":          character.Interests,
		"goals":              character.Goals,
		"preferences":        character.Preferences,
		"skills":             character.Skills,
		"friendships":        character.Friendships(),
		"jet_lagged":         character.JetLagged,
		"mood":               character.Mood(),
		"affection":          character.Affection(),
		"recent_experiences": character.RecentExperiences(),
		"tasks_done_today":   character.TasksDoneToday(),
	})
}

// GetMemories returns recalled memories for a query, or the newest records
// when no query is given.
func (s *Server) GetMemories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}

	if query := c.Query("q"); query != "" {
		memories, err := s.memories.Recall(c.Request.Context(), character.Name, query, 20)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, memories)
		return
	}

	memories, err := s.memories.Recent(c.Request.Context(), character.Name, 20)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, memories)
}

// MoveCharacter relocates a character; an unknown location is a no-op.
func (s *Server) MoveCharacter(c *gin.Context) {
	var req struct {
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	if err := character.MoveToLocation(c.Request.Context(), req.Location); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.summarize(character))
}

// UpdateFriendship adjusts a directed friendship edge by a bounded delta.
func (s *Server) UpdateFriendship(c *gin.Context) {
	var req struct {
		Friend string  `json:"friend" binding:"required"`
		Delta  float64 `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Delta > friendshipDeltaBound {
		req.Delta = friendshipDeltaBound
	}
	if req.Delta < -friendshipDeltaBound {
		req.Delta = -friendshipDeltaBound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	character.UpdateFriendship(req.Friend, req.Delta)
	c.JSON(http.StatusOK, gin.H{"friend": req.Friend, "strength": character.Friendship(req.Friend)})
}

// DevelopSkill raises a named skill by the configured step.
func (s *Server) DevelopSkill(c *gin.Context) {
	var req struct {
		Skill string `json:"skill" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	character.DevelopSkill(req.Skill)
	c.JSON(http.StatusOK, gin.H{"skill": req.Skill, "level": character.Skills[req.Skill]})
}

// RecommendTask asks the character to accept or decline a task.
func (s *Server) RecommendTask(c *gin.Context) {
	var req struct {
		Task string `json:"task" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	accepted, err := character.RecommendTask(c.Request.Context(), req.Task)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": req.Task, "accepted": accepted})
}

// ShareInfo stores information the user volunteered about themselves.
func (s *Server) ShareInfo(c *gin.Context) {
	var req struct {
		Info string `json:"info" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.character(c)
	if !ok {
		return
	}
	if err := character.AddUserSharedInfo(c.Request.Context(), req.Info); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Chat generates a character reply for one user message.
func (s *Server) Chat(c *gin.Context) {
	var req struct {
		Character string `json:"character" binding:"required"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	character, ok := s.world.Character(req.Character)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	reply, err := character.Respond(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"reply_html": RenderMarkdown(reply),
	})
}
