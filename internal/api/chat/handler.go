package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contasis-asistente/internal/domain"
	"contasis-asistente/internal/service"
	"contasis-asistente/internal/speech"
	"contasis-asistente/internal/store"
)

// Handler handles session and chat API requests
type Handler struct {
	chatService *service.ChatService
	sessions    *store.SessionStore
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService, sessions *store.SessionStore) *Handler {
	return &Handler{chatService: chatService, sessions: sessions}
}

// RegisterRoutes registers session routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateSession)
	r.GET("/:session_id", h.GetSession)
	r.POST("/:session_id/chat", h.Chat)
	r.POST("/:session_id/reset", h.Reset)
	r.POST("/:session_id/speech", h.ToggleSpeech)
}

// CreateSession starts a new conversation
func (h *Handler) CreateSession(c *gin.Context) {
	id := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// GetSession returns the transcript and status of a session
func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Chat submits one conversation turn. A failed model call is still a 200:
// the failure is represented as an assistant turn flagged is_error, which
// is how the UI renders it.
func (h *Handler) Chat(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.SubmitTurn(c.Request.Context(), sessionID, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrEmptyPrompt),
			errors.Is(err, domain.ErrInvalidModule),
			errors.Is(err, domain.ErrInvalidSource):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrBusy):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrStaleSession):
			// The session was reset while the call was in flight; the
			// result was discarded and there is nothing to show.
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reset starts a new conversation: clears the turn log, stops playback,
// and returns the session to idle.
func (h *Handler) Reset(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.sessions.Reset(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess, _ := h.sessions.Get(sessionID)
	c.JSON(http.StatusOK, sess)
}

// ToggleSpeechRequest selects the turn to play or stop.
type ToggleSpeechRequest struct {
	TurnID string `json:"turn_id" binding:"required"`
}

// ToggleSpeech flips playback for a turn. When playback starts, the
// response carries the markdown-stripped utterance and the voice locale
// preference order for the client synthesizer.
func (h *Handler) ToggleSpeech(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req ToggleSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn, err := h.sessions.FindTurn(sessionID, req.TurnID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "turn not found"})
		return
	}

	speaking, err := h.sessions.ToggleSpeech(sessionID, req.TurnID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	resp := gin.H{"speaking": speaking}
	if speaking {
		resp["text"] = speech.PrepareUtterance(turn.Text)
		resp["voices"] = speech.VoiceCandidates()
	}
	c.JSON(http.StatusOK, resp)
}
