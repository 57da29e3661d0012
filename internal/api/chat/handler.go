package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docuchat/internal/api/middleware"
	"docuchat/internal/api/response"
	"docuchat/internal/domain"
	"docuchat/internal/service"
)

// Handler handles chat and session API requests
type Handler struct {
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/ai/chat", h.Chat)

	sessions := r.Group("/chat/sessions")
	{
		sessions.GET("", h.ListSessions)
		sessions.POST("", h.CreateSession)
		sessions.PATCH("/:id", h.RenameSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.GET("/:id/messages", h.GetMessages)
	}
}

// Chat runs one exchange: user message in, assistant reply out
func (h *Handler) Chat(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
		return
	}

	resp, err := h.chatService.CompleteExchange(c.Request.Context(), userID, &req)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     resp.Message,
		"tokens_used": resp.TokensUsed,
	})
}

// ListSessions returns the caller's active sessions, freshest first
func (h *Handler) ListSessions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	sessions, err := h.chatService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sessions)
}

// CreateSession creates a new session with an optional title
func (h *Handler) CreateSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	var req domain.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
		return
	}

	session, err := h.chatService.CreateSession(c.Request.Context(), userID, req.Title)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// RenameSession overwrites the title of a session the caller owns
func (h *Handler) RenameSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, "invalid session id")
		return
	}

	var req domain.RenameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
		return
	}

	if err := h.chatService.RenameSession(c.Request.Context(), userID, sessionID, req.Title); err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": sessionID, "title": req.Title})
}

// DeleteSession soft-deletes a session the caller owns
func (h *Handler) DeleteSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, "invalid session id")
		return
	}

	if err := h.chatService.SoftDeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session deleted"})
}

// GetMessages returns the ordered transcript of a session the caller owns
func (h *Handler) GetMessages(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, "authentication required")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, domain.CodeValidation, "invalid session id")
		return
	}

	turns, err := h.chatService.GetTranscript(c.Request.Context(), userID, sessionID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, turns)
}
