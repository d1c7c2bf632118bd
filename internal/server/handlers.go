package server

import (
	"errors"
	"net/http"

	"codechat/internal/domain"
	"codechat/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ResolveRequest is the body of POST /api/resolve. Empty text is allowed.
type ResolveRequest struct {
	Text string `json:"text"`
}

type MessageRequest struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Reply string            `json:"reply"`
	Turns []domain.ChatTurn `json:"turns"`
}

// Handler serves the resolver and chat sessions over HTTP.
type Handler struct {
	resolver *usecase.Resolver
	chat     *usecase.ChatService
}

func NewHandler(resolver *usecase.Resolver, chat *usecase.ChatService) *Handler {
	return &Handler{resolver: resolver, chat: chat}
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Resolve answers a single utterance without a session.
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.resolver.Explain(req.Text))
}

func (h *Handler) CreateSession(c *gin.Context) {
	id, err := h.chat.StartSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// SendMessage resolves a message within a session and returns the full transcript.
func (h *Handler) SendMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	reply, err := h.chat.Send(id, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	turns, err := h.chat.Transcript(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Reply: reply.Message, Turns: turns})
}

func (h *Handler) Transcript(c *gin.Context) {
	turns, err := h.chat.Transcript(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": turns})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.chat.EndSession(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
