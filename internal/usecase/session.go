package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"codechat/internal/domain"
	"codechat/internal/port"

	"github.com/google/uuid"
)

// ErrEmptyMessage is returned when a blank message is submitted.
var ErrEmptyMessage = errors.New("message is empty")

// ChatService keeps per-session transcripts around a shared resolver.
// Transcripts are never read by the resolver.
type ChatService struct {
	resolver *Resolver
	store    port.TranscriptStore
	now      func() time.Time
}

func NewChatService(resolver *Resolver, store port.TranscriptStore) *ChatService {
	return &ChatService{
		resolver: resolver,
		store:    store,
		now:      time.Now,
	}
}

// StartSession creates an empty transcript and returns its id.
func (s *ChatService) StartSession() (string, error) {
	id := uuid.NewString()
	if err := s.store.Create(id); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// Send resolves message and appends the user turn and the reply to the transcript.
func (s *ChatService) Send(sessionID, message string) (domain.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return domain.ChatTurn{}, ErrEmptyMessage
	}
	if !s.store.Exists(sessionID) {
		return domain.ChatTurn{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	at := s.now()
	user := domain.ChatTurn{Sender: domain.SenderUser, Message: message, At: at}
	reply := domain.ChatTurn{Sender: domain.SenderBot, Message: s.resolver.Resolve(message), At: at}

	if err := s.store.Append(sessionID, user, reply); err != nil {
		return domain.ChatTurn{}, err
	}
	return reply, nil
}

func (s *ChatService) Transcript(sessionID string) ([]domain.ChatTurn, error) {
	return s.store.Transcript(sessionID)
}

func (s *ChatService) EndSession(sessionID string) error {
	return s.store.Delete(sessionID)
}
