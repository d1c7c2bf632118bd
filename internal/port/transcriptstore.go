package port

import "codechat/internal/domain"

type TranscriptStore interface {
	Create(sessionID string) error

	Exists(sessionID string) bool

	Append(sessionID string, turns ...domain.ChatTurn) error

	Transcript(sessionID string) ([]domain.ChatTurn, error)

	Delete(sessionID string) error
}
