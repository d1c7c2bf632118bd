package usecase

import (
	"errors"
	"testing"
	"time"

	"codechat/internal/adapter/memstore"
	"codechat/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubChatService() *ChatService {
	clf := &stubClassifier{pred: domain.Prediction{TopicID: "greeting", Confidence: 1}}
	svc := NewChatService(newStubResolver(clf), memstore.NewMemoryStore())
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestChatService_SendAppendsBothTurns(t *testing.T) {
	svc := newStubChatService()
	id, err := svc.StartSession()
	require.NoError(t, err)

	reply, err := svc.Send(id, "hey there\nsecond line")
	require.NoError(t, err)
	assert.Equal(t, domain.SenderBot, reply.Sender)
	assert.Equal(t, "Hello!", reply.Message)

	turns, err := svc.Transcript(id)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.SenderUser, turns[0].Sender)
	assert.Equal(t, "hey there\nsecond line", turns[0].Message)
	assert.Equal(t, reply, turns[1])
}

func TestChatService_RejectsBlankMessages(t *testing.T) {
	svc := newStubChatService()
	id, err := svc.StartSession()
	require.NoError(t, err)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(id, msg)
		assert.True(t, errors.Is(err, ErrEmptyMessage), "message %q", msg)
	}

	turns, err := svc.Transcript(id)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestChatService_UnknownSession(t *testing.T) {
	svc := newStubChatService()

	_, err := svc.Send("nope", "hi")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))

	_, err = svc.Transcript("nope")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))

	assert.True(t, errors.Is(svc.EndSession("nope"), domain.ErrSessionNotFound))
}

func TestChatService_SessionsAreIsolated(t *testing.T) {
	svc := newStubChatService()
	a, _ := svc.StartSession()
	b, _ := svc.StartSession()
	assert.NotEqual(t, a, b)

	_, err := svc.Send(a, "one")
	require.NoError(t, err)

	turnsB, err := svc.Transcript(b)
	require.NoError(t, err)
	assert.Empty(t, turnsB)

	require.NoError(t, svc.EndSession(a))
	_, err = svc.Transcript(a)
	assert.Error(t, err)
}
