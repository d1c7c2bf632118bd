package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codechat/config"
	"codechat/internal/adapter/matcher"
	"codechat/internal/adapter/memstore"
	"codechat/internal/domain"
	"codechat/internal/port"
	"codechat/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroClassifier struct{}

func (zeroClassifier) Classify(string) domain.Prediction { return domain.Prediction{} }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	topics := []domain.Topic{{ID: "greeting", Patterns: []string{"hello"}, Responses: []string{"Hi there!"}}}
	picker := matcher.NewPicker(1)
	resolver := usecase.NewResolver(
		[]port.Matcher{matcher.NewIntentMatcher(topics, picker)},
		zeroClassifier{}, topics, picker,
		usecase.ResolverOptions{Threshold: 0.2}, zerolog.Nop(),
	)
	chat := usecase.NewChatService(resolver, memstore.NewMemoryStore())
	return NewRouter(resolver, chat, zerolog.Nop())
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestResolve(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/resolve", ResolveRequest{Text: "Hello bot"})
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.Resolution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Hi there!", res.Answer)
	assert.Equal(t, domain.SourceIntent, res.Source)
	assert.Equal(t, "greeting", res.TopicID)

	w = do(t, r, http.MethodPost, "/api/resolve", ResolveRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, config.DefaultMessage, res.Answer)
	assert.Equal(t, domain.SourceUnknown, res.Source)
}

func TestResolve_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)
	base := "/api/sessions/" + created.SessionID

	w = do(t, r, http.MethodPost, base+"/messages", MessageRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var msg MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "Hi there!", msg.Reply)
	require.Len(t, msg.Turns, 2)
	assert.Equal(t, domain.SenderUser, msg.Turns[0].Sender)

	w = do(t, r, http.MethodPost, base+"/messages", MessageRequest{Message: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, base+"/transcript", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var transcript struct {
		Turns []domain.ChatTurn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transcript))
	assert.Len(t, transcript.Turns, 2)

	w = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, base+"/transcript", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownSession(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/sessions/missing/messages", MessageRequest{Message: "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	router := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, addr, router, zerolog.Nop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
