package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contasis-asistente/internal/domain"
	"contasis-asistente/internal/llm"
	"contasis-asistente/internal/store"
)

// fakeGenerator scripts the remote model and records what it was asked.
type fakeGenerator struct {
	calls    int
	lastReq  llm.GenerateRequest
	response *domain.ModelResponse
	err      error
	// onGenerate runs inside Generate, before returning; used to simulate
	// a reset racing the in-flight call.
	onGenerate func()
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (*domain.ModelResponse, error) {
	f.calls++
	f.lastReq = req
	if f.onGenerate != nil {
		f.onGenerate()
	}
	return f.response, f.err
}

func newTestChat(gen *fakeGenerator) (*ChatService, *store.SessionStore, string) {
	sessions := store.NewSessionStore()
	svc := NewChatService(gen, sessions, zap.NewNop(), 0)
	return svc, sessions, sessions.Create()
}

func validRequest(prompt string) *domain.ChatRequest {
	return &domain.ChatRequest{
		Prompt: prompt,
		Module: domain.ModuleContabilidad,
		Source: domain.SourceSupportHistory,
	}
}

func TestSubmitTurn_EmptyPromptMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{}
	svc, sessions, id := newTestChat(gen)

	for _, prompt := range []string{"", "   ", "\n\t "} {
		_, err := svc.SubmitTurn(context.Background(), id, validRequest(prompt))
		require.ErrorIs(t, err, domain.ErrEmptyPrompt)
	}

	assert.Zero(t, gen.calls)
	turns, err := sessions.Turns(id)
	require.NoError(t, err)
	assert.Empty(t, turns)

	sess, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, sess.Status)
}

func TestSubmitTurn_InvalidSelectionRejected(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _, id := newTestChat(gen)

	req := validRequest("hola")
	req.Module = "Recursos Humanos"
	_, err := svc.SubmitTurn(context.Background(), id, req)
	require.ErrorIs(t, err, domain.ErrInvalidModule)

	req = validRequest("hola")
	req.Source = "Wikipedia"
	_, err = svc.SubmitTurn(context.Background(), id, req)
	require.ErrorIs(t, err, domain.ErrInvalidSource)

	assert.Zero(t, gen.calls)
}

func TestSubmitTurn_Success(t *testing.T) {
	gen := &fakeGenerator{
		response: &domain.ModelResponse{
			Text: "Según la Resolución 16, corresponde la cuenta 215.",
			Grounding: []domain.GroundingRef{
				{URI: "https://contraloria.cl/res16", Title: "Resolución 16"},
				{URI: "https://www.dipres.gob.cl/x"},
			},
		},
	}
	svc, sessions, id := newTestChat(gen)

	resp, err := svc.SubmitTurn(context.Background(), id, validRequest("¿Qué cuenta uso?"))
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, domain.RoleUser, resp.UserTurn.Role)
	assert.Equal(t, "¿Qué cuenta uso?", resp.UserTurn.Text)
	assert.Equal(t, domain.RoleAssistant, resp.Assistant.Role)
	assert.False(t, resp.Assistant.IsError)
	assert.Equal(t, []string{"Resolución 16", "www.dipres.gob.cl"}, resp.Assistant.Sources)
	assert.NotEqual(t, resp.UserTurn.ID, resp.Assistant.ID)

	turns, err := sessions.Turns(id)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, resp.UserTurn.ID, turns[0].ID)
	assert.Equal(t, resp.Assistant.ID, turns[1].ID)

	sess, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, sess.Status)
}

func TestSubmitTurn_HistoryExcludesCurrentPrompt(t *testing.T) {
	gen := &fakeGenerator{response: &domain.ModelResponse{Text: "ok"}}
	svc, _, id := newTestChat(gen)

	_, err := svc.SubmitTurn(context.Background(), id, validRequest("primera pregunta"))
	require.NoError(t, err)
	assert.Empty(t, gen.lastReq.History)
	assert.Equal(t, "primera pregunta", gen.lastReq.Prompt)

	_, err = svc.SubmitTurn(context.Background(), id, validRequest("segunda pregunta"))
	require.NoError(t, err)

	require.Len(t, gen.lastReq.History, 2)
	assert.Equal(t, domain.RoleUser, gen.lastReq.History[0].Role)
	assert.Equal(t, "primera pregunta", gen.lastReq.History[0].Text)
	assert.Equal(t, domain.RoleAssistant, gen.lastReq.History[1].Role)
	assert.Equal(t, "segunda pregunta", gen.lastReq.Prompt)
}

func TestSubmitTurn_ErrorTurnsStayInHistory(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	svc, _, id := newTestChat(gen)

	_, err := svc.SubmitTurn(context.Background(), id, validRequest("primera"))
	require.NoError(t, err)

	gen.err = nil
	gen.response = &domain.ModelResponse{Text: "ok"}

	_, err = svc.SubmitTurn(context.Background(), id, validRequest("segunda"))
	require.NoError(t, err)

	// The prior hard-failure turn is not filtered out of the history.
	require.Len(t, gen.lastReq.History, 2)
	assert.Equal(t, hardFailureText, gen.lastReq.History[1].Text)
}

func TestSubmitTurn_SoftFailure(t *testing.T) {
	gen := &fakeGenerator{response: &domain.ModelResponse{Text: "  "}}
	svc, sessions, id := newTestChat(gen)

	resp, err := svc.SubmitTurn(context.Background(), id, validRequest("consulta filtrada"))
	require.NoError(t, err)

	assert.Equal(t, softFailureText, resp.Assistant.Text)
	assert.False(t, resp.Assistant.IsError)
	assert.Empty(t, resp.Assistant.Sources)

	sess, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, sess.Status)
}

func TestSubmitTurn_HardFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc, sessions, id := newTestChat(gen)

	resp, err := svc.SubmitTurn(context.Background(), id, validRequest("consulta"))
	require.NoError(t, err)

	assert.True(t, resp.Assistant.IsError)
	assert.Equal(t, hardFailureText, resp.Assistant.Text)
	assert.Empty(t, resp.Assistant.Sources)

	turns, err := sessions.Turns(id)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.True(t, turns[1].IsError)

	sess, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, sess.Status)
}

func TestSubmitTurn_RejectsWhileBusy(t *testing.T) {
	gen := &fakeGenerator{response: &domain.ModelResponse{Text: "ok"}}
	svc, sessions, id := newTestChat(gen)

	// Occupy the session as an in-flight turn would.
	_, err := sessions.BeginTurn(id)
	require.NoError(t, err)

	_, err = svc.SubmitTurn(context.Background(), id, validRequest("hola"))
	require.ErrorIs(t, err, domain.ErrBusy)
	assert.Zero(t, gen.calls)
}

func TestSubmitTurn_ResetMidCallDiscardsResult(t *testing.T) {
	var sessions *store.SessionStore
	var id string

	gen := &fakeGenerator{response: &domain.ModelResponse{Text: "respuesta tardía"}}
	gen.onGenerate = func() {
		_ = sessions.Reset(id)
	}

	sessions = store.NewSessionStore()
	svc := NewChatService(gen, sessions, zap.NewNop(), 0)
	id = sessions.Create()

	_, err := svc.SubmitTurn(context.Background(), id, validRequest("consulta"))
	require.ErrorIs(t, err, domain.ErrStaleSession)

	// The late answer never reappears in the cleared session.
	turns, err := sessions.Turns(id)
	require.NoError(t, err)
	assert.Empty(t, turns)

	sess, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdle, sess.Status)
}

func TestSubmitTurn_UnknownSession(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _, _ := newTestChat(gen)

	_, err := svc.SubmitTurn(context.Background(), "no-such-session", validRequest("hola"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gen.calls)
}
