package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"contasis-asistente/internal/domain"
	"contasis-asistente/internal/llm"
	"contasis-asistente/internal/store"
)

// Fixed user-facing strings. The underlying cause of a hard failure is
// logged, never shown.
const (
	softFailureText = "Lo siento, no pude generar una respuesta para esta consulta. Por favor intenta reformular tu pregunta."
	hardFailureText = "Lo siento, hubo un problema al conectar con el asistente. Por favor verifica tu conexión o intenta nuevamente."
)

// ChatService runs the turn-taking cycle against the remote model.
type ChatService struct {
	generator llm.Generator
	sessions  *store.SessionStore
	logger    *zap.Logger
	// pacing separates the searching and generating sub-phases so the
	// first one is observable. Cosmetic only.
	pacing time.Duration
}

// NewChatService creates a new chat service.
func NewChatService(generator llm.Generator, sessions *store.SessionStore, logger *zap.Logger, pacing time.Duration) *ChatService {
	return &ChatService{
		generator: generator,
		sessions:  sessions,
		logger:    logger,
		pacing:    pacing,
	}
}

// SubmitTurn runs one conversation turn: it appends the user's prompt to
// the session, invokes the remote model with the prior history, and
// appends the resulting assistant turn (answer, soft failure, or error).
// Exactly one remote call is made per invocation; none at all when the
// prompt is blank or the session is busy. Whatever the outcome, the
// session ends back at idle unless it was reset mid-call.
func (s *ChatService) SubmitTurn(ctx context.Context, sessionID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	if !req.Module.Valid() {
		return nil, domain.ErrInvalidModule
	}
	if !req.Source.Valid() {
		return nil, domain.ErrInvalidSource
	}

	gen, err := s.sessions.BeginTurn(sessionID)
	if err != nil {
		return nil, err
	}
	defer s.sessions.FinishTurn(sessionID, gen)

	// History is everything before this turn's user message. Error turns
	// stay in: a prior failure remains visible context until a reset.
	prior, err := s.sessions.Turns(sessionID)
	if err != nil {
		return nil, err
	}
	history := make([]domain.HistoryEntry, len(prior))
	for i, t := range prior {
		history[i] = domain.HistoryEntry{Role: t.Role, Text: t.Text}
	}

	userTurn := store.NewTurn(domain.RoleUser, prompt)
	if err := s.sessions.AppendTurn(sessionID, gen, userTurn); err != nil {
		return nil, err
	}

	if s.pacing > 0 {
		select {
		case <-time.After(s.pacing):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.sessions.SetGenerating(sessionID, gen)

	assistant := s.generate(ctx, prompt, req.Module, req.Source, history)

	if err := s.sessions.AppendTurn(sessionID, gen, assistant); err != nil {
		return nil, err
	}

	return &domain.ChatResponse{
		SessionID: sessionID,
		UserTurn:  userTurn,
		Assistant: assistant,
	}, nil
}

// generate maps the remote call's three outcomes onto an assistant turn:
// answer with citations, soft failure (empty text, not an error), or hard
// failure (call failed, IsError set).
func (s *ChatService) generate(ctx context.Context, prompt string, module domain.SystemModule, source domain.DataSource, history []domain.HistoryEntry) domain.Turn {
	res, err := s.generator.Generate(ctx, llm.GenerateRequest{
		Instruction: ComposeInstruction(module, source),
		History:     history,
		Prompt:      prompt,
	})
	if err != nil {
		s.logger.Error("remote model call failed",
			zap.String("module", string(module)),
			zap.Error(err),
		)
		turn := store.NewTurn(domain.RoleAssistant, hardFailureText)
		turn.IsError = true
		return turn
	}

	if res == nil || strings.TrimSpace(res.Text) == "" {
		s.logger.Warn("remote model returned empty or blocked text",
			zap.String("module", string(module)),
		)
		return store.NewTurn(domain.RoleAssistant, softFailureText)
	}

	turn := store.NewTurn(domain.RoleAssistant, res.Text)
	turn.Sources = ExtractCitations(res.Grounding)
	return turn
}
