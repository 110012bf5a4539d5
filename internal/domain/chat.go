package domain

import "time"

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionStatus is the transient state of a session's request cycle.
type SessionStatus string

const (
	// StatusIdle means no turn is in flight; new submissions are accepted.
	StatusIdle SessionStatus = "idle"
	// StatusSearching is the first sub-phase of an in-flight turn.
	StatusSearching SessionStatus = "searching"
	// StatusGenerating is the second sub-phase, while the model call runs.
	StatusGenerating SessionStatus = "generating"
)

// Turn is one message in a conversation. Turns are immutable once created;
// the session store owns them and never alters one after append.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	IsError   bool      `json:"is_error,omitempty"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a snapshot of one conversation's state.
type Session struct {
	ID             string        `json:"id"`
	Status         SessionStatus `json:"status"`
	Turns          []Turn        `json:"turns"`
	SpeakingTurnID string        `json:"speaking_turn_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// HistoryEntry is one prior turn translated into the shape the remote
// model expects.
type HistoryEntry struct {
	Role Role
	Text string
}

// GroundingRef is one web source the remote model consulted for an answer.
type GroundingRef struct {
	URI   string
	Title string
}

// ModelResponse is the narrowed result of a remote model call. It is not
// retained beyond citation extraction.
type ModelResponse struct {
	Text      string
	Grounding []GroundingRef
}

// ChatRequest is the body of a chat submission.
type ChatRequest struct {
	Prompt string       `json:"prompt" binding:"required"`
	Module SystemModule `json:"module" binding:"required"`
	Source DataSource   `json:"source" binding:"required"`
}

// ChatResponse carries the pair of turns produced by a submission.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	UserTurn  Turn   `json:"user_turn"`
	Assistant Turn   `json:"assistant_turn"`
}
