package domain

import "time"

// Prompt is a single publishable content unit. A plain prompt stores its text
// directly; a compound prompt stores no text of its own and is rendered by
// resolving its ordered components.
type Prompt struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"author_id"`
	Title      string  `json:"title"`
	Text       *string `json:"text,omitempty"` // nil for compound prompts
	IsCompound bool    `json:"is_compound"`

	// MaxDepth is an advisory cache of the prompt's nesting depth. It is
	// recomputed best-effort after component changes and must not be used
	// where a depth guarantee is required.
	MaxDepth *int `json:"max_depth,omitempty"`

	Status     string             `json:"status"` // pending, approved, rejected
	Tags       []string           `json:"tags,omitempty"`
	Components []*PromptComponent `json:"components,omitempty"` // ordered by position

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// PromptComponent is one ordered slot of a compound prompt. It either
// references another prompt, carries literal text, or both.
type PromptComponent struct {
	ID                string  `json:"id"`
	CompoundPromptID  string  `json:"compound_prompt_id"`
	ComponentPromptID *string `json:"component_prompt_id,omitempty"`
	Position          int     `json:"position"`
	CustomTextBefore  *string `json:"custom_text_before,omitempty"`
	CustomTextAfter   *string `json:"custom_text_after,omitempty"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ModerationDecision records an approve/reject action by a moderator.
type ModerationDecision struct {
	ID          string    `json:"id"`
	PromptID    string    `json:"prompt_id"`
	ModeratorID string    `json:"moderator_id"`
	Decision    string    `json:"decision"` // approved, rejected
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	PromptStatusPending  = "pending"
	PromptStatusApproved = "approved"
	PromptStatusRejected = "rejected"
)

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)
