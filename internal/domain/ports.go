package domain

import "context"

// ModelClient defines how the core application talks to the external
// language-model service. Implementations receive the full ordered
// history and return the assistant's text, or fail.
type ModelClient interface {
	Complete(ctx context.Context, model string, history History) (string, error)
}

// HistoryStore persists the single "current" conversation snapshot and
// keeps an append-only audit log that is never read back.
type HistoryStore interface {
	// Load returns the persisted snapshot. A missing or corrupt
	// snapshot yields an empty History with a logged warning; Load
	// never fails.
	Load(ctx context.Context) History

	// Save overwrites the snapshot with the full history.
	Save(ctx context.Context, history History) error

	// AppendLog appends one message to the audit log.
	AppendLog(ctx context.Context, msg Message) error

	// Reset overwrites the snapshot with the given seed after
	// validating every element. Fails with ErrMalformedSeed, leaving
	// storage untouched, if any element is not a valid Message.
	Reset(ctx context.Context, initial History) error
}

// ModelSource is the source of truth for the model under correction:
// the file the user edits between turns.
type ModelSource interface {
	Read(ctx context.Context) (string, error)
}

// UserIO abstracts the blocking terminal interaction so the workflow
// state machine stays deterministic and testable.
type UserIO interface {
	// Confirm asks once and reports whether the user answered yes.
	Confirm(question string) bool

	// Decide asks for a strict yes/no answer, re-prompting on invalid
	// input until one is given.
	Decide(question string) bool

	// ReadText reads one free-text line (e.g. a pasted compiler error).
	ReadText(question string) string

	// Say prints an informational line.
	Say(format string, args ...any)

	// ShowResponse renders the assistant's full free-form answer.
	ShowResponse(title, markdown string)

	// ShowSuggestion renders an extracted model suggestion verbatim.
	ShowSuggestion(title, text string)
}
