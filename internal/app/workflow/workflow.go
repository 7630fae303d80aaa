// Package workflow drives the two-phase correction loop: one spelling
// turn, then grammar turns gated by user-reported compiler outcomes.
package workflow

import (
	"context"
	"fmt"

	"github.com/PabloGalante/modelfix-agent/internal/app/session"
	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/extract"
	"github.com/PabloGalante/modelfix-agent/internal/observability"
	"github.com/PabloGalante/modelfix-agent/internal/prompt"
)

// State is the workflow's current position. Transitions are
// deterministic: each Step advances exactly one of them.
type State string

const (
	StateSpellCheck   State = "spell_check"
	StateAwaitEdit    State = "await_edit"
	StateAwaitCompile State = "await_compile"
	StateGrammarCheck State = "grammar_check"
	StateDone         State = "done"
)

// Engine owns the in-memory model text between user edits and
// coordinates the session, the prompt library and the user. It never
// touches storage directly; persistence happens inside the session.
type Engine struct {
	session *session.Service
	prompts *prompt.Library
	source  domain.ModelSource
	ui      domain.UserIO

	model string // model identifier passed to every turn

	state        State
	inspected    string // current model text under correction
	compileError string // last user-reported compiler error
}

func New(
	sess *session.Service,
	prompts *prompt.Library,
	source domain.ModelSource,
	ui domain.UserIO,
	model string,
	initialText string,
) *Engine {
	return &Engine{
		session:   sess,
		prompts:   prompts,
		source:    source,
		ui:        ui,
		model:     model,
		state:     StateSpellCheck,
		inspected: initialText,
	}
}

func (e *Engine) State() State {
	return e.state
}

// FinalModel returns the model text as last re-read from its source
// of truth.
func (e *Engine) FinalModel() string {
	return e.inspected
}

// Run advances the machine until it terminates. Every model call and
// user wait inside is blocking; there is no timeout.
func (e *Engine) Run(ctx context.Context) error {
	log := observability.LoggerFromContext(ctx)
	log.Info("correction workflow started", "model", e.model)

	for e.state != StateDone {
		if err := e.Step(ctx); err != nil {
			log.Error("workflow step failed", "state", e.state, "error", err)
			return err
		}
	}

	log.Info("correction workflow finished")
	return nil
}

// Step performs one state transition.
func (e *Engine) Step(ctx context.Context) error {
	switch e.state {
	case StateSpellCheck:
		return e.spellCheck(ctx)
	case StateAwaitEdit:
		return e.awaitEdit(ctx)
	case StateAwaitCompile:
		return e.awaitCompile(ctx)
	case StateGrammarCheck:
		return e.grammarCheck(ctx)
	case StateDone:
		return nil
	default:
		return fmt.Errorf("workflow in unknown state %q", e.state)
	}
}

func (e *Engine) spellCheck(ctx context.Context) error {
	system, user, err := e.prompts.BuildSpell(e.inspected)
	if err != nil {
		return err
	}

	e.ui.Say("--- Starting Spelling Correction Phase ---")

	// Each correction turn is an isolated session: prior turns'
	// explanations must not bias later judgments, so the working
	// history is reset and only the audit log accumulates.
	out, err := e.session.Chat(ctx, session.ChatInput{
		Model:         e.model,
		Prompt:        user,
		StartFresh:    true,
		SystemMessage: system,
	})
	if err != nil {
		return err
	}

	e.ui.ShowResponse("Spelling Correction Result", out.AssistantMessage.Content)
	e.ui.ShowSuggestion("Suggested Model", extract.Suggestion(out.AssistantMessage.Content))

	e.state = StateAwaitEdit
	return nil
}

func (e *Engine) awaitEdit(ctx context.Context) error {
	if !e.ui.Confirm("Please update the model file based on the suggestion above. Have you finished modifying the file? (Y)") {
		e.ui.Say("Please modify the file and answer Y to continue.")
		return nil // stay in StateAwaitEdit
	}

	text, err := e.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("re-reading model after edit: %w", err)
	}
	e.inspected = text
	e.ui.Say("Model file reloaded with the latest version.")

	e.state = StateAwaitCompile
	return nil
}

func (e *Engine) awaitCompile(ctx context.Context) error {
	if e.ui.Decide("Have you compiled the model? Did compilation pass? (Y/n)") {
		e.ui.Say("Syntax errors have been successfully corrected!")
		e.state = StateDone
		return nil
	}

	e.compileError = e.ui.ReadText("Please paste the compilation error message: ")
	e.state = StateGrammarCheck
	return nil
}

func (e *Engine) grammarCheck(ctx context.Context) error {
	system, user, err := e.prompts.BuildGrammar(e.inspected, e.compileError)
	if err != nil {
		return err
	}

	e.ui.Say("--- Starting Grammar Correction Turn ---")

	out, err := e.session.Chat(ctx, session.ChatInput{
		Model:         e.model,
		Prompt:        user,
		StartFresh:    true,
		SystemMessage: system,
	})
	if err != nil {
		return err
	}

	e.ui.ShowResponse("Grammar Correction Suggestion", out.AssistantMessage.Content)
	e.ui.ShowSuggestion("Suggested Model", extract.Suggestion(out.AssistantMessage.Content))

	e.state = StateAwaitEdit
	return nil
}
