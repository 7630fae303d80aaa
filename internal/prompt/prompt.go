// Package prompt builds the per-phase user and system prompts from
// JSON template data merged with the live model text and, for the
// grammar phase, the reported compiler error.
package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/*.json
var defaultTemplates embed.FS

const (
	spellTemplateFile   = "spell_prompt_data.json"
	grammarTemplateFile = "grammar_prompt_data.json"
)

const spellSystemPrompt = `You are a compile checker specialized in correcting spelling mistakes in LTS and FLTL models for Discrete Controller Synthesis (DCS). Given a model description (which will follow the JSON-formatted prompt), detect spelling mistakes (excluding grammatical errors) and suggest corrections.

CRUCIAL OUTPUT FORMAT RULE (SPELLING CORRECTION):
- If no spelling mistakes are found (or compilation is deemed successful by you): respond with "No spelling mistakes found. Compilation expected to be successful." and immediately thereafter provide the entire model in a single Markdown code block (` + "```plaintext" + `). No other explanations are needed.
- If spelling mistakes are detected:
  - First, provide the entire corrected model as a single Markdown code block (` + "```plaintext" + `). This is the highest priority.
  - Immediately after the code block, briefly explain the errors that needed correction and their reasons in a bulleted list.
  - Even if there are multiple errors, the initial code block must contain the complete model after applying all corrections.`

const grammarSystemPrompt = `You are an interactive compile checker specialized in correcting grammatical mistakes in LTS and FLTL models for Discrete Controller Synthesis (DCS). Given a JSON-formatted prompt containing a model description and a compilation error message, detect grammatical errors and suggest corrections. This process will repeat until compilation is fully successful.

CRUCIAL OUTPUT FORMAT RULE (GRAMMAR CORRECTION):
- If no grammatical mistakes are found (or compilation is deemed successful by you): respond with "No grammatical mistakes found. Compilation completed successfully." and immediately thereafter provide the entire corrected model as a single Markdown code block (` + "```plaintext" + `). No other explanations are needed.
- If grammatical mistakes are detected:
  - First, provide the entire corrected model as a single Markdown code block (` + "```plaintext" + `). This is the highest priority.
  - Immediately after the code block, briefly explain the errors that needed correction, their reasons, and the ID(s) of the grammar example(s) and grammar rule(s) that you referred to (e.g. "Referenced Grammar Example ID: 5, Referenced Grammar Rule ID: LTS_3"). If multiple examples or rules apply, list all relevant IDs. If no specific example or rule was directly referenced, state "No specific reference". Use a bulleted list for each error.
  - If there are multiple errors, list all errors and provide corrections for each.`

const errorInstruction = "The compiler provides the line number where it encountered an issue and explains the nature of the error. Please use this error message, along with the provided grammatical syntax error examples, to identify and correct the error in the model. For each correction, please indicate the ID of the grammatical example (from the 'grammar_correction_examples' list) that you referred to, if applicable."

// Library holds the parsed per-phase template data.
type Library struct {
	spell   map[string]any
	grammar map[string]any
}

// Load reads both phase templates. Files in dir override the embedded
// defaults; an empty dir uses the defaults only. Templates are
// externally supplied structured documents, so a template that exists
// but does not parse is a hard startup error.
func Load(dir string) (*Library, error) {
	spell, err := loadTemplate(dir, spellTemplateFile)
	if err != nil {
		return nil, err
	}
	grammar, err := loadTemplate(dir, grammarTemplateFile)
	if err != nil {
		return nil, err
	}
	return &Library{spell: spell, grammar: grammar}, nil
}

func loadTemplate(dir, name string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	if dir != "" {
		raw, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading prompt template %s: %w", name, err)
		}
	}
	if raw == nil {
		raw, err = defaultTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded template %s: %w", name, err)
		}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing prompt template %s: %w", name, err)
	}
	return data, nil
}

// BuildSpell returns the system and user prompts for the spelling
// phase: the template pretty-printed, followed by the model text.
func (l *Library) BuildSpell(modelText string) (system, user string, err error) {
	encoded, err := json.MarshalIndent(l.spell, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encoding spell template: %w", err)
	}

	user = string(encoded) +
		"\n\nHere is the model to be checked for spelling errors:\n\n" +
		modelText
	return spellSystemPrompt, user, nil
}

// BuildGrammar returns the system and user prompts for one grammar
// turn. The live correction context (error instruction, compiler
// message, model text) is merged into the template before encoding.
func (l *Library) BuildGrammar(modelText, compileError string) (system, user string, err error) {
	data := make(map[string]any, len(l.grammar)+1)
	for k, v := range l.grammar {
		data[k] = v
	}

	correctionCtx := map[string]any{}
	if existing, ok := data["current_correction_context"].(map[string]any); ok {
		for k, v := range existing {
			correctionCtx[k] = v
		}
	}
	correctionCtx["error_instruction"] = errorInstruction
	correctionCtx["compilation_error_message"] = compileError
	correctionCtx["model_to_correct"] = modelText
	data["current_correction_context"] = correctionCtx

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encoding grammar template: %w", err)
	}
	return grammarSystemPrompt, string(encoded), nil
}
