package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed script.json
var embedded []byte

// defaultScript is the embedded script, loaded and validated at init.
var defaultScript *Script

func init() {
	s, err := Load(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded script: %v", err))
	}
	defaultScript = s
}

// Script is the immutable, validated conversation content. Accessors hand
// out copies so callers cannot alter it.
type Script struct {
	doc   document
	index map[string]int
}

// Default returns the embedded script.
func Default() *Script {
	return defaultScript
}

// Load parses and validates a script document.
func Load(raw []byte) (*Script, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(doc.Steps))
	for i, st := range doc.Steps {
		index[st.ID] = i
	}
	return &Script{doc: doc, index: index}, nil
}

// Raw returns the embedded script.json bytes.
func Raw() []byte {
	out := make([]byte, len(embedded))
	copy(out, embedded)
	return out
}

// Intro returns the greeting lines shown when a conversation starts.
func (s *Script) Intro() []string {
	return cloneStrings(s.doc.Intro)
}

// Overview returns the lines that follow the user's idea.
func (s *Script) Overview() []string {
	return cloneStrings(s.doc.Overview)
}

// Closing returns the lines shown after the last step is answered.
func (s *Script) Closing() []string {
	return cloneStrings(s.doc.Closing)
}

// FinalPrompt returns the fixed generated prompt text.
func (s *Script) FinalPrompt() string {
	return s.doc.FinalPrompt
}

// GenerationNotice is the AI line announcing the simulated video generation.
func (s *Script) GenerationNotice() string {
	return s.doc.GenerationNotice
}

func (s *Script) PreviewText() string {
	return s.doc.PreviewText
}

func (s *Script) AdjustPrompt() string {
	return s.doc.AdjustPrompt
}

// KnowledgePoints returns the learner review cards.
func (s *Script) KnowledgePoints() []KnowledgePoint {
	return cloneKnowledge(s.doc.KnowledgePoints)
}

// StepCount returns the number of steps.
func (s *Script) StepCount() int {
	return len(s.doc.Steps)
}

// Step returns the step at index i.
func (s *Script) Step(i int) (Step, error) {
	if i < 0 || i >= len(s.doc.Steps) {
		return Step{}, fmt.Errorf("step index %d out of range [0, %d)", i, len(s.doc.Steps))
	}
	return s.doc.Steps[i].clone(), nil
}

// Steps returns all steps in order.
func (s *Script) Steps() []Step {
	out := make([]Step, len(s.doc.Steps))
	for i, st := range s.doc.Steps {
		out[i] = st.clone()
	}
	return out
}

// StepByID returns the step with the given ID.
func (s *Script) StepByID(id string) (Step, bool) {
	i, ok := s.index[id]
	if !ok {
		return Step{}, false
	}
	return s.doc.Steps[i].clone(), true
}

// StepIDs returns step IDs in step order.
func (s *Script) StepIDs() []string {
	ids := make([]string, len(s.doc.Steps))
	for i, st := range s.doc.Steps {
		ids[i] = st.ID
	}
	return ids
}

// ParameterLabel returns the display label for a step ID, or the ID itself
// if the step is unknown.
func (s *Script) ParameterLabel(stepID string) string {
	if i, ok := s.index[stepID]; ok {
		return s.doc.Steps[i].ParameterLabel
	}
	return stepID
}

// Choice finds the option with optionID in the step at stepIndex.
func (s *Script) Choice(stepIndex int, optionID string) (ChoiceOption, bool) {
	if stepIndex < 0 || stepIndex >= len(s.doc.Steps) {
		return ChoiceOption{}, false
	}
	for _, c := range s.doc.Steps[stepIndex].Choices {
		if c.ID == optionID {
			return c, true
		}
	}
	return ChoiceOption{}, false
}

// Confirmation returns the confirmation lines for optionID at stepIndex.
// Unknown options, and options without an explicit entry, get the step's
// default confirmation; fallback reports whether that happened.
func (s *Script) Confirmation(stepIndex int, optionID string) (lines []string, fallback bool) {
	if stepIndex < 0 || stepIndex >= len(s.doc.Steps) {
		return nil, true
	}
	st := s.doc.Steps[stepIndex]
	if c, ok := st.Confirmations[optionID]; ok {
		return cloneStrings(c), false
	}
	return cloneStrings(st.DefaultConfirmation), true
}
