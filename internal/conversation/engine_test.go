package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/promptcraft/internal/script"
)

const twoStepScript = `{
  "intro": ["hello", "describe it"],
  "overview": ["nice"],
  "steps": [
    {
      "id": "first",
      "title": "Step 1: First",
      "parameter_label": "First",
      "pre_messages": ["Step 1: First", "pick one"],
      "choices": [
        {"id": "x", "letter": "A", "label": "Ex"},
        {"id": "y", "letter": "B", "label": "Why"}
      ],
      "confirmations": {"x": ["got x"], "y": ["got y", "really y"]},
      "default_confirmation": ["got something"],
      "references": [{"title": "Docs", "url": "https://example.com/docs"}]
    },
    {
      "id": "second",
      "title": "Step 2: Second",
      "parameter_label": "Second",
      "pre_messages": ["Step 2: Second"],
      "choices": [
        {"id": "p", "letter": "A", "label": "Pea"},
        {"id": "q", "letter": "B", "label": "Queue"}
      ],
      "confirmations": {"p": ["got p"]},
      "default_confirmation": ["noted"],
      "references": []
    }
  ],
  "closing": ["all done", "here it is:"],
  "final_prompt": "THE PROMPT",
  "generation_notice": "Calling Firefly API...",
  "preview_text": "preview",
  "adjust_prompt": "adjust?",
  "knowledge_points": [{"step": "First", "points": ["one"]}]
}`

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, raw string) *Engine {
	t.Helper()
	sc := script.Default()
	if raw != "" {
		var err error
		sc, err = script.Load([]byte(raw))
		require.NoError(t, err)
	}
	return NewEngine(sc, &IDSequence{}, func() time.Time { return fixedNow })
}

// apply plays a response into state the way the controller does.
func apply(s *State, r Response) {
	s.Apply(r.Delta)
	s.Messages = append(s.Messages, r.Messages...)
}

type shape struct {
	Type    MessageType
	Sender  Sender
	Content string
}

func shapes(msgs []Message) []shape {
	out := make([]shape, len(msgs))
	for i, m := range msgs {
		out[i] = shape{Type: m.Type, Sender: m.Sender, Content: m.Content}
	}
	return out
}

func started(t *testing.T, e *Engine) State {
	t.Helper()
	s := NewState(e.Script().StepCount())
	apply(&s, e.Start())
	return s
}

func TestStart(t *testing.T) {
	e := newTestEngine(t, "")
	r := e.Start()

	require.Len(t, r.Messages, 2)
	for _, m := range r.Messages {
		assert.Equal(t, TypeText, m.Type)
		assert.True(t, m.IsAI())
	}
	require.NotNil(t, r.Delta.Phase)
	assert.Equal(t, PhaseIntro, *r.Delta.Phase)
	assert.Equal(t, 0, *r.Delta.CurrentStepIndex)
	assert.Equal(t, 5, *r.Delta.TotalSteps)
}

func TestSubmitIdea_OpensFirstStep(t *testing.T) {
	e := newTestEngine(t, "")
	s := started(t, e)

	r, err := e.SubmitIdea(s, "a dog running on a beach")
	require.NoError(t, err)

	// echo + 3 overview + 3 pre-messages + reference + choice
	require.Len(t, r.Messages, 9)
	assert.Equal(t, shape{TypeText, SenderUser, "a dog running on a beach"}, shapes(r.Messages)[0])
	assert.Equal(t, "Step 1: Subject & Drift Details", r.Messages[4].Content)
	assert.Equal(t, TypeReference, r.Messages[7].Type)
	assert.Len(t, r.Messages[7].References, 3)

	choice := r.Messages[8]
	assert.Equal(t, TypeChoice, choice.Type)
	require.NotNil(t, choice.Choices)
	assert.Equal(t, "subject_detail", choice.Choices.StepID)
	assert.Len(t, choice.Choices.Options, 4)

	assert.Equal(t, PhaseExploring, *r.Delta.Phase)
	assert.Equal(t, "a dog running on a beach", *r.Delta.UserIdea)
	assert.Equal(t, 0, *r.Delta.CurrentStepIndex)
}

func TestSubmitIdea_Rejects(t *testing.T) {
	e := newTestEngine(t, "")
	s := started(t, e)

	_, err := e.SubmitIdea(s, "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyInput)

	idle := NewState(5)
	_, err = e.SubmitIdea(idle, "idea")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	var pe *PhaseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PhaseIdle, pe.Phase)
}

func TestSubmitChoice_RecordsAndAdvances(t *testing.T) {
	e := newTestEngine(t, "")
	s := started(t, e)
	r, err := e.SubmitIdea(s, "cars")
	require.NoError(t, err)
	apply(&s, r)

	r, err = e.SubmitChoice(s, script.ChoiceOption{ID: "street_car"})
	require.NoError(t, err)

	got := shapes(r.Messages[:2])
	want := []shape{
		{TypeText, SenderUser, "A，Modified street racing car (cinematic style)"},
		{TypeText, SenderAI, "Noted your preference: modified street racing car + cinematic drifting + realistic physics."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leading messages mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, *r.Delta.CurrentStepIndex)
	assert.Equal(t, PhaseExploring, *r.Delta.Phase)
	assert.Equal(t, "A. Modified street racing car (cinematic style)", r.Delta.Selections["subject_detail"])

	last := r.Messages[len(r.Messages)-1]
	require.Equal(t, TypeChoice, last.Type)
	assert.Equal(t, "camera_language", last.Choices.StepID)
}

func TestSubmitChoice_StaleOption(t *testing.T) {
	e := newTestEngine(t, "")
	s := started(t, e)
	r, err := e.SubmitIdea(s, "cars")
	require.NoError(t, err)
	apply(&s, r)

	// An option from step 2 while step 1 is current.
	_, err = e.SubmitChoice(s, script.ChoiceOption{ID: "smooth", Letter: "A", Label: "whatever"})
	require.ErrorIs(t, err, ErrStaleSelection)

	var se *StaleSelectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "subject_detail", se.StepID)
	assert.Equal(t, "smooth", se.OptionID)
}

func TestSubmitChoice_UsesScriptLabel(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	r, err := e.SubmitIdea(s, "idea")
	require.NoError(t, err)
	apply(&s, r)

	r, err = e.SubmitChoice(s, script.ChoiceOption{ID: "y", Letter: "Z", Label: "forged"})
	require.NoError(t, err)
	assert.Equal(t, "B，Why", r.Messages[0].Content)
	assert.Equal(t, "B. Why", r.Delta.Selections["first"])
	assert.Equal(t, "got y", r.Messages[1].Content)
	assert.Equal(t, "really y", r.Messages[2].Content)
}

func TestSubmitChoice_FallbackConfirmation(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	for _, step := range []func() (Response, error){
		func() (Response, error) { return e.SubmitIdea(s, "idea") },
		func() (Response, error) { return e.SubmitChoice(s, script.ChoiceOption{ID: "x"}) },
	} {
		r, err := step()
		require.NoError(t, err)
		apply(&s, r)
	}

	// q has no confirmation entry.
	r, err := e.SubmitChoice(s, script.ChoiceOption{ID: "q"})
	require.NoError(t, err)
	assert.Equal(t, "B，Queue", r.Messages[0].Content)
	assert.Equal(t, "noted", r.Messages[1].Content)
}

func TestSubmitFreeText_RecordsVerbatim(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	r, err := e.SubmitIdea(s, "idea")
	require.NoError(t, err)
	apply(&s, r)

	r, err = e.SubmitFreeText(s, "  something bespoke ")
	require.NoError(t, err)
	assert.Equal(t, "  something bespoke ", r.Messages[0].Content)
	assert.Equal(t, SenderUser, r.Messages[0].Sender)
	assert.Equal(t, "got something", r.Messages[1].Content)
	assert.Equal(t, "  something bespoke ", r.Delta.Selections["first"])

	_, err = e.SubmitFreeText(s, "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestFinalize_Sequence(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	r, err := e.SubmitIdea(s, "idea")
	require.NoError(t, err)
	apply(&s, r)
	r, err = e.SubmitChoice(s, script.ChoiceOption{ID: "x"})
	require.NoError(t, err)
	apply(&s, r)

	r, err = e.SubmitChoice(s, script.ChoiceOption{ID: "p"})
	require.NoError(t, err)

	want := []shape{
		{TypeText, SenderUser, "A，Pea"},
		{TypeText, SenderAI, "got p"},
		{TypeText, SenderAI, "all done"},
		{TypeText, SenderAI, "here it is:"},
		{TypePromptResult, SenderAI, "here it is:"},
		{TypeLearnerCard, SenderAI, ""},
		{TypeText, SenderAI, "Calling Firefly API..."},
		{TypeVideoPreview, SenderAI, "preview"},
		{TypeText, SenderAI, "adjust?"},
	}
	if diff := cmp.Diff(want, shapes(r.Messages)); diff != "" {
		t.Fatalf("final sequence mismatch (-want +got):\n%s", diff)
	}

	result := r.Messages[4].PromptResult
	require.NotNil(t, result)
	assert.Equal(t, "THE PROMPT", result.Prompt)
	assert.Equal(t, map[string]string{"first": "A. Ex", "second": "A. Pea"}, result.Parameters)
	assert.Len(t, r.Messages[5].LearnerCard, 1)

	assert.Equal(t, PhaseComplete, *r.Delta.Phase)
	assert.Equal(t, 2, *r.Delta.CurrentStepIndex)

	apply(&s, r)
	_, ok := s.ActiveChoiceID()
	assert.False(t, ok, "no choice is actionable once complete")

	_, err = e.SubmitChoice(s, script.ChoiceOption{ID: "p"})
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestFinalize_MissingSelections(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	r, err := e.SubmitIdea(s, "idea")
	require.NoError(t, err)
	apply(&s, r)

	// Jump to the last step without a selection for the first.
	s.CurrentStepIndex = 1
	_, err = e.SubmitChoice(s, script.ChoiceOption{ID: "p"})
	require.ErrorIs(t, err, ErrIncompleteSelections)

	var ie *IncompleteSelectionsError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, []string{"first"}, ie.Missing)
}

func TestFullWalk_DefaultScript(t *testing.T) {
	e := newTestEngine(t, "")
	s := started(t, e)
	r, err := e.SubmitIdea(s, "a rally car drifting")
	require.NoError(t, err)
	apply(&s, r)

	for i, st := range e.Script().Steps() {
		require.Equal(t, i, s.CurrentStepIndex)
		r, err = e.SubmitChoice(s, st.Choices[0])
		require.NoError(t, err, "step %s", st.ID)
		apply(&s, r)
	}

	assert.Equal(t, PhaseComplete, s.Phase)
	assert.Equal(t, 5, s.CurrentStepIndex)
	assert.Len(t, s.Selections, 5)

	seen := make(map[string]bool, len(s.Messages))
	for _, m := range s.Messages {
		assert.False(t, seen[m.ID], "duplicate message ID %s", m.ID)
		seen[m.ID] = true
	}
}

func TestEngineDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t, twoStepScript)
	s := started(t, e)
	r, err := e.SubmitIdea(s, "idea")
	require.NoError(t, err)
	apply(&s, r)

	before := s.Clone()
	_, err = e.SubmitChoice(s, script.ChoiceOption{ID: "x"})
	require.NoError(t, err)

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("state mutated (-before +after):\n%s", diff)
	}
}
