package conversation

import (
	"strings"
	"time"

	"github.com/abhisek/promptcraft/internal/script"
)

// Response is the outcome of an engine operation: messages to deliver in
// order and the state changes to apply before delivery.
type Response struct {
	Messages []Message
	Delta    StateDelta
}

// Engine computes conversation responses from the script. It holds no
// conversation state; every operation reads a state snapshot passed in.
type Engine struct {
	script *script.Script
	msgs   Factory
}

// NewEngine creates an Engine over sc drawing message IDs from ids.
// A nil now defaults to time.Now.
func NewEngine(sc *script.Script, ids *IDSequence, now func() time.Time) *Engine {
	return &Engine{
		script: sc,
		msgs:   NewFactory(ids, now),
	}
}

// Script returns the script the engine reads from.
func (e *Engine) Script() *script.Script {
	return e.script
}

// Start returns the intro messages.
func (e *Engine) Start() Response {
	return Response{
		Messages: e.msgs.aiTexts(e.script.Intro()),
		Delta: StateDelta{
			Phase:            ptr(PhaseIntro),
			CurrentStepIndex: ptr(0),
			TotalSteps:       ptr(e.script.StepCount()),
		},
	}
}

// SubmitIdea echoes the user's idea, presents the overview and opens step 0.
func (e *Engine) SubmitIdea(state State, idea string) (Response, error) {
	if state.Phase != PhaseIntro {
		return Response{}, &PhaseError{Op: "submit idea", Phase: state.Phase}
	}
	if strings.TrimSpace(idea) == "" {
		return Response{}, ErrEmptyInput
	}

	msgs := []Message{e.msgs.UserText(idea)}
	msgs = append(msgs, e.msgs.aiTexts(e.script.Overview())...)
	msgs = append(msgs, e.openStep(0)...)

	return Response{
		Messages: msgs,
		Delta: StateDelta{
			Phase:            ptr(PhaseExploring),
			UserIdea:         ptr(idea),
			CurrentStepIndex: ptr(0),
		},
	}, nil
}

// SubmitChoice records a tapped option for the current step and advances.
// The option must belong to the current step; its letter and label are
// taken from the script.
func (e *Engine) SubmitChoice(state State, option script.ChoiceOption) (Response, error) {
	step, err := e.currentStep(state, "submit choice")
	if err != nil {
		return Response{}, err
	}

	canonical, ok := e.script.Choice(state.CurrentStepIndex, option.ID)
	if !ok {
		return Response{}, &StaleSelectionError{StepID: step.ID, OptionID: option.ID}
	}

	confirmation, _ := e.script.Confirmation(state.CurrentStepIndex, canonical.ID)
	return e.advance(state, step, canonical.Echo(), confirmation, canonical.Display())
}

// SubmitFreeText records typed text as the current step's answer and
// advances with the step's default confirmation.
func (e *Engine) SubmitFreeText(state State, text string) (Response, error) {
	step, err := e.currentStep(state, "submit free text")
	if err != nil {
		return Response{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Response{}, ErrEmptyInput
	}
	return e.advance(state, step, text, step.DefaultConfirmation, text)
}

func (e *Engine) currentStep(state State, op string) (script.Step, error) {
	if state.Phase != PhaseExploring {
		return script.Step{}, &PhaseError{Op: op, Phase: state.Phase}
	}
	return e.script.Step(state.CurrentStepIndex)
}

// advance records the selection for step and either opens the next step
// or finalizes when step was the last one.
func (e *Engine) advance(state State, step script.Step, echo string, confirmation []string, value string) (Response, error) {
	selections := make(map[string]string, len(state.Selections)+1)
	for k, v := range state.Selections {
		selections[k] = v
	}
	selections[step.ID] = value

	nextIndex := state.CurrentStepIndex + 1
	userMsg := e.msgs.UserText(echo)

	if nextIndex >= e.script.StepCount() {
		return e.finalize(userMsg, confirmation, selections, nextIndex)
	}

	msgs := []Message{userMsg}
	msgs = append(msgs, e.msgs.aiTexts(confirmation)...)
	msgs = append(msgs, e.openStep(nextIndex)...)

	return Response{
		Messages: msgs,
		Delta: StateDelta{
			Phase:            ptr(PhaseExploring),
			CurrentStepIndex: ptr(nextIndex),
			Selections:       selections,
		},
	}, nil
}

// finalize builds the closing sequence once every step has a selection.
func (e *Engine) finalize(userMsg Message, confirmation []string, selections map[string]string, nextIndex int) (Response, error) {
	var missing []string
	params := make(map[string]string, e.script.StepCount())
	for _, id := range e.script.StepIDs() {
		v, ok := selections[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		params[id] = v
	}
	if len(missing) > 0 {
		return Response{}, &IncompleteSelectionsError{Missing: missing}
	}

	closing := e.script.Closing()

	msgs := []Message{userMsg}
	msgs = append(msgs, e.msgs.aiTexts(confirmation)...)
	msgs = append(msgs, e.msgs.aiTexts(closing)...)

	result := e.msgs.message(TypePromptResult, SenderAI, closing[len(closing)-1])
	result.PromptResult = &PromptResult{
		Prompt:     e.script.FinalPrompt(),
		Parameters: params,
	}

	card := e.msgs.message(TypeLearnerCard, SenderAI, "")
	card.LearnerCard = e.script.KnowledgePoints()

	msgs = append(msgs,
		result,
		card,
		e.msgs.AIText(e.script.GenerationNotice()),
		e.msgs.message(TypeVideoPreview, SenderAI, e.script.PreviewText()),
		e.msgs.AIText(e.script.AdjustPrompt()),
	)

	return Response{
		Messages: msgs,
		Delta: StateDelta{
			Phase:            ptr(PhaseComplete),
			CurrentStepIndex: ptr(nextIndex),
			Selections:       selections,
		},
	}, nil
}

// openStep returns a step's pre-messages, its reference list when it has
// one, and its choice prompt.
func (e *Engine) openStep(i int) []Message {
	step, err := e.script.Step(i)
	if err != nil {
		return nil
	}

	msgs := e.msgs.aiTexts(step.PreMessages)
	if ref, ok := e.referenceMessage(step); ok {
		msgs = append(msgs, ref)
	}

	choice := e.msgs.message(TypeChoice, SenderAI, "")
	choice.Choices = &ChoicePrompt{StepID: step.ID, Options: step.Choices}
	return append(msgs, choice)
}

func (e *Engine) referenceMessage(step script.Step) (Message, bool) {
	if len(step.References) == 0 {
		return Message{}, false
	}
	m := e.msgs.message(TypeReference, SenderAI, "")
	m.References = step.References
	return m, true
}
