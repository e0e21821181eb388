// Package script holds the hand-authored conversation content: intro and
// overview lines, the five questionnaire steps, closing lines, the final
// prompt and the knowledge review cards.
package script

// ChoiceOption is one mutually exclusive answer within a step.
type ChoiceOption struct {
	ID     string `json:"id"`
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

// Display returns the "<letter>. <label>" form recorded as the selection.
func (o ChoiceOption) Display() string {
	return o.Letter + ". " + o.Label
}

// Echo returns the text shown as the user's message when the option is tapped.
func (o ChoiceOption) Echo() string {
	return o.Letter + "，" + o.Label
}

// Reference is a titled link shown alongside a step.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// KnowledgePoint is one learner review card: a step name and its takeaways.
type KnowledgePoint struct {
	Step   string   `json:"step"`
	Points []string `json:"points"`
}

// Step is one stage of the questionnaire.
type Step struct {
	// ID keys the user's selection for this step.
	ID    string `json:"id"`
	Title string `json:"title"`

	// ParameterLabel names the step on the prompt-result card.
	ParameterLabel string `json:"parameter_label"`

	PreMessages         []string            `json:"pre_messages"`
	Choices             []ChoiceOption      `json:"choices"`
	Confirmations       map[string][]string `json:"confirmations"`
	DefaultConfirmation []string            `json:"default_confirmation"`
	References          []Reference         `json:"references"`
}

// document mirrors script.json.
type document struct {
	Intro            []string         `json:"intro"`
	Overview         []string         `json:"overview"`
	Steps            []Step           `json:"steps"`
	Closing          []string         `json:"closing"`
	FinalPrompt      string           `json:"final_prompt"`
	GenerationNotice string           `json:"generation_notice"`
	PreviewText      string           `json:"preview_text"`
	AdjustPrompt     string           `json:"adjust_prompt"`
	KnowledgePoints  []KnowledgePoint `json:"knowledge_points"`
}

func (s Step) clone() Step {
	out := s
	out.PreMessages = cloneStrings(s.PreMessages)
	out.Choices = append([]ChoiceOption(nil), s.Choices...)
	out.DefaultConfirmation = cloneStrings(s.DefaultConfirmation)
	out.References = append([]Reference(nil), s.References...)
	out.Confirmations = make(map[string][]string, len(s.Confirmations))
	for k, v := range s.Confirmations {
		out.Confirmations[k] = cloneStrings(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneKnowledge(in []KnowledgePoint) []KnowledgePoint {
	out := make([]KnowledgePoint, len(in))
	for i, kp := range in {
		out[i] = KnowledgePoint{Step: kp.Step, Points: cloneStrings(kp.Points)}
	}
	return out
}
