package export

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/script"
)

func TestLearnerCards(t *testing.T) {
	cards := []script.KnowledgePoint{
		{Step: "Camera", Points: []string{"Dolly out", "Tracking shot"}},
		{Step: "Light", Points: []string{"Golden hour"}},
	}
	want := "1. Camera\n   • Dolly out\n   • Tracking shot\n\n2. Light\n   • Golden hour"
	if diff := cmp.Diff(want, LearnerCards(cards)); diff != "" {
		t.Errorf("LearnerCards mismatch (-want +got):\n%s", diff)
	}

	share := ShareLearnerCards(cards)
	if !strings.HasPrefix(share, "Knowledge Review Cards\n\n1. Camera") {
		t.Errorf("ShareLearnerCards = %q", share)
	}
}

func TestLearnerCards_Empty(t *testing.T) {
	if got := LearnerCards(nil); got != "" {
		t.Errorf("LearnerCards(nil) = %q, want empty", got)
	}
}

func TestPromptResult_StepOrder(t *testing.T) {
	sc := script.Default()
	pr := conversation.PromptResult{
		Prompt: "P",
		Parameters: map[string]string{
			"quality_realism": "A. Cinematic",
			"subject_detail":  "B. Rally",
			"zz_extra":        "x",
		},
	}
	got := PromptResult(sc, pr)

	lines := strings.Split(got, "\n")
	want := []string{
		"Generated Prompt",
		"P",
		"",
		"Your Selections",
		"  " + sc.ParameterLabel("subject_detail") + ": B. Rally",
		"  " + sc.ParameterLabel("quality_realism") + ": A. Cinematic",
		"  zz_extra: x",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("PromptResult mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscript(t *testing.T) {
	sc := script.Default()
	var ids conversation.IDSequence
	f := conversation.NewFactory(&ids, func() time.Time { return time.Unix(0, 0) })

	choice := f.AIText("")
	choice.Type = conversation.TypeChoice
	choice.Choices = &conversation.ChoicePrompt{
		StepID:  "subject_detail",
		Options: []script.ChoiceOption{{ID: "a", Letter: "A", Label: "Alpha"}},
	}
	ref := f.AIText("")
	ref.Type = conversation.TypeReference
	ref.References = []script.Reference{{Title: "Guide", URL: "https://example.com"}}

	got := Transcript(sc, []conversation.Message{
		f.AIText("Hello"),
		f.UserText("a car"),
		choice,
		ref,
	})
	want := "Assistant: Hello\n\nYou: a car\n\nAssistant [choices]\n  A. Alpha\n\nAssistant [references]\n  - Guide <https://example.com>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transcript mismatch (-want +got):\n%s", diff)
	}
}
