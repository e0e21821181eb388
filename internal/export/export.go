// Package export renders conversation payloads as plain text for the
// cards and replay commands.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/script"
)

// ShareTitle heads the shared learner-card text.
const ShareTitle = "Knowledge Review Cards"

// LearnerCards formats knowledge cards as numbered blocks separated by a
// blank line, each point on its own bulleted line.
func LearnerCards(cards []script.KnowledgePoint) string {
	blocks := make([]string, 0, len(cards))
	for i, c := range cards {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s", i+1, c.Step)
		for _, p := range c.Points {
			b.WriteString("\n   • ")
			b.WriteString(p)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// ShareLearnerCards is LearnerCards prefixed with the share title.
func ShareLearnerCards(cards []script.KnowledgePoint) string {
	return ShareTitle + "\n\n" + LearnerCards(cards)
}

// PromptResult formats the generated prompt and the selections in step
// order, labelled with each step's parameter label.
func PromptResult(sc *script.Script, pr conversation.PromptResult) string {
	var b strings.Builder
	b.WriteString("Generated Prompt\n")
	b.WriteString(pr.Prompt)
	b.WriteString("\n\nYour Selections")
	for _, id := range orderedKeys(sc, pr.Parameters) {
		fmt.Fprintf(&b, "\n  %s: %s", sc.ParameterLabel(id), pr.Parameters[id])
	}
	return b.String()
}

// orderedKeys returns the script's step IDs present in params followed by
// any unknown keys sorted by name.
func orderedKeys(sc *script.Script, params map[string]string) []string {
	keys := make([]string, 0, len(params))
	known := make(map[string]bool, len(params))
	for _, id := range sc.StepIDs() {
		if _, ok := params[id]; ok {
			keys = append(keys, id)
			known[id] = true
		}
	}
	var extra []string
	for k := range params {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

// Transcript renders a message log one entry per block.
func Transcript(sc *script.Script, msgs []conversation.Message) string {
	blocks := make([]string, 0, len(msgs))
	for _, m := range msgs {
		blocks = append(blocks, transcriptEntry(sc, m))
	}
	return strings.Join(blocks, "\n\n")
}

func transcriptEntry(sc *script.Script, m conversation.Message) string {
	who := "Assistant"
	if !m.IsAI() {
		who = "You"
	}

	switch m.Type {
	case conversation.TypeChoice:
		var b strings.Builder
		b.WriteString(who + " [choices]")
		if m.Choices != nil {
			for _, o := range m.Choices.Options {
				b.WriteString("\n  " + o.Display())
			}
		}
		return b.String()
	case conversation.TypeReference:
		var b strings.Builder
		b.WriteString(who + " [references]")
		for _, r := range m.References {
			fmt.Fprintf(&b, "\n  - %s <%s>", r.Title, r.URL)
		}
		return b.String()
	case conversation.TypePromptResult:
		out := who + ": " + m.Content
		if m.PromptResult != nil {
			out += "\n" + indent(PromptResult(sc, *m.PromptResult))
		}
		return out
	case conversation.TypeLearnerCard:
		return who + " [" + ShareTitle + "]\n" + indent(LearnerCards(m.LearnerCard))
	case conversation.TypeVideoPreview:
		return who + " [video preview]: " + m.Content
	default:
		return who + ": " + m.Content
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}
