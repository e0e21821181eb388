package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/ui/components"
	"github.com/abhisek/promptcraft/internal/ui/layout"
	"github.com/abhisek/promptcraft/internal/ui/theme"
)

var spinnerFrames = []string{"●  ", " ● ", "  ●", " ● "}

func (s *ChatScreen) View(width, height int) string {
	var top, bottom []string

	if s.state.Phase == conversation.PhaseExploring {
		dots := components.NewProgressDots(s.state.CurrentStepIndex, s.state.TotalSteps)
		top = append(top, dots.View(width), "")
	}

	if s.errMsg != "" {
		bottom = append(bottom, lipgloss.NewStyle().Foreground(theme.Warning).Render("  "+s.errMsg))
	}
	bottom = append(bottom,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0))),
		"  "+s.input.View(),
	)

	logHeight := height - len(top) - len(bottom)
	log := s.renderLog(width)
	if s.state.IsTyping {
		log = append(log, s.renderTyping())
	}

	return strings.Join(append(append(top, s.window(log, logHeight)...), bottom...), "\n")
}

// window returns the visible slice of lines, pinned to the bottom and
// shifted up by the scroll offset.
func (s *ChatScreen) window(lines []string, height int) []string {
	if height <= 0 {
		return nil
	}
	end := len(lines) - s.scroll
	if end < height {
		end = min(height, len(lines))
	}
	start := max(end-height, 0)
	out := lines[start:end]
	for len(out) < height {
		out = append([]string{""}, out...)
	}
	return out
}

// renderLog renders every message and splits the result into lines.
func (s *ChatScreen) renderLog(width int) []string {
	var lines []string
	for _, m := range s.state.Messages {
		block := s.renderMessage(m, width)
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}
	return lines
}

func (s *ChatScreen) renderMessage(m conversation.Message, width int) string {
	bw := layout.BubbleWidth(width)
	switch m.Type {
	case conversation.TypeChoice:
		return s.renderChoice(m, bw)
	case conversation.TypeReference:
		return aiRow(renderReferences(m, bw))
	case conversation.TypePromptResult:
		return aiRow(s.renderPromptResult(m, bw))
	case conversation.TypeLearnerCard:
		return aiRow(s.renderLearnerCard(m, bw))
	case conversation.TypeVideoPreview:
		return aiRow(renderVideoPreview(m, bw))
	}

	if !m.IsAI() {
		bubble := theme.UserBubble.MaxWidth(bw).Render(wrap(m.Content, bw-2))
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(bubble)
	}
	return aiRow(theme.AIBubble.Render(wrap(m.Content, bw-2)))
}

func aiRow(body string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, theme.Avatar.Render("Ai"), " ", body)
}

func (s *ChatScreen) renderChoice(m conversation.Message, bw int) string {
	cl, ok := s.choices[m.ID]
	if !ok && m.Choices != nil {
		cl = components.NewChoiceList(m.Choices.Options)
	}
	id, _ := s.activeChoice()
	active := id == m.ID && s.focus == focusChoices && !s.busy()
	return lipgloss.NewStyle().PaddingLeft(5).Render(cl.View(bw, active))
}

func renderReferences(m conversation.Message, bw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render("📚 References"))
	for _, r := range m.References {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("🔗 " + r.Title))
		b.WriteString("\n   ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(r.URL))
	}
	return theme.Card.Width(bw).Render(b.String())
}

func (s *ChatScreen) renderPromptResult(m conversation.Message, bw int) string {
	var b strings.Builder
	b.WriteString(wrap(m.Content, bw-4))
	if m.PromptResult == nil {
		return theme.AIBubble.Render(b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.PrimaryLight).Render("✨ Generated Prompt"))
	b.WriteString("\n")
	b.WriteString(theme.PromptCard.Width(bw - 4).Render(wrap(m.PromptResult.Prompt, bw-6)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render("Your Selections"))

	for _, id := range s.script.StepIDs() {
		v, ok := m.PromptResult.Parameters[id]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.script.ParameterLabel(id) + ": "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(v))
	}
	return theme.Card.Width(bw).Render(b.String())
}

// renderLearnerCard renders the knowledge points as an accordion with at
// most one section expanded.
func (s *ChatScreen) renderLearnerCard(m conversation.Message, bw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render("🎓 Knowledge Review"))
	for i, kp := range m.LearnerCard {
		b.WriteString("\n")
		if i != s.cardIdx {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("▸ " + kp.Step))
			continue
		}
		b.WriteString(theme.Selected.Render("▾ " + kp.Step))
		for _, p := range kp.Points {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(wrap("  • "+p, bw-6)))
		}
	}
	return theme.Card.Width(bw).Render(b.String())
}

func renderVideoPreview(m conversation.Message, bw int) string {
	frame := lipgloss.NewStyle().
		Width(bw - 4).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Background(theme.BgDark).
		Foreground(theme.TextDim).
		Render("▶")
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Render(wrap(m.Content, bw-4))
	return theme.Card.Width(bw).Render(frame + "\n" + caption)
}

func (s *ChatScreen) renderTyping() string {
	dots := spinnerFrames[s.frame%len(spinnerFrames)]
	return aiRow(theme.AIBubble.Foreground(theme.TextDim).Render(dots))
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 10)).Render(text)
}
