package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: dark surfaces with a red accent
var (
	Primary      = lipgloss.Color("#E03C31") // Adobe Red
	PrimaryDark  = lipgloss.Color("#C62828") // Deep Red
	PrimaryLight = lipgloss.Color("#FF6659") // Coral
	Secondary    = lipgloss.Color("#4A90D9") // Link Blue
	Success      = lipgloss.Color("#2ECC71") // Green
	Warning      = lipgloss.Color("#F39C12") // Amber
	Text         = lipgloss.Color("#FFFFFF") // White
	TextDim      = lipgloss.Color("#B3B3B3") // Light Gray
	TextFaint    = lipgloss.Color("#808080") // Gray
	BgDark       = lipgloss.Color("#1B1B1B") // Near Black
	BgCard       = lipgloss.Color("#2D2D2D") // Charcoal
	BgHighlight  = lipgloss.Color("#444444") // Graphite
	Border       = lipgloss.Color("#555555") // Slate Gray
	PromptBg     = lipgloss.Color("#1A2332") // Ink Blue
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextFaint).
		Italic(true)
)

// Chat
var (
	AIBubble = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 1)

	UserBubble = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Padding(0, 1)

	Avatar = lipgloss.NewStyle().
		Background(PrimaryDark).
		Foreground(Text).
		Bold(true).
		Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BgHighlight).
		Padding(0, 1)

	PromptCard = lipgloss.NewStyle().
			Background(PromptBg).
			Foreground(Text).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextFaint)

	LetterBadge = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	LetterBadgeActive = lipgloss.NewStyle().
				Background(Primary).
				Foreground(Text).
				Bold(true).
				Padding(0, 1)
)

// Components
var (
	DotDone = lipgloss.NewStyle().
		Foreground(PrimaryLight)

	DotActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	DotPending = lipgloss.NewStyle().
			Foreground(BgHighlight)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
