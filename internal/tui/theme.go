package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#3B7A3B")
	Cyan        = lipgloss.Color("#00D4AA")
	Amber       = lipgloss.Color("#FFD700")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	White       = lipgloss.Color("#e0e0e0")
	Red         = lipgloss.Color("#FF4136")

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Section headings in help output and forms
	LabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(Cyan).
				Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(White)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(MidGray)

	// Boxes
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber).
			Foreground(Amber).
			Bold(true).
			Padding(0, 1)

	// Status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(Green)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGreen)
)
