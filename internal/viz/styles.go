package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// styles derives the panel styles from a theme.
type styles struct {
	panel   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	muted   lipgloss.Style
	keyHint lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	graph   lipgloss.Style
	theme   Theme
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		keyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		ok:      lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		err:     lipgloss.NewStyle().Foreground(t.Error),
		graph:   lipgloss.NewStyle().Foreground(t.Secondary),
		theme:   t,
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex()))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// RatioBar renders a slider position in [0, 1].
func RatioBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// Swatch renders a block in color c.
func Swatch(c colorful.Color, width int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render(strings.Repeat("█", width))
}

// Separator is a themed horizontal rule.
func (s styles) Separator(width int) string {
	return s.muted.Render(strings.Repeat("─", max(width, 0)))
}
