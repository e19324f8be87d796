package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#7C3AED")
	dimColor    = lipgloss.Color("#6B7280")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	captionStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// View renders the current frame inside a bordered panel, or the
// generating placeholder when no frame has arrived yet.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.last == nil {
		body = m.generatingView()
	} else {
		caption := captionStyle.Render(truncate(m.last.Prompt, m.conv.Width()))
		body = m.last.Art + "\n" + caption
	}

	panel := panelStyle.Render(body)
	hintText := "q: wake up · space: pause"
	if m.paused {
		hintText = "paused · space: resume"
	}
	hint := hintStyle.Render(hintText)

	out := lipgloss.JoinVertical(lipgloss.Left, panel, hint)
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
	}
	return out
}

// generatingView is shown before the first frame arrives.
func (m Model) generatingView() string {
	msg := fmt.Sprintf("%s dreaming up the first frame…", m.spin.View())
	sub := captionStyle.Render("the backend may take a while to warm up")
	return titleStyle.Render("ascii-dream") + "\n\n" + msg + "\n" + sub
}

// Goodbye is the message printed after the session ends and the
// alternate screen has been restored.
func Goodbye() string {
	return titleStyle.Render("sweet dreams") + hintStyle.Render("  — thanks for drifting by\n")
}

// Startup describes the session before the first prefill. Printed on the
// plain screen so it survives in scrollback.
func Startup(journey, movement string, frames int, width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ascii-dream"))
	b.WriteString(hintStyle.Render(fmt.Sprintf("  %s journey, %dx%d", journey, width, height)))
	if frames > 1 {
		b.WriteString(hintStyle.Render(fmt.Sprintf(", cycling %d frames with %s", frames, movement)))
	}
	b.WriteString("\n")
	b.WriteString(captionStyle.Render("warming up the dream engine — the first frame can take a minute"))
	b.WriteString("\n")
	return b.String()
}

// truncate clips s to max runes, appending an ellipsis when clipped.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
