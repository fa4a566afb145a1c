package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/model/journey"
)

func (m Model) View() string {
	header := m.styles.Header.Render("Transplant Coordinator · Career Profile")

	content := m.renderContent()
	if m.snap.PanelOpen {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", m.renderPanel())
	}

	return strings.Join([]string{
		header,
		"",
		m.slider.view(m.styles),
		"",
		content,
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderContent() string {
	set := journey.For(m.Perspective())
	width := m.width - 4
	if m.snap.PanelOpen {
		width -= m.panelWidth() + 1
	}
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(set.Label))
	b.WriteString("\n")
	for i, step := range set.Steps {
		fmt.Fprintf(&b, "%s %s  %s\n", m.styles.Muted.Render(fmt.Sprintf("%02d", i+1)), m.styles.Body.Render(step.Title), m.styles.Tag.Render(step.Tag))
		b.WriteString(m.styles.Muted.Width(width - 3).MarginLeft(3).Render(step.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(set.Heading))
	b.WriteString("\n")
	for _, h := range set.Highlights {
		fmt.Fprintf(&b, "• %s: %s\n", m.styles.Body.Bold(true).Render(h.Title), h.Description)
	}
	b.WriteString(m.styles.Callout.Width(width).Render(set.Tip))
	b.WriteString("\n\n")

	if m.Perspective() == journey.Career {
		b.WriteString(m.renderSkills(width))
		b.WriteString("\n")
	}

	golden := journey.GoldenHour()
	callout := m.styles.Title.Render(golden.Title) + "\n" + golden.Body + "\n" + m.styles.Muted.Render("ctrl+o · "+golden.Action)
	b.WriteString(m.styles.Card.Width(width).Render(callout))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (m Model) renderSkills(width int) string {
	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for _, skill := range journey.Skills() {
		filled := barWidth * skill.Level / 100
		fmt.Fprintf(&b, "%-25s %s%s %3d%%\n",
			skill.Name,
			m.styles.Bar.Render(strings.Repeat("█", filled)),
			m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled)),
			skill.Level,
		)
	}
	return b.String()
}

func (m Model) renderPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.persona.Name))
	b.WriteString("\n")
	if m.persona.Title != "" {
		b.WriteString(m.styles.Muted.Render(truncate(m.persona.Title, m.panelWidth()-4)))
		b.WriteString("\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch m.snap.Status {
	case chat.StatusPending:
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Mentor is thinking..."))
	case chat.StatusErrored:
		b.WriteString(m.styles.ErrorNote.Render("last request failed"))
	default:
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())

	return m.styles.Panel.Width(m.panelWidth()).Render(b.String())
}

func (m Model) renderTranscript() string {
	if len(m.snap.Messages) == 0 {
		return ""
	}
	name := m.persona.Name
	if name == "" {
		name = "Mentor"
	}

	parts := make([]string, 0, len(m.snap.Messages))
	for _, msg := range m.snap.Messages {
		if msg.Role == chat.RoleUser {
			parts = append(parts, m.styles.UserLine.Render("You")+"\n"+msg.Text)
			continue
		}
		parts = append(parts, m.styles.Title.Render(name)+"\n"+m.renderMarkdown(msg.Text))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) renderFooter() string {
	keys := "ctrl+o chat · ctrl+t theme · ←/→ perspective · drag toggle · ctrl+c quit"
	if m.snap.PanelOpen {
		keys = "enter send · ctrl+o close chat · ctrl+t theme · ctrl+c quit"
	}
	return m.styles.Footer.Render(keys)
}

// truncate shortens s to width cells so a header line never wraps.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
