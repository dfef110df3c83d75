// Package overview renders the dashboard landing view: stats, completion
// progress, streak, today's tasks and a productivity tip.
package overview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/utils"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			Align(lipgloss.Center)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginTop(1)

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Model struct {
	viewport  viewport.Model
	progress  progress.Model
	dashboard session.Dashboard
	tip       string
	now       time.Time
	width     int
	height    int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		progress: progress.New(progress.WithDefaultGradient()),
		now:      time.Now(),
	}
}

func (m *Model) SetDashboard(d session.Dashboard) {
	m.dashboard = d
	m.refresh()
}

func (m *Model) SetTip(tip string) {
	m.tip = tip
	m.refresh()
}

func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	if width > 8 {
		m.progress.Width = width - 8
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.render()
	}
	return m.viewport.View()
}

func (m Model) render() string {
	d := m.dashboard

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", fmt.Sprint(d.TotalTasks)),
		card("Completed", fmt.Sprint(d.CompletedTasks)),
		card("Completion", fmt.Sprintf("%d%%", d.CompletionRate)),
		card("Streak", fmt.Sprintf("%d 🔥", d.StreakDays)),
	)

	var b strings.Builder
	b.WriteString(dateStyle.Render(utils.FormatLongDate(m.now)))
	b.WriteString("\n\n")
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(float64(d.CompletionRate) / 100))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Today's Tasks"))
	b.WriteString("\n")
	if len(d.Today) == 0 {
		b.WriteString(mutedStyle.Render("  " + constants.FeedbackNoneToday))
		b.WriteString("\n")
	}
	for _, t := range d.Today {
		check := "☐"
		if t.Completed {
			check = "☑"
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n", check, t.Priority.Emoji(), t.Category.Icon(), t.Text)
	}
	if m.tip != "" {
		b.WriteString(sectionStyle.Render("Productivity Tip"))
		b.WriteString("\n")
		b.WriteString(tipStyle.Render("  💡 " + m.tip))
		b.WriteString("\n")
	}
	return b.String()
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		cardValueStyle.Render(value),
		mutedStyle.Render(label),
	))
}
