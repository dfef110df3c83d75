package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLogin, StateRegister:
		return m.viewAuth()
	}

	var content string
	switch m.state {
	case StateOverview:
		content = m.overview.View()
	case StateTasks:
		content = m.viewTasks()
	case StateCompleted:
		content = docStyle.Render(m.completedList.View())
	case StateSettings:
		content = m.viewSettings()
	case StateAddTask, StateChangePassword:
		content = docStyle.Render(m.form.View())
	case StateSearch:
		content = docStyle.Render(m.search.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		content,
		m.viewToast(),
		m.help.View(m),
	)
}

func (m Model) viewAuth() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("✅ "+constants.AppName),
		m.form.View(),
		m.viewToast(),
		m.help.View(m),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("✅ "+constants.AppName),
		userStyle.Render("👤 "+m.sess.CurrentUser()),
		mutedStyle.Render(utils.FormatLongDate(m.sess.Now())),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if i == int(StateCompleted) {
			title = fmt.Sprintf("%s (%d)", title, len(m.sess.CompletedTasks()))
		}
		active := m.state == SessionState(i) ||
			(m.state == StateSearch && SessionState(i) == StateTasks) ||
			(!m.state.isTab() && m.state != StateSearch && m.previousState == SessionState(i))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		filterStyle.Render(filterLabel(m.sess.Filter())),
		docStyle.Render(m.taskList.View()),
	)
}

func (m Model) viewSettings() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Username:  %s\n", m.sess.CurrentUser())
	fmt.Fprintf(&b, "Session:   %s\n", m.sess.SessionID())
	fmt.Fprintf(&b, "Timezone:  %s\n", m.sess.Now().Location())
	fmt.Fprintf(&b, "Streak:    %d days\n\n", m.sess.Streak())
	b.WriteString(mutedStyle.Render("[p] change password   [L] log out"))
	return docStyle.Render(b.String())
}

func (m Model) viewToast() string {
	if m.toast == "" {
		return ""
	}
	return toastStyle.Render(m.toast)
}
