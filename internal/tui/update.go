package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklit/internal/constants"
	tlerrors "github.com/julianstephens/tasklit/internal/errors"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd
		}
		return m, nil

	case clockTickMsg:
		if m.sess.State() == session.LoggedIn {
			m.refresh()
		}
		return m, clockTick()

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	switch m.state {
	case StateLogin, StateRegister, StateAddTask, StateChangePassword:
		return m.updateForm(msg)
	case StateSearch:
		return m.updateSearch(msg)
	}

	if handled, cmd := m.handleTaskMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case m.state == StateOverview && key.Matches(msg, m.keys.NewTip):
			m.overview.SetTip(m.tips.Tip())
			return m, nil
		case m.state == StateSettings && key.Matches(msg, m.keys.ChangePassword):
			return m, m.startChangePassword()
		case m.state == StateSettings && key.Matches(msg, m.keys.Logout):
			return m.logout()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateOverview:
		m.overview, cmd = m.overview.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateCompleted:
		m.completedList, cmd = m.completedList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchForm) && m.state == StateLogin:
			return m, m.startRegister()
		case key.Matches(msg, m.keys.SwitchForm) && m.state == StateRegister:
			return m, m.startLogin()
		case key.Matches(msg, m.keys.Back):
			return m.cancelForm()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		return m.cancelForm()
	}
	return m, cmd
}

func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		m.quitting = true
		return m, tea.Quit
	case StateRegister:
		return m, m.startLogin()
	}
	m.form = nil
	m.state = m.previousState
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		fm := m.loginForm
		if err := m.sess.SubmitLogin(fm.Username, fm.Password); err != nil {
			return m, tea.Batch(m.startLogin(), m.notify(tlerrors.NoticeFor(tlerrors.FormLogin, err)))
		}
		m.enterDashboard()
		return m, m.notify(fmt.Sprintf(constants.FeedbackWelcomeFormat, m.sess.CurrentUser()))

	case StateRegister:
		fm := m.registerForm
		if err := m.sess.SubmitRegister(fm.Username, fm.Password, fm.Confirm); err != nil {
			return m, tea.Batch(m.startRegister(), m.notify(tlerrors.Notice(err)))
		}
		return m, tea.Batch(m.startLogin(), m.notify(constants.FeedbackRegistered))

	case StateAddTask:
		fm := m.taskForm
		task, err := m.sess.AddTask(fm.Text, fm.Priority, fm.Category, strings.TrimSpace(fm.DueDate))
		if err != nil {
			return m, tea.Batch(m.openTaskForm(), m.notify(tlerrors.NoticeFor(tlerrors.FormTask, err)))
		}
		m.form = nil
		m.state = StateTasks
		m.refresh()
		m.taskList.Select(task.ID)
		return m, m.notify(constants.FeedbackTaskAdded)

	case StateChangePassword:
		fm := m.passwordForm
		if err := m.sess.ChangePassword(fm.Password, fm.Confirm); err != nil {
			state := m.previousState
			cmd := m.startChangePassword()
			m.previousState = state
			return m, tea.Batch(cmd, m.notify(tlerrors.Notice(err)))
		}
		m.form = nil
		m.state = m.previousState
		return m, m.notify(constants.FeedbackPasswordUpdated)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Apply):
			f := m.sess.Filter()
			var cmd tea.Cmd
			if err := m.sess.SetFilter(strings.TrimSpace(m.search.Value()), f.Category, f.Priority); err != nil {
				cmd = m.notify(tlerrors.Notice(err))
			}
			m.search.Blur()
			m.state = StateTasks
			m.refresh()
			return m, cmd
		case key.Matches(msg, m.keys.Back):
			m.search.Blur()
			m.state = StateTasks
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.sess.Logout()
	m.help.ShowAll = false
	return m, tea.Batch(m.startLogin(), m.notify(constants.FeedbackLoggedOut))
}

// handleTaskMessages applies the intents emitted by the task lists.
func (m *Model) handleTaskMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		return true, m.startAddTask("")

	case tasklist.SuggestTaskMsg:
		cmd := m.startAddTask(m.tips.Suggestion())
		return true, tea.Batch(cmd, m.notify(constants.FeedbackSuggested))

	case tasklist.SearchMsg:
		m.search.SetValue(m.sess.Filter().Search)
		m.search.CursorEnd()
		m.state = StateSearch
		return true, m.search.Focus()

	case tasklist.CycleCategoryMsg:
		f := m.sess.Filter()
		return true, m.applyFilter(f.Search, nextOption(categoryCycle, f.Category), f.Priority)

	case tasklist.CyclePriorityMsg:
		f := m.sess.Filter()
		return true, m.applyFilter(f.Search, f.Category, nextOption(priorityCycle, f.Priority))

	case tasklist.ToggleTaskMsg:
		completed, err := m.sess.ToggleTask(msg.ID)
		if err != nil {
			return true, m.notify(tlerrors.Notice(err))
		}
		m.refresh()
		m.taskList.Select(msg.ID)
		if completed {
			return true, m.notify(constants.FeedbackTaskCompleted)
		}
		return true, nil

	case tasklist.DeleteTaskMsg:
		if err := m.sess.DeleteTask(msg.ID); err != nil {
			return true, m.notify(tlerrors.Notice(err))
		}
		m.refresh()
		return true, m.notify(constants.FeedbackTaskDeleted)

	case tasklist.EditTaskMsg:
		return true, m.notify(tlerrors.Notice(m.sess.EditTask(msg.ID)))

	case tasklist.MoveTaskMsg:
		target, ok := moveTarget(m.sess.Tasks(), m.sess.FilteredTasks(), msg.ID, msg.Delta)
		if !ok {
			return true, nil
		}
		if err := m.sess.ReorderTask(msg.ID, target); err != nil {
			return true, m.notify(tlerrors.Notice(err))
		}
		m.refresh()
		m.taskList.Select(msg.ID)
		return true, nil
	}
	return false, nil
}

func (m *Model) applyFilter(search, category, priority string) tea.Cmd {
	if err := m.sess.SetFilter(search, category, priority); err != nil {
		return m.notify(tlerrors.Notice(err))
	}
	m.refresh()
	return nil
}
