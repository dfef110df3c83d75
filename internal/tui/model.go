package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tips"
	"github.com/julianstephens/tasklit/internal/tui/components/overview"
	"github.com/julianstephens/tasklit/internal/tui/components/tasklist"
)

type SessionState int

// Tab states come first so they can be cycled by index.
const (
	StateOverview SessionState = iota
	StateTasks
	StateCompleted
	StateSettings
	StateLogin
	StateRegister
	StateAddTask
	StateChangePassword
	StateSearch
)

var tabTitles = []string{"Overview", "Tasks", "Completed", "Settings"}

func (s SessionState) isTab() bool {
	return int(s) < len(tabTitles)
}

type clockTickMsg time.Time

type toastExpiredMsg struct {
	id int
}

type Model struct {
	sess          *session.Controller
	tips          *tips.Picker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	taskList      tasklist.Model
	completedList tasklist.Model
	overview      overview.Model
	search        textinput.Model
	form          *huh.Form
	loginForm     *LoginFormModel
	registerForm  *RegisterFormModel
	taskForm      *TaskFormModel
	passwordForm  *PasswordFormModel
	toast         string
	toastID       int
	quitting      bool
	width         int
	height        int
}

// NewModel starts at the login form. The controller may already hold a
// logged-in session, in which case the dashboard is shown instead.
func NewModel(sess *session.Controller, picker *tips.Picker) Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "🔍 "

	m := Model{
		sess:          sess,
		tips:          picker,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		taskList:      tasklist.New(tasklist.DefaultKeyMap(), constants.FeedbackNoTasks, 0, 0),
		completedList: tasklist.New(tasklist.CompletedKeyMap(), constants.FeedbackNoCompleted, 0, 0),
		overview:      overview.New(0, 0),
		search:        search,
	}

	if sess.State() == session.LoggedIn {
		m.enterDashboard()
	} else {
		m.startLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func clockTick() tea.Cmd {
	return tea.Tick(constants.ClockRefreshInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// notify shows a toast that clears itself unless replaced first.
func (m *Model) notify(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	id := m.toastID
	return tea.Tick(constants.NotificationDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) startLogin() tea.Cmd {
	m.loginForm = &LoginFormModel{}
	m.form = newLoginForm(m.loginForm)
	m.state = StateLogin
	return m.form.Init()
}

func (m *Model) startRegister() tea.Cmd {
	m.registerForm = &RegisterFormModel{}
	m.form = newRegisterForm(m.registerForm)
	m.state = StateRegister
	return m.form.Init()
}

func (m *Model) startAddTask(text string) tea.Cmd {
	m.taskForm = &TaskFormModel{
		Text:     text,
		Priority: defaultPriority,
		Category: defaultCategory,
	}
	return m.openTaskForm()
}

func (m *Model) openTaskForm() tea.Cmd {
	m.form = newTaskForm(m.taskForm)
	if m.state != StateAddTask {
		m.previousState = m.state
	}
	m.state = StateAddTask
	return m.form.Init()
}

func (m *Model) startChangePassword() tea.Cmd {
	m.passwordForm = &PasswordFormModel{}
	m.form = newPasswordForm(m.passwordForm)
	m.previousState = m.state
	m.state = StateChangePassword
	return m.form.Init()
}

func (m *Model) enterDashboard() {
	m.form = nil
	m.state = StateOverview
	m.overview.SetTip(m.tips.Tip())
	m.refresh()
}

// refresh copies the controller's current view of the task list into
// every component.
func (m *Model) refresh() {
	now := m.sess.Now()
	m.taskList.SetTasks(m.sess.FilteredTasks(), now)
	m.completedList.SetTasks(m.sess.CompletedTasks(), now)
	m.overview.SetDashboard(m.sess.Dashboard())
	m.overview.SetNow(now)
}

func (m *Model) resize() {
	// header, tabs, filter bar, toast and help
	contentHeight := m.height - 8
	if contentHeight < 0 {
		contentHeight = 0
	}
	w, h := docStyle.GetFrameSize()
	m.taskList.SetSize(m.width-w, contentHeight-h)
	m.completedList.SetSize(m.width-w, contentHeight-h)
	m.overview.SetSize(m.width, contentHeight)
	m.help.Width = m.width
	m.search.Width = m.width / 2
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateLogin, StateRegister:
		keys = []key.Binding{m.keys.SwitchForm}
	case StateAddTask, StateChangePassword:
		keys = []key.Binding{m.keys.Back}
	case StateSearch:
		keys = []key.Binding{m.keys.Apply, m.keys.Back}
	case StateOverview:
		keys = append(keys, m.keys.NewTip)
	case StateTasks:
		tk := m.taskList.Keys()
		keys = append(keys, tk.Add, tk.Toggle, tk.Delete)
	case StateCompleted:
		tk := m.completedList.Keys()
		keys = append(keys, tk.Toggle, tk.Delete)
	case StateSettings:
		keys = append(keys, m.keys.ChangePassword, m.keys.Logout)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateOverview:
		actions = []key.Binding{m.keys.NewTip}
	case StateTasks:
		tk := m.taskList.Keys()
		actions = []key.Binding{tk.Add, tk.Suggest, tk.Toggle, tk.Edit, tk.Delete, tk.MoveUp, tk.MoveDown, tk.Search, tk.Category, tk.Priority}
	case StateCompleted:
		tk := m.completedList.Keys()
		actions = []key.Binding{tk.Toggle, tk.Delete}
	case StateSettings:
		actions = []key.Binding{m.keys.ChangePassword, m.keys.Logout}
	default:
		return [][]key.Binding{m.ShortHelp()}
	}

	return [][]key.Binding{global, actions}
}
