package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/utils"
)

type AddTaskMsg struct{}

type SuggestTaskMsg struct{}

type SearchMsg struct{}

type CycleCategoryMsg struct{}

type CyclePriorityMsg struct{}

type ToggleTaskMsg struct {
	ID int64
}

type DeleteTaskMsg struct {
	ID int64
}

type EditTaskMsg struct {
	ID int64
}

// MoveTaskMsg asks for the task to be moved one position; Delta is -1 or +1.
type MoveTaskMsg struct {
	ID    int64
	Delta int
}

type Item struct {
	Task models.Task
	Now  time.Time
}

func (i Item) Title() string {
	check := "☐"
	if i.Task.Completed {
		check = "☑"
	}
	title := fmt.Sprintf("%s %s %s", check, i.Task.Priority.Emoji(), i.Task.Text)
	if i.Task.Completed {
		return lipgloss.NewStyle().Strikethrough(true).Render(title)
	}
	return title
}

func (i Item) Description() string {
	parts := []string{categoryLabel(i.Task.Category), string(i.Task.Priority)}
	if i.Task.HasDueDate() {
		parts = append(parts, "due "+utils.FormatDue(i.Task.DueDate, i.Now))
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Task.Text }

func categoryLabel(c models.Category) string {
	style, ok := models.CategoryInfo[c]
	if !ok {
		return string(c)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.Color)).
		Render(style.Icon + " " + string(c))
}

type KeyMap struct {
	Add      key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Search   key.Binding
	Category key.Binding
	Priority key.Binding
	Suggest  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category filter"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority filter"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suggest"),
		),
	}
}

// CompletedKeyMap is the reduced set used by the completed-tasks view.
func CompletedKeyMap() KeyMap {
	k := DefaultKeyMap()
	for _, b := range []*key.Binding{&k.Add, &k.Edit, &k.MoveUp, &k.MoveDown, &k.Search, &k.Category, &k.Priority, &k.Suggest} {
		b.SetEnabled(false)
	}
	k.Toggle.SetHelp("space", "mark incomplete")
	return k
}

func (k KeyMap) bindings() []key.Binding {
	var out []key.Binding
	for _, b := range []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.MoveUp, k.MoveDown, k.Search, k.Category, k.Priority, k.Suggest} {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

func New(keys KeyMap, empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return keys.bindings()
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return keys.bindings()
	}

	return Model{list: l, keys: keys, empty: empty}
}

func (m *Model) SetTasks(tasks []models.Task, now time.Time) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, Now: now}
	}
	m.list.SetItems(items)
}

// Select moves the cursor to the task with id, if it is listed.
func (m *Model) Select(id int64) {
	for i, it := range m.list.Items() {
		if item, ok := it.(Item); ok && item.Task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// Selected returns the highlighted task.
func (m Model) Selected() (models.Task, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item.Task, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		selected, hasSelection := m.Selected()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, emit(AddTaskMsg{})
		case key.Matches(msg, m.keys.Suggest):
			return m, emit(SuggestTaskMsg{})
		case key.Matches(msg, m.keys.Search):
			return m, emit(SearchMsg{})
		case key.Matches(msg, m.keys.Category):
			return m, emit(CycleCategoryMsg{})
		case key.Matches(msg, m.keys.Priority):
			return m, emit(CyclePriorityMsg{})
		case !hasSelection:
		case key.Matches(msg, m.keys.Toggle):
			return m, emit(ToggleTaskMsg{ID: selected.ID})
		case key.Matches(msg, m.keys.Edit):
			return m, emit(EditTaskMsg{ID: selected.ID})
		case key.Matches(msg, m.keys.Delete):
			return m, emit(DeleteTaskMsg{ID: selected.ID})
		case key.Matches(msg, m.keys.MoveUp):
			return m, emit(MoveTaskMsg{ID: selected.ID, Delta: -1})
		case key.Matches(msg, m.keys.MoveDown):
			return m, emit(MoveTaskMsg{ID: selected.ID, Delta: 1})
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
