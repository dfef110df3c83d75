// Package session owns the state of one user session and is the single entry
// point for intents coming from a presentation layer.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tasklit/internal/credentials"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/tasks"
	"github.com/julianstephens/tasklit/internal/utils"
)

var (
	ErrMismatch        = errors.New("passwords do not match")
	ErrEmptyInput      = errors.New("required field is empty")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrEditUnsupported = errors.New("editing tasks is not supported yet")
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged in"
	default:
		return "logged out"
	}
}

// Dashboard is the overview snapshot shown after login.
type Dashboard struct {
	User           string
	Date           string
	TotalTasks     int
	CompletedTasks int
	CompletionRate int
	StreakDays     int
	Today          []models.Task
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLocation sets the timezone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		c.loc = loc
	}
}

// WithSampleData controls whether a new session starts with the sample tasks.
func WithSampleData(enabled bool) Option {
	return func(c *Controller) {
		c.sampleData = enabled
	}
}

// Controller is not safe for concurrent use.
type Controller struct {
	creds      *credentials.Store
	now        func() time.Time
	loc        *time.Location
	sampleData bool

	state     State
	user      string
	sessionID string
	streak    int
	filter    tasks.Filter
	tasks     *tasks.Store
}

func New(creds *credentials.Store, opts ...Option) *Controller {
	c := &Controller{
		creds:      creds,
		now:        time.Now,
		loc:        time.Local,
		sampleData: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tasks = tasks.New(tasks.WithClock(c.now))
	return c
}

// SubmitLogin verifies the pair and starts a fresh session. A failed attempt
// leaves the controller logged out.
func (c *Controller) SubmitLogin(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyInput
	}
	if err := c.creds.Verify(username, password); err != nil {
		logger.Info("Login rejected", "user", username)
		return err
	}

	c.reset()
	c.state = LoggedIn
	c.user = username
	c.sessionID = uuid.New().String()
	if c.sampleData {
		c.tasks.Reset(tasks.SampleTasks(c.now()))
	}
	logger.Info("Session started", "user", username, "session", c.sessionID)
	return nil
}

// Logout ends the session. Tasks and streak are not kept.
func (c *Controller) Logout() {
	if c.state == LoggedIn {
		logger.Info("Session ended", "user", c.user, "session", c.sessionID)
	}
	c.reset()
}

func (c *Controller) reset() {
	c.state = LoggedOut
	c.user = ""
	c.sessionID = ""
	c.streak = 0
	c.filter = tasks.Filter{}
	c.tasks = tasks.New(tasks.WithClock(c.now))
}

// SubmitRegister creates an account. It does not log the new user in.
func (c *Controller) SubmitRegister(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyInput
	}
	if password != confirm {
		return ErrMismatch
	}
	if err := c.creds.Register(username, password); err != nil {
		return err
	}
	logger.Info("User registered", "user", username)
	return nil
}

// ChangePassword replaces the current user's password. The old password is
// not asked for.
func (c *Controller) ChangePassword(newPassword, confirm string) error {
	if c.state != LoggedIn {
		return ErrNotLoggedIn
	}
	if newPassword == "" || confirm == "" {
		return ErrEmptyInput
	}
	if newPassword != confirm {
		return ErrMismatch
	}
	if err := c.creds.ChangePassword(c.user, newPassword); err != nil {
		return err
	}
	logger.Info("Password changed", "user", c.user, "session", c.sessionID)
	return nil
}

func (c *Controller) AddTask(text string, priority models.Priority, category models.Category, dueDate string) (models.Task, error) {
	if c.state != LoggedIn {
		return models.Task{}, ErrNotLoggedIn
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, ErrEmptyInput
	}
	candidate := models.Task{Text: text, Priority: priority, Category: category, DueDate: dueDate}
	if err := candidate.Validate(); err != nil {
		return models.Task{}, err
	}
	task := c.tasks.Add(text, priority, category, dueDate)
	logger.Debug("Task added", "session", c.sessionID, "id", task.ID)
	return task, nil
}

// ToggleTask flips completion and feeds the transition to the streak counter.
func (c *Controller) ToggleTask(id int64) (bool, error) {
	if c.state != LoggedIn {
		return false, ErrNotLoggedIn
	}
	task, err := c.tasks.Get(id)
	if err != nil {
		return false, err
	}
	completed, err := c.tasks.ToggleComplete(id)
	if err != nil {
		return false, err
	}
	c.OnTaskCompleted(task.Completed, completed)
	logger.Debug("Task toggled", "session", c.sessionID, "id", id, "completed", completed)
	return completed, nil
}

// OnTaskCompleted increments the streak only on an incomplete to complete
// transition. The streak never goes down.
func (c *Controller) OnTaskCompleted(wasCompleted, isCompleted bool) {
	if !wasCompleted && isCompleted {
		c.streak++
	}
}

func (c *Controller) DeleteTask(id int64) error {
	if c.state != LoggedIn {
		return ErrNotLoggedIn
	}
	if err := c.tasks.Delete(id); err != nil {
		return err
	}
	logger.Debug("Task deleted", "session", c.sessionID, "id", id)
	return nil
}

// ReorderTask moves id in front of targetID, or to the end for tasks.End.
func (c *Controller) ReorderTask(id, targetID int64) error {
	if c.state != LoggedIn {
		return ErrNotLoggedIn
	}
	return c.tasks.Reorder(id, targetID)
}

// SetFilter replaces the active filter. Unknown category or priority names
// are rejected so a typo does not silently hide every task.
func (c *Controller) SetFilter(search, category, priority string) error {
	if c.state != LoggedIn {
		return ErrNotLoggedIn
	}
	f := tasks.Filter{Search: search, Category: category, Priority: priority}
	if !isAll(category) {
		cat, err := models.ParseCategory(category)
		if err != nil {
			return err
		}
		f.Category = string(cat)
	}
	if !isAll(priority) {
		p, err := models.ParsePriority(priority)
		if err != nil {
			return err
		}
		f.Priority = string(p)
	}
	c.filter = f
	return nil
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// EditTask is a placeholder for in-place editing.
func (c *Controller) EditTask(id int64) error {
	if c.state != LoggedIn {
		return ErrNotLoggedIn
	}
	if _, err := c.tasks.Get(id); err != nil {
		return err
	}
	return fmt.Errorf("%w: task %d", ErrEditUnsupported, id)
}

func (c *Controller) State() State         { return c.state }
func (c *Controller) CurrentUser() string  { return c.user }
func (c *Controller) SessionID() string    { return c.sessionID }
func (c *Controller) Streak() int          { return c.streak }
func (c *Controller) Filter() tasks.Filter { return c.filter }

// Today is the current calendar date in the session's location.
func (c *Controller) Today() string {
	return utils.DateString(c.now(), c.loc)
}

// Now is the session clock in the session's location.
func (c *Controller) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Controller) Tasks() []models.Task          { return c.tasks.All() }
func (c *Controller) FilteredTasks() []models.Task  { return c.tasks.Filtered(c.filter) }
func (c *Controller) TodayTasks() []models.Task     { return c.tasks.DueToday(c.Today()) }
func (c *Controller) CompletedTasks() []models.Task { return c.tasks.Completed() }
func (c *Controller) Stats() tasks.Stats            { return c.tasks.Stats() }

func (c *Controller) Dashboard() Dashboard {
	st := c.tasks.Stats()
	return Dashboard{
		User:           c.user,
		Date:           c.Today(),
		TotalTasks:     st.Total,
		CompletedTasks: st.Completed,
		CompletionRate: st.CompletionRate,
		StreakDays:     c.streak,
		Today:          c.TodayTasks(),
	}
}
