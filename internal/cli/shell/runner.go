package shell

import (
	"bufio"
	"fmt"
	"io"

	"github.com/julianstephens/tasklit/internal/constants"
	tlerrors "github.com/julianstephens/tasklit/internal/errors"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tips"
	"github.com/julianstephens/tasklit/internal/utils"
)

// Runner applies intents to a session and prints the outcome.
type Runner struct {
	sess   *session.Controller
	tips   *tips.Picker
	parser *Parser
	out    io.Writer
}

func NewRunner(sess *session.Controller, picker *tips.Picker, out io.Writer) *Runner {
	return &Runner{sess: sess, tips: picker, parser: NewParser(out), out: out}
}

// Run executes every line from in until EOF or quit. Intent failures are
// printed and do not stop the loop.
func (r *Runner) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		intent, err := r.parser.Parse(scanner.Text())
		if err != nil {
			r.println(tlerrors.Format(err))
			continue
		}
		if quit := r.Exec(intent); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Exec applies one intent. It reports whether the shell should stop.
func (r *Runner) Exec(in Intent) bool {
	s := r.sess
	switch in.Kind {
	case KindNone:
	case KindQuit:
		return true
	case KindHelp:
		if err := r.parser.PrintHelp(); err != nil {
			logger.Warn("Failed to print shell help", "error", err)
		}

	case KindLogin:
		// A new login would start a fresh session and drop this one's tasks.
		if s.State() == session.LoggedIn {
			r.printf("Already logged in as %s. Log out first.\n", s.CurrentUser())
			break
		}
		if err := s.SubmitLogin(in.Username, in.Password); err != nil {
			r.fail(tlerrors.FormLogin, err)
			break
		}
		r.printf(constants.FeedbackWelcomeFormat+"\n", s.CurrentUser())
	case KindRegister:
		if err := s.SubmitRegister(in.Username, in.Password, in.Confirm); err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		r.println(constants.FeedbackRegistered)
	case KindLogout:
		if s.State() != session.LoggedIn {
			r.fail(tlerrors.FormOther, session.ErrNotLoggedIn)
			break
		}
		s.Logout()
		r.println(constants.FeedbackLoggedOut)
	case KindPasswd:
		if err := s.ChangePassword(in.Password, in.Confirm); err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		r.println(constants.FeedbackPasswordUpdated)
	case KindWhoami:
		if s.State() != session.LoggedIn {
			r.println(s.State().String())
			break
		}
		r.printf("%s (session %s)\n", s.CurrentUser(), s.SessionID())

	case KindAdd:
		task, err := s.AddTask(in.Text, in.Priority, in.Category, in.DueDate)
		if err != nil {
			r.fail(tlerrors.FormTask, err)
			break
		}
		r.println(constants.FeedbackTaskAdded)
		r.printTask(task)
	case KindToggle:
		completed, err := s.ToggleTask(in.ID)
		if err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		if completed {
			r.println(constants.FeedbackTaskCompleted)
		} else {
			r.printf("Task %d marked incomplete\n", in.ID)
		}
	case KindDelete:
		if err := s.DeleteTask(in.ID); err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		r.println(constants.FeedbackTaskDeleted)
	case KindMove:
		if err := s.ReorderTask(in.ID, in.TargetID); err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		r.println(constants.FeedbackTaskMoved)
	case KindEdit:
		r.fail(tlerrors.FormOther, s.EditTask(in.ID))
	case KindFilter:
		if err := s.SetFilter(in.Search, in.CategoryFilter, in.PriorityFilter); err != nil {
			r.fail(tlerrors.FormOther, err)
			break
		}
		r.printTasks(s.FilteredTasks(), constants.FeedbackNoTasks)

	case KindList:
		if r.requireLogin() {
			r.printTasks(s.FilteredTasks(), constants.FeedbackNoTasks)
		}
	case KindToday:
		if r.requireLogin() {
			r.printTasks(s.TodayTasks(), constants.FeedbackNoneToday)
		}
	case KindDone:
		if r.requireLogin() {
			r.printTasks(s.CompletedTasks(), constants.FeedbackNoCompleted)
		}
	case KindStats:
		if r.requireLogin() {
			d := s.Dashboard()
			r.printf("Total: %d  Completed: %d  Rate: %d%%  Streak: %d\n",
				d.TotalTasks, d.CompletedTasks, d.CompletionRate, d.StreakDays)
		}
	case KindTip:
		r.println("💡 " + r.tips.Tip())
	case KindSuggest:
		r.println(constants.FeedbackSuggested)
		r.println("  " + r.tips.Suggestion())
	}
	return false
}

func (r *Runner) requireLogin() bool {
	if r.sess.State() != session.LoggedIn {
		r.fail(tlerrors.FormOther, session.ErrNotLoggedIn)
		return false
	}
	return true
}

func (r *Runner) fail(form tlerrors.Form, err error) {
	if err == nil {
		return
	}
	logger.Debug("Intent failed", "error", err)
	r.println(tlerrors.NoticeFor(form, err))
}

func (r *Runner) printTasks(list []models.Task, empty string) {
	if len(list) == 0 {
		r.println(empty)
		return
	}
	for _, t := range list {
		r.printTask(t)
	}
}

func (r *Runner) printTask(t models.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	due := ""
	if t.HasDueDate() {
		due = " (" + utils.FormatDue(t.DueDate, r.sess.Now()) + ")"
	}
	r.printf("  [%s] %3d %s %s %s%s\n", mark, t.ID, t.Priority.Emoji(), t.Category.Icon(), t.Text, due)
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}
