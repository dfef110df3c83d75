package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

const (
	defaultPriority = models.PriorityMedium
	defaultCategory = models.CategoryWork
)

type LoginFormModel struct {
	Username string
	Password string
}

type RegisterFormModel struct {
	Username string
	Password string
	Confirm  string
}

type TaskFormModel struct {
	Text     string
	Priority models.Priority
	Category models.Category
	DueDate  string
}

type PasswordFormModel struct {
	Password string
	Confirm  string
}

func newLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
		).Title("Login").Description("ctrl+n to create an account"),
	).WithShowHelp(false)
}

func newRegisterForm(fm *RegisterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Confirm),
		).Title("Register").Description("ctrl+n to go back to login"),
	).WithShowHelp(false)
}

func newTaskForm(fm *TaskFormModel) *huh.Form {
	priorities := make([]huh.Option[models.Priority], len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = huh.NewOption(fmt.Sprintf("%s %s", p.Emoji(), p), p)
	}
	categories := make([]huh.Option[models.Category], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(fmt.Sprintf("%s %s", c.Icon(), c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("Add a new task...").
				Value(&fm.Text),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&fm.Priority),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD, optional)").
				Value(&fm.DueDate).
				Validate(validateDueDate),
		).Title("New Task"),
	).WithShowHelp(false)
}

func newPasswordForm(fm *PasswordFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Confirm),
		).Title("Change Password"),
	).WithShowHelp(false)
}

func validateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return models.ErrInvalidDueDate
	}
	return nil
}
