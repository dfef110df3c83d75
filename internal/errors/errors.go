package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tasklit/internal/credentials"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tasks"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

var notices = []struct {
	target error
	text   string
}{
	{session.ErrMismatch, "Passwords do not match!"},
	{session.ErrNotLoggedIn, "Please log in first"},
	{session.ErrEditUnsupported, "Edit feature coming soon! 🔧"},
	{credentials.ErrAlreadyExists, "Username already exists!"},
	{credentials.ErrInvalidCredentials, "Invalid username or password"},
	{credentials.ErrNoRegisteredUsers, "No users registered yet"},
	{credentials.ErrNotFound, "Account not found, password unchanged"},
	{tasks.ErrNotFound, "Task not found"},
	{models.ErrEmptyText, "Please enter a task"},
	{models.ErrInvalidPriority, "Unknown priority"},
	{models.ErrInvalidCategory, "Unknown category"},
	{models.ErrInvalidDueDate, "Due date must look like YYYY-MM-DD"},
}

// Notice turns an intent error into the short message shown to the user.
// ErrEmptyInput has no fixed text because each form words it differently;
// use NoticeFor when the form matters.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, session.ErrEmptyInput) {
		return "Please fill in all fields"
	}
	for _, n := range notices {
		if stderrors.Is(err, n.target) {
			return n.text
		}
	}
	return Format(err)
}

// Form identifies the input surface an intent came from.
type Form int

const (
	FormOther Form = iota
	FormLogin
	FormTask
)

// NoticeFor is Notice with form-specific wording for empty input.
func NoticeFor(form Form, err error) string {
	if stderrors.Is(err, session.ErrEmptyInput) {
		switch form {
		case FormLogin:
			return "Please enter username and password"
		case FormTask:
			return "Please enter a task"
		}
	}
	return Notice(err)
}
