package constants

// User feedback shown after a successful intent. Failures are worded by
// errors.Notice.
const (
	FeedbackRegistered      = "Account created successfully! Please login."
	FeedbackWelcomeFormat   = "Welcome, %s! 👋"
	FeedbackLoggedOut       = "Logged out successfully"
	FeedbackPasswordUpdated = "Password updated successfully! ✅"
	FeedbackTaskAdded       = "Task added successfully! ✅"
	FeedbackTaskCompleted   = "Task completed! 🎉"
	FeedbackTaskDeleted     = "Task deleted"
	FeedbackTaskMoved       = "Task moved"
	FeedbackSuggested       = "AI suggested a task! 🤖"
	FeedbackNoTasks         = "No tasks found. Create your first task!"
	FeedbackNoCompleted     = "No completed tasks yet"
	FeedbackNoneToday       = "No tasks due today"
)
