// Package tips supplies the dashboard's productivity tip and the suggested
// task texts offered on the add form.
package tips

import "math/rand"

var Productivity = []string{
	"Focus on one task at a time for better results",
	"Take regular breaks to maintain productivity",
	"Set realistic deadlines for your goals",
	"Celebrate small wins to stay motivated",
	"Use the Pomodoro technique for deep focus",
	"Prioritize tasks by importance, not urgency",
	"Break large tasks into smaller, manageable steps",
}

var Suggestions = []string{
	"Review and update your resume",
	"Practice coding algorithms",
	"Read a technical article",
	"Work on side project",
	"Learn a new framework",
}

// Picker chooses entries at random. The zero value is not usable; use New.
type Picker struct {
	intn func(n int) int
}

// New returns a Picker drawing from src. A nil src uses the global source.
func New(src rand.Source) *Picker {
	if src == nil {
		return &Picker{intn: rand.Intn}
	}
	return &Picker{intn: rand.New(src).Intn}
}

func (p *Picker) Tip() string {
	return p.pick(Productivity)
}

func (p *Picker) Suggestion() string {
	return p.pick(Suggestions)
}

func (p *Picker) pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[p.intn(len(items))]
}
