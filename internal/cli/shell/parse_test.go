package shell

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/tasks"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Intent
	}{
		{"blank", "   ", Intent{Kind: KindNone}},
		{"comment", "# setup", Intent{Kind: KindNone}},
		{"login", "login alice x", Intent{Kind: KindLogin, Username: "alice", Password: "x"}},
		{"register", "register bob pw pw", Intent{Kind: KindRegister, Username: "bob", Password: "pw", Confirm: "pw"}},
		{"passwd", "passwd a b", Intent{Kind: KindPasswd, Password: "a", Confirm: "b"}},
		{"add with due", "add high work 2025-10-30 Ship the release", Intent{
			Kind: KindAdd, Priority: models.PriorityHigh, Category: models.CategoryWork,
			DueDate: "2025-10-30", Text: "Ship the release",
		}},
		{"add without due", "ADD Low Health - Stretch", Intent{
			Kind: KindAdd, Priority: models.PriorityLow, Category: models.CategoryHealth, Text: "Stretch",
		}},
		{"toggle", "toggle 3", Intent{Kind: KindToggle, ID: 3}},
		{"delete", "delete 12", Intent{Kind: KindDelete, ID: 12}},
		{"edit", "edit 1", Intent{Kind: KindEdit, ID: 1}},
		{"move before", "move 3 1", Intent{Kind: KindMove, ID: 3, TargetID: 1}},
		{"move to end", "move 1", Intent{Kind: KindMove, ID: 1, TargetID: tasks.End}},
		{"dashed password", "login alice -secret", Intent{Kind: KindLogin, Username: "alice", Password: "-secret"}},
		{"dashed text", "add low work - fix -v flag", Intent{
			Kind: KindAdd, Priority: models.PriorityLow, Category: models.CategoryWork, Text: "fix -v flag",
		}},
		{"filter", "filter - learning all", Intent{Kind: KindFilter, CategoryFilter: "learning", PriorityFilter: "all"}},
		{"filter search", "filter spring all high", Intent{Kind: KindFilter, Search: "spring", CategoryFilter: "all", PriorityFilter: "high"}},
		{"list alias", "ls", Intent{Kind: KindList}},
		{"exit", "exit", Intent{Kind: KindQuit}},
	}

	p := NewParser(io.Discard)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"login alice", ErrUsage},
		{"register a b", ErrUsage},
		{"add high work", ErrUsage},
		{"add urgent work - x", models.ErrInvalidPriority},
		{"add high chores - x", models.ErrInvalidCategory},
		{"toggle abc", ErrUsage},
		{"toggle 0", ErrUsage},
		{"move", ErrUsage},
		{"move 1 x", ErrUsage},
		{"move 1 -3", ErrUsage},
		{"stats now", ErrUsage},
		{"dance", ErrUsage},
	}
	p := NewParser(io.Discard)
	for _, tt := range tests {
		if _, err := p.Parse(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestParseReusesGrammar(t *testing.T) {
	p := NewParser(io.Discard)
	if _, err := p.Parse("move 2 1"); err != nil {
		t.Fatal(err)
	}
	got, err := p.Parse("move 3")
	if err != nil {
		t.Fatal(err)
	}
	if got.TargetID != tasks.End {
		t.Errorf("TargetID = %d, want end of list after an earlier move", got.TargetID)
	}
}

func TestPrintHelp(t *testing.T) {
	var out bytes.Buffer
	p := NewParser(&out)
	if err := p.PrintHelp(); err != nil {
		t.Fatalf("PrintHelp() failed: %v", err)
	}
	for _, want := range []string{"login", "add", "move", "filter", "Add a task."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q:\n%s", want, out.String())
		}
	}
}
