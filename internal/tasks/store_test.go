package tasks

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/julianstephens/tasklit/internal/models"
)

var fixedNow = time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAdd(t *testing.T) {
	s := newTestStore()

	task := s.Add("Write report", models.PriorityHigh, models.CategoryWork, "2025-10-30")
	if task.ID != 1 {
		t.Errorf("first ID = %d, want 1", task.ID)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if !task.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, fixedNow)
	}

	second := s.Add("Go running", models.PriorityLow, models.CategoryHealth, "")
	if second.ID == task.ID {
		t.Error("ids must be unique")
	}
	if got := ids(s.All()); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("All() ids = %v, want insertion order [1 2]", got)
	}
}

func TestAddDeleteKeepsIDsUnique(t *testing.T) {
	s := newTestStore()
	r := rand.New(rand.NewSource(42))

	adds, deletes := 0, 0
	for i := 0; i < 500; i++ {
		if r.Intn(3) == 0 && s.Len() > 0 {
			all := s.All()
			victim := all[r.Intn(len(all))].ID
			if err := s.Delete(victim); err != nil {
				t.Fatalf("Delete(%d) failed: %v", victim, err)
			}
			deletes++
		} else if r.Intn(5) == 0 {
			if err := s.Delete(int64(10_000 + i)); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Delete(unknown) error = %v, want %v", err, ErrNotFound)
			}
		} else {
			s.Add("task", models.PriorityMedium, models.CategoryPersonal, "")
			adds++
		}

		seen := map[int64]bool{}
		for _, task := range s.All() {
			if seen[task.ID] {
				t.Fatalf("duplicate id %d after %d steps", task.ID, i)
			}
			seen[task.ID] = true
		}
	}

	if s.Len() != adds-deletes {
		t.Errorf("Len() = %d, want %d", s.Len(), adds-deletes)
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s := newTestStore()
	a := s.Add("a", models.PriorityLow, models.CategoryWork, "")
	if err := s.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	b := s.Add("b", models.PriorityLow, models.CategoryWork, "")
	if b.ID == a.ID {
		t.Errorf("id %d reused after delete", a.ID)
	}
}

func TestToggleComplete(t *testing.T) {
	s := newTestStore()
	task := s.Add("a", models.PriorityLow, models.CategoryWork, "")

	got, err := s.ToggleComplete(task.ID)
	if err != nil || !got {
		t.Fatalf("ToggleComplete() = %v, %v; want true, nil", got, err)
	}
	got, err = s.ToggleComplete(task.ID)
	if err != nil || got {
		t.Fatalf("second ToggleComplete() = %v, %v; want false, nil", got, err)
	}
	stored, _ := s.Get(task.ID)
	if stored.Completed != task.Completed {
		t.Error("toggling twice should restore the original value")
	}

	if _, err := s.ToggleComplete(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleComplete(99) error = %v, want %v", err, ErrNotFound)
	}
}

func TestReorder(t *testing.T) {
	setup := func() *Store {
		s := newTestStore()
		for _, text := range []string{"a", "b", "c", "d"} {
			s.Add(text, models.PriorityLow, models.CategoryWork, "")
		}
		return s
	}

	tests := []struct {
		name     string
		id       int64
		beforeID int64
		want     []int64
	}{
		{"move last to front", 4, 1, []int64{4, 1, 2, 3}},
		{"move first to end", 1, End, []int64{2, 3, 4, 1}},
		{"move down one", 2, 4, []int64{1, 3, 2, 4}},
		{"move up", 3, 2, []int64{1, 3, 2, 4}},
		{"already in place", 1, 2, []int64{1, 2, 3, 4}},
		{"onto itself", 2, 2, []int64{1, 2, 3, 4}},
		{"last to end", 4, End, []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setup()
			before, _ := s.Get(tt.id)
			if err := s.Reorder(tt.id, tt.beforeID); err != nil {
				t.Fatalf("Reorder() failed: %v", err)
			}
			if got := ids(s.All()); !equalIDs(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
			after, _ := s.Get(tt.id)
			if after != before {
				t.Errorf("Reorder changed task fields: %+v -> %+v", before, after)
			}
		})
	}

	t.Run("unknown ids", func(t *testing.T) {
		s := setup()
		if err := s.Reorder(9, 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("Reorder(9, 1) error = %v, want %v", err, ErrNotFound)
		}
		if err := s.Reorder(1, 9); !errors.Is(err, ErrNotFound) {
			t.Errorf("Reorder(1, 9) error = %v, want %v", err, ErrNotFound)
		}
		if got := ids(s.All()); !equalIDs(got, []int64{1, 2, 3, 4}) {
			t.Errorf("failed Reorder changed order to %v", got)
		}
	})
}

func TestFiltered(t *testing.T) {
	s := newTestStore()
	s.Reset(SampleTasks(fixedNow))
	s.Add("Morning RUN", models.PriorityHigh, models.CategoryHealth, "")

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"identity", Filter{Category: "all", Priority: "all"}, []int64{1, 2, 3, 4}},
		{"zero value is identity", Filter{}, []int64{1, 2, 3, 4}},
		{"search is case-insensitive", Filter{Search: "run", Category: "all", Priority: "all"}, []int64{4}},
		{"search substring", Filter{Search: "LEARN"}, []int64{2}},
		{"category", Filter{Category: "learning", Priority: "all"}, []int64{2, 3}},
		{"priority", Filter{Category: "all", Priority: "high"}, []int64{1, 4}},
		{"combined", Filter{Search: "e", Category: "learning", Priority: "low"}, []int64{3}},
		{"no match", Filter{Search: "zzz"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(s.Filtered(tt.filter)); !equalIDs(got, tt.want) {
				t.Errorf("Filtered(%+v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestDueToday(t *testing.T) {
	s := newTestStore()
	s.Add("first", models.PriorityHigh, models.CategoryWork, "2025-10-30")
	s.Add("second", models.PriorityMedium, models.CategoryLearning, "2025-11-05")
	s.Add("third", models.PriorityLow, models.CategoryLearning, "2025-10-25")

	got := s.DueToday("2025-10-30")
	if len(got) != 1 || got[0].Text != "first" {
		t.Errorf("DueToday() = %+v, want only the first task", got)
	}

	if got := s.DueToday("2025-12-01"); len(got) != 0 {
		t.Errorf("DueToday() with nothing due = %d tasks, want 0", len(got))
	}
}

func TestDueTodayCapsAtFive(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 7; i++ {
		s.Add("due", models.PriorityLow, models.CategoryWork, "2025-10-30")
	}
	got := s.DueToday("2025-10-30")
	if !equalIDs(ids(got), []int64{1, 2, 3, 4, 5}) {
		t.Errorf("DueToday() ids = %v, want first five in store order", ids(got))
	}
}

func TestStats(t *testing.T) {
	s := newTestStore()
	if st := s.Stats(); st != (Stats{}) {
		t.Errorf("Stats() on empty store = %+v, want zero", st)
	}

	tests := []struct {
		total, completed, want int
	}{
		{1, 1, 100},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13}, // 12.5 rounds half-up
		{8, 3, 38}, // 37.5 rounds half-up
		{4, 0, 0},
	}

	for _, tt := range tests {
		s := newTestStore()
		for i := 0; i < tt.total; i++ {
			task := s.Add("t", models.PriorityLow, models.CategoryWork, "")
			if i < tt.completed {
				if _, err := s.ToggleComplete(task.ID); err != nil {
					t.Fatal(err)
				}
			}
		}
		st := s.Stats()
		if st.Total != tt.total || st.Completed != tt.completed || st.CompletionRate != tt.want {
			t.Errorf("Stats() with %d/%d = %+v, want rate %d", tt.completed, tt.total, st, tt.want)
		}
		if st.CompletionRate < 0 || st.CompletionRate > 100 {
			t.Errorf("CompletionRate %d out of range", st.CompletionRate)
		}
	}
}

func TestCompleted(t *testing.T) {
	s := newTestStore()
	s.Reset(SampleTasks(fixedNow))
	got := s.Completed()
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Completed() = %v, want [3]", ids(got))
	}
}

func TestResetAdvancesIDs(t *testing.T) {
	s := newTestStore()
	s.Reset(SampleTasks(fixedNow))
	task := s.Add("new", models.PriorityLow, models.CategoryWork, "")
	if task.ID != 4 {
		t.Errorf("ID after Reset(sample) = %d, want 4", task.ID)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if next := s.Add("again", models.PriorityLow, models.CategoryWork, ""); next.ID <= task.ID {
		t.Errorf("ID after Clear = %d, want > %d", next.ID, task.ID)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.Add("a", models.PriorityLow, models.CategoryWork, "")
	all := s.All()
	all[0].Text = "mutated"
	if got, _ := s.Get(1); got.Text != "a" {
		t.Error("All() must not expose internal storage")
	}
}
