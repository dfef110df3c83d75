package lock

import (
	"errors"
	"os"
	"testing"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPID := findProcessFunc, currentPID
	t.Cleanup(func() {
		findProcessFunc = oldFind
		currentPID = oldPID
	})
	currentPID = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		if exe, ok := running[pid]; ok {
			return &mockProcess{pid: pid, executable: exe}, nil
		}
		return nil, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "tasklit"})

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "100|tasklit" {
		t.Errorf("lockfile content = %q, want %q", content, "100|tasklit")
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile should be removed after Release")
	}
}

func TestAcquireHeldByRunningProcess(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("200|tasklit"), 0600); err != nil {
		t.Fatal(err)
	}
	stubProcesses(t, 100, map[int]string{200: "tasklit"})

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() = %v, want %v", err, ErrLocked)
	}
}

func TestAcquireHeldByThisProcess(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "tasklit"})

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("second Acquire() = %v, want %v", err, ErrLocked)
	}

	if err := l.Release(); err != nil {
		t.Fatal(err)
	}
	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() after Release failed: %v", err)
	}
	_ = again.Release()
}

func TestAcquireTakesOverStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"owner exited", "200|tasklit", nil},
		{"pid reused by other program", "200|tasklit", map[int]string{200: "bash"}},
		{"malformed", "garbage", nil},
		{"bad pid", "abc|tasklit", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			stubProcesses(t, 100, tt.running)

			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() failed: %v", err)
			}
			if l.pid != 100 {
				t.Errorf("lock pid = %d, want 100", l.pid)
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, nil)

	l, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte("300|tasklit"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("Release must not remove a lock owned by another process")
	}

	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release() = %v", err)
	}
}
