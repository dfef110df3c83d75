package system

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/lock"
	"github.com/julianstephens/tasklit/internal/storage"
)

func fixedNow() time.Time {
	return time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)
}

func TestDoctorCmd_Healthy(t *testing.T) {
	gokeyring.MockInit()
	path := filepath.Join(t.TempDir(), "tasklit.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Location: time.UTC, Now: fixedNow, Stdout: &out}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Storage reachable: OK", "✓ Schema version: OK", "✓ Credential table: OK", "All checks passed."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_UnreachableSkipsDependentChecks(t *testing.T) {
	gokeyring.MockInit()
	path := filepath.Join(t.TempDir(), "missing.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Location: time.UTC, Now: fixedNow, Stdout: &out}
	err = (&DoctorCmd{}).Run(ctx)
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("doctor error = %v, want %v", err, ErrChecksFailed)
	}
	if !strings.Contains(out.String(), "❌ Storage reachable: FAIL") {
		t.Errorf("output missing storage failure:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "⊘ Schema version: SKIPPED") {
		t.Errorf("schema check should be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_LockIsWarningOnly(t *testing.T) {
	gokeyring.MockInit()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "tasklit.json"))
	if err := os.WriteFile(lock.Path(dir), []byte("1|tasklit"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Location: time.UTC, Now: fixedNow, Stdout: &out}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "⚠ Instance lock: WARNING") {
		t.Errorf("output missing lock warning:\n%s", out.String())
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx := &cli.Context{Location: time.UTC, Now: func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }}
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected error for a clock in 1999")
	}
	ctx = &cli.Context{Now: fixedNow}
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected error without a timezone")
	}
}
