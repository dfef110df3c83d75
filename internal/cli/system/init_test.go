package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/storage"
)

func setupTestInit(t *testing.T, name string) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	store, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	var out bytes.Buffer
	return &cli.Context{Store: store, Stdout: &out}, path, &out
}

func TestInitCmd_Success(t *testing.T) {
	for _, name := range []string{"tasklit.json", "tasklit.db"} {
		t.Run(name, func(t *testing.T) {
			ctx, path, out := setupTestInit(t, name)

			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init command failed: %v", err)
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Errorf("storage was not created at %s", path)
			}
			if !strings.Contains(out.String(), "Initialized tasklit storage") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	for _, name := range []string{"tasklit.json", "tasklit.db"} {
		t.Run(name, func(t *testing.T) {
			ctx, _, _ := setupTestInit(t, name)
			cmd := &InitCmd{}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("first init failed: %v", err)
			}
			if err := ctx.Store.SaveCredentials(models.Credentials{"bob": "pw"}); err != nil {
				t.Fatal(err)
			}
			if err := cmd.Run(ctx); err != nil {
				t.Errorf("second init failed (should be idempotent): %v", err)
			}
			creds, err := ctx.Store.LoadCredentials()
			if err != nil {
				t.Fatal(err)
			}
			if creds["bob"] != "pw" {
				t.Errorf("second init lost users: %v", creds)
			}
		})
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _, out := setupTestInit(t, "tasklit.json")
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.SaveCredentials(models.Credentials{"bob": "pw"}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing storage") {
		t.Errorf("output = %q", out.String())
	}
	creds, err := ctx.Store.LoadCredentials()
	if err != nil {
		t.Fatal(err)
	}
	if len(creds) != 0 {
		t.Errorf("credentials after force init = %v, want empty", creds)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, path, _ := setupTestInit(t, "tasklit.json")
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&InitCmd{Force: true, Source: path}).Run(ctx); err == nil {
		t.Error("expected error when source equals destination")
	}
}

func TestInitCmd_ForceRejectsNonFileBackend(t *testing.T) {
	ctx := &cli.Context{Store: storage.NewMemoryStore(), Stdout: &bytes.Buffer{}}
	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("expected --force to be rejected for the memory backend")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveCredentials(models.Credentials{"alice": "a", "bob": "b"}); err != nil {
		t.Fatal(err)
	}

	ctx, _, out := setupTestInit(t, "tasklit.db")
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	creds, err := ctx.Store.LoadCredentials()
	if err != nil {
		t.Fatal(err)
	}
	if len(creds) != 2 || creds["alice"] != "a" {
		t.Errorf("copied credentials = %v", creds)
	}
	if !strings.Contains(out.String(), "Copied 2 user(s)") {
		t.Errorf("output = %q", out.String())
	}
}
