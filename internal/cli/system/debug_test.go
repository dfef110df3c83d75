package system

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tasklit/internal/models"
)

func TestDebugPathsCmd(t *testing.T) {
	ctx, path, out := setupTestInit(t, "tasklit.db")
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := (&DebugPathsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug paths command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["config"] != path {
		t.Errorf("config = %q, want %q", got["config"], path)
	}
	if got["config_dir"] != filepath.Dir(path) {
		t.Errorf("config_dir = %q, want %q", got["config_dir"], filepath.Dir(path))
	}
	for _, key := range []string{"log", "lock", "backups"} {
		if got[key] == "" {
			t.Errorf("%s path missing from output", key)
		}
	}
}

func TestDebugUsersCmd(t *testing.T) {
	ctx, _, out := setupTestInit(t, "tasklit.json")
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := ctx.Store.SaveCredentials(models.Credentials{"bob": "x", "alice": "y"}); err != nil {
		t.Fatal(err)
	}

	if err := (&DebugUsersCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug users command failed: %v", err)
	}

	var got usersDump
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Count != 2 || got.Bootstrap {
		t.Errorf("dump = %+v, want 2 users, not bootstrap", got)
	}
	if len(got.Usernames) != 2 || got.Usernames[0] != "alice" {
		t.Errorf("usernames = %v, want sorted [alice bob]", got.Usernames)
	}
}

func TestDebugUsersCmd_Empty(t *testing.T) {
	ctx, _, out := setupTestInit(t, "tasklit.json")
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := (&DebugUsersCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug users command failed: %v", err)
	}

	var got usersDump
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Count != 0 || !got.Bootstrap {
		t.Errorf("dump = %+v, want bootstrap with no users", got)
	}
}
