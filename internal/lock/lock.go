// Package lock keeps two interactive tasklit processes from sharing a config
// directory. The lockfile holds "<pid>|<executable>" of its owner.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/logger"
)

var ErrLocked = errors.New("another tasklit session is running")

var (
	findProcessFunc = ps.FindProcess
	currentPID      = os.Getpid
)

// held tracks lockfiles owned by this process, which the pid check alone
// would treat as stale.
var (
	heldMu sync.Mutex
	held   = map[string]bool{}
)

type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire takes the lock in configDir. A lockfile whose owner is no longer a
// running tasklit process is considered stale and replaced.
func Acquire(configDir string) (*Lock, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	l := &Lock{path: Path(configDir), pid: currentPID()}

	heldMu.Lock()
	defer heldMu.Unlock()
	if held[l.path] {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, l.pid)
	}

	for attempt := 0; attempt < 2; attempt++ {
		err := l.create()
		if err == nil {
			held[l.path] = true
			logger.Debug("Acquired instance lock", "path", l.path, "pid", l.pid)
			return l, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		owner, err := readOwner(l.path)
		if err == nil && owner != l.pid && isRunning(owner) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, owner)
		}
		logger.Warn("Removing stale instance lock", "path", l.path, "error", err)
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: could not take over lockfile %s", ErrLocked, l.path)
}

func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(f, "%d|%s", l.pid, constants.AppName)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	heldMu.Lock()
	delete(held, l.path)
	heldMu.Unlock()

	owner, err := readOwner(l.path)
	if err != nil || owner != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func readOwner(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	return pid, nil
}

func isRunning(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
