package process

// Notes:
// - KillProcessGroup: only an invalid PID is used; signalling real process
//   groups from a unit test could hit the test runner itself.
// - Isolate: exercised end to end by pipeline.ExecRunner tests.

import (
	"os/exec"
	"testing"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Must not panic for a PID that does not exist.
	KillProcessGroup(999999999)
}

func TestIsolate_SetsCancel(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	Isolate(cmd)

	if cmd.Cancel == nil {
		t.Fatal("Isolate() did not set cmd.Cancel")
	}

	// Not started yet: cancel is a no-op.
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() before start = %v, want nil", err)
	}
}
