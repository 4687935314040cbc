package hostapp

import (
	"os/exec"
)

// commandRunner abstracts the OS commands used for process lookup and
// control so tests can substitute a fake.
type commandRunner interface {
	// LookPath reports whether name resolves on PATH.
	LookPath(name string) (string, error)

	// Output runs a command and returns its stdout.
	Output(name string, args ...string) ([]byte, error)

	// Run runs a command and waits for it to exit.
	Run(name string, args ...string) error

	// StartDetached launches a command without waiting for it.
	StartDetached(name string, args ...string) error
}

// execRunner is the production commandRunner backed by os/exec.
type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (execRunner) StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Let the child outlive us; we never wait on it.
	return cmd.Process.Release()
}
