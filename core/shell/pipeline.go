package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

const (
	// StatusNotFound is the reserved status for a program that could not be
	// located or loaded.
	StatusNotFound = 127

	// signalBase + signal number is the status reported for a child killed
	// by a signal.
	signalBase = 128
)

// ErrEmptyPipeline is reported when a pipeline with zero stages reaches the
// orchestrator. It is a structural error, detected before any process is
// spawned.
var ErrEmptyPipeline = errors.New("pipeline has no stages")

// RunPipeline turns N stages into N child processes connected by N-1 pipes
// and waits for all of them. The returned status is that of the last stage:
// its exit code on a normal exit, 128+signal if a signal killed it. Earlier
// stages' failures are absorbed.
//
// The error return is reserved for structural failures (no stages, pipe or
// spawn exhaustion); children spawned before such a failure are still awaited
// so none are left as zombies.
func (d *Dispatcher) RunPipeline(stages Pipeline) (int, error) {
	if len(stages) == 0 {
		return 0, ErrEmptyPipeline
	}

	var (
		cmds         []*exec.Cmd
		prevR, prevW *os.File
		spawnErr     error
	)

	for i, stage := range stages {
		last := i == len(stages)-1

		var curR, curW *os.File
		if !last {
			var err error
			curR, curW, err = os.Pipe()
			if err != nil {
				spawnErr = fmt.Errorf("pipe: %w", err)
				break
			}
		}

		c := d.appletCmd(stage)
		var stdinR *os.File
		if i == 0 {
			var err error
			stdinR, err = wireStdin(c, d.Stdin)
			if err != nil {
				if curR != nil {
					curR.Close()
					curW.Close()
				}
				spawnErr = fmt.Errorf("pipe: %w", err)
				break
			}
		} else {
			c.Stdin = prevR
		}
		if last {
			c.Stdout = d.Stdout
		} else {
			c.Stdout = curW
		}
		c.Stderr = d.Stderr

		err := c.Start()

		// The pump pipe's read end now lives on only in the child.
		if stdinR != nil {
			stdinR.Close()
		}

		// The previous pipe now lives on only in the children; dropping the
		// orchestrator's copies right away is what lets downstream readers
		// see EOF once their upstream writer exits.
		if prevR != nil {
			prevR.Close()
			prevW.Close()
			prevR, prevW = nil, nil
		}

		if err != nil {
			if curR != nil {
				curR.Close()
				curW.Close()
			}
			spawnErr = fmt.Errorf("spawn %s: %w", stage.Prog, err)
			break
		}

		cmds = append(cmds, c)
		prevR, prevW = curR, curW
	}

	// Holds only when a spawn failed mid-pipeline; nothing reads these ends
	// anymore so writers upstream will see EPIPE and exit.
	if prevR != nil {
		prevR.Close()
		prevW.Close()
	}

	status := 0
	for i, c := range cmds {
		st := waitStatus(c.Wait())
		if i == len(cmds)-1 {
			status = st
		}
	}

	if spawnErr != nil {
		return 0, spawnErr
	}
	return status, nil
}

// wireStdin connects the dispatcher's stdin to the first stage. A real file
// is handed to the child directly. Any other stream is pumped through a pipe
// by a goroutine that Wait never joins; handing the stream to exec.Cmd
// directly would make Wait block on the stream's next read even after every
// child has exited. Once the child is gone the pump's next write fails with
// a broken pipe and it stops. The returned read end must be closed by the
// caller once the child has started.
func wireStdin(c *exec.Cmd, stdin io.Reader) (*os.File, error) {
	if stdin == nil {
		return nil, nil
	}
	if f, ok := stdin.(*os.File); ok {
		c.Stdin = f
		return nil, nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	c.Stdin = r
	go func() {
		io.Copy(w, stdin)
		w.Close()
	}()
	return r, nil
}

// appletCmd builds the re-exec command for one pipeline stage. Redirections
// travel to the child as arguments so they are applied there, after the pipe
// wiring, never in the shell's own process.
func (d *Dispatcher) appletCmd(stage SimpleCommand) *exec.Cmd {
	argv := append([]string(nil), d.SelfExec...)
	for _, r := range stage.Redirs {
		argv = append(argv, "--redirect", MarshalRedirection(r))
	}
	argv = append(argv, "--")
	argv = append(argv, stage.Prog)
	argv = append(argv, stage.Args...)

	c := exec.Command(argv[0], argv[1:]...)
	c.Env = d.Env // nil inherits the shell's environment unmodified
	return c
}

// waitStatus maps an exec.Cmd Wait error to a shell status.
func waitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if ws.Signaled() {
				return signalBase + int(ws.Signal())
			}
			return ws.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return 1
}
