// Package dictation turns speech into input text by running an external
// speech-to-text program that prints recognized phrases on stdout, one per line.
package dictation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"bizpilot/config"
	"bizpilot/model"
)

var (
	ErrNotConfigured    = errors.New("dictation is not configured (set [dictation] command in config.toml)")
	ErrAlreadyListening = errors.New("dictation is already listening")
)

var _ model.Dictation = (*Command)(nil)

// stopGrace bounds how long StopListening waits for the program to exit.
const stopGrace = 2 * time.Second

// Command implements model.Dictation on top of an external program.
type Command struct {
	argv []string

	mu        sync.Mutex
	lines     []string
	listening bool
	cancel    context.CancelFunc
	done      chan struct{}
	err       error
}

// NewCommand parses command into program and arguments. Arguments are split on
// whitespace; wrap anything more elaborate in a script.
func NewCommand(command string) *Command {
	return &Command{argv: strings.Fields(command)}
}

// Available reports whether a program is configured.
func (c *Command) Available() bool {
	return len(c.argv) > 0
}

// StartListening launches the program and clears the previous transcript.
func (c *Command) StartListening(ctx context.Context) error {
	if !c.Available() {
		return ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listening {
		return ErrAlreadyListening
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open dictation output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start %s: %w", c.argv[0], err)
	}

	c.lines = nil
	c.err = nil
	c.listening = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done

	config.DebugLog.Infof("[Dictation] started %s (pid %d)", c.argv[0], cmd.Process.Pid)

	go func() {
		defer close(done)

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			c.mu.Lock()
			c.lines = append(c.lines, line)
			c.mu.Unlock()
		}

		waitErr := cmd.Wait()

		c.mu.Lock()
		defer c.mu.Unlock()
		c.listening = false
		if waitErr != nil && ctx.Err() == nil {
			c.err = fmt.Errorf("%s exited: %w", c.argv[0], waitErr)
			config.DebugLog.Warnf("[Dictation] %v", c.err)
		}
		cancel()
	}()

	return nil
}

// StopListening terminates the program. The transcript gathered so far is kept.
func (c *Command) StopListening() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
	case <-time.After(stopGrace):
		return fmt.Errorf("%s did not exit within %s", c.argv[0], stopGrace)
	}
	config.DebugLog.Infof("[Dictation] stopped")
	return nil
}

// Transcript returns everything recognized since StartListening, lines joined
// by single spaces.
func (c *Command) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, " ")
}

func (c *Command) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Err returns why the program last exited on its own, if it failed.
func (c *Command) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Done is closed when the current run ends. Nil before the first start.
func (c *Command) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
