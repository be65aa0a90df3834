package speech

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/sergiopachon/birdie/internal/logging"
)

// CommandNarrator drives an external TTS binary. Each Speak spawns one
// process; Stop kills whatever process is still running. Process exit
// is reaped in the background and is not reported back to callers,
// matching the fire-and-forget narration contract.
type CommandNarrator struct {
	mu      sync.Mutex
	command string
	current *exec.Cmd
	log     logging.Logger
}

// NewCommandNarrator creates a narrator around the given TTS command.
// When command is empty a per-platform default is used.
func NewCommandNarrator(command string, log logging.Logger) *CommandNarrator {
	if command == "" {
		command = defaultCommand()
	}
	return &CommandNarrator{command: command, log: log}
}

// defaultCommand picks the conventional TTS binary for the platform.
func defaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "say"
	default:
		return "espeak-ng"
	}
}

// Speak starts the TTS process for the given text. A previous utterance
// still running is stopped first so at most one process speaks at a time.
func (c *CommandNarrator) Speak(text, lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	cmd := buildCommand(c.command, text, lang)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("narration command %q failed to start: %w", c.command, err)
	}
	c.current = cmd
	c.log.Debug("narrator: speaking", "command", c.command, "lang", lang, "chars", len(text))

	// Reap the process so it doesn't linger as a zombie.
	go func() {
		_ = cmd.Wait()
		c.mu.Lock()
		if c.current == cmd {
			c.current = nil
		}
		c.mu.Unlock()
	}()
	return nil
}

// Stop kills the in-flight narration process, if any.
func (c *CommandNarrator) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	return nil
}

func (c *CommandNarrator) stopLocked() {
	if c.current == nil || c.current.Process == nil {
		return
	}
	if err := c.current.Process.Kill(); err != nil {
		c.log.Debug("narrator: kill failed", "error", err)
	}
	c.current = nil
}

// buildCommand assembles the engine invocation. say and espeak-ng take
// language selection through different flags.
func buildCommand(command, text, lang string) *exec.Cmd {
	switch command {
	case "say":
		return exec.Command(command, text)
	default:
		if lang != "" {
			return exec.Command(command, "-v", lang, text)
		}
		return exec.Command(command, text)
	}
}
