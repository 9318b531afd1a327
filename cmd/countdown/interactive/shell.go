// Package interactive provides the interactive command-line interface
// for the countdown command.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/countdown/countdown-go/pkg/countdown"
)

// Shell handles interactive mode for the countdown command.
type Shell struct {
	timer *countdown.Timer
	rl    *readline.Instance
}

// NewReadline creates the terminal line editor used by Shell. It is separate
// from New so callers can route log output through it before the timer exists.
func NewReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "countdown> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("start"),
			readline.PcItem("stop"),
			readline.PcItem("pause"),
			readline.PcItem("resume"),
			readline.PcItem("reset"),
			readline.PcItem("status"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// New creates a new interactive shell controlling timer. rl may be nil when
// only Execute is used.
func New(timer *countdown.Timer, rl *readline.Instance) *Shell {
	return &Shell{timer: timer, rl: rl}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled; cancel is called in the first two cases.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	// Closing readline unblocks a pending Readline call.
	go func() {
		<-ctx.Done()
		s.rl.Close()
	}()

	s.printHelp(s.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if s.Execute(line, s.rl.Stdout()) {
			cancel()
			return
		}
	}
}

// Execute runs one command line, writing output to w.
// Returns true if the command asks the shell to exit.
func (s *Shell) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "start", "s":
		s.cmdStart(w, args)

	case "stop":
		s.timer.Stop()
		s.printStatus(w)

	case "pause", "p":
		s.cmdPause(w)

	case "resume", "r":
		s.cmdResume(w)

	case "reset":
		s.timer.Reset()
		s.printStatus(w)

	case "status", "st":
		s.printStatus(w)

	case "quit", "exit", "q":
		s.timer.Stop()
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Countdown Commands:
  Control:
    start <duration>   - Start (or restart) counting down, e.g. start 90, start 1m30s
    stop               - Stop counting, keep remaining time
    pause              - Pause a running countdown
    resume             - Resume a paused countdown
    reset              - Stop and restore the last started duration

  General:
    status             - Show timer state and remaining time
    help               - Show this help
    quit               - Stop the timer and exit`)
}

func (s *Shell) cmdStart(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: start <duration>")
		return
	}

	seconds, err := countdown.ParseDuration(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if err := s.timer.Start(seconds); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	s.printStatus(w)
}

func (s *Shell) cmdPause(w io.Writer) {
	if !s.timer.IsTimerRunning() {
		fmt.Fprintln(w, "Timer is not running")
		return
	}
	s.timer.Pause()
	s.printStatus(w)
}

func (s *Shell) cmdResume(w io.Writer) {
	if !s.timer.IsPaused() {
		fmt.Fprintln(w, "Timer is not paused")
		return
	}
	s.timer.Resume()
	s.printStatus(w)
}

func (s *Shell) printStatus(w io.Writer) {
	remaining := s.timer.RemainingTime()
	state := s.timer.State()

	fmt.Fprintf(w, "%-7s %s", state, countdown.FormatSeconds(remaining))
	if state == countdown.StateIdle && remaining == 0 && s.timer.Duration() > 0 {
		fmt.Fprint(w, " (done)")
	}
	fmt.Fprintln(w)
}
