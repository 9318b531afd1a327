// Command countdown runs a whole-second countdown timer.
//
// In one-shot mode it counts down the given duration, printing the remaining
// time as it changes, and exits when the countdown completes. In interactive
// mode it opens a shell for starting, pausing, resuming, stopping, and
// resetting the timer.
//
// Usage:
//
//	countdown [flags]
//
// Flags:
//
//	-duration string    Countdown duration: seconds (90) or Go duration (1m30s)
//	-config string      Configuration file path (YAML)
//	-interactive        Run the interactive shell
//	-event-log string   Write timer events to this CBOR file (.clog)
//	-id string          Timer ID recorded in events (random if empty)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Count down 25 minutes
//	countdown -duration 25m
//
//	# Interactive shell, capturing events for countdown-log
//	countdown -interactive -event-log /tmp/timer.clog
//
//	# Settings from a file, overriding the duration
//	countdown -config countdown.yaml -duration 90
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/countdown/countdown-go/cmd/countdown/interactive"
	"github.com/countdown/countdown-go/pkg/countdown"
	"github.com/countdown/countdown-go/pkg/log"
	"github.com/countdown/countdown-go/pkg/scheduler"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	seconds, err := validateConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In interactive mode readline owns the terminal, so logs go through it.
	var rl *readline.Instance
	var logOut io.Writer = os.Stderr
	if cfg.Interactive {
		rl, err = interactive.NewReadline()
		if err != nil {
			return err
		}
		logOut = rl.Stderr()
	}

	logger, events, closeEvents, err := setupLogging(cfg, logOut)
	if err != nil {
		if rl != nil {
			rl.Close()
		}
		return err
	}
	defer closeEvents()

	sched := scheduler.NewReal()
	defer sched.Close()

	timer := countdown.NewTimerWithConfig(countdown.Config{
		ID:        cfg.ID,
		Scheduler: sched,
		Logger:    events,
	})
	defer timer.Stop()

	logger.Info("countdown starting",
		"timer_id", timer.ID(),
		"interactive", cfg.Interactive,
		"event_log", cfg.EventLog,
	)

	if seconds > 0 {
		if err := timer.Start(seconds); err != nil {
			return err
		}
	}

	if rl != nil {
		shell := interactive.New(timer, rl)
		if seconds > 0 {
			shell.Execute("status", rl.Stdout())
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		shell.Run(ctx, cancel)
		return nil
	}

	err = watch(ctx, timer, os.Stdout, defaultPollInterval)
	if errors.Is(err, context.Canceled) {
		timer.Stop()
		logger.Info("interrupted", "remaining", timer.RemainingTime())
		return nil
	}
	if err == nil {
		logger.Info("countdown complete", "duration", seconds)
	}
	return err
}

// setupLogging builds the operational slog logger and the timer's event
// capture: the CBOR file when configured, plus slog output at debug level.
// The returned func closes the event file.
func setupLogging(cfg Config, w io.Writer) (*slog.Logger, log.Logger, func(), error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	var loggers []log.Logger
	closeFn := func() {}

	if cfg.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				logger.Warn("closing event log", "error", err)
			}
		}
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	var events log.Logger = log.NoopLogger{}
	switch len(loggers) {
	case 0:
	case 1:
		events = loggers[0]
	default:
		events = log.NewMultiLogger(loggers...)
	}

	return logger, events, closeFn, nil
}
