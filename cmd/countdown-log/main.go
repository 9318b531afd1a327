// Command countdown-log is a tool for viewing and analyzing countdown event
// logs.
//
// Event logs are written by countdown when run with the -event-log flag.
//
// Usage:
//
//	countdown-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	countdown-log view timer.clog
//
//	# View only state changes
//	countdown-log view -category state timer.clog
//
//	# Export to CSV
//	countdown-log export -format csv -o timer.csv timer.clog
//
//	# Keep only pause operations of one timer
//	countdown-log filter -timer pomodoro -op pause -o pauses.clog timer.clog
//
//	# Show statistics
//	countdown-log stats timer.clog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/countdown/countdown-go/cmd/countdown-log/commands"
)

const usage = `countdown-log - Countdown Event Log Analyzer

Usage:
  countdown-log <command> [flags] <file.clog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "countdown-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set whose usage prints the given header
// followed by the flag defaults.
func newFlagSet(name, header string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, header)
		fs.PrintDefaults()
	}
	return fs
}

// pathArg returns the single positional log path or exits.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", `countdown-log view - View log file in human-readable format

Usage:
  countdown-log view [flags] <file.clog>

Flags:
`)
	category := fs.String("category", "", "Filter by category (control, tick, state, error)")
	timerID := fs.String("timer", "", "Filter by timer ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter := commands.ViewFilter{TimerID: *timerID}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", `countdown-log export - Export log file to JSON or CSV format

Usage:
  countdown-log export [flags] <file.clog>

Flags:
`)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", `countdown-log filter - Filter log file and write to new file

Usage:
  countdown-log filter [flags] <file.clog>

Flags:
`)
	output := fs.String("o", "", "Output file (required)")
	timerID := fs.String("timer", "", "Filter by timer ID")
	category := fs.String("category", "", "Filter by category (control, tick, state, error)")
	op := fs.String("op", "", "Filter control events by operation (start, stop, reset, pause, resume)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		TimerID:   *timerID,
		Category:  *category,
		Op:        *op,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", `countdown-log stats - Show statistics about the log file

Usage:
  countdown-log stats <file.clog>

`)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
