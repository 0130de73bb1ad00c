package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atlekbai/statepaths"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("statepaths", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
statepaths - Explore the reachable configurations of a state machine.

Usage:
  statepaths [options] MACHINE_PATH

Arguments:
  MACHINE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	modeFlag := flagSet.String("mode", ModeShortest, "What to compute. Options: 'adjacency', 'shortest', 'simple', 'replay', 'graph'.")
	machineFlag := flagSet.String("machine", "", "Name of the machine to explore when the path declares several.")
	eventsFlag := flagSet.String("events", "", `Events to replay as a JSON array, e.g. '[{"type":"open"}]'.`)
	formatFlag := flagSet.String("format", FormatJSON, "Output format. Options: 'json', 'dot', 'mermaid'.")
	dbFlag := flagSet.String("db", "", "SQLite database to store the paths in.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No machine path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	path := flagSet.Arg(0)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	mode := strings.ToLower(*modeFlag)
	var events []statepaths.Event
	switch {
	case *eventsFlag != "" && mode != ModeReplay:
		return nil, false, &ExitError{Code: 2, Message: "-events is only available for the replay mode"}
	case mode == ModeReplay:
		if *eventsFlag == "" {
			return nil, false, &ExitError{Code: 2, Message: "the replay mode requires -events"}
		}
		var err error
		if events, err = parseEvents(*eventsFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := NewConfig(Config{
		MachinePath: path,
		Machine:     *machineFlag,
		Mode:        mode,
		Format:      strings.ToLower(*formatFlag),
		Events:      events,
		DBPath:      *dbFlag,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
