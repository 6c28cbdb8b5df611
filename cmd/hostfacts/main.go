// Package main is the entry point for hostfacts, an "About this computer" panel
// for the terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags. The default is a dev fallback
// for plain `go install` or `go run` usage.
var version = "0.3.0"

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1 // usage, config, or output failure
	exitUnknown = 2 // get --strict resolved to Unknown
)

// exitCodeError carries a non-default exit code out of a cobra RunE.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// app holds the writers and flag values shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  flagValues
}

// flagValues holds the persistent flags as parsed by cobra.
type flagValues struct {
	configPath string
	logLevel   string
	format     string
	noColor    bool
	family     string
	timeout    string
	output     string
}

// newRootCmd builds the command tree. The root command runs `about`.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hostfacts",
		Short:         "Show an About panel for this computer",
		Long:          "hostfacts reports the computer name, operating system, total memory and graphics adapter of the local machine.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          a.runAbout,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate("hostfacts v{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&a.flags.logLevel, "log-level", "warn", "Log level (panic, fatal, error, warn, info, debug, trace)")
	pf.StringVarP(&a.flags.format, "format", "f", "text", "Output format: text, json, jsonl")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&a.flags.family, "family", "", "Force the OS family: windows, macos, linux, unknown (default: detect)")
	pf.StringVar(&a.flags.timeout, "timeout", "", "Bound each probe command, e.g. 5s (default: no limit)")
	pf.StringVarP(&a.flags.output, "output", "o", "", "Write output to file (default: stdout)")

	root.AddCommand(
		newAboutCommand(a),
		newGetCommand(a),
		newFamiliesCommand(a),
		newVersionCommand(a),
	)
	return root
}

// execute runs the CLI with the given arguments and returns the exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.msg != "" {
			fmt.Fprintf(stderr, "  ✗ %s\n", ec.msg)
		}
		return ec.code
	}
	fmt.Fprintf(stderr, "  ✗ %v\n", err)
	return exitError
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
