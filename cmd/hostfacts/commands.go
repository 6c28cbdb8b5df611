package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ancients-collective/hostfacts/internal/config"
	"github.com/ancients-collective/hostfacts/internal/output"
	"github.com/ancients-collective/hostfacts/internal/probe"
	"github.com/ancients-collective/hostfacts/internal/types"
)

func newAboutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show the About panel (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runAbout,
	}
}

func (a *app) runAbout(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := a.newLogger(cfg)
	p := newProbe(cfg, log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report := &types.AboutReport{
		Version:   version,
		Timestamp: time.Now().UTC(),
		Family:    p.Family(),
		OS:        probe.DescribeOS(ctx),
		Facts:     p.All(ctx),
	}

	return a.writeOutput(cfg, func(w io.Writer, width int, dumb bool) error {
		return newFormatter(cfg.Format, width, dumb).Write(w, report)
	})
}

func newGetCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "get <fact>",
		Short: "Print a single host fact",
		Long: "Print a single host fact: " + strings.Join(factList(), ", ") + ".\n" +
			"Aliases such as memory, gpu and hostname are accepted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fact, ok := types.ParseFact(args[0])
			if !ok {
				fmt.Fprintf(a.stderr, "  ✗ Unknown fact %q\n", args[0])
				if suggestions := suggestFacts(args[0]); len(suggestions) > 0 {
					fmt.Fprintf(a.stderr, "\n  Did you mean:\n")
					for _, s := range suggestions {
						fmt.Fprintf(a.stderr, "    • %s\n", s)
					}
				}
				fmt.Fprintf(a.stderr, "\n  Known facts: %s\n", strings.Join(factList(), ", "))
				return &exitCodeError{code: exitError}
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			log := a.newLogger(cfg)
			p := newProbe(cfg, log)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			value := p.Fact(ctx, fact)

			err = a.writeOutput(cfg, func(w io.Writer, _ int, _ bool) error {
				return writeFact(w, cfg.Format, fact, value)
			})
			if err != nil {
				return err
			}

			if strict && value == types.Unknown {
				return &exitCodeError{code: exitUnknown}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 2 when the fact cannot be determined")
	return cmd
}

func newFamiliesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List OS families and mark the detected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			detected := probe.Detect()
			for _, f := range types.Families {
				marker := " "
				if f == detected {
					marker = "*"
				}
				fmt.Fprintf(a.stdout, "  %s %-8s %s\n", marker, f, f.DisplayName())
			}
			return nil
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hostfacts version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "hostfacts v%s\n", version)
		},
	}
}

// newFormatter returns the formatter for a validated --format value.
func newFormatter(format string, width int, dumb bool) output.Formatter {
	switch format {
	case "json":
		return &output.JSONFormatter{}
	case "jsonl":
		return &output.JSONLFormatter{}
	default:
		return &output.TextFormatter{Width: width, Dumb: dumb}
	}
}

// writeFact prints one fact: the bare value for text, an object otherwise.
func writeFact(w io.Writer, format string, fact types.Fact, value string) error {
	if format == "text" {
		_, err := fmt.Fprintln(w, value)
		return err
	}

	enc := json.NewEncoder(w)
	if format == "json" {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(struct {
		Fact  types.Fact `json:"fact"`
		Value string     `json:"value"`
		Known bool       `json:"known"`
	}{fact, value, value != types.Unknown})
}

// writeOutput sets up color and the destination, then calls render.
func (a *app) writeOutput(cfg *config.Config, render func(w io.Writer, width int, dumb bool) error) error {
	isDumb := output.IsDumbTerm()
	if cfg.NoColor || cfg.Format != "text" || a.flags.output != "" || isDumb {
		color.NoColor = true
	}

	w := a.stdout
	if a.flags.output != "" {
		if err := validateOutputPath(a.flags.output); err != nil {
			return fmt.Errorf("Unsafe output path: %w", err)
		}
		f, err := os.Create(a.flags.output)
		if err != nil {
			return fmt.Errorf("Failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render(w, terminalWidth(w), isDumb); err != nil {
		return fmt.Errorf("Failed to write output: %w", err)
	}

	if a.flags.output != "" {
		fmt.Fprintf(a.stderr, "  ✓ Written to %s\n", a.flags.output)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
		return tw
	}
	return 0
}

// unsafeOutputPrefixes are path prefixes where writing output files is rejected.
// Prevents accidental overwrite of system files when running as root.
var unsafeOutputPrefixes = []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/", "/sbin/", "/bin/", "/usr/"}

// validateOutputPath checks that the output file path is safe to write to.
func validateOutputPath(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		for _, prefix := range unsafeOutputPrefixes {
			if strings.HasPrefix(cleaned, prefix) {
				return fmt.Errorf("refusing to write to system path %q", cleaned)
			}
		}
	}
	return nil
}

// factList returns the canonical fact names.
func factList() []string {
	names := make([]string, len(types.AllFacts))
	for i, f := range types.AllFacts {
		names[i] = string(f)
	}
	return names
}
