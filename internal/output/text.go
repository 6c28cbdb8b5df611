package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// ─── Layout constants ────────────────────────────────────────────────
//
//     col 0  2   4                  23                    logo
//     │margin│ ▸ System Information                        ████
//              LABEL:             VALUE                    █  █
//
const (
	colMargin  = 2   // left margin for header and section lines
	colLabel   = 4   // column where fact labels start
	labelWidth = 19  // fixed label field: "Graphics Adapter:  "
	logoGap    = 4   // spaces between the info block and the logo
	maxLine    = 110 // hard cap even on ultra-wide terminals
	minValue   = 12  // narrowest value column before the logo is dropped
)

// ansiPattern matches ANSI escape codes so visible width can be measured.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TextFormatter writes a colored, human-readable About panel.
type TextFormatter struct {
	Width int  // terminal width for truncation; 0 = unknown
	Dumb  bool // TERM=dumb: ASCII icons and logo
}

// Color helpers, each a sprint function.
var (
	cBold   = color.New(color.Bold).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cCyan   = color.New(color.FgCyan).SprintFunc()
)

// IsDumbTerm returns true when the terminal doesn't support Unicode.
func IsDumbTerm() bool {
	t := os.Getenv("TERM")
	return t == "dumb" || t == ""
}

// wrapWidth returns the effective line width: min(terminal, maxLine).
func (f *TextFormatter) wrapWidth() int {
	if f.Width > 0 && f.Width < maxLine {
		return f.Width
	}
	return maxLine
}

// Write renders the full About panel.
func (f *TextFormatter) Write(w io.Writer, report *types.AboutReport) error {
	f.writeHeader(w, report)
	f.writeInfo(w, report)
	f.writeHints(w, report)
	fmt.Fprintln(w)
	return nil
}

// ─── Header ──────────────────────────────────────────────────────────

func (f *TextFormatter) writeHeader(w io.Writer, r *types.AboutReport) {
	pad := colPad(colMargin)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s %s\n", pad, cBold("hostfacts"), cDim("v"+r.Version))
	fmt.Fprintf(w, "%s%s\n", pad, cDim("About this computer"))
	fmt.Fprintf(w, "%s%s %s\n", pad, cDim("Generated:"), r.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintln(w)
}

// ─── System information + logo ───────────────────────────────────────

// infoRows returns the label/value pairs of the info block in display order.
func infoRows(r *types.AboutReport) [][2]string {
	return [][2]string{
		{types.FactComputerName.Label(), r.Facts.ComputerName},
		{"Operating System", osDescription(r)},
		{types.FactTotalMemory.Label(), r.Facts.TotalMemory},
		{types.FactVideoAdapter.Label(), r.Facts.VideoAdapter},
	}
}

func (f *TextFormatter) writeInfo(w io.Writer, r *types.AboutReport) {
	rows := infoRows(r)
	logo := Logo(r.Family, f.Dumb)
	logoWidth := 0
	for _, l := range logo {
		if lw := runewidth.StringWidth(l); lw > logoWidth {
			logoWidth = lw
		}
	}

	valueCol := colLabel + labelWidth
	longest := 0
	for _, row := range rows {
		if vw := runewidth.StringWidth(row[1]); vw > longest {
			longest = vw
		}
	}

	// Drop the logo when it would squeeze values below minValue columns.
	showLogo := f.wrapWidth()-valueCol-logoGap-logoWidth >= minValue
	avail := f.wrapWidth() - valueCol
	if showLogo {
		avail -= logoGap + logoWidth
		if longest < avail {
			avail = longest
		}
	}
	if avail < minValue {
		avail = minValue
	}

	lines := []string{fmt.Sprintf("%s%s %s", colPad(colMargin), cBold(f.icon("section")), cBold("System Information")), ""}
	for _, row := range rows {
		label := fmt.Sprintf("%-*s", labelWidth, row[0]+":")
		value := runewidth.Truncate(row[1], avail, f.ellipsis())
		if row[1] == types.Unknown {
			value = cYellow(value)
		}
		lines = append(lines, fmt.Sprintf("%s%s%s", colPad(colLabel), cCyan(label), value))
	}

	if !showLogo {
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
		return
	}

	paint := logoColor(r.Family)
	blockWidth := valueCol + avail
	for i := 0; i < len(lines) || i < len(logo); i++ {
		left := ""
		if i < len(lines) {
			left = lines[i]
		}
		if i >= len(logo) {
			fmt.Fprintln(w, strings.TrimRight(left, " "))
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", padVisible(left, blockWidth), colPad(logoGap), paint(logo[i]))
	}
}

// osDescription renders the family plus whatever OS details are known.
func osDescription(r *types.AboutReport) string {
	var details []string
	if r.OS.Platform != "" {
		details = append(details, strings.TrimSpace(r.OS.Platform+" "+r.OS.PlatformVersion))
	}
	if r.OS.KernelVersion != "" {
		details = append(details, "kernel "+r.OS.KernelVersion)
	}
	if r.OS.Arch != "" {
		details = append(details, r.OS.Arch)
	}

	name := r.Family.DisplayName()
	if len(details) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(details, ", "))
}

// ─── Hints ───────────────────────────────────────────────────────────

func (f *TextFormatter) writeHints(w io.Writer, r *types.AboutReport) {
	missing := 0
	for _, fact := range types.AllFacts {
		if r.Facts.Get(fact) == types.Unknown {
			missing++
		}
	}
	if missing == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s %s\n", colPad(colMargin), cYellow(f.icon("warn")),
		cDim(fmt.Sprintf("%d fact(s) could not be determined; run with --log-level debug for details", missing)))
}

// ─── Helpers ─────────────────────────────────────────────────────────

func (f *TextFormatter) icon(name string) string {
	if f.Dumb {
		switch name {
		case "warn":
			return "!"
		case "section":
			return ">"
		default:
			return "?"
		}
	}
	switch name {
	case "warn":
		return "⚠"
	case "section":
		return "▸"
	default:
		return "?"
	}
}

func (f *TextFormatter) ellipsis() string {
	if f.Dumb {
		return "..."
	}
	return "…"
}

// visibleWidth measures s on screen, ignoring ANSI escapes.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansiPattern.ReplaceAllString(s, ""))
}

// padVisible right-pads s with spaces to the given visible width.
func padVisible(s string, width int) string {
	if vw := visibleWidth(s); vw < width {
		return s + strings.Repeat(" ", width-vw)
	}
	return s
}

func colPad(n int) string {
	return strings.Repeat(" ", n)
}
