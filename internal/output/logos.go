package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/ancients-collective/hostfacts/internal/types"
)

var logos = map[types.OSFamily][]string{
	types.FamilyWindows: {
		"   ████████████   ",
		" ██            ██ ",
		"██   ██    ██   ██",
		"██   ██    ██   ██",
		"██              ██",
		"██              ██",
		"██   ██    ██   ██",
		"██   ██    ██   ██",
		" ██            ██ ",
		"   ████████████   ",
	},
	types.FamilyMacOS: {
		"     ████████     ",
		"   ██        ██   ",
		" ██            ██ ",
		"██     ████     ██",
		"██   ████████   ██",
		"██  ██████████  ██",
		"██  ██████████  ██",
		"██    ██████    ██",
		" ██            ██ ",
		"   ██        ██   ",
		"     ████████     ",
	},
	types.FamilyLinux: {
		"     ████████     ",
		"   ██        ██   ",
		"  ██  ██  ██  ██  ",
		"  ██          ██  ",
		"  ██  ██████  ██  ",
		"  ██  ██  ██  ██  ",
		"  ██  ██  ██  ██  ",
		"   ██        ██   ",
		"     ████████     ",
	},
	types.FamilyUnknown: {
		"     ????????     ",
		"   ??        ??   ",
		"  ??          ??  ",
		"  ??  ??  ??  ??  ",
		"  ??          ??  ",
		"  ??  ??  ??  ??  ",
		"  ??          ??  ",
		"   ??        ??   ",
		"     ????????     ",
	},
}

// logoColors are the brand colors of each family.
var logoColors = map[types.OSFamily]*color.Color{
	types.FamilyWindows: color.RGB(0, 120, 215),
	types.FamilyMacOS:   color.RGB(128, 128, 128),
	types.FamilyLinux:   color.RGB(252, 175, 62),
	types.FamilyUnknown: color.New(color.Faint),
}

// Logo returns the logo lines for a family. Dumb terminals get '#' in place
// of block characters.
func Logo(family types.OSFamily, dumb bool) []string {
	lines, ok := logos[family]
	if !ok {
		lines = logos[types.FamilyUnknown]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if dumb {
			line = strings.ReplaceAll(line, "█", "#")
		}
		out[i] = line
	}
	return out
}

// logoColor returns the sprint function for a family's logo.
func logoColor(family types.OSFamily) func(a ...interface{}) string {
	c, ok := logoColors[family]
	if !ok {
		c = logoColors[types.FamilyUnknown]
	}
	return c.SprintFunc()
}
