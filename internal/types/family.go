package types

import "strings"

// Unknown is the sentinel shown whenever a host fact cannot be determined.
const Unknown = "Unknown"

// OSFamily is the coarse platform category the probe branches on.
type OSFamily string

// Supported OS families.
const (
	FamilyWindows OSFamily = "windows"
	FamilyMacOS   OSFamily = "macos"
	FamilyLinux   OSFamily = "linux"
	FamilyUnknown OSFamily = "unknown"
)

// Families lists every OS family in display order.
var Families = []OSFamily{FamilyWindows, FamilyMacOS, FamilyLinux, FamilyUnknown}

// DetectFamily maps a GOOS value (e.g. runtime.GOOS) to an OS family.
func DetectFamily(goos string) OSFamily {
	switch goos {
	case "windows":
		return FamilyWindows
	case "darwin":
		return FamilyMacOS
	case "linux":
		return FamilyLinux
	default:
		return FamilyUnknown
	}
}

// ParseFamily parses a user-supplied family name. "darwin" is accepted as an
// alias for macos. The second return value is false for unrecognized names.
func ParseFamily(name string) (OSFamily, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows":
		return FamilyWindows, true
	case "macos", "darwin":
		return FamilyMacOS, true
	case "linux":
		return FamilyLinux, true
	case "unknown":
		return FamilyUnknown, true
	default:
		return "", false
	}
}

// DisplayName returns the human-readable family name used in the About panel.
func (f OSFamily) DisplayName() string {
	switch f {
	case FamilyWindows:
		return "Windows"
	case FamilyMacOS:
		return "macOS"
	case FamilyLinux:
		return "Linux"
	default:
		return Unknown
	}
}
