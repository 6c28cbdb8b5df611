package probe

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	bytesPerGB = 1024 * 1024 * 1024
	kbPerGB    = 1024 * 1024

	memTotalKey  = "MemTotal:"
	chipsetLabel = "Chipset Model:"
)

// lspciMarkers identify display controllers in `lspci -v` output.
var lspciMarkers = []string{"VGA compatible controller", "3D controller"}

// formatGB renders a gigabyte count with exactly two decimals.
func formatGB(gb float64) string {
	return fmt.Sprintf("%.2f GB", gb)
}

// parseByteCount parses a bare integer byte count such as `sysctl -n hw.memsize` prints.
func parseByteCount(text string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: byte count %q", ErrNoMatchingPattern, strings.TrimSpace(text))
	}
	return n, nil
}

// parseMemTotal returns the MemTotal value (kibibytes) from meminfo text.
// Lines like "MemTotal:       16333852 kB".
func parseMemTotal(text string) (uint64, error) {
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, memTotalKey) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if kb, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
			return kb, nil
		}
	}
	return 0, fmt.Errorf("%w: no usable %s line", ErrNoMatchingPattern, memTotalKey)
}

// parseChipsetModel extracts the first "Chipset Model:" value from a
// system_profiler SPDisplaysDataType report.
func parseChipsetModel(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, chipsetLabel)
		if idx < 0 {
			continue
		}
		if v := strings.TrimSpace(line[idx+len(chipsetLabel):]); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: no %q line", ErrNoMatchingPattern, chipsetLabel)
}

// parseLspciAdapter extracts the vendor/device description of the first
// display controller in lspci output, e.g.
//
//	01:00.0 VGA compatible controller: NVIDIA Corporation Device 2504
//
// The description is everything after the colon that ends the class field.
func parseLspciAdapter(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		for _, marker := range lspciMarkers {
			idx := strings.Index(line, marker)
			if idx < 0 {
				continue
			}
			rest := line[idx+len(marker):]
			colon := strings.Index(rest, ":")
			if colon < 0 {
				continue
			}
			if v := strings.TrimSpace(rest[colon+1:]); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no display controller in lspci output", ErrNoMatchingPattern)
}

// firstLine returns the first non-blank trimmed line.
func firstLine(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: empty output", ErrNoMatchingPattern)
}
