package output

import (
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/ancients-collective/hostfacts/internal/types"
)

func init() {
	color.NoColor = true
}

// makeReport builds a fully known Linux report.
func makeReport() *types.AboutReport {
	return &types.AboutReport{
		Version:   "0.3.0",
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Family:    types.FamilyLinux,
		OS: types.OSInfo{
			Name:            "linux",
			Platform:        "ubuntu",
			PlatformVersion: "24.04",
			KernelVersion:   "6.8.0-45-generic",
			Arch:            "amd64",
		},
		Facts: types.HostFacts{
			ComputerName: "workstation-01",
			TotalMemory:  "15.58 GB",
			VideoAdapter: "NVIDIA Corporation Device 2504",
		},
	}
}

// makeUnknownReport builds a report where nothing could be determined.
func makeUnknownReport(t *testing.T) *types.AboutReport {
	t.Helper()
	r := makeReport()
	r.Family = types.FamilyUnknown
	r.OS = types.OSInfo{Name: "plan9", Arch: "386"}
	r.Facts = types.HostFacts{
		ComputerName: types.Unknown,
		TotalMemory:  types.Unknown,
		VideoAdapter: types.Unknown,
	}
	return r
}
