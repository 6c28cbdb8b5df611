package probe

import (
	"context"

	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

// CIM queries run through PowerShell.
const (
	cimTotalMemoryQuery = "Get-CimInstance Win32_ComputerSystem | Select-Object -ExpandProperty TotalPhysicalMemory"
	cimVideoQuery       = "Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty Name"
)

// windowsStrategy resolves facts with hostname and PowerShell CIM queries.
type windowsStrategy struct {
	run runner.Runner
}

func (s *windowsStrategy) Family() types.OSFamily { return types.FamilyWindows }

func (s *windowsStrategy) ComputerName(ctx context.Context) (string, error) {
	return runText(ctx, s.run, "hostname")
}

func (s *windowsStrategy) TotalMemory(ctx context.Context) (string, error) {
	out, err := s.powershell(ctx, cimTotalMemoryQuery)
	if err != nil {
		return "", err
	}
	n, err := parseByteCount(out)
	if err != nil {
		return "", err
	}
	return formatGB(float64(n) / bytesPerGB), nil
}

// VideoAdapter returns the first controller name; machines with several
// adapters list one per line.
func (s *windowsStrategy) VideoAdapter(ctx context.Context) (string, error) {
	out, err := s.powershell(ctx, cimVideoQuery)
	if err != nil {
		return "", err
	}
	return firstLine(out)
}

func (s *windowsStrategy) powershell(ctx context.Context, query string) (string, error) {
	return runText(ctx, s.run, "powershell", "-NoProfile", "-NonInteractive", "-Command", query)
}
