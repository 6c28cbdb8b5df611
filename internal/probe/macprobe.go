package probe

import (
	"context"

	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

// macStrategy resolves facts with scutil, sysctl and system_profiler.
type macStrategy struct {
	run runner.Runner
}

func (s *macStrategy) Family() types.OSFamily { return types.FamilyMacOS }

func (s *macStrategy) ComputerName(ctx context.Context) (string, error) {
	return runText(ctx, s.run, "scutil", "--get", "ComputerName")
}

func (s *macStrategy) TotalMemory(ctx context.Context) (string, error) {
	out, err := runText(ctx, s.run, "sysctl", "-n", "hw.memsize")
	if err != nil {
		return "", err
	}
	n, err := parseByteCount(out)
	if err != nil {
		return "", err
	}
	return formatGB(float64(n) / bytesPerGB), nil
}

func (s *macStrategy) VideoAdapter(ctx context.Context) (string, error) {
	out, err := runText(ctx, s.run, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return "", err
	}
	return parseChipsetModel(out)
}
