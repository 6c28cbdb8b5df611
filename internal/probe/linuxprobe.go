package probe

import (
	"context"
	"fmt"

	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

// linuxStrategy resolves facts with hostname, /proc/meminfo and lspci.
type linuxStrategy struct {
	run         runner.Runner
	meminfoPath string
}

func (s *linuxStrategy) Family() types.OSFamily { return types.FamilyLinux }

func (s *linuxStrategy) ComputerName(ctx context.Context) (string, error) {
	return runText(ctx, s.run, "hostname")
}

// TotalMemory reads MemTotal from the meminfo pseudo-file. No process is spawned.
func (s *linuxStrategy) TotalMemory(_ context.Context) (string, error) {
	data, err := readFileLimited(s.meminfoPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCommandNotInvokable, err)
	}

	text, err := decode(s.meminfoPath, data)
	if err != nil {
		return "", err
	}

	kb, err := parseMemTotal(text)
	if err != nil {
		return "", err
	}
	return formatGB(float64(kb) / kbPerGB), nil
}

func (s *linuxStrategy) VideoAdapter(ctx context.Context) (string, error) {
	out, err := runText(ctx, s.run, "lspci", "-v")
	if err != nil {
		return "", err
	}
	return parseLspciAdapter(out)
}
