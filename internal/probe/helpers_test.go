package probe

import (
	"context"
	"fmt"
	"sync"

	"github.com/ancients-collective/hostfacts/internal/runner"
)

// stubResult is a canned command outcome.
type stubResult struct {
	out []byte
	err error
}

// invocation records one call made to a stubRunner.
type invocation struct {
	name string
	args []string
}

// stubRunner is a runner.Runner that returns canned output and records calls.
type stubRunner struct {
	mu      sync.Mutex
	results map[string]stubResult
	calls   []invocation
}

func newStubRunner() *stubRunner {
	return &stubRunner{results: make(map[string]stubResult)}
}

func (s *stubRunner) on(name, stdout string) *stubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[name] = stubResult{out: []byte(stdout)}
	return s
}

func (s *stubRunner) onBytes(name string, stdout []byte) *stubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[name] = stubResult{out: stdout}
	return s
}

func (s *stubRunner) fail(name string, err error) *stubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[name] = stubResult{err: err}
	return s
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, invocation{name: name, args: args})
	r, ok := s.results[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s not stubbed", runner.ErrNotInvokable, name)
	}
	return r.out, r.err
}

func (s *stubRunner) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubRunner) countOf(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

func (s *stubRunner) last() invocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

// Sample command output.
const (
	sampleMeminfo = `MemTotal:       16333852 kB
MemFree:         1234567 kB
MemAvailable:    9876543 kB
Buffers:          123456 kB
`

	sampleLspci = `00:00.0 Host bridge: Intel Corporation 12th Gen Core Processor Host Bridge (rev 02)
	Subsystem: Lenovo Device 3802
	Flags: bus master, fast devsel, latency 0

01:00.0 VGA compatible controller: NVIDIA Corporation Device 2504 (rev a1) (prog-if 00 [VGA controller])
	Subsystem: Micro-Star International Co., Ltd. [MSI] Device 3976
	Flags: bus master, fast devsel, latency 0, IRQ 140
`

	sampleDisplays = `Graphics/Displays:

    Apple M2:

      Chipset Model: Apple M2
      Type: GPU
      Bus: Built-In
      Total Number of Cores: 10
      Vendor: Apple (0x106b)
      Metal Support: Metal 3
`
)
