package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

var memoryShape = regexp.MustCompile(`^\d+\.\d{2} GB$`)

// writeMeminfo writes a meminfo fixture and returns its path.
func writeMeminfo(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meminfo")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLinuxProbe(t *testing.T, r runner.Runner, meminfo string) *Probe {
	t.Helper()
	return New(NewStrategy(types.FamilyLinux, Options{Runner: r, MeminfoPath: meminfo}), nil)
}

// ── Strategy selection ───────────────────────────────────────────────

func TestNewStrategy_Families(t *testing.T) {
	for _, family := range types.Families {
		t.Run(string(family), func(t *testing.T) {
			s := NewStrategy(family, Options{Runner: newStubRunner()})
			assert.Equal(t, family, s.Family())
		})
	}
}

func TestNewStrategy_UnrecognizedFamilyIsUnknown(t *testing.T) {
	s := NewStrategy(types.OSFamily("plan9"), Options{})
	assert.Equal(t, types.FamilyUnknown, s.Family())
}

func TestNewStrategy_DefaultMeminfoPath(t *testing.T) {
	s := NewStrategy(types.FamilyLinux, Options{Runner: newStubRunner()})
	ls, ok := s.(*linuxStrategy)
	require.True(t, ok)
	assert.Equal(t, DefaultMeminfoPath, ls.meminfoPath)
}

func TestDetect_MatchesTypesMapping(t *testing.T) {
	assert.Contains(t, types.Families, Detect())
}

// ── Linux ────────────────────────────────────────────────────────────

func TestProbe_Linux_AllFacts(t *testing.T) {
	r := newStubRunner().on("hostname", "workstation-01\n").on("lspci", sampleLspci)
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))

	facts := p.All(context.Background())

	assert.Equal(t, "workstation-01", facts.ComputerName)
	assert.Equal(t, "15.58 GB", facts.TotalMemory)
	assert.Equal(t, "NVIDIA Corporation Device 2504 (rev a1) (prog-if 00 [VGA controller])", facts.VideoAdapter)
	assert.Equal(t, 1, r.countOf("hostname"))
	assert.Equal(t, 1, r.countOf("lspci"))
	assert.Equal(t, 2, r.count(), "meminfo is read from a file, not a command")
}

func TestProbe_Linux_LspciArgs(t *testing.T) {
	r := newStubRunner().on("lspci", "01:00.0 VGA compatible controller: NVIDIA Corporation Device 2504\n")
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))

	assert.Equal(t, "NVIDIA Corporation Device 2504", p.VideoAdapter(context.Background()))
	assert.Equal(t, invocation{name: "lspci", args: []string{"-v"}}, r.last())
}

func TestProbe_Linux_MeminfoMissing(t *testing.T) {
	p := newLinuxProbe(t, newStubRunner(), filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, types.Unknown, p.TotalMemory(context.Background()))
}

func TestProbe_Linux_MeminfoWithoutMemTotal(t *testing.T) {
	p := newLinuxProbe(t, newStubRunner(), writeMeminfo(t, "MemFree: 1234 kB\nSwapTotal: 0 kB\n"))
	assert.Equal(t, types.Unknown, p.TotalMemory(context.Background()))
}

func TestProbe_Linux_MeminfoNotUTF8(t *testing.T) {
	p := newLinuxProbe(t, newStubRunner(), writeMeminfo(t, "MemTotal: 1024 kB\n\xff\xfe"))
	assert.Equal(t, types.Unknown, p.TotalMemory(context.Background()))
}

func TestProbe_Linux_NoDisplayController(t *testing.T) {
	r := newStubRunner().on("lspci", "00:14.0 USB controller: Intel Corporation Device 7ae0\n")
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))
	assert.Equal(t, types.Unknown, p.VideoAdapter(context.Background()))
}

// ── macOS ────────────────────────────────────────────────────────────

func TestProbe_MacOS_AllFacts(t *testing.T) {
	r := newStubRunner().
		on("scutil", "Ada's MacBook Air\n").
		on("sysctl", "17179869184\n").
		on("system_profiler", sampleDisplays)
	p := New(NewStrategy(types.FamilyMacOS, Options{Runner: r}), nil)

	facts := p.All(context.Background())

	assert.Equal(t, "Ada's MacBook Air", facts.ComputerName)
	assert.Equal(t, "16.00 GB", facts.TotalMemory)
	assert.Equal(t, "Apple M2", facts.VideoAdapter)
	assert.Equal(t, 3, r.count())
}

func TestProbe_MacOS_CommandArgs(t *testing.T) {
	tests := []struct {
		name   string
		lookup func(*Probe) string
		want   invocation
	}{
		{"computer name", func(p *Probe) string { return p.ComputerName(context.Background()) },
			invocation{"scutil", []string{"--get", "ComputerName"}}},
		{"memory", func(p *Probe) string { return p.TotalMemory(context.Background()) },
			invocation{"sysctl", []string{"-n", "hw.memsize"}}},
		{"video", func(p *Probe) string { return p.VideoAdapter(context.Background()) },
			invocation{"system_profiler", []string{"SPDisplaysDataType"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newStubRunner()
			p := New(NewStrategy(types.FamilyMacOS, Options{Runner: r}), nil)
			tt.lookup(p)
			assert.Equal(t, tt.want, r.last())
		})
	}
}

func TestProbe_MacOS_BadMemsize(t *testing.T) {
	r := newStubRunner().on("sysctl", "sysctl: unknown oid 'hw.memsize'\n")
	p := New(NewStrategy(types.FamilyMacOS, Options{Runner: r}), nil)
	assert.Equal(t, types.Unknown, p.TotalMemory(context.Background()))
}

// ── Windows ──────────────────────────────────────────────────────────

func TestProbe_Windows_AllFacts(t *testing.T) {
	r := newStubRunner().on("hostname", "DESKTOP-7Q2K9\r\n")
	p := New(NewStrategy(types.FamilyWindows, Options{Runner: r}), nil)
	ctx := context.Background()

	assert.Equal(t, "DESKTOP-7Q2K9", p.ComputerName(ctx))

	r.on("powershell", "34261344256\r\n")
	assert.Equal(t, "31.91 GB", p.TotalMemory(ctx))
	assert.Equal(t, []string{"-NoProfile", "-NonInteractive", "-Command", cimTotalMemoryQuery}, r.last().args)

	r.on("powershell", "NVIDIA GeForce RTX 3070\r\nMicrosoft Remote Display Adapter\r\n")
	assert.Equal(t, "NVIDIA GeForce RTX 3070", p.VideoAdapter(ctx))
	assert.Equal(t, []string{"-NoProfile", "-NonInteractive", "-Command", cimVideoQuery}, r.last().args)
}

func TestProbe_Windows_BlankVideoOutput(t *testing.T) {
	r := newStubRunner().on("powershell", "  \r\n")
	p := New(NewStrategy(types.FamilyWindows, Options{Runner: r}), nil)
	assert.Equal(t, types.Unknown, p.VideoAdapter(context.Background()))
}

// ── Unknown family ───────────────────────────────────────────────────

func TestProbe_UnknownFamily_NoInvocations(t *testing.T) {
	r := newStubRunner()
	p := New(NewStrategy(types.FamilyUnknown, Options{Runner: r}), nil)
	ctx := context.Background()

	assert.Equal(t, types.Unknown, p.ComputerName(ctx))
	assert.Equal(t, types.Unknown, p.TotalMemory(ctx))
	assert.Equal(t, types.Unknown, p.VideoAdapter(ctx))
	assert.Zero(t, r.count())
}

// ── Failure mapping ──────────────────────────────────────────────────

func TestProbe_FailuresBecomeUnknown(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*stubRunner)
	}{
		{"not invokable", func(r *stubRunner) { r.fail("hostname", fmt.Errorf("%w: missing", runner.ErrNotInvokable)) }},
		{"non-zero exit", func(r *stubRunner) { r.fail("hostname", fmt.Errorf("%w: status 1", runner.ErrNonZeroExit)) }},
		{"timeout", func(r *stubRunner) { r.fail("hostname", fmt.Errorf("%w: hostname", runner.ErrTimeout)) }},
		{"arbitrary error", func(r *stubRunner) { r.fail("hostname", errors.New("boom")) }},
		{"not utf-8", func(r *stubRunner) { r.onBytes("hostname", []byte{0xff, 0xfe, 0xfd}) }},
		{"empty output", func(r *stubRunner) { r.on("hostname", "\n") }},
		{"not stubbed", func(*stubRunner) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newStubRunner()
			tt.setup(r)
			p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))
			assert.Equal(t, types.Unknown, p.ComputerName(context.Background()))
		})
	}
}

func TestProbe_TotalMemoryShape(t *testing.T) {
	inputs := []string{"17179869184", "1", "0", "not-a-number", "", "99999999999999"}
	for _, in := range inputs {
		r := newStubRunner().on("sysctl", in)
		p := New(NewStrategy(types.FamilyMacOS, Options{Runner: r}), nil)
		got := p.TotalMemory(context.Background())
		assert.True(t, got == types.Unknown || memoryShape.MatchString(got), "unexpected shape %q for %q", got, in)
	}
}

// ── Memoization ──────────────────────────────────────────────────────

func TestProbe_Memoized(t *testing.T) {
	r := newStubRunner().on("hostname", "first\n").on("lspci", sampleLspci)
	meminfo := writeMeminfo(t, sampleMeminfo)
	p := newLinuxProbe(t, r, meminfo)
	ctx := context.Background()

	before := p.All(ctx)

	r.on("hostname", "second\n").on("lspci", "")
	require.NoError(t, os.WriteFile(meminfo, []byte("MemTotal: 1048576 kB\n"), 0o644))

	after := p.All(ctx)
	assert.Equal(t, before, after)
	assert.Equal(t, "first", after.ComputerName)
	assert.Equal(t, 2, r.count())
}

func TestProbe_FailureIsMemoized(t *testing.T) {
	r := newStubRunner().fail("hostname", fmt.Errorf("%w: status 1", runner.ErrNonZeroExit))
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))
	ctx := context.Background()

	assert.Equal(t, types.Unknown, p.ComputerName(ctx))

	r.on("hostname", "recovered\n")
	assert.Equal(t, types.Unknown, p.ComputerName(ctx))
	assert.Equal(t, 1, r.countOf("hostname"))
}

func TestProbe_ConcurrentCallersResolveOnce(t *testing.T) {
	r := newStubRunner().on("hostname", "box\n").on("lspci", sampleLspci)
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.All(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.countOf("hostname"))
	assert.Equal(t, 1, r.countOf("lspci"))
}

func TestProbe_Fact(t *testing.T) {
	r := newStubRunner().on("hostname", "box\n").on("lspci", sampleLspci)
	p := newLinuxProbe(t, r, writeMeminfo(t, sampleMeminfo))
	ctx := context.Background()

	assert.Equal(t, "box", p.Fact(ctx, types.FactComputerName))
	assert.Equal(t, "15.58 GB", p.Fact(ctx, types.FactTotalMemory))
	assert.Equal(t, types.Unknown, p.Fact(ctx, types.Fact("cpu")))
	assert.Equal(t, types.FamilyLinux, p.Family())
}

// ── Logging ──────────────────────────────────────────────────────────

func TestProbe_LogsFailureCategory(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := newStubRunner().fail("lspci", fmt.Errorf("%w: lspci exited with status 127", runner.ErrNonZeroExit))
	p := New(NewStrategy(types.FamilyLinux, Options{Runner: r, MeminfoPath: writeMeminfo(t, sampleMeminfo)}), logger)

	assert.Equal(t, types.Unknown, p.VideoAdapter(context.Background()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "Host fact unavailable", entry.Message)
	assert.Equal(t, "non_zero_exit", entry.Data["category"])
	assert.Equal(t, types.FactVideoAdapter, entry.Data["fact"])
	assert.Equal(t, types.FamilyLinux, entry.Data["family"])
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: x", runner.ErrNotInvokable), "command_not_invokable"},
		{fmt.Errorf("%w: x", runner.ErrTimeout), "command_not_invokable"},
		{fmt.Errorf("%w: x", ErrNonZeroExit), "non_zero_exit"},
		{fmt.Errorf("%w: x", ErrUndecodableOutput), "undecodable_output"},
		{fmt.Errorf("%w: x", ErrNoMatchingPattern), "no_matching_pattern"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.err))
	}
}

// ── DescribeOS ───────────────────────────────────────────────────────

func TestDescribeOS_FillsNameAndArch(t *testing.T) {
	info := DescribeOS(context.Background())
	assert.NotEmpty(t, info.Name)
	assert.NotEmpty(t, info.Arch)
}
