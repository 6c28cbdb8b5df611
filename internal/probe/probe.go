// Package probe resolves host description facts by running one platform
// specific system command per fact and parsing its output.
//
// A Probe never returns errors to its caller. Every failure is logged at
// debug level and mapped to the types.Unknown sentinel, and every result is
// memoized for the lifetime of the Probe.
package probe

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// Strategy resolves host facts for one OS family. Implementations may return
// errors; the Probe absorbs them.
type Strategy interface {
	// Family reports which OS family the strategy serves.
	Family() types.OSFamily

	ComputerName(ctx context.Context) (string, error)
	TotalMemory(ctx context.Context) (string, error)
	VideoAdapter(ctx context.Context) (string, error)
}

// slot is a write-once memo cell.
type slot struct {
	once  sync.Once
	value string
}

func (s *slot) get(resolve func() string) string {
	s.once.Do(func() { s.value = resolve() })
	return s.value
}

// Probe memoizes the facts resolved by a Strategy. Each fact is resolved at
// most once; later calls return the cached string even if the host changed.
type Probe struct {
	strategy Strategy
	log      logrus.FieldLogger

	computerName slot
	totalMemory  slot
	videoAdapter slot
}

// New creates a Probe around the given strategy. A nil logger uses the logrus
// standard logger.
func New(strategy Strategy, log logrus.FieldLogger) *Probe {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Probe{
		strategy: strategy,
		log:      log.WithFields(logrus.Fields{"package": "probe", "family": strategy.Family()}),
	}
}

// Detect returns the OS family of the running process.
func Detect() types.OSFamily {
	return types.DetectFamily(runtime.GOOS)
}

// Family returns the OS family the probe branches on.
func (p *Probe) Family() types.OSFamily {
	return p.strategy.Family()
}

// ComputerName returns the host's computer name, or types.Unknown.
func (p *Probe) ComputerName(ctx context.Context) string {
	return p.computerName.get(func() string {
		return p.resolve(ctx, types.FactComputerName, p.strategy.ComputerName)
	})
}

// TotalMemory returns total physical memory formatted as "N.NN GB", or types.Unknown.
func (p *Probe) TotalMemory(ctx context.Context) string {
	return p.totalMemory.get(func() string {
		return p.resolve(ctx, types.FactTotalMemory, p.strategy.TotalMemory)
	})
}

// VideoAdapter returns the primary graphics adapter name, or types.Unknown.
func (p *Probe) VideoAdapter(ctx context.Context) string {
	return p.videoAdapter.get(func() string {
		return p.resolve(ctx, types.FactVideoAdapter, p.strategy.VideoAdapter)
	})
}

// Fact returns the value of a single fact.
func (p *Probe) Fact(ctx context.Context, f types.Fact) string {
	switch f {
	case types.FactComputerName:
		return p.ComputerName(ctx)
	case types.FactTotalMemory:
		return p.TotalMemory(ctx)
	case types.FactVideoAdapter:
		return p.VideoAdapter(ctx)
	default:
		return types.Unknown
	}
}

// All resolves every fact.
func (p *Probe) All(ctx context.Context) types.HostFacts {
	return types.HostFacts{
		ComputerName: p.ComputerName(ctx),
		TotalMemory:  p.TotalMemory(ctx),
		VideoAdapter: p.VideoAdapter(ctx),
	}
}

// resolve runs one strategy lookup and maps every failure to the sentinel.
func (p *Probe) resolve(ctx context.Context, fact types.Fact, lookup func(context.Context) (string, error)) string {
	log := p.log.WithField("fact", fact)

	value, err := lookup(ctx)
	if err == nil {
		value = strings.TrimSpace(value)
		if value == "" {
			err = fmt.Errorf("%w: empty value", ErrNoMatchingPattern)
		}
	}

	if err != nil {
		log.WithError(err).WithField("category", Category(err)).Debug("Host fact unavailable")
		return types.Unknown
	}

	log.WithField("value", value).Debug("Host fact resolved")
	return value
}
