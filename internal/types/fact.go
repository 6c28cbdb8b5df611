package types

import "strings"

// Fact names one of the host facts the probe can resolve.
type Fact string

// Known host facts.
const (
	FactComputerName Fact = "computer_name"
	FactTotalMemory  Fact = "total_memory"
	FactVideoAdapter Fact = "video_adapter"
)

// AllFacts lists every fact in display order.
var AllFacts = []Fact{FactComputerName, FactTotalMemory, FactVideoAdapter}

// factAliases maps accepted spellings to their canonical fact.
var factAliases = map[string]Fact{
	"computer_name": FactComputerName,
	"computer-name": FactComputerName,
	"name":          FactComputerName,
	"hostname":      FactComputerName,
	"total_memory":  FactTotalMemory,
	"total-memory":  FactTotalMemory,
	"memory":        FactTotalMemory,
	"mem":           FactTotalMemory,
	"video_adapter": FactVideoAdapter,
	"video-adapter": FactVideoAdapter,
	"video":         FactVideoAdapter,
	"gpu":           FactVideoAdapter,
	"graphics":      FactVideoAdapter,
}

// ParseFact resolves a fact name or alias (case-insensitive).
func ParseFact(name string) (Fact, bool) {
	f, ok := factAliases[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// FactNames returns every accepted fact spelling, canonical names first.
func FactNames() []string {
	names := make([]string, 0, len(factAliases))
	for _, f := range AllFacts {
		names = append(names, string(f))
	}
	for alias, f := range factAliases {
		if alias != string(f) {
			names = append(names, alias)
		}
	}
	return names
}

// Label returns the label used for the fact in the About panel.
func (f Fact) Label() string {
	switch f {
	case FactComputerName:
		return "Computer Name"
	case FactTotalMemory:
		return "System Memory"
	case FactVideoAdapter:
		return "Graphics Adapter"
	default:
		return string(f)
	}
}

// HostFacts holds the three resolved facts. Every field is either a real value
// or the Unknown sentinel.
type HostFacts struct {
	ComputerName string `json:"computer_name"`
	TotalMemory  string `json:"total_memory"`
	VideoAdapter string `json:"video_adapter"`
}

// Get returns the value of the given fact.
func (h HostFacts) Get(f Fact) string {
	switch f {
	case FactComputerName:
		return h.ComputerName
	case FactTotalMemory:
		return h.TotalMemory
	case FactVideoAdapter:
		return h.VideoAdapter
	default:
		return Unknown
	}
}
