package probe

import (
	"context"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// unknownStrategy serves platforms the probe has no commands for. It never
// spawns a process.
type unknownStrategy struct{}

func (unknownStrategy) Family() types.OSFamily { return types.FamilyUnknown }

func (unknownStrategy) ComputerName(context.Context) (string, error) { return types.Unknown, nil }
func (unknownStrategy) TotalMemory(context.Context) (string, error)  { return types.Unknown, nil }
func (unknownStrategy) VideoAdapter(context.Context) (string, error) { return types.Unknown, nil }
