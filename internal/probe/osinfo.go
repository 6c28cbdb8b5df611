package probe

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// DescribeOS returns operating system details for the About report. It never
// fails: when gopsutil can't read host information only the name and
// architecture are filled in.
func DescribeOS(ctx context.Context) types.OSInfo {
	osInfo := types.OSInfo{
		Name: runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return osInfo
	}

	osInfo.Platform = info.Platform
	osInfo.PlatformVersion = info.PlatformVersion
	osInfo.KernelVersion = info.KernelVersion
	return osInfo
}
