package types

import "time"

// AboutReport is the top-level structure rendered by the about command.
// It is serialized directly to JSON for --format=json output.
type AboutReport struct {
	// Version is the hostfacts version that produced this report.
	Version string `json:"version"`

	// Timestamp is when the report was built.
	Timestamp time.Time `json:"timestamp"`

	// Family is the OS family the probe branched on.
	Family OSFamily `json:"family"`

	// OS describes the operating system beyond the coarse family.
	OS OSInfo `json:"os"`

	// Facts are the probe results.
	Facts HostFacts `json:"facts"`
}

// OSInfo holds operating system details.
type OSInfo struct {
	// Name is the OS identifier (e.g., "linux", "darwin").
	Name string `json:"name"`

	// Platform is the distribution or product (e.g., "ubuntu", "darwin").
	Platform string `json:"platform,omitempty"`

	// PlatformVersion is the distribution or product version.
	PlatformVersion string `json:"platform_version,omitempty"`

	// KernelVersion is the kernel version string.
	KernelVersion string `json:"kernel_version,omitempty"`

	// Arch is the CPU architecture (e.g., "amd64", "arm64").
	Arch string `json:"arch"`
}
