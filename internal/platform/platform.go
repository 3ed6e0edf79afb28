package platform

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Info identifies the machine installed binaries must run on.
type Info struct {
	OS   string
	Arch string
}

func (i Info) String() string {
	return i.OS + "/" + i.Arch
}

// archAliases maps uname-style machine names to Go-style arch names.
var archAliases = map[string]string{
	"x86_64":  "amd64",
	"amd64":   "amd64",
	"x64":     "amd64",
	"aarch64": "arm64",
	"arm64":   "arm64",
	"i386":    "386",
	"i686":    "386",
	"x86":     "386",
	"386":     "386",
}

// Detect reports the running OS and machine architecture. The arch comes
// from the kernel (uname -m equivalent) rather than the build target, so
// a 32-bit build on a 64-bit kernel still selects 64-bit assets.
func Detect() Info {
	return Info{OS: runtime.GOOS, Arch: NormalizeArch(kernelArch())}
}

func kernelArch() string {
	arch, err := host.KernelArch()
	if err != nil || arch == "" {
		return runtime.GOARCH
	}
	return arch
}

// NormalizeArch converts uname-style machine names to Go-style arch
// names. Unrecognized values pass through unchanged.
func NormalizeArch(machine string) string {
	machine = strings.ToLower(strings.TrimSpace(machine))
	if norm, ok := archAliases[machine]; ok {
		return norm
	}
	return machine
}
