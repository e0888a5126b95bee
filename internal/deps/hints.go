package deps

import (
	"fmt"
	"sort"
	"strings"
)

// OSFamily groups platforms by how their packages are usually installed.
type OSFamily string

const (
	FamilyLinux   OSFamily = "linux"
	FamilyUnix    OSFamily = "unix"
	FamilyUnknown OSFamily = "unknown"
)

// Family maps a GOOS value to its install-hint family.
func Family(goos string) OSFamily {
	switch goos {
	case "linux", "android":
		return FamilyLinux
	case "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return FamilyUnix
	default:
		return FamilyUnknown
	}
}

// InstallHint returns a human-readable suggestion for installing the
// missing tools on goos. It returns "" when nothing is missing.
func InstallHint(goos string, missing []Status) string {
	if len(missing) == 0 {
		return ""
	}
	packages := packageNames(missing)
	list := strings.Join(packages, " ")

	switch Family(goos) {
	case FamilyLinux:
		return fmt.Sprintf("Install the missing tools with your distribution's package manager, for example:\n  sudo apt install %s\n  sudo dnf install %s", list, list)
	case FamilyUnix:
		return fmt.Sprintf("Install the missing tools with your system package manager, for example:\n  brew install %s\n  pkg install %s", list, list)
	default:
		return fmt.Sprintf("Install %s and make sure the executables are on PATH.", strings.Join(packages, " and "))
	}
}

func packageNames(missing []Status) []string {
	seen := make(map[string]struct{}, len(missing))
	names := make([]string, 0, len(missing))
	for _, status := range missing {
		name := status.Package
		if name == "" {
			name = status.Command
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
