package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Platform identifies a conda subdir a lock artifact is resolved for.
type Platform string

const (
	// PlatformLinux64 is 64-bit Linux.
	PlatformLinux64 Platform = "linux-64"
	// PlatformOSX64 is Intel macOS.
	PlatformOSX64 Platform = "osx-64"
	// PlatformOSXArm64 is Apple Silicon macOS.
	PlatformOSXArm64 Platform = "osx-arm64"
	// PlatformWin64 is 64-bit Windows.
	PlatformWin64 Platform = "win-64"
)

// DefaultPlatforms returns the platform matrix used when the workspace
// manifest does not declare one.
func DefaultPlatforms() []Platform {
	return []Platform{PlatformLinux64, PlatformOSX64, PlatformOSXArm64, PlatformWin64}
}

// ParsePlatform validates a platform string against the supported enumeration.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformLinux64, PlatformOSX64, PlatformOSXArm64, PlatformWin64:
		return Platform(s), nil
	}
	return "", zerr.With(ErrUnsupportedPlatform, "platform", s)
}

// HostPlatform maps the running OS and architecture onto the supported
// enumeration. Descriptor-only validation runs on the host, so it needs no
// platform matrix.
func HostPlatform() Platform {
	switch {
	case runtime.GOOS == "darwin" && runtime.GOARCH == "arm64":
		return PlatformOSXArm64
	case runtime.GOOS == "darwin":
		return PlatformOSX64
	case runtime.GOOS == "windows":
		return PlatformWin64
	default:
		return PlatformLinux64
	}
}

// String returns the conda subdir name.
func (p Platform) String() string {
	return string(p)
}
