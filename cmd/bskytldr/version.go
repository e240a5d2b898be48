package main

import "runtime/debug"

// readBuildInfo wraps debug.ReadBuildInfo, returning nil when no build info
// is embedded.
func readBuildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// resolveVersion picks the effective version string: an ldflags-injected
// version wins; otherwise the module version recorded by `go install` is
// used, so installed binaries still report something meaningful.
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info == nil {
		return ldflagsVersion
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return ldflagsVersion
}
