// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// UserConfigDir returns where named configs are looked up. Replaced in tests.
var UserConfigDir = os.UserConfigDir

// ForConfigNotFound suggests --config with a path, or creating the named
// config in the user config directory.
func ForConfigNotFound(name string) string {
	hint := "use --config /path/to/file.yaml"
	if name == "" || strings.ContainsAny(name, `/\`) {
		return format(hint)
	}
	if dir, err := UserConfigDir(); err == nil {
		hint += " or create " + filepath.Join(dir, "hiverender", name+".yaml")
	}
	return format(hint)
}

// ForDangerousContent explains how to get past a security rejection.
func ForDangerousContent() string {
	return format("remove <script> elements from the post; --allow-insecure-scripts only for trusted input")
}

// ForExtension lists the accepted input extensions.
func ForExtension(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("supported extensions: " + strings.Join(extensions, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMultipleOutputs is shown when several inputs target one .html file.
func ForMultipleOutputs() string {
	return format("pass a directory to --output when rendering several files")
}

// ForUnknownPlugin lists the plugins a config may enable.
func ForUnknownPlugin(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidConfig points at --print-config.
func ForInvalidConfig() string {
	return format("run with --print-config to see the effective configuration")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
