// Package misc keeps build time information.
package misc

// Set with -ldflags "-X csstweak/misc.version=... -X csstweak/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
	appName = "tweak"
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit the program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}
