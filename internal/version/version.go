package version

// Version is the current matereview release.
// Bump on every release.
const Version = "0.3.0"

// FullVersion returns the version prefixed with v.
func FullVersion() string {
	return "v" + Version
}
