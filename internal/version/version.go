// Package version carries flint's build identity. The variables are plain
// strings so release builds can override them via -ldflags.
package version

var (
	// Version is the semantic version of the flint CLI.
	Version = "0.1.0-dev"

	// Commit is an optional git commit hash.
	Commit = ""

	// BuildDate is an optional ISO-8601 build date.
	BuildDate = ""
)

// String returns the version with commit and date appended when known.
func String() string {
	s := Version
	if Commit != "" {
		s += " (" + Commit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
