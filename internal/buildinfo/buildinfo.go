// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "dev"
	Codename   = "Swell"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// UserAgent is sent on outbound forecast requests.
func UserAgent() string {
	return "easysurf/" + Version
}
