// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vidswitch is the canonical application identifier used for filesystem paths and CLI branding.
	Vidswitch = "vidswitch"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the HTTP User-Agent string used when fetching remote manifests.
	UserAgent = Vidswitch + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Mime types recognized when sources are read from manifests.
const (
	MimeHLS  = "application/vnd.apple.mpegurl"
	MimeDASH = "application/dash+xml"
	MimeMP4  = "video/mp4"
	MimeWebM = "video/webm"
)

// runtime.GOOS values with platform specific behavior.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
