// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Source Selection - these keys drive the default-selection policy and the switch protocol.
const (
	SwitchDefault = "switch.default"
	SwitchTimeout = "switch.timeout"
)

// Quality Label - these keys control how the active quality is presented.
const (
	LabelDynamic = "label.dynamic"
	LabelStatic  = "label.static"
)

// Media Playback - these keys maintain the state and configuration for external video players.
const (
	Player        = "player.default"
	PlayerMpvArgs = "player.mpv_args"
)

// Manifests - these keys govern how source manifests are fetched.
const (
	ManifestCacheTTL = "manifest.cache_ttl"
)

// Metrics - these keys configure the optional prometheus endpoint.
const (
	MetricsListen = "metrics.listen"
)

// Terminal User Interface (TUI) - these keys define the quality menu styling.
const (
	TUIItemSpacing = "tui.item_spacing"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
