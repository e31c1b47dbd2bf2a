package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Progress
	Mark
	Play
	Pause
	Stale
	Timeout
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[fail]",
		kaomoji: "(╯°□°)╯",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "[!]",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・ω・)",
		squares: "🟦",
	},
	Mark: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟪",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "[play]",
		kaomoji: "ヽ(•‿•)ノ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "[pause]",
		kaomoji: "(－_－) zzZ",
		squares: "🟫",
	},
	Stale: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   "[skipped]",
		kaomoji: "┐(´～`)┌",
		squares: "⬜",
	},
	Timeout: {
		emoji:   "⌛",
		nerd:    "",
		plain:   "[timeout]",
		kaomoji: "(￣ー￣)",
		squares: "🟧",
	},
}
