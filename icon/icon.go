// Package icon renders the symbols used in the menu and CLI output.
//
// Every symbol has a form per variant so users without emoji or nerd-font
// support can pick plain text.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the values accepted by icons.variant.
func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

// iconDef holds one symbol in every variant.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(variant string) string {
	return map[string]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[variant]
}

// Get renders i in the configured variant. Unknown icons and variants render as "".
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	return def.in(viper.GetString(key.IconsVariant))
}
