// Package config registers every setting with its default and description, and loads them through viper.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/color"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/style"
)

// Field is a single setting: its key, default value and a human description.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the key prefix the field is grouped under, e.g. "switch".
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	name := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Vidswitch) + "_"
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

func (f *Field) typeName() string {
	return fmt.Sprintf("%T", f.Value)
}

// Pretty renders the field with its current value for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(fieldTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"section":     f.Section(),
		"env":         f.Env(),
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"type":        f.typeName(),
		"description": f.Description,
	})
}

// Default maps each key to its field.
var Default = make(map[string]Field)

// EnvExposed lists keys in registration order; all of them are bound to the environment.
var EnvExposed []string

var fields = []Field{
	{key.SwitchDefault, "", "Quality picked when sources are loaded.\nAvailable options are: low, high or a resolution value such as 720\nUnset or unknown values select the lowest quality"},
	{key.SwitchTimeout, "30s", "How long a switch waits for the new source to become ready.\nSet to 0 to wait indefinitely"},

	{key.LabelDynamic, true, "Show the active quality label next to the menu title"},
	{key.LabelStatic, "Quality", "Label shown when dynamic labels are disabled"},

	{key.Player, "mpv", "Media player to use"},
	{key.PlayerMpvArgs, []string{}, "Extra arguments passed to mpv on launch"},

	{key.ManifestCacheTTL, "1h", "How long fetched remote manifests are cached"},
	{key.MetricsListen, "", "Address to expose prometheus metrics on, e.g. 127.0.0.1:9120\nEmpty disables the endpoint"},

	{key.TUIItemSpacing, 0, "Spacing between items in the quality menu"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
	{key.CliColored, true, "Enable colored CLI output"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
}

func init() {
	for _, f := range fields {
		if _, ok := Default[f.Key]; ok {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

func highlight(v any) string {
	switch v := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(v, color.Green, color.Red))(strconv.FormatBool(v))
	case string:
		if v == "" {
			return style.Faint("(empty)")
		}
		return style.Fg(color.Yellow)(v)
	default:
		return fmt.Sprint(v)
	}
}

var fieldTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"label":   style.Fg(color.Blue),
	"name":    style.Fg(color.Purple),
	"section": style.Fg(color.Cyan),
	"hl":      highlight,
	"current": func(k string) any { return viper.Get(k) },
}).Parse(`{{ section (printf "[%s]" .Section) }} {{ name .Key }}
{{ faint .Description }}
{{ label "env     " }} {{ .Env }}
{{ label "value   " }} {{ hl (current .Key) }}
{{ label "default " }} {{ hl .Value }} {{ printf "%T" .Value | faint }}`))
