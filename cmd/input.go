package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/manifest"
	"github.com/vidswitch/vidswitch/switcher"
)

var errNoInput = errors.New("no sources given, pass a manifest or at least one --src")

// flagKeys maps flags shared by several commands to their config keys.
// They are copied into viper only when set, so one key can back flags on many commands.
var flagKeys = map[string]string{
	"default":      key.SwitchDefault,
	"timeout":      key.SwitchTimeout,
	"static-label": key.LabelStatic,
}

func registerSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("src", "s", []string{}, "Add a source as url,type,label,res (repeatable)")
	cmd.Flags().StringP("title", "t", "", "Override the media title")
	cmd.Flags().StringP("default", "d", "", "Default quality: low, high or a resolution value such as 720")
	lo.Must0(cmd.RegisterFlagCompletionFunc("default", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{switcher.Low.String(), switcher.High.String()}, cobra.ShellCompDirectiveNoFileComp
	}))
}

func registerPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("static-label", "", "Always show this label instead of the active quality")
	cmd.Flags().String("timeout", "", "How long a switch waits for the new source, e.g. 10s (0 waits forever)")
}

// applyFlags copies the changed shared flags into viper.
func applyFlags(flags *pflag.FlagSet) {
	for name, k := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		viper.Set(k, flag.Value.String())
		if name == "static-label" {
			viper.Set(key.LabelDynamic, false)
		}
	}
}

// loadManifest reads sources from the manifest argument or from --src flags.
func loadManifest(ctx context.Context, cmd *cobra.Command, args []string) (*manifest.Manifest, error) {
	var (
		flags = lo.Must(cmd.Flags().GetStringArray("src"))
		title = lo.Must(cmd.Flags().GetString("title"))
	)

	if len(args) > 0 && len(flags) > 0 {
		return nil, errors.New("pass either a manifest or --src flags, not both")
	}

	var (
		m   *manifest.Manifest
		err error
	)
	switch {
	case len(args) > 0:
		m, err = manifest.Load(ctx, args[0])
	case len(flags) > 0:
		m, err = manifest.FromFlags(title, flags)
	default:
		return nil, errNoInput
	}
	if err != nil {
		return nil, err
	}

	if title != "" {
		m.Title = title
	}
	return m, nil
}

// switcherOptions builds the switcher configuration from viper.
func switcherOptions() (switcher.Options, error) {
	timeout, err := parseTimeout(viper.GetString(key.SwitchTimeout))
	if err != nil {
		return switcher.Options{}, err
	}

	return switcher.Options{
		Default:      switcher.ParseDefault(viper.GetString(key.SwitchDefault)),
		DynamicLabel: viper.GetBool(key.LabelDynamic),
		StaticLabel:  viper.GetString(key.LabelStatic),
		Timeout:      timeout,
	}, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" || raw == "0" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key.SwitchTimeout, raw, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key.SwitchTimeout, raw)
	}
	return timeout, nil
}
