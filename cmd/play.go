package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/manifest"
	"github.com/vidswitch/vidswitch/metrics"
	"github.com/vidswitch/vidswitch/player"
	"github.com/vidswitch/vidswitch/switcher"
	"github.com/vidswitch/vidswitch/tui"
	"github.com/vidswitch/vidswitch/util"
)

func init() {
	rootCmd.AddCommand(playCmd)
	registerSourceFlags(playCmd)
	registerPlayFlags(playCmd)
}

// playCmd launches the player on the default quality and opens the quality menu.
var playCmd = &cobra.Command{
	Use:   "play [manifest]",
	Short: "Play a manifest and open the quality menu",
	Long: `Launch the player with the default quality and open the quality menu.
The manifest is a JSON file, an HLS master playlist or a URL to either.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  vidswitch play https://cdn.example.com/master.m3u8 --default high",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		applyFlags(cmd.Flags())

		m, err := loadManifest(ctx, cmd, args)
		handleErr(err)

		opts, err := switcherOptions()
		handleErr(err)

		handleErr(play(ctx, m, opts))
	},
}

func play(ctx context.Context, m *manifest.Manifest, opts switcher.Options) error {
	name := viper.GetString(key.Player)
	CheckDependencies(name)

	p, err := player.New(name, viper.GetStringSlice(key.PlayerMpvArgs))
	if err != nil {
		return err
	}

	if err := p.Start(ctx, m.Title); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	defer util.Ignore(p.Close)

	if addr := viper.GetString(key.MetricsListen); addr != "" {
		recorder, err := metrics.New(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		opts.Recorder = recorder

		go func() {
			if err := recorder.Serve(ctx, addr); err != nil {
				log.Errorf("metrics: %v", err)
			}
		}()
	}

	s := switcher.New(p, opts)
	if err := s.Load(ctx, m.Sources); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"title":   m.Title,
		"sources": len(m.Sources),
		"default": opts.Default.String(),
		"label":   s.Label(),
	}).Info("sources loaded")

	return tui.Run(ctx, &tui.Options{
		Title:    m.Title,
		Switcher: s,
		Player:   p,
	})
}
