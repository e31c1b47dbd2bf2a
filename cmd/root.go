// Package cmd implements the command-line interface for vidswitch.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/color"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/icon"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/style"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	registerSourceFlags(rootCmd)
	registerPlayFlags(rootCmd)
}

// rootCmd plays a manifest when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   constant.Vidswitch + " [manifest]",
	Short: "Switch video quality without losing your place",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Switch video quality without losing your place"),
	Args: cobra.MaximumNArgs(1),
	Example: `  vidswitch movie.json
  vidswitch https://cdn.example.com/master.m3u8 --default 720
  vidswitch --src https://cdn.example.com/480.mp4,video/mp4,SD,480 --src https://cdn.example.com/1080.mp4,video/mp4,HD,1080`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		playCmd.Run(cmd, args)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
