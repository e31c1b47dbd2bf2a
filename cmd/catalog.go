package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/catalog"
	"github.com/vidswitch/vidswitch/color"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/manifest"
	"github.com/vidswitch/vidswitch/source"
	"github.com/vidswitch/vidswitch/style"
	"github.com/vidswitch/vidswitch/switcher"
	"github.com/vidswitch/vidswitch/util"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	registerSourceFlags(catalogCmd)
	catalogCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")

	catalogCmd.SetOut(os.Stdout)
}

// catalogCmd prints how a manifest is sorted and grouped, and which quality plays first.
var catalogCmd = &cobra.Command{
	Use:     "catalog [manifest]",
	Short:   "Show the sorted sources of a manifest and the quality picked by default",
	Args:    cobra.MaximumNArgs(1),
	Example: "  vidswitch catalog movie.json --default 720",
	Run: func(cmd *cobra.Command, args []string) {
		applyFlags(cmd.Flags())

		m, err := loadManifest(cmd.Context(), cmd, args)
		handleErr(err)

		d := switcher.ParseDefault(viper.GetString(key.SwitchDefault))
		handleErr(printCatalog(cmd.OutOrStdout(), m, d, lo.Must(cmd.Flags().GetBool("json"))))
	},
}

type catalogJSON struct {
	Title        string           `json:"title"`
	Sources      []*source.Source `json:"sources"`
	ByLabel      *catalog.Index   `json:"byLabel"`
	ByResolution *catalog.Index   `json:"byResolution"`
	ByType       *catalog.Index   `json:"byType"`
	Default      string           `json:"default"`
	Selected     string           `json:"selected"`
}

func printCatalog(w io.Writer, m *manifest.Manifest, d switcher.Default, asJSON bool) error {
	c, err := catalog.Build(m.Sources)
	if err != nil {
		return err
	}

	selection, err := switcher.Choose(c, d)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(catalogJSON{
			Title:        m.Title,
			Sources:      c.Ordered(),
			ByLabel:      c.ByLabel(),
			ByResolution: c.ByResolution(),
			ByType:       c.ByType(),
			Default:      d.String(),
			Selected:     selection.Label,
		})
	}

	var (
		header = style.New().Bold(true).Foreground(color.HiPurple).Render
		faint  = style.Faint
	)

	if m.Title != "" {
		_, _ = fmt.Fprintln(w, style.Bold(m.Title))
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, header("Sources"))
	for i, s := range c.Ordered() {
		_, _ = fmt.Fprintf(w, "%2d. %-10s %s %s\n",
			i+1,
			s.Label,
			style.Fg(color.Yellow)(lo.Ternary(s.Res == "", "-", s.Res)),
			faint(s.Type+" "+s.URL),
		)
	}

	indices := []struct {
		name  string
		index *catalog.Index
	}{
		{"By label", c.ByLabel()},
		{"By resolution", c.ByResolution()},
		{"By type", c.ByType()},
	}

	for _, idx := range indices {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, header(idx.name))
		for pair := idx.index.Oldest(); pair != nil; pair = pair.Next() {
			_, _ = fmt.Fprintf(w, "  %-10s %s\n",
				lo.Ternary(pair.Key == "", "(none)", pair.Key),
				faint(util.Quantify(len(pair.Value), "source", "sources")),
			)
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s %s %s %s\n",
		header("Default"),
		d.String(),
		faint("->"),
		style.Fg(color.Green)(selection.Label),
	)
	return nil
}
