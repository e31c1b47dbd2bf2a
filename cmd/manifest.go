package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/vidswitch/vidswitch/manifest"
)

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestSchemaCmd)

	manifestSchemaCmd.SetOut(os.Stdout)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the source manifest format",
}

// manifestSchemaCmd prints the JSON schema for manifest files, for editors and validators.
var manifestSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of a source manifest",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(manifest.Schema()))
	},
}
