package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tvheadless/m3ugen/internal/playlist"
	"github.com/tvheadless/m3ugen/pkg/format"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the playlist once and exit",
	Long: `Load the configuration, ingest every configured source in order, and
write the playlist file. Failing sources are logged and skipped; the
command fails only when the configuration cannot be loaded or the
output file cannot be written.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "playlist output path (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}

	g := playlist.NewGenerator(cfg, logger)
	result, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s to %s in %s\n",
		format.Count(int64(result.Written), "channel"),
		result.Output,
		format.Duration(result.Duration),
	)
	for _, sr := range result.Sources {
		if sr.Err != nil {
			fmt.Printf("  %s (%s): failed: %v\n", sr.Name, sr.Type, sr.Err)
			continue
		}
		fmt.Printf("  %s (%s): %s, %d skipped\n",
			sr.Name, sr.Type,
			format.Count(int64(sr.Stats.Emitted), "channel"),
			sr.Stats.Skipped,
		)
	}
	return nil
}
