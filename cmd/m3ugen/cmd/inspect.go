package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tvheadless/m3ugen/pkg/format"
	"github.com/tvheadless/m3ugen/pkg/m3u"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize an existing playlist file",
	Long: `Parse a playlist file and print entry and group counts. Gzip, bzip2,
and xz compressed playlists are detected and decompressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening playlist: %w", err)
	}
	defer f.Close()

	var (
		total     int
		noURL     int
		malformed int
		groups    = make(map[string]int)
	)

	parser := &m3u.Parser{
		OnEntry: func(entry *m3u.Entry) error {
			total++
			if entry.URL == "" {
				noURL++
			}
			group := entry.GroupTitle
			if group == "" {
				group = "(none)"
			}
			groups[group]++
			return nil
		},
		OnError: func(lineNum int, err error) {
			malformed++
		},
	}

	if err := parser.ParseCompressed(f); err != nil {
		return fmt.Errorf("parsing playlist: %w", err)
	}

	fmt.Printf("%s: %s in %s\n",
		path,
		format.Count(int64(total), "channel"),
		format.Count(int64(len(groups)), "group"),
	)
	if malformed > 0 {
		fmt.Printf("  %d malformed EXTINF lines skipped\n", malformed)
	}
	if noURL > 0 {
		fmt.Printf("  %d entries without a stream URL\n", noURL)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-30s %s\n", name, format.Count(int64(groups[name]), "channel"))
	}
	return nil
}
