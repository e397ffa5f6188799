package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/rss"
)

var (
	feedConfig  string
	feedURLs    []string
	feedSection string
	feedOut     string
)

var feedCmd = &cobra.Command{
	Use:   "import-feed",
	Short: "Import RSS/Atom feeds into a JSON dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls := append([]string(nil), feedURLs...)
		if feedConfig != "" {
			listed, err := rss.LoadFeeds(feedConfig)
			if err != nil {
				return fmt.Errorf("load feeds: %w", err)
			}
			urls = append(urls, listed...)
		}
		if len(urls) == 0 {
			return fmt.Errorf("no feeds: pass --feeds or --url")
		}

		im := rss.NewImporter(feedSection, cfg.FetchTimeout, cfg.UserAgent)
		items := im.FetchAllFeeds(cmd.Context(), urls)

		out := feedOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, feedSection+".json")
		}
		if err := dataset.WriteSnapshot(out, items, time.Now()); err != nil {
			return err
		}
		logger.Info("feed import finished", "items", len(items), "json", out)
		return nil
	},
}

func init() {
	f := feedCmd.Flags()
	f.StringVar(&feedConfig, "feeds", "", "YAML file listing feed URLs")
	f.StringSliceVar(&feedURLs, "url", nil, "Feed URL (repeatable)")
	f.StringVar(&feedSection, "section", "feeds", "Section recorded on imported items")
	f.StringVar(&feedOut, "out", "", "JSON output path (default <DATA_DIR>/<section>.json)")
	rootCmd.AddCommand(feedCmd)
}
