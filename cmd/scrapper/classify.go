package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/analyze"
	"github.com/asisr38/scrapper/internal/scraper"
)

var classifyRemote bool

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Summarize and classify one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("not an http(s) URL: %s", args[0])
		}

		adapter, _, closeRemote, err := remote(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRemote()

		an := analyze.New(scraper.NewFetcher(cfg.FetchTimeout, cfg.UserAgent), adapter)
		res := an.Analyze(cmd.Context(), args[0], classifyRemote)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyRemote, "remote", false, "Ask the configured remote provider first")
	rootCmd.AddCommand(classifyCmd)
}
