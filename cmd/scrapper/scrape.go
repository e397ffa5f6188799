package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/app"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/retry"
	"github.com/asisr38/scrapper/internal/scraper"
)

var (
	scrapeSection      string
	scrapeBaseURL      string
	scrapeStartPage    int
	scrapeMaxPages     int
	scrapeDelay        time.Duration
	scrapeFetchArticle bool
	scrapeSummarize    bool
	scrapeSentences    int
	scrapeOut          string
	scrapeJSONOut      string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a listing section into CSV and a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, ok := scraper.LookupSection(scrapeSection)
		if !ok {
			return fmt.Errorf("unknown section %q (one of %s)", scrapeSection, strings.Join(scraper.SectionKeys(), ", "))
		}
		delay := cfg.ScrapeDelay
		if cmd.Flags().Changed("delay") {
			delay = scrapeDelay
		}

		job := app.NewJob(scraper.NewFetcher(cfg.FetchTimeout, cfg.UserAgent), app.Options{
			Section:          section,
			BaseURL:          scrapeBaseURL,
			StartPage:        scrapeStartPage,
			MaxPages:         scrapeMaxPages,
			Delay:            delay,
			FetchArticle:     scrapeFetchArticle,
			Summarize:        scrapeSummarize,
			SummarySentences: scrapeSentences,
			Retry: retry.RetryConfig{
				MaxAttempts: cfg.RetryAttempts,
				Delay:       cfg.RetryDelay,
			},
		})
		items, err := job.Run(cmd.Context())
		if err != nil {
			if len(items) == 0 {
				return err
			}
			logger.Warn("scrape stopped early", "error", err, "items", len(items))
		}

		csvPath, jsonPath := app.DefaultOutputs(cfg.DataDir, section.Key)
		if scrapeOut != "" {
			csvPath, jsonPath = scrapeOut, app.JSONPathFor(scrapeOut)
		}
		if scrapeJSONOut != "" {
			jsonPath = scrapeJSONOut
		}
		if err := app.WriteOutputs(items, csvPath, jsonPath, time.Now()); err != nil {
			return err
		}
		logger.Info("scrape finished", "section", section.Key, "items", len(items), "csv", csvPath, "json", jsonPath)
		return nil
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeSection, "section", "news", "Section: "+strings.Join(scraper.SectionKeys(), ", "))
	f.StringVar(&scrapeBaseURL, "base-url", scraper.DefaultBaseURL, "Site base URL")
	f.IntVar(&scrapeStartPage, "start-page", 1, "First listing page")
	f.IntVar(&scrapeMaxPages, "max-pages", 10, "Maximum listing pages to fetch")
	f.DurationVar(&scrapeDelay, "delay", 0, "Delay between listing pages (default SCRAPE_DELAY_MS)")
	f.BoolVar(&scrapeFetchArticle, "fetch-article", false, "Fetch each item page and extract its text")
	f.BoolVar(&scrapeSummarize, "summarize", false, "Write an extractive article summary")
	f.IntVar(&scrapeSentences, "summary-sentences", app.DefaultSummarySentences, "Summary length in sentences (1-8)")
	f.StringVar(&scrapeOut, "out", "", "CSV output path (default <DATA_DIR>/<section>.csv)")
	f.StringVar(&scrapeJSONOut, "json-out", "", "JSON snapshot path (default next to the CSV)")
	rootCmd.AddCommand(scrapeCmd)
}
