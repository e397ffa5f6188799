package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/stats"
)

var (
	statsDataset  string
	statsSection  string
	statsCategory string
	statsQ        string
	statsStart    string
	statsEnd      string
	statsJSON     bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate the dataset corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := stats.Query{
			Section:  statsSection,
			Category: statsCategory,
			Q:        statsQ,
			StartYm:  statsStart,
			EndYm:    statsEnd,
		}.Normalize()
		if err := q.Validate(); err != nil {
			return err
		}

		sources, err := cfg.Sources()
		if err != nil {
			return fmt.Errorf("datasets: %w", err)
		}
		locations, err := sources.Resolve(statsDataset)
		if err != nil {
			return err
		}
		corpus := dataset.NewLoader(cfg.FetchTimeout, 0).Merge(cmd.Context(), locations)

		res, err := stats.Aggregate(corpus, q)
		if err != nil {
			return err
		}
		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printStats(os.Stdout, res)
		return nil
	},
}

func printStats(w io.Writer, res stats.Result) {
	fmt.Fprintf(w, "Total: %d\n\n", res.Total)

	rows := [][]string{{"Category", "Count"}}
	for _, c := range res.ByCategory {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Count)})
	}
	writeTable(w, rows)
	fmt.Fprintln(w)

	rows = [][]string{{"Section", "Count"}}
	for _, s := range res.BySection {
		rows = append(rows, []string{s.Section, strconv.Itoa(s.Count)})
	}
	writeTable(w, rows)
	fmt.Fprintln(w)

	rows = [][]string{{"Month", "Count"}}
	for i, label := range res.ByYearMonth.Labels {
		rows = append(rows, []string{label, strconv.Itoa(res.ByYearMonth.Counts[i])})
	}
	writeTable(w, rows)
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsDataset, "dataset", "", "Dataset path (inside DATA_DIR) or URL")
	f.StringVar(&statsSection, "section", "", "Section filter (\"all\" for none)")
	f.StringVar(&statsCategory, "category", "", "Category filter (\"all\" for none)")
	f.StringVar(&statsQ, "q", "", "Case-insensitive text search")
	f.StringVar(&statsStart, "start", "", "First month, YYYY-MM")
	f.StringVar(&statsEnd, "end", "", "Last month, YYYY-MM")
	f.BoolVar(&statsJSON, "json", false, "Print the JSON response")
	rootCmd.AddCommand(statsCmd)
}
