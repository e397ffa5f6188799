package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/classify"
)

var categoriesKeywords bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the classifier's categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		printCategories(os.Stdout, classify.Catalogue(), categoriesKeywords)
		return nil
	},
}

func printCategories(w io.Writer, cats []classify.Category, withKeywords bool) {
	header := []string{"#", "Category", "Keywords"}
	rows := [][]string{header}
	for i, c := range cats {
		kw := strconv.Itoa(len(c.Keywords))
		if withKeywords {
			phrases := make([]string, len(c.Keywords))
			for j, k := range c.Keywords {
				phrases[j] = fmt.Sprintf("%s(%d)", k.Phrase, k.Weight)
			}
			kw = strings.Join(phrases, ", ")
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Name, kw})
	}
	writeTable(w, rows)
	fmt.Fprintf(w, "\nDefault: %s (score below %d)\n", classify.DefaultCategory, classify.ConfidenceFloor)
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesKeywords, "keywords", false, "Show every keyword with its weight")
	rootCmd.AddCommand(categoriesCmd)
}
