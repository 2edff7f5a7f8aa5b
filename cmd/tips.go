package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/content"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "List study tips",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		full, _ := cmd.Flags().GetBool("full")

		cat := content.Category(strings.ToLower(category))
		if cat != "" && !slices.Contains(content.Categories, cat) {
			return fmt.Errorf("unknown category %q: must be one of all, academic, career, mental-health", category)
		}

		tips := content.FilterTips(cat, search)
		if len(tips) == 0 {
			fmt.Println("No tips found.")
			return nil
		}

		for _, t := range tips {
			fmt.Printf("%-3s  %-14s  %s\n", t.ID, t.Category, t.Title)
			if full {
				fmt.Printf("     %s\n", t.Content)
				fmt.Printf("     #%s\n\n", strings.Join(t.Tags, " #"))
			}
		}
		if !full {
			fmt.Printf("\n%d tips\n", len(tips))
		}
		return nil
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the quote of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		random, _ := cmd.Flags().GetBool("random")
		q := content.QuoteOfTheDay(time.Now())
		if random {
			q = content.RandomQuote(nil)
		}
		fmt.Println(q)
		return nil
	},
}

func init() {
	tipsCmd.Flags().StringP("category", "c", "all", "Filter by category (all, academic, career, mental-health)")
	tipsCmd.Flags().StringP("search", "s", "", "Only tips whose title, content or tags contain this text")
	tipsCmd.Flags().Bool("full", false, "Print the tip content and tags")

	quoteCmd.Flags().Bool("random", false, "Pick a random quote instead of the quote of the day")
}
