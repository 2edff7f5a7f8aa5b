package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/tracks"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the question catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the questions in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("Catalog %s  (%d questions)\n", c.Version, c.Len())
		fmt.Println(strings.Repeat("─", 72))

		for i, q := range c.Questions {
			fmt.Printf("%d. %s  [%s, %s]\n", i+1, q.Prompt, q.ID, q.Kind)
			for _, it := range q.Items() {
				fmt.Printf("     - %s\n", it)
			}
			if q.Kind == quiz.KindRating {
				fmt.Printf("     (rate each %d-%d)\n", quiz.MinRating, quiz.MaxRating)
			}
			fmt.Println()
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [PATH]",
	Short: "Validate a catalog file and the scoring table against it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c   *quiz.Catalog
			err error
		)
		source := "built-in catalog"
		if len(args) == 1 {
			source = args[0]
			c, err = quiz.Load(args[0])
		} else {
			if cfg != nil && cfg.Catalog.Path != "" {
				source = cfg.Catalog.Path
			}
			c, err = loadCatalog()
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s: %d questions, version %s\n", source, c.Len(), c.Version)

		engCfg := recommend.DefaultConfig()
		engSource := "built-in scoring table"
		if cfg != nil && cfg.Engine.Path != "" {
			engSource = cfg.Engine.Path
			if engCfg, err = recommend.LoadConfig(cfg.Engine.Path); err != nil {
				return err
			}
		}
		if err := engCfg.Validate(c); err != nil {
			return fmt.Errorf("%s: %w", engSource, err)
		}
		fmt.Printf("✓ %s: %d tracks, %d bonuses\n", engSource, len(engCfg.Tracks), len(engCfg.Bonuses))
		return nil
	},
}

var catalogTracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List the SHS programs and example careers",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}

		fmt.Printf("%-18s  %s\n", "Program", "Careers")
		fmt.Println(strings.Repeat("─", 90))
		for _, t := range eng.Config().TrackLabels() {
			d := tracks.Lookup(t)
			if !tracks.Known(t) {
				d.Careers = nil
			}
			fmt.Printf("%-18s  %s\n", t, strings.Join(d.Careers, ", "))
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogTracksCmd)
}
