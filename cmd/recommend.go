package cmd

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/edupath/internal/logger"
	"github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/tracks"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend FILE...",
	Short: "Score answer files and print the recommended program",
	Long: `Score one or more answer files (JSON or YAML) and print the recommended
SHS program for each. Files are scored concurrently.

An answer file looks like:

  student: Ama
  answers:
    - question_id: subject_ratings
      kind: rating
      ratings: {Mathematics: 8, English: 6, ...}
    - question_id: learning_style
      kind: choice
      choice: Hands-on activities`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Bool("explain", false, "Print the score breakdown for each file")
	recommendCmd.Flags().String("xlsx", "", "Write a spreadsheet report to this path")
	recommendCmd.Flags().Int("jobs", runtime.NumCPU(), "Number of files scored in parallel")
}

// scored is the outcome for one answer file.
type scored struct {
	Path    string
	Student string
	Result  *recommend.Result
	Err     error
}

func runRecommend(cmd *cobra.Command, args []string) error {
	explain, _ := cmd.Flags().GetBool("explain")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	jobs, _ := cmd.Flags().GetInt("jobs")

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	results, err := scoreFiles(cmd.Context(), eng, args, jobs)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%-24s  error: %v\n", r.Student, r.Err)
			continue
		}
		fmt.Printf("%-24s  %s\n", r.Student, r.Result.Track)
		if explain {
			printBreakdown(r.Result)
		}
	}

	if xlsxPath != "" {
		if err := writeReport(xlsxPath, eng.Config().TrackLabels(), results); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", xlsxPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scored", failed, len(results))
	}
	return nil
}

// scoreFiles loads and scores every path with at most jobs in flight.
// Per-file failures are recorded in the result; only cancellation aborts.
func scoreFiles(ctx context.Context, eng *recommend.Engine, paths []string, jobs int) ([]scored, error) {
	log := logger.Named("recommend")
	results := make([]scored, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scoreFile(eng, path)
			if results[i].Err != nil {
				log.Warn("scoring failed", zap.String("path", path), zap.Error(results[i].Err))
			} else {
				log.Debug("scored", zap.String("path", path), zap.String("track", string(results[i].Result.Track)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scoreFile(eng *recommend.Engine, path string) scored {
	out := scored{Path: path, Student: path}
	sub, err := quiz.LoadSubmission(path)
	if err != nil {
		out.Err = err
		return out
	}
	out.Student = sub.Student
	out.Result, out.Err = eng.Score(sub.Answers)
	return out
}

func printBreakdown(res *recommend.Result) {
	for _, ts := range res.Ranked() {
		marker := " "
		if ts.Track == res.Track {
			marker = "*"
		}
		fmt.Printf("    %s %-16s  base %5.2f  + weight %5.2f  = %6.2f\n",
			marker, ts.Track, ts.Base, ts.Weight, ts.Total)
	}
	names := make([]string, 0, len(res.Aggregates))
	for k := range res.Aggregates {
		names = append(names, k)
	}
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%.2f", k, res.Aggregates[k])
	}
	fmt.Printf("    aggregates: %s\n", strings.Join(parts, " "))
	fmt.Printf("    careers: %s\n\n", strings.Join(tracks.Lookup(res.Track).Careers, ", "))
}

// writeReport saves one row per file with the recommendation and every
// track total.
func writeReport(path string, labels []quiz.Track, results []scored) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Recommendations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	header := []any{"Student", "File", "Recommendation"}
	for _, l := range labels {
		header = append(header, string(l))
	}
	header = append(header, "Error")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	for i, r := range results {
		row := []any{r.Student, r.Path}
		if r.Err != nil {
			row = append(row, "")
			for range labels {
				row = append(row, "")
			}
			row = append(row, r.Err.Error())
		} else {
			row = append(row, string(r.Result.Track))
			totals := make(map[quiz.Track]float64, len(r.Result.Scores))
			for _, ts := range r.Result.Scores {
				totals[ts.Track] = ts.Total
			}
			for _, l := range labels {
				row = append(row, totals[l])
			}
			row = append(row, "")
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
