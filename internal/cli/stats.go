package cli

import (
	"fmt"
	"io"
	"runlog/internal/di"
	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/query"
	"runlog/internal/statistic"
	"time"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals",
		Long: `Show distance, time and average pace of completed runs.

Without --by it prints this week, this month and all time. With --by week or
--by month it prints one line per calendar bucket, oldest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if by != "" && by != "week" && by != "month" {
				return fmt.Errorf("unknown bucket %q, expected week or month", by)
			}
			return withStore(opts, func(store *di.Store) error {
				w := cmd.OutOrStdout()
				runs := store.Service.Runs()
				switch by {
				case "week":
					printBuckets(w, statistic.BucketSummaries(statistic.GroupByWeek(completed(runs))))
				case "month":
					printBuckets(w, statistic.BucketSummaries(statistic.GroupByMonth(completed(runs))))
				default:
					s := statistic.Summarize(runs, time.Now())
					printTotals(w, "This week", s.Week)
					printTotals(w, "This month", s.Month)
					printTotals(w, "All time", s.AllTime)
					fmt.Fprintf(w, "Longest run: %.2f km\n", s.LongestKm)
					fmt.Fprintf(w, "Planned: %d\n", s.Planned)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "week or month")
	return cmd
}

func completed(runs []models.RunEntry) []models.RunEntry {
	return query.Apply(runs, query.Filter{Status: string(models.StatusDone)})
}

func printTotals(w io.Writer, label string, t statistic.PeriodTotals) {
	fmt.Fprintf(w, "%-11s %3d runs  %8.2f km  %s  %s/km\n",
		label+":", t.Count, t.DistanceKm, pace.FormatDuration(t.DurationSec), pace.FormatPace(t.AvgPaceSecPerKm))
}

func printBuckets(w io.Writer, buckets []statistic.Bucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "No completed runs")
		return
	}
	for _, b := range buckets {
		printTotals(w, b.Key, b.PeriodTotals)
	}
}
