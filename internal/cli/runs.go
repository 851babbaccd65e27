package cli

import (
	"fmt"
	"io"
	"runlog/internal/di"
	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/query"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// entryFlags holds the editable fields shared by add and update.
type entryFlags struct {
	date     string
	distance float64
	duration string
	runType  string
	rpe      int
	tags     []string
	notes    string
	status   string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&f.distance, "distance", 0, "distance in km")
	cmd.Flags().StringVar(&f.duration, "duration", "", "duration as H:MM:SS, MM:SS or seconds")
	cmd.Flags().StringVar(&f.runType, "type", string(models.RunEasy), "run type")
	cmd.Flags().IntVar(&f.rpe, "rpe", 0, "effort 1-10, 0 for none")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "comma separated tags")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&f.status, "status", "", "planned or done")
}

// apply copies every flag the user set onto entry.
func (f *entryFlags) apply(cmd *cobra.Command, entry *models.RunEntry) error {
	changed := cmd.Flags().Changed
	if changed("date") {
		if _, err := time.Parse("2006-01-02", f.date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", f.date)
		}
		entry.Date = f.date
	}
	if changed("distance") {
		if f.distance < 0 {
			return fmt.Errorf("distance must not be negative")
		}
		entry.DistanceKm = f.distance
	}
	if changed("duration") {
		entry.DurationSec = pace.ParseDurationLoose(f.duration)
	}
	if changed("type") {
		t, ok := models.ParseRunType(f.runType)
		if !ok {
			return fmt.Errorf("unknown run type %q", f.runType)
		}
		entry.Type = t
	}
	if changed("rpe") {
		switch {
		case f.rpe == 0:
			entry.RPE = nil
		case f.rpe < 1 || f.rpe > 10:
			return fmt.Errorf("rpe must be between 1 and 10")
		default:
			rpe := f.rpe
			entry.RPE = &rpe
		}
	}
	if changed("tags") {
		entry.Tags = f.tags
	}
	if changed("notes") {
		entry.Notes = f.notes
	}
	if changed("status") {
		s, ok := models.ParseRunStatus(f.status)
		if !ok {
			return fmt.Errorf("unknown status %q", f.status)
		}
		entry.Status = s
	}
	return nil
}

func printEntry(w io.Writer, r models.RunEntry) {
	fmt.Fprintf(w, "%s  %s  %6.2f km  %s  %s/km  %-9s %-7s %s\n",
		r.ID, r.Date, r.DistanceKm, pace.FormatDuration(r.DurationSec), pace.FormatPace(r.PaceSecPerKm),
		r.Type, r.EffectiveStatus(), strings.Join(r.Tags, ","))
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a run or plan one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := models.RunEntry{Date: time.Now().Format("2006-01-02"), Type: models.RunEasy}
			if err := f.apply(cmd, &entry); err != nil {
				return err
			}
			return withStore(opts, func(store *di.Store) error {
				added := store.Service.Add(models.RunDraft{
					Date:        entry.Date,
					DistanceKm:  entry.DistanceKm,
					DurationSec: entry.DurationSec,
					Type:        entry.Type,
					RPE:         entry.RPE,
					Tags:        entry.Tags,
					Notes:       entry.Notes,
					Status:      entry.Status,
				})
				printEntry(cmd.OutOrStdout(), added)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *di.Store) error {
				entry, ok := store.Service.Get(args[0])
				if !ok {
					return fmt.Errorf("no run with id %s", args[0])
				}
				if err := f.apply(cmd, &entry); err != nil {
					return err
				}
				store.Service.Update(entry)
				updated, _ := store.Service.Get(args[0])
				printEntry(cmd.OutOrStdout(), updated)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filter query.Filter
	var sortKey, sortDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, dir, err := query.ParseSort(sortKey, sortDir)
			if err != nil {
				return err
			}
			return withStore(opts, func(store *di.Store) error {
				runs := query.Sort(query.Apply(store.Service.Runs(), filter), key, dir)
				if asJSON {
					data, err := json.MarshalIndent(runs, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs found")
					return nil
				}
				for _, r := range runs {
					printEntry(cmd.OutOrStdout(), r)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter.Type, "type", "", "only this run type")
	cmd.Flags().StringVar(&filter.Status, "status", "", "only planned or done")
	cmd.Flags().StringVar(&filter.From, "from", "", "first date, inclusive")
	cmd.Flags().StringVar(&filter.To, "to", "", "last date, inclusive")
	cmd.Flags().StringVar(&filter.Text, "text", "", "search tags and notes")
	cmd.Flags().StringVar(&sortKey, "sort", "date", "date, distance or duration")
	cmd.Flags().StringVar(&sortDir, "dir", "asc", "asc or desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *di.Store) error {
				entry, ok := store.Service.Get(args[0])
				if !ok {
					return fmt.Errorf("no run with id %s", args[0])
				}
				data, err := json.MarshalIndent(entry, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *di.Store) error {
				if store.Service.Delete(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "No run with id %s\n", args[0])
				}
				return nil
			})
		},
	}
}

func newDuplicateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a run under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(store *di.Store) error {
				dup, ok := store.Service.Duplicate(args[0])
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No run with id %s\n", args[0])
					return nil
				}
				printEntry(cmd.OutOrStdout(), dup)
				return nil
			})
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every run and the stored collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withStore(opts, func(store *di.Store) error {
				store.Service.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "All runs deleted")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
