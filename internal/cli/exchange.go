package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runlog/internal/di"
	"runlog/internal/exchange"
	"runlog/internal/models"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export or a spreadsheet",
		Long: `Import runs from a file.

A .json file must be a runlog export; --mode chooses between appending its
runs (merge) and replacing the whole collection (replace). A .xlsx or .csv
spreadsheet is read from its first sheet and always merged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importMode, err := models.ParseImportMode(mode)
			if err != nil {
				return err
			}
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			if strings.EqualFold(filepath.Ext(path), ".json") {
				snapshot, err := exchange.DecodeJSON(data)
				if err != nil {
					return err
				}
				return withStore(opts, func(store *di.Store) error {
					store.Service.Import(snapshot, importMode)
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d runs (%s), %d in total\n", len(snapshot.Runs), importMode, store.Service.Len())
					return nil
				})
			}

			format, err := exchange.DetectFormat(path)
			if err != nil {
				return err
			}
			if importMode == models.ImportReplace {
				return fmt.Errorf("spreadsheets can only be merged")
			}
			return withStore(opts, func(store *di.Store) error {
				entries, err := exchange.ParseSpreadsheet(bytes.NewReader(data), format, store.IDs)
				if err != nil {
					return err
				}
				store.Service.Import(models.NewSnapshot(entries), models.ImportMerge)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d runs from %s, %d in total\n", len(entries), filepath.Base(path), store.Service.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(models.ImportMerge), "merge or replace")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown export format %q, expected json or csv", format)
			}
			return withStore(opts, func(store *di.Store) error {
				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					file, err := os.Create(output)
					if err != nil {
						return err
					}
					defer file.Close()
					w = file
				}

				snapshot := store.Service.Snapshot()
				if format == "csv" {
					return exchange.WriteCSV(w, snapshot.Runs)
				}
				data, err := exchange.EncodeJSON(snapshot)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
