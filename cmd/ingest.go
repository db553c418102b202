package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edakit/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	ingHead int
	ingList bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Load a dataset and print its shape and first rows",
	Long: `Ingest picks an ingestor from the file extension and loads the table. A .zip
archive is extracted into the extract dir and must hold exactly one CSV at its
top level.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if ingList {
			fmt.Fprintf(out, "Supported extensions: %s\n", strings.Join(ingest.Extensions(), ", "))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("a file is required")
		}
		t, err := loadTable(args[0], logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Loaded %s: %d rows x %d columns\n", t.Name, t.Nrow(), t.Ncol())
		if ingHead > 0 {
			fmt.Fprintln(out, t.Head(ingHead).String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().IntVar(&ingHead, "head", 5, "print the first N rows (0 = none)")
	ingestCmd.Flags().BoolVar(&ingList, "list", false, "list supported file extensions")
}
