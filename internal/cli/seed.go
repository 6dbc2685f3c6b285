package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var seedFilePath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace customers, employees and the employer from a JSON file",
	Long: `Seed drops all party records and loads them from a JSON document of
the shape {"customers": [...], "employees": [...], "employer": {...}}.

Deleting customers cascades: every work record and invoice draft
referencing them is removed as well. Run "invoicer backup" first if the
stored drafts still matter.`,
	Example: `  invoicer seed --file ./parties.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(seedFilePath)
		if err != nil {
			return err
		}
		defer file.Close()

		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.registry().Seed(ctx, file); err != nil {
			return err
		}

		fmt.Println("Seed data loaded")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFilePath, "file", "parties.json", "path of the seed JSON file")
}
