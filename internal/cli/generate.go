package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoiceworks/backend/domain"
)

var (
	generateMonth      string
	generateLastNumber string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate customer invoices for a calendar month",
	Long: `Generate aggregates the billable work of one calendar month per
customer, renders an invoice document for each, uploads the documents to
Drive under customers/<year>/<month>, requests PDF conversion and
reconciles the invoice drafts stored in the database: a customer already
holding a draft for the month is updated, everyone else gets a new row.`,
	Example: `  invoicer generate --month 2024-07 --last-invoice-number 100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := domain.ParsePeriod(generateMonth)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.withDrive(ctx); err != nil {
			return err
		}

		summary, err := app.generator().Generate(ctx, period, generateLastNumber)
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d invoices for %s (%d created, %d updated, numbers %d-%d)\n",
			summary.Invoices, summary.Period, summary.Created, summary.Updated,
			summary.FirstNumber, summary.LastNumber)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateMonth, "month", "", "target month as YYYY-MM (required)")
	generateCmd.Flags().StringVar(&generateLastNumber, "last-invoice-number", "", "number of the last invoice issued before this run (required)")
	_ = generateCmd.MarkFlagRequired("month")
	_ = generateCmd.MarkFlagRequired("last-invoice-number")
}
