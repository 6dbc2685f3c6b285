package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	workdayEmployee  int64
	workdayCustomers []int64
	workdayDate      string
	workdayHours     float64
)

var workdayCmd = &cobra.Command{
	Use:     "workday",
	Short:   "Record a working day for one employee across customers",
	Example: `  invoicer workday --employee 1 --customers 2,3 --date 2024-07-15 --hours 7.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := time.Parse("2006-01-02", workdayDate)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", workdayDate, err)
		}

		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.worklog().AddWorkingDay(ctx, workdayEmployee, workdayCustomers, date, workdayHours); err != nil {
			return err
		}

		fmt.Printf("Recorded %s for employee %d across %d customers\n",
			workdayDate, workdayEmployee, len(workdayCustomers))
		return nil
	},
}

func init() {
	workdayCmd.Flags().Int64Var(&workdayEmployee, "employee", 0, "employee ID (required)")
	workdayCmd.Flags().Int64SliceVar(&workdayCustomers, "customers", nil, "customer IDs (required)")
	workdayCmd.Flags().StringVar(&workdayDate, "date", "", "date as YYYY-MM-DD (required)")
	workdayCmd.Flags().Float64Var(&workdayHours, "hours", 0, "hours worked per customer (default 8)")
	_ = workdayCmd.MarkFlagRequired("employee")
	_ = workdayCmd.MarkFlagRequired("customers")
	_ = workdayCmd.MarkFlagRequired("date")
}
