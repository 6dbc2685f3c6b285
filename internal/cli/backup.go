package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload all invoice drafts to Drive as one JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.withDrive(ctx); err != nil {
			return err
		}

		fileID, err := app.archiver().Backup(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Drafts backed up, file ID: %s\n", fileID)
		return nil
	},
}

var restoreFileID string

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore invoice drafts from a Drive backup document",
	Long: `Restore downloads a draft backup by its Drive file ID and replays it
through reconciliation: drafts already present for a customer and month
are updated, missing ones are created.`,
	Example: `  invoicer restore --file-id 1AbCdEfG`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.withDrive(ctx); err != nil {
			return err
		}

		if err := app.archiver().Restore(ctx, restoreFileID); err != nil {
			return err
		}

		fmt.Println("Drafts restored")
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreFileID, "file-id", "", "Drive file ID of the backup document (required)")
	_ = restoreCmd.MarkFlagRequired("file-id")
}
