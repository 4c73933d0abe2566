package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/timeutil"
	"github.com/eivindw/timevault/internal/vault"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <month> [backup_number]",
	Short: "Restore a month document from a backup",
	Long: `Restore a month's document from one of its backups.

Every write keeps up to three backups of the previous document state.
By default the most recent backup (.bak.1) is restored; optionally
specify a backup number (1-3). The current state is backed up first, so
a restore can itself be undone.

Examples:
  timevault restore 2025-01       Restore January from the most recent backup
  timevault restore 2025-01 2     Restore January from backup #2`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string) {
	period := args[0]
	if _, err := timeutil.ParsePeriod(period); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid month %q\n", period)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'YYYY-MM', e.g. 2025-01")
		deps.Exit(1)
		return
	}

	s, v, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	backups, err := v.ListBackups(period)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No backups available for %s\n", period)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 1 {
		num, err := strconv.Atoi(args[1])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[1])
			deps.Exit(1)
			return
		}
		if num < 1 || num > vault.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", vault.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}
	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist for %s\n", backupNum, period)
		deps.Exit(1)
		return
	}

	if err := v.RestoreBackup(period, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	// The cached parse of the restored month is stale now.
	s.Invalidate(period)

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored %s from backup %d\n", period, backupNum)
}
