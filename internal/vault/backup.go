package vault

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files.
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files kept per
	// document.
	MaxBackupCount = 3
)

// backupPath returns the path of backup n for a document. Lower numbers
// are more recent: .bak.1 holds the state before the latest write.
func backupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new one:
// .bak.2 becomes .bak.3, .bak.1 becomes .bak.2, and the oldest is
// dropped. Missing files are fine.
func rotateBackups(path string) error {
	if err := os.Remove(backupPath(path, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(backupPath(path, i), backupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// createBackup rotates existing backups and copies the document's
// current content to .bak.1. Nothing happens when the document does not
// exist yet.
func createBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := rotateBackups(path); err != nil {
		return err
	}
	return os.WriteFile(backupPath(path, 1), data, 0644)
}

// BackupInfo describes one backup of a period document.
type BackupInfo struct {
	Number int
	Path   string
}

// ListBackups returns the available backups for a period, most recent
// first. Returns an empty slice when none exist.
func (v *Vault) ListBackups(period string) ([]BackupInfo, error) {
	path := v.FilePath(period)

	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		bp := backupPath(path, i)
		if _, err := os.Stat(bp); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: bp})
		}
	}
	return backups, nil
}

// RestoreBackup replaces a period's document with one of its backups.
// The current state is backed up first so a restore can itself be
// undone.
func (v *Vault) RestoreBackup(period string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	path := v.FilePath(period)
	data, err := os.ReadFile(backupPath(path, n))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist for period %s", n, period)
		}
		return err
	}

	if err := createBackup(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
