// Package vault implements the document-store collaborator over a
// directory of plain markdown files, one document per period
// ("2025-01.md"). The core never touches the filesystem directly; it
// goes through this package's read/write/ensure surface.
package vault

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// FileExtension is the extension of period documents.
	FileExtension = ".md"
	// DefaultDirName is the vault directory created under the user's
	// home directory when no vault_dir is configured.
	DefaultDirName = "timevault"
)

// periodFilePattern matches period document file names ("2025-01.md").
var periodFilePattern = regexp.MustCompile(`^(\d{4}-\d{2})\.md$`)

// Vault is a filesystem-backed document store rooted at a single
// directory.
type Vault struct {
	dir string
}

// New creates a Vault rooted at dir. The directory is not created until
// EnsureContainerExists is called.
func New(dir string) *Vault {
	return &Vault{dir: dir}
}

// DefaultDir returns the default vault directory under the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Dir returns the vault's root directory.
func (v *Vault) Dir() string {
	return v.dir
}

// FilePath returns the path of the document holding the given period.
func (v *Vault) FilePath(period string) string {
	return filepath.Join(v.dir, period+FileExtension)
}

// EnsureContainerExists creates the vault directory if it does not
// exist. Idempotent.
func (v *Vault) EnsureContainerExists() error {
	return os.MkdirAll(v.dir, 0755)
}

// ReadText returns the text of a period's document. A missing document
// is not an error: found is false and the text is empty, so callers can
// treat it as an empty document and create it on first write.
func (v *Vault) ReadText(period string) (string, bool, error) {
	data, err := os.ReadFile(v.FilePath(period))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// WriteText replaces a period's document with the given text. The
// previous content is rotated into a backup first, and the write itself
// goes through a temp file and rename so a crash cannot leave a
// half-written document.
func (v *Vault) WriteText(period, text string) error {
	path := v.FilePath(period)

	if err := createBackup(path); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(text), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// ListPeriods returns the period keys of every document in the vault,
// sorted chronologically. Backup files, temp files and anything else
// that is not a period document are skipped.
func (v *Vault) ListPeriods() ([]string, error) {
	dirEntries, err := os.ReadDir(v.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var periods []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if m := periodFilePattern.FindStringSubmatch(de.Name()); m != nil {
			periods = append(periods, m[1])
		}
	}
	sort.Strings(periods)
	return periods, nil
}

// PeriodFromPath extracts the period key from a document path, or
// returns false when the path is not a period document (backups, temp
// files, unrelated notes).
func PeriodFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".tmp") || strings.Contains(base, BackupSuffix) {
		return "", false
	}
	m := periodFilePattern.FindStringSubmatch(base)
	if m == nil {
		return "", false
	}
	return m[1], true
}
