// Package rawexport persists fetched ticker snapshots as delimited text files and enumerates them.
package rawexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"coinlens/internal/dataset"
	"coinlens/internal/fetcher"
)

// FileTimestampLayout is embedded in every export file name.
const FileTimestampLayout = "2006-01-02_15-04-05"

// ErrNoRecords is returned when asked to save an empty snapshot.
var ErrNoRecords = errors.New("rawexport: no records to save")

// FileInfo describes an export file on disk.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Dir manages one export directory.
type Dir struct {
	path string
	now  func() time.Time
}

// NewDir returns a Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{path: path, now: time.Now}
}

// Path returns the directory location.
func (d *Dir) Path() string { return d.path }

// Save writes a header row of the schema columns followed by one row per ticker, and returns
// the file path. Fields absent from a ticker are written empty; extra fields are dropped.
func (d *Dir) Save(tickers []fetcher.Ticker, prefix string) (string, error) {
	if len(tickers) == 0 {
		return "", ErrNoRecords
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", prefix, d.now().Format(FileTimestampLayout))
	path := filepath.Join(d.path, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(dataset.Columns[:]); err != nil {
		return "", err
	}
	for _, t := range tickers {
		record := make([]string, dataset.ColumnCount)
		for i, col := range dataset.Columns {
			record[i] = t[col]
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// List returns the .txt and .csv export files sorted by name. A missing directory yields none.
func (d *Dir) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", d.path, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".txt") && !strings.HasSuffix(lower, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(d.path, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Resolve turns a bare export name into a path inside the directory. Paths containing a
// separator are used as given.
func (d *Dir) Resolve(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") {
		return name
	}
	return filepath.Join(d.path, name)
}

// Load resolves name and normalizes the file it points at.
func (d *Dir) Load(name string) (dataset.Table, error) {
	return dataset.LoadFile(d.Resolve(name))
}
