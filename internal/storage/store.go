package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coinlens/internal/logging"
)

var (
	// ErrCorruptLog indicates a report log that is not a JSON array of objects.
	ErrCorruptLog = errors.New("storage: corrupt report log")
	// ErrInvalidRecord indicates a record without an analysis_type tag.
	ErrInvalidRecord = errors.New("storage: record has no analysis_type")
)

// ReportStore defines operations on per-source report logs.
type ReportStore interface {
	Append(ctx context.Context, source string, record map[string]any) (AppendResult, error)
	Load(ctx context.Context, source string) ([]Entry, error)
	List(ctx context.Context) ([]Report, error)
}

// Options configure a FileStore.
type Options struct {
	Dir string
	// RotateBytes archives a log once it grows past this size. Zero disables rotation.
	RotateBytes int64
	Indent      int
	Now         func() time.Time
}

const archiveStampLayout = "20060102-150405"

// archiveName matches the identity part of a rotated log: <identity>.<stamp>[-n].
var archiveName = regexp.MustCompile(`^(.+)\.(\d{8}-\d{6})(?:-\d+)?$`)

// FileStore keeps one JSON array file per source identity.
type FileStore struct {
	opts   Options
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore builds a store rooted at opts.Dir.
func NewFileStore(opts Options, logger zerolog.Logger) *FileStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &FileStore{
		opts:   opts,
		logger: logging.Component(logger, "report_store"),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Path returns the report log location for a source.
func (s *FileStore) Path(source string) string {
	return filepath.Join(s.opts.Dir, FileName(source))
}

// Append stamps record and adds it to the end of the source's log. A missing or corrupt log
// is treated as empty. Appends to the same identity are serialized within the process.
func (s *FileStore) Append(ctx context.Context, source string, record map[string]any) (AppendResult, error) {
	if err := ctx.Err(); err != nil {
		return AppendResult{}, err
	}
	if kind, _ := record[FieldAnalysisType].(string); kind == "" {
		return AppendResult{}, ErrInvalidRecord
	}

	identity := Identity(source)
	unlock := s.lock(identity)
	defer unlock()

	path := s.Path(source)
	result := AppendResult{Path: path}

	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return AppendResult{}, fmt.Errorf("create report dir: %w", err)
	}

	rotated, err := s.rotate(path, identity)
	if err != nil {
		return AppendResult{}, err
	}
	result.Rotated = rotated

	entries, err := readLog(path)
	switch {
	case errors.Is(err, ErrCorruptLog):
		s.logger.Warn().Err(err).Str("path", path).Msg("report log unreadable; starting a new log")
		entries = nil
		result.Reset = true
	case err != nil:
		return AppendResult{}, err
	}

	entry := make(Entry, len(record)+2)
	for k, v := range record {
		entry[k] = v
	}
	entry[FieldTimestamp] = s.opts.Now().Local().Format(TimestampLayout)
	entry[FieldEntryID] = uuid.NewString()
	entries = append(entries, entry)

	if err := s.writeLog(path, entries); err != nil {
		return AppendResult{}, err
	}
	result.Entries = len(entries)

	s.logger.Debug().Str("path", path).Str("analysis_type", entry.AnalysisType()).
		Int("entries", result.Entries).Msg("report entry appended")
	return result, nil
}

// Load returns the entries of a source's log in append order. A missing log yields no
// entries; a corrupt one yields no entries and ErrCorruptLog.
func (s *FileStore) Load(ctx context.Context, source string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := s.lock(Identity(source))
	defer unlock()

	return readLog(s.Path(source))
}

// List enumerates the report logs currently in the store directory, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read report dir: %w", err)
	}

	reports := make([]Report, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, reportExtension) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		identity := strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportExtension)
		archived := false
		if m := archiveName.FindStringSubmatch(identity); m != nil {
			identity, archived = m[1], true
		}
		reports = append(reports, Report{
			Identity: identity,
			Path:     filepath.Join(s.opts.Dir, name),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Archived: archived,
		})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Identity != reports[j].Identity {
			return reports[i].Identity < reports[j].Identity
		}
		if reports[i].Archived != reports[j].Archived {
			return !reports[i].Archived
		}
		return reports[i].Path < reports[j].Path
	})
	return reports, nil
}

func (s *FileStore) lock(identity string) func() {
	s.mu.Lock()
	l, ok := s.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		s.locks[identity] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *FileStore) rotate(path, identity string) (string, error) {
	if s.opts.RotateBytes <= 0 {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat report log: %w", err)
	}
	if info.Size() <= s.opts.RotateBytes {
		return "", nil
	}

	archive, err := s.freeArchivePath(identity)
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, archive); err != nil {
		return "", fmt.Errorf("rotate report log: %w", err)
	}
	s.logger.Info().Str("path", path).Str("archive", archive).Int64("size", info.Size()).Msg("report log rotated")
	return archive, nil
}

// freeArchivePath picks an archive name not yet on disk. Rotations within the same second get
// a numeric suffix.
func (s *FileStore) freeArchivePath(identity string) (string, error) {
	stem := fmt.Sprintf("%s%s.%s", reportPrefix, identity, s.opts.Now().Format(archiveStampLayout))
	for n := 0; ; n++ {
		name := stem + reportExtension
		if n > 0 {
			name = fmt.Sprintf("%s-%d%s", stem, n, reportExtension)
		}
		candidate := filepath.Join(s.opts.Dir, name)
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat report archive: %w", err)
		}
	}
}

func readLog(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read report log: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrCorruptLog, path)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrCorruptLog, i)
		}
	}
	return entries, nil
}

// writeLog replaces path with the full log through a temp file and rename, so readers see
// either the previous or the new content.
func (s *FileStore) writeLog(path string, entries []Entry) error {
	indent := s.opts.Indent
	if indent <= 0 {
		indent = 4
	}
	data, err := json.MarshalIndent(entries, "", strings.Repeat(" ", indent))
	if err != nil {
		return fmt.Errorf("marshal report log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace report log: %w", err)
	}
	return nil
}

var _ ReportStore = (*FileStore)(nil)
