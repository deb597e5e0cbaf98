package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

const (
	compressionNone = ""
	compressionGzip = "gzip"
	compressionZstd = "zstd"
)

// Loader reads seed files
type Loader struct {
	logger  *logging.Logger
	fetcher *Fetcher
}

// NewLoader creates a loader
func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{logger: logger, fetcher: NewFetcher(DefaultFetchOptions())}
}

// WithFetcher replaces the client used for http(s) sources
func (l *Loader) WithFetcher(f *Fetcher) *Loader {
	l.fetcher = f
	return l
}

// Load is LoadContext with a background context
func (l *Loader) Load(path string) ([]types.ContentRecord, error) {
	return l.LoadContext(context.Background(), path)
}

// LoadContext reads records from a file, a directory, a glob or a URL.
// Records without an address are rejected. When an address repeats, the
// later record replaces the earlier one in place.
func (l *Loader) LoadContext(ctx context.Context, path string) ([]types.ContentRecord, error) {
	if IsRemote(path) {
		records, err := l.fetcher.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		return l.merge(path, []sourced{{name: path, records: records}}), nil
	}

	files, err := sourceFiles(ctx, path)
	if err != nil {
		return nil, err
	}

	sources := make([]sourced, 0, len(files))
	for _, file := range files {
		records, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, sourced{name: file, records: records})
	}
	return l.merge(path, sources), nil
}

type sourced struct {
	name    string
	records []types.ContentRecord
}

func (l *Loader) merge(path string, sources []sourced) []types.ContentRecord {
	var all []types.ContentRecord
	index := make(map[string]int)
	for _, src := range sources {
		for _, rec := range src.records {
			if i, dup := index[rec.Address]; dup {
				l.logger.Warn("Duplicate seed address, keeping the later record",
					zap.String("address", rec.Address),
					zap.String("file", src.name),
				)
				all[i] = rec
				continue
			}
			index[rec.Address] = len(all)
			all = append(all, rec)
		}
	}

	l.logger.Info("Loaded seed records",
		zap.String("path", path),
		zap.Int("files", len(sources)),
		zap.Int("records", len(all)),
	)
	return all
}

// sourceFiles expands path into seed files in lexical order
func sourceFiles(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && hasMeta(path) {
			return globFiles(path)
		}
		return nil, fmt.Errorf("stat seed path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return walkFiles(ctx, path)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func globFiles(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob seed files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no seed files match %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

func walkFiles(ctx context.Context, dir string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := FormatFor(p); ok {
			mu.Lock()
			files = append(files, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk seed dir: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string) ([]types.ContentRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	records, err := decodeSource(path, "", raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// decodeSource decompresses raw, checks its encoding, picks a format from
// the name, then the content type, then the content itself, and decodes.
func decodeSource(name, contentType string, raw []byte) ([]types.ContentRecord, error) {
	_, compression := splitCompression(name)
	data, err := decompress(compression, raw)
	if err != nil {
		return nil, err
	}
	if err := checkUTF8(data); err != nil {
		return nil, err
	}

	format, ok := FormatFor(name)
	if !ok {
		format, ok = formatForContentType(contentType)
	}
	if !ok {
		format, ok = sniffFormat(data)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	records, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Address = strings.TrimSpace(records[i].Address)
		if records[i].Address == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingAddress)
		}
		if records[i].ID == "" {
			records[i].ID = records[i].Address
		}
	}
	return records, nil
}

// splitCompression strips .gz or .zst from name
func splitCompression(name string) (string, string) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return name[:len(name)-len(".gz")], compressionGzip
	case strings.HasSuffix(lower, ".zst"):
		return name[:len(name)-len(".zst")], compressionZstd
	}
	return name, compressionNone
}

func decompress(compression string, data []byte) ([]byte, error) {
	switch compression {
	case compressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case compressionZstd:
		d, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer d.Close()
		return d.DecodeAll(data, nil)
	}
	return data, nil
}

// checkUTF8 names the detected charset when data is not UTF-8
func checkUTF8(data []byte) error {
	if utf8.Valid(data) {
		return nil
	}
	charset := "unknown"
	if res, err := chardet.NewTextDetector().DetectBest(data); err == nil && res != nil {
		charset = res.Charset
	}
	return fmt.Errorf("%w: looks like %s", ErrNotUTF8, charset)
}

func formatForContentType(contentType string) (Format, bool) {
	mt, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mt) {
	case "application/json":
		return FormatJSON, true
	case "application/toml":
		return FormatTOML, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	}
	return "", false
}

// sniffFormat treats JSON content as JSON and other text as YAML
func sniffFormat(data []byte) (Format, bool) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/json"):
		return FormatJSON, true
	case strings.HasPrefix(mt.String(), "text/"):
		return FormatYAML, true
	}
	return "", false
}
