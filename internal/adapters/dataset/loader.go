package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/launchdash/internal/domain/launches"
	"github.com/okian/launchdash/pkg/logger"
	"github.com/okian/launchdash/pkg/metrics"
)

// Loader reads the launch dataset once at startup.
type Loader struct {
	logger logger.Logger
	sheet  string
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path into an immutable launch table. The format is chosen by
// extension: .csv, .tsv or .xlsx. Any failure is meant to abort startup.
func (l *Loader) Load(ctx context.Context, path string) (*launches.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.logger == nil {
		l.logger = logger.Get()
	}
	start := time.Now()

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readDelimitedFile(path, ',')
	case ".tsv":
		rows, err = readDelimitedFile(path, '\t')
	case ".xlsx":
		rows, err = l.readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	records, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tbl := launches.NewTable(records)

	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(float64(elapsed.Milliseconds()), tbl.Len(), len(tbl.Sites()))
	l.logger.Info(ctx, "dataset loaded",
		logger.String("path", path),
		logger.Int("records", tbl.Len()),
		logger.Int("sites", len(tbl.Sites())),
		logger.Any("elapsed", elapsed),
	)
	return tbl, nil
}

func readDelimitedFile(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()
	return readDelimited(f, comma)
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	// Cells are trimmed while parsing. TrimLeadingSpace would swallow the
	// empty leading cells of tab separated rows.
	cr.Comma = comma
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return rows, nil
}

func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrParse, sheet, err)
	}
	return rows, nil
}
