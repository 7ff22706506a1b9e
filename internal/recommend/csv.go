package recommend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CSVFiles overrides the file name used for each category. Empty fields keep
// the default names.
type CSVFiles struct {
	Diets       string `yaml:"diets"`
	Medications string `yaml:"medications"`
	Precautions string `yaml:"precautions"`
	Workouts    string `yaml:"workouts"`
}

func (f CSVFiles) name(s tableSchema) string {
	var override string
	switch s.category {
	case Diet:
		override = f.Diets
	case Medication:
		override = f.Medications
	case Precaution:
		override = f.Precautions
	case Workout:
		override = f.Workouts
	}
	if override != "" {
		return override
	}
	return s.file
}

// CSVSource reads the four reference tables from a mapping directory.
type CSVSource struct {
	dir    string
	files  CSVFiles
	logger *slog.Logger
}

var _ Source = (*CSVSource)(nil)

// NewCSVSource builds a source rooted at dir.
func NewCSVSource(dir string, files CSVFiles, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSource{dir: dir, files: files, logger: logger}
}

// Load reads every table. A missing file or a missing column is an error;
// rows that cannot be parsed or are too short to hold the key are skipped.
func (s *CSVSource) Load(_ context.Context) (Dataset, error) {
	var d Dataset
	for _, schema := range schemas {
		path := filepath.Join(s.dir, s.files.name(schema))
		rows, err := s.readTable(path, schema)
		if err != nil {
			return Dataset{}, err
		}
		*d.rows(schema.category) = rows
		s.logger.Debug("reference table loaded", "table", schema.category, "path", path, "rows", len(rows))
	}
	return d, nil
}

func (s *CSVSource) readTable(path string, schema tableSchema) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s table: %w", schema.category, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, errEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	header := make([]string, len(first))
	for i, cell := range first {
		header[i] = cleanHeader(cell)
	}
	keyCol := findColumn(header, schema.key)
	if keyCol < 0 {
		return nil, fmt.Errorf("%s: key column %q not found", name, schema.key)
	}
	valueCols := make([]int, len(schema.columns))
	for i, col := range schema.columns {
		valueCols[i] = findColumn(header, col)
		if valueCols[i] < 0 {
			return nil, fmt.Errorf("%s: column %q not found", name, col)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.logger.Warn("skipping malformed row", "file", name, "line", parseErr.StartLine, "error", parseErr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		if keyCol >= len(record) {
			line, _ := reader.FieldPos(0)
			s.logger.Warn("skipping short row", "file", name, "line", line)
			continue
		}
		row := Row{Disease: record[keyCol], Values: make([]string, len(valueCols))}
		for i, col := range valueCols {
			if col < len(record) {
				row.Values[i] = record[col]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var errEmptyTable = errors.New("empty table")

// cleanHeader strips a UTF-8 BOM and surrounding space and folds
// compatibility characters so header lookup tolerates spreadsheet exports.
func cleanHeader(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return norm.NFKC.String(strings.TrimSpace(v))
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}
