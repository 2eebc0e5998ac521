package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
)

var stargazerHeader = []string{"Username", "GitHub URL"}

// Ensure StargazerCSV implements the exporter port.
var _ driven.StargazerExporter = (*StargazerCSV)(nil)

// StargazerCSV writes stargazer rows to a CSV file. The file is
// truncated on open and the header written immediately.
type StargazerCSV struct {
	file   *os.File
	writer *csv.Writer
}

// NewStargazerCSV creates the output file and writes the header.
func NewStargazerCSV(path string) (*StargazerCSV, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(stargazerHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &StargazerCSV{file: file, writer: writer}, nil
}

// Append writes one stargazer row.
func (e *StargazerCSV) Append(s domain.Stargazer) error {
	if err := e.writer.Write([]string{s.Username, s.ProfileURL}); err != nil {
		return fmt.Errorf("write row for %s: %w", s.Username, err)
	}
	return nil
}

// Flush forces buffered rows to disk.
func (e *StargazerCSV) Flush() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		return err
	}
	return e.file.Sync()
}

// Close flushes and closes the file.
func (e *StargazerCSV) Close() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		e.file.Close()
		return err
	}
	return e.file.Close()
}
