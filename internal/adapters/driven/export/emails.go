package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
)

var emailHeader = []string{"Username", "GitHub URL", "Email", "Location", "Organization", "Source"}

// Ensure EmailCSV implements the exporter port.
var _ driven.EmailExporter = (*EmailCSV)(nil)

// EmailCSV appends resolved email records to a CSV file. Opening an
// existing non-empty file keeps its rows and skips the header, so
// resumed runs extend the same output.
type EmailCSV struct {
	file   *os.File
	writer *csv.Writer
}

// NewEmailCSV opens (or creates) the output file in append mode.
func NewEmailCSV(path string) (*EmailCSV, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(emailHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	return &EmailCSV{file: file, writer: writer}, nil
}

// Append writes one record. Misses carry an empty email and the source
// "none", recorded like any other row so resume sees them as done.
func (e *EmailCSV) Append(r domain.EmailRecord) error {
	row := []string{r.Username, r.ProfileURL, r.Email, r.Location, r.Organization, string(r.Source)}
	if err := e.writer.Write(row); err != nil {
		return fmt.Errorf("write row for %s: %w", r.Username, err)
	}
	return nil
}

// Flush forces buffered rows to disk.
func (e *EmailCSV) Flush() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		return err
	}
	return e.file.Sync()
}

// Close flushes and closes the file.
func (e *EmailCSV) Close() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		e.file.Close()
		return err
	}
	return e.file.Close()
}

// ReadUsernames reads the stargazer-style input CSV (header row then
// username,profile URL rows) into domain records. Rows with an empty
// username are skipped.
func ReadUsernames(path string) ([]domain.Stargazer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var users []domain.Stargazer
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}

		user := domain.Stargazer{Username: row[0]}
		if len(row) > 1 {
			user.ProfileURL = row[1]
		}
		if user.ProfileURL == "" {
			user = domain.NewStargazer(user.Username)
		}
		users = append(users, user)
	}
	return users, nil
}

// ScanProcessed returns the usernames already present in an output CSV,
// used to seed the resume state when a previous run wrote rows the run
// store never saw. A missing file is an empty set, not an error.
func ScanProcessed(path string) (map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	processed := make(map[string]bool)
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) > 0 && row[0] != "" {
			processed[row[0]] = true
		}
	}
	return processed, nil
}
