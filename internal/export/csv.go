package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"jobfeed/internal/domain"
)

// Header is the fixed column order of the exported file.
var Header = []string{"company", "job", "job_type", "publication_date", "city", "country"}

// WriteCSV serializes the table to path, header first, one line per row.
// encoding/csv handles RFC 4180 quoting of embedded commas and quotes.
// An existing file at path is truncated.
func WriteCSV(table domain.JobTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, r := range table {
		rec := []string{r.Company, r.Job, r.JobType, r.PublicationDate, r.City, r.Country}
		if err := w.Write(rec); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
