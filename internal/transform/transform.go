package transform

import (
	"fmt"

	"jobfeed/internal/domain"
)

// SchemaError reports a record that does not match the expected shape.
// Index is the record's position in the results list, or -1 when the
// problem is with the top-level payload itself.
type SchemaError struct {
	Index int
	Field string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("schema: missing or malformed %q", e.Field)
	}
	return fmt.Sprintf("schema: record %d: missing or malformed %q", e.Index, e.Field)
}

// Table flattens a decoded feed into one JobRow per record, preserving
// the API's result order. Nothing is filtered, deduplicated or sorted.
// An empty locations list is a schema failure rather than a silent skip.
func Table(feed *domain.Feed) (domain.JobTable, error) {
	if feed == nil || feed.Results == nil {
		return nil, &SchemaError{Index: -1, Field: "results"}
	}

	table := make(domain.JobTable, 0, len(feed.Results))
	for i, rec := range feed.Results {
		if rec.Company == nil || rec.Company.Name == nil {
			return nil, &SchemaError{Index: i, Field: "company.name"}
		}
		if rec.Name == nil {
			return nil, &SchemaError{Index: i, Field: "name"}
		}
		if rec.Type == nil {
			return nil, &SchemaError{Index: i, Field: "type"}
		}
		if rec.PublicationDate == nil {
			return nil, &SchemaError{Index: i, Field: "publication_date"}
		}
		if len(rec.Locations) == 0 {
			return nil, &SchemaError{Index: i, Field: "locations"}
		}

		city, country := SplitLocation(rec.Locations[0].Name)
		table = append(table, domain.JobRow{
			Company:         *rec.Company.Name,
			Job:             *rec.Name,
			JobType:         *rec.Type,
			PublicationDate: DateOnly(*rec.PublicationDate),
			City:            city,
			Country:         country,
		})
	}
	return table, nil
}

// DateOnly keeps the calendar-date prefix of an ISO-8601-ish timestamp.
// Strings shorter than 10 bytes pass through whole.
func DateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
