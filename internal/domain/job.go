package domain

// Feed is the decoded body of the listings API response. Fields the
// transformer has to tell apart from "key absent" are pointers; a nil
// Results means the top-level results key was missing entirely.
type Feed struct {
	Results []RawRecord `json:"results"`
}

// RawRecord is one untransformed listing as the API returns it.
type RawRecord struct {
	Company         *CompanyRef   `json:"company"`
	Locations       []LocationRef `json:"locations"`
	Name            *string       `json:"name"`
	Type            *string       `json:"type"`
	PublicationDate *string       `json:"publication_date"`
}

type CompanyRef struct {
	Name *string `json:"name"`
}

type LocationRef struct {
	Name string `json:"name"` // "<city>, <country>"
}

// JobRow is one flattened listing, ready for the CSV writer.
type JobRow struct {
	Company         string
	Job             string
	JobType         string
	PublicationDate string // date-only, first 10 bytes of the raw value
	City            string
	Country         string
}

// JobTable preserves the API's result order. Duplicates are kept.
type JobTable []JobRow
