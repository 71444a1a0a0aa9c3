package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobfeed/internal/fetch"
)

const sampleBody = `{"results":[{"company":{"name":"Acme"},"locations":[{"name":"NYC, USA"}],"name":"Engineer","type":"full_time","publication_date":"2023-05-01T00:00:00"}]}`

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("got method %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	feed, err := fetch.New(srv.URL, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(feed.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(feed.Results))
	}
	rec := feed.Results[0]
	if rec.Company == nil || rec.Company.Name == nil || *rec.Company.Name != "Acme" {
		t.Errorf("company not decoded: %+v", rec.Company)
	}
	if len(rec.Locations) != 1 || rec.Locations[0].Name != "NYC, USA" {
		t.Errorf("locations not decoded: %+v", rec.Locations)
	}
}

func TestFetch_MissingKeysDecodeToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"name":"Engineer"}]}`))
	}))
	defer srv.Close()

	feed, err := fetch.New(srv.URL, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	rec := feed.Results[0]
	if rec.Company != nil || rec.Type != nil || rec.PublicationDate != nil {
		t.Errorf("absent keys should decode to nil, got %+v", rec)
	}
	if rec.Name == nil || *rec.Name != "Engineer" {
		t.Errorf("name not decoded: %v", rec.Name)
	}
}

func TestFetch_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fetch.New(srv.URL, nil).Fetch(context.Background())
	var serr *fetch.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if serr.Code != http.StatusNotFound {
		t.Errorf("StatusError.Code = %d, want 404", serr.Code)
	}
}

func TestFetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer srv.Close()

	_, err := fetch.New(srv.URL, nil).Fetch(context.Background())
	var derr *fetch.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

func TestFetch_WrongTypeIsDecodeError(t *testing.T) {
	// valid JSON of the wrong shape is caught here, at decode time; the
	// transformer only ever sees a well-typed feed
	bodies := []string{
		`{"results":[{"name":123}]}`,
		`{"results":"not a list"}`,
		`{"results":[{"locations":{"name":"NYC"}}]}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := fetch.New(srv.URL, nil).Fetch(context.Background())
		srv.Close()

		var derr *fetch.DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("body %s: error = %v, want DecodeError", body, err)
		}
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nobody listening anymore

	_, err := fetch.New(url, nil).Fetch(context.Background())
	var nerr *fetch.NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if nerr.URL != url {
		t.Errorf("NetworkError.URL = %q, want %q", nerr.URL, url)
	}
}

func TestFetch_LimiterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch.New("http://127.0.0.1:0/", fetch.NewLimiter(1, 1)).Fetch(ctx)
	var nerr *fetch.NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want NetworkError from cancelled context", err)
	}
}
