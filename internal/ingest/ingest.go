package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"

	"course-report/internal/domain"
	"course-report/internal/httpx"
)

// Inputs named *.br are brotli-compressed exports from the sync pipeline.
const brotliSuffix = ".br"

// Load reads course records from source, which is either a local file path or
// an http(s) URL. Any failure aborts the whole load; there is no
// skip-and-continue for bad rows.
func Load(ctx context.Context, source string) ([]domain.CourseRecord, error) {
	if IsURL(source) {
		return LoadURL(ctx, source)
	}
	return LoadFile(source)
}

func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func LoadFile(path string) ([]domain.CourseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open input: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, brotliSuffix) {
		r = brotli.NewReader(f)
	}
	return ReadRecords(r)
}

func LoadURL(ctx context.Context, rawURL string) ([]domain.CourseRecord, error) {
	body, err := httpx.FetchBytes(ctx, http.DefaultClient, rawURL, httpx.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("ingest: fetch input: %w", err)
	}

	var r io.Reader = bytes.NewReader(body)
	if strings.HasSuffix(rawURL, brotliSuffix) {
		r = brotli.NewReader(r)
	}
	return ReadRecords(r)
}

// ReadRecords parses a complete_courses CSV: a header row naming at least
// "company" and "duration", then one data row per completed course. Extra
// columns are ignored and column order does not matter.
func ReadRecords(r io.Reader) ([]domain.CourseRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("ingest: empty input: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	companyIdx, durationIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "company":
			companyIdx = i
		case "duration":
			durationIdx = i
		}
	}
	if companyIdx < 0 {
		return nil, errors.New(`ingest: header is missing required column "company"`)
	}
	if durationIdx < 0 {
		return nil, errors.New(`ingest: header is missing required column "duration"`)
	}

	var records []domain.CourseRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}

		raw := row[durationIdx]
		hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("ingest: line %d: bad duration %q: %w", line, raw, err)
		}

		records = append(records, domain.CourseRecord{
			Company:       row[companyIdx],
			DurationHours: hours,
		})
	}
	return records, nil
}
