package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"bbrisk/internal/behavior"
	"bbrisk/internal/org"
)

// header is the flat generator output schema: identity, date, nine counters,
// HR flag bit, trait scores, malicious label.
func header() []string {
	cols := []string{"user_id", "role", "region", "day"}
	cols = append(cols, behavior.FeatureNames()...)
	cols = append(cols, "is_hr_flagged", "conscientiousness", "neuroticism", "is_malicious")
	return cols
}

// WriteCSV persists the records as one row per (user, day).
func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	w := csv.NewWriter(bw)

	if err := w.Write(header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, 0, len(header()))
	for _, r := range records {
		row = row[:0]
		row = append(row, r.UserID, string(r.Role), string(r.Region), r.Date)
		for ft := behavior.Feature(0); ft < behavior.NumFeatures; ft++ {
			row = append(row, strconv.Itoa(r.Features[ft]))
		}
		row = append(row,
			formatBit(r.HRFlagged),
			strconv.FormatFloat(r.Conscientiousness, 'f', -1, 64),
			strconv.FormatFloat(r.Neuroticism, 'f', -1, 64),
			formatBit(r.Malicious),
		)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	return bw.Flush()
}

// LoadCSV reads a previously generated dataset. Malformed rows are skipped
// with a warning; a missing or mismatched header is an error since the whole
// file is then suspect.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = len(header())

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	want := header()
	for i, col := range rows[0] {
		if col != want[i] {
			return nil, fmt.Errorf("unexpected dataset column %d: got %q, want %q", i, col, want[i])
		}
	}

	records := make([]Record, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			skipped++
			log.Warn().Err(err).Str("user_id", row[0]).Msg("Skipping invalid dataset row")
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("loaded", len(records)).Msg("Dataset contained invalid rows")
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	rec := Record{
		UserID: row[0],
		Role:   org.Role(row[1]),
		Region: org.Region(row[2]),
		Date:   row[3],
	}

	for ft := behavior.Feature(0); ft < behavior.NumFeatures; ft++ {
		v, err := strconv.Atoi(row[4+int(ft)])
		if err != nil {
			return Record{}, fmt.Errorf("bad counter %s: %w", ft, err)
		}
		if v < 0 {
			return Record{}, fmt.Errorf("negative counter %s: %d", ft, v)
		}
		rec.Features[ft] = v
	}

	base := 4 + int(behavior.NumFeatures)
	hr, err := parseBit(row[base])
	if err != nil {
		return Record{}, fmt.Errorf("bad is_hr_flagged: %w", err)
	}
	rec.HRFlagged = hr

	if rec.Conscientiousness, err = strconv.ParseFloat(row[base+1], 64); err != nil {
		return Record{}, fmt.Errorf("bad conscientiousness: %w", err)
	}
	if rec.Neuroticism, err = strconv.ParseFloat(row[base+2], 64); err != nil {
		return Record{}, fmt.Errorf("bad neuroticism: %w", err)
	}

	mal, err := parseBit(row[base+3])
	if err != nil {
		return Record{}, fmt.Errorf("bad is_malicious: %w", err)
	}
	rec.Malicious = mal

	return rec, nil
}

func formatBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBit(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("flag must be 0 or 1, got %q", s)
}
