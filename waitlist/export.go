// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package waitlist

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/SiikHub/SiikHubWaitList/models"
)

var csvHeader = []string{"Email", "Source", "Created At", "Position", "Is Active"}

type ExportResult struct {
	Format     string
	Rows       []models.ExportRow
	CSV        string
	ExportedAt time.Time
}

// Data is what goes in the response body's data field
func (e ExportResult) Data() any {
	if e.Format == models.FormatCSV {
		return e.CSV
	}
	return e.Rows
}

// Export dumps the waitlist in position order as json rows or csv text
func (r *Registry) Export(ctx context.Context, format string, onlyActive bool) (ExportResult, error) {
	if format == "" {
		format = models.FormatJSON
	}
	if format != models.FormatJSON && format != models.FormatCSV {
		return ExportResult{}, invalid("format must be json or csv")
	}

	r.mu.Lock()
	records, err := r.store.List(ctx)
	r.mu.Unlock()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to list signups: %w", err)
	}

	ordered := orderedEntries(records, onlyActive)
	res := ExportResult{
		Format:     format,
		Rows:       make([]models.ExportRow, 0, len(ordered)),
		ExportedAt: r.clock().UTC(),
	}
	for _, rec := range ordered {
		res.Rows = append(res.Rows, models.ExportRow{
			Email:     rec.Email,
			Source:    rec.Source,
			CreatedAt: rec.CreatedAt,
			Position:  rec.Position,
			IsActive:  rec.IsActive,
		})
	}

	if format == models.FormatCSV {
		text, err := encodeCSV(res.Rows)
		if err != nil {
			return ExportResult{}, fmt.Errorf("failed to encode csv: %w", err)
		}
		res.CSV = text
	}
	return res, nil
}

func encodeCSV(rows []models.ExportRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.Email,
			row.Source,
			row.CreatedAt.Format(time.RFC3339Nano),
			strconv.Itoa(row.Position),
			strconv.FormatBool(row.IsActive),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
