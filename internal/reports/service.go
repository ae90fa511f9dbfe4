package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"pantrypal/internal/waste"

	"github.com/google/uuid"
)

const reportWindowDays = 30

// RecordSource supplies the waste ledger rows a report is built from;
// the waste repository satisfies it.
type RecordSource interface {
	RecordsSince(ctx context.Context, userID string, since time.Time) ([]*waste.Record, error)
}

// Uploader stores a generated file and returns its public URL; the R2
// client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Report describes one generated and uploaded waste export.
type Report struct {
	URL         string  `json:"url"`
	RecordCount int     `json:"record_count"`
	TotalGrams  float64 `json:"total_grams"`
	TotalCost   float64 `json:"total_cost"`
}

type Service struct {
	records  RecordSource
	uploader Uploader
	now      func() time.Time
}

func NewService(records RecordSource, uploader Uploader) *Service {
	return &Service{
		records:  records,
		uploader: uploader,
		now:      time.Now,
	}
}

// GenerateWasteReport exports the caller's last 30 days of waste
// records as CSV, uploads it, and returns the public URL with totals.
func (s *Service) GenerateWasteReport(ctx context.Context, userID string) (*Report, error) {
	since := s.now().AddDate(0, 0, -reportWindowDays)

	records, err := s.records.RecordsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	body, totalGrams, totalCost := buildCSV(records)

	key := fmt.Sprintf("reports/%s/waste-%s-%s.csv",
		userID, s.now().Format("2006-01"), uuid.New().String())

	url, err := s.uploader.Upload(ctx, key, body, "text/csv")
	if err != nil {
		log.Printf("[REPORTS] upload failed for user %s: %v", userID, err)
		return nil, err
	}

	log.Printf("[REPORTS] exported %d records for user %s", len(records), userID)

	return &Report{
		URL:         url,
		RecordCount: len(records),
		TotalGrams:  totalGrams,
		TotalCost:   totalCost,
	}, nil
}

func buildCSV(records []*waste.Record) (*bytes.Buffer, float64, float64) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	_ = w.Write([]string{"item_name", "category", "grams", "cost", "reason", "wasted_at"})

	var totalGrams, totalCost float64
	for _, rec := range records {
		totalGrams += rec.Grams
		totalCost += rec.Cost
		_ = w.Write([]string{
			rec.ItemName,
			rec.Category,
			strconv.FormatFloat(rec.Grams, 'f', 1, 64),
			strconv.FormatFloat(rec.Cost, 'f', 2, 64),
			rec.Reason,
			rec.WastedAt.Format("2006-01-02"),
		})
	}

	_ = w.Write([]string{
		"TOTAL", "",
		strconv.FormatFloat(totalGrams, 'f', 1, 64),
		strconv.FormatFloat(totalCost, 'f', 2, 64),
		"", "",
	})
	w.Flush()

	return buf, totalGrams, totalCost
}
