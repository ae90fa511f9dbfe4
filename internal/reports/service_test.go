package reports

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pantrypal/internal/waste"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

type stubRecords struct {
	records []*waste.Record
	err     error
}

func (s *stubRecords) RecordsSince(ctx context.Context, userID string, since time.Time) ([]*waste.Record, error) {
	return s.records, s.err
}

type stubUploader struct {
	key         string
	contentType string
	body        string
	err         error
}

func (s *stubUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key = key
	s.contentType = contentType
	data, _ := io.ReadAll(body)
	s.body = string(data)
	return "https://cdn.example.com/" + key, nil
}

func testService(records *stubRecords, uploader *stubUploader) *Service {
	s := NewService(records, uploader)
	s.now = func() time.Time { return testNow }
	return s
}

func TestGenerateWasteReport(t *testing.T) {
	records := &stubRecords{records: []*waste.Record{
		{ItemName: "Milk", Category: "dairy", Grams: 400, Cost: 3.5, Reason: "expired", WastedAt: testNow.AddDate(0, 0, -2)},
		{ItemName: "Bread", Category: "bakery", Grams: 150, Cost: 2, Reason: "moldy", WastedAt: testNow.AddDate(0, 0, -5)},
	}}
	uploader := &stubUploader{}

	report, err := testService(records, uploader).GenerateWasteReport(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	if report.RecordCount != 2 || report.TotalGrams != 550 || report.TotalCost != 5.5 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if !strings.HasPrefix(report.URL, "https://cdn.example.com/reports/u1/waste-2025-01-") {
		t.Fatalf("unexpected url %q", report.URL)
	}
	if uploader.contentType != "text/csv" {
		t.Fatalf("expected text/csv, got %q", uploader.contentType)
	}

	lines := strings.Split(strings.TrimSpace(uploader.body), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 2 rows + totals, got %d lines", len(lines))
	}
	if lines[0] != "item_name,category,grams,cost,reason,wasted_at" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Milk,dairy,400.0,3.50,expired,2025-01-13") {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "TOTAL,,550.0,5.50") {
		t.Fatalf("unexpected totals row %q", lines[3])
	}
}

func TestGenerateWasteReportEmptyLedger(t *testing.T) {
	uploader := &stubUploader{}

	report, err := testService(&stubRecords{}, uploader).GenerateWasteReport(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	if report.RecordCount != 0 || report.TotalGrams != 0 {
		t.Fatalf("unexpected totals: %+v", report)
	}

	lines := strings.Split(strings.TrimSpace(uploader.body), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + totals only, got %d lines", len(lines))
	}
}

func TestGenerateWasteReportUploadFailure(t *testing.T) {
	records := &stubRecords{records: []*waste.Record{{ItemName: "Milk", Grams: 100}}}
	uploader := &stubUploader{err: errors.New("bucket unavailable")}

	if _, err := testService(records, uploader).GenerateWasteReport(context.Background(), "u1"); err == nil {
		t.Fatal("expected upload failure to propagate")
	}
}
