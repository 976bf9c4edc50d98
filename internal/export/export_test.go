package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
	"github.com/sakif/travelvault/internal/repository"
	"github.com/sakif/travelvault/internal/repository/memory"
)

func newTestEngine(t *testing.T) (*Engine, repository.Store, string) {
	t.Helper()

	store := memory.New()
	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(store, logger), store, user.ID
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}

func strptr(s string) *string { return &s }

// seedRecords creates one personal info record and two travel entries,
// one with a comma in the destination to exercise CSV quoting.
func seedRecords(t *testing.T, store repository.Store, userID string) {
	t.Helper()
	ctx := context.Background()

	info := &model.PersonalInfo{
		FullName:       strptr("Alice Rahman"),
		PassportNumber: strptr("P1234567"),
	}
	if err := store.PersonalInfo().Create(ctx, userID, info); err != nil {
		t.Fatalf("creating personal info: %v", err)
	}

	for _, e := range []model.TravelHistory{
		{Date: mustDate(t, "2024-11-02"), Destination: "Tokyo, Japan", Notes: strptr("cherry blossoms")},
		{Date: mustDate(t, "2023-05-20"), Destination: "Lisbon"},
	} {
		entry := e
		if err := store.TravelHistory().Create(ctx, userID, &entry); err != nil {
			t.Fatalf("creating travel entry: %v", err)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	engine, _, userID := newTestEngine(t)

	_, err := engine.Export(context.Background(), userID, Format("docx"), nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Export() error = %v, want ErrValidation", err)
	}
}

func TestExport_UnknownSection(t *testing.T) {
	engine, _, userID := newTestEngine(t)

	_, err := engine.Export(context.Background(), userID, FormatJSON, []string{"travel", "passwords"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Export() error = %v, want ErrValidation", err)
	}
}

func TestExportJSON(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	seedRecords(t, store, userID)

	result, err := engine.Export(context.Background(), userID, FormatJSON, nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json", result.ContentType)
	}
	if result.Filename != "personal-data-export.json" {
		t.Errorf("Filename = %q, want personal-data-export.json", result.Filename)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(result.Data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	// All six sections requested by default; personal exists, so all
	// six keys are present.
	for _, key := range SectionOrder {
		if _, ok := doc[key]; !ok {
			t.Errorf("JSON export missing section %q", key)
		}
	}

	var travel []map[string]any
	if err := json.Unmarshal(doc["travel"], &travel); err != nil {
		t.Fatalf("decoding travel section: %v", err)
	}
	if len(travel) != 2 {
		t.Fatalf("travel records = %d, want 2", len(travel))
	}
	// Most recent first, and no internal identifiers.
	if travel[0]["destination"] != "Tokyo, Japan" {
		t.Errorf("travel[0].destination = %v, want Tokyo, Japan", travel[0]["destination"])
	}
	if travel[0]["date"] != "2024-11-02" {
		t.Errorf("travel[0].date = %v, want 2024-11-02", travel[0]["date"])
	}
	for _, key := range []string{"id", "user_id"} {
		if _, ok := travel[0][key]; ok {
			t.Errorf("travel record leaked %q", key)
		}
	}

	// Empty list sections are [], not null.
	var flights []any
	if err := json.Unmarshal(doc["flights"], &flights); err != nil {
		t.Fatalf("decoding flights section: %v", err)
	}
	if flights == nil {
		t.Error("flights section = null, want []")
	}
}

func TestExportJSON_AbsentPersonalOmitted(t *testing.T) {
	engine, _, userID := newTestEngine(t)

	result, err := engine.Export(context.Background(), userID, FormatJSON, nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(result.Data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := doc["personal"]; ok {
		t.Error("personal section present, want omitted when no record exists")
	}
	if _, ok := doc["travel"]; !ok {
		t.Error("travel section missing, want [] even when empty")
	}
}

func TestExportCSV(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	seedRecords(t, store, userID)

	result, err := engine.Export(context.Background(), userID, FormatCSV, []string{"travel", "flights"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.ContentType != "text/csv" {
		t.Errorf("ContentType = %q, want text/csv", result.ContentType)
	}

	got := string(result.Data)
	want := "TRAVEL\n" +
		"date,destination,notes\n" +
		"2024-11-02,\"Tokyo, Japan\",cherry blossoms\n" +
		"2023-05-20,Lisbon,\n" +
		"\n" +
		"FLIGHTS\n"
	if got != want {
		t.Errorf("CSV export mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportCSV_SectionOrderIsFixed(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	seedRecords(t, store, userID)

	// Request in reverse order; output order must not change.
	result, err := engine.Export(context.Background(), userID, FormatCSV, []string{"travel", "personal"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	got := string(result.Data)
	personalAt := strings.Index(got, "PERSONAL\n")
	travelAt := strings.Index(got, "TRAVEL\n")
	if personalAt < 0 || travelAt < 0 || personalAt > travelAt {
		t.Errorf("section order wrong:\n%s", got)
	}
}

func TestExportXLSX(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	seedRecords(t, store, userID)

	result, err := engine.Export(context.Background(), userID, FormatExcel, []string{"personal", "travel"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Filename != "personal-data-export.xlsx" {
		t.Errorf("Filename = %q, want personal-data-export.xlsx", result.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("export is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "personal" || sheets[1] != "travel" {
		t.Fatalf("sheets = %v, want [personal travel]", sheets)
	}

	header, err := f.GetCellValue("travel", "A1")
	if err != nil {
		t.Fatalf("reading travel!A1: %v", err)
	}
	if header != "date" {
		t.Errorf("travel!A1 = %q, want date", header)
	}
	dest, err := f.GetCellValue("travel", "B2")
	if err != nil {
		t.Fatalf("reading travel!B2: %v", err)
	}
	if dest != "Tokyo, Japan" {
		t.Errorf("travel!B2 = %q, want Tokyo, Japan", dest)
	}

	name, err := f.GetCellValue("personal", "A2")
	if err != nil {
		t.Fatalf("reading personal!A2: %v", err)
	}
	if name != "Alice Rahman" {
		t.Errorf("personal!A2 = %q, want Alice Rahman", name)
	}
}

func TestExportPDF(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	seedRecords(t, store, userID)

	result, err := engine.Export(context.Background(), userID, FormatPDF, nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q, want application/pdf", result.ContentType)
	}
	if !bytes.HasPrefix(result.Data, []byte("%PDF-")) {
		t.Error("export does not start with a PDF header")
	}
}

// Enough records must spill onto a second page.
func TestExportPDF_Paginates(t *testing.T) {
	engine, store, userID := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		entry := model.TravelHistory{
			Date:        mustDate(t, "2024-01-02"),
			Destination: fmt.Sprintf("Stop %d", i),
		}
		if err := store.TravelHistory().Create(ctx, userID, &entry); err != nil {
			t.Fatalf("creating travel entry: %v", err)
		}
	}

	result, err := engine.Export(ctx, userID, FormatPDF, []string{"travel"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// The page tree in fpdf output carries a literal /Count entry.
	if bytes.Contains(result.Data, []byte("/Count 1")) {
		t.Error("60 records fit one page, expected pagination")
	}
}

func TestRecordLine(t *testing.T) {
	got := recordLine(
		[]string{"date", "destination", "notes"},
		[]string{"2024-11-02", "Tokyo, Japan", ""},
	)
	want := "date: 2024-11-02, destination: Tokyo, Japan, notes: "
	if got != want {
		t.Errorf("recordLine() = %q, want %q", got, want)
	}
}
