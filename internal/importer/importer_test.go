package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/isha-gupta80/loomaproject2222/internal/directory"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

func newTestPipeline() (*Pipeline, *directory.Service) {
	dir := directory.New(store.NewMemory())
	return New(dir), dir
}

func TestParseRejectsEmptyInput(t *testing.T) {
	for name, text := range map[string]string{
		"empty":       "",
		"whitespace":  "   \n  ",
		"header only": "name,district\n",
	} {
		if _, err := Parse(text); err != model.ErrEmptyInput {
			t.Fatalf("%s: got %v, want ErrEmptyInput", name, err)
		}
	}
}

func TestParseNormalizesHeadersAndCells(t *testing.T) {
	rows, err := Parse("Name, \"District\" ,LAT\n'Shree School', Kaski ,28.2\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Line != 2 {
		t.Fatalf("line = %d, want 2", row.Line)
	}
	if row.Fields["name"] != "Shree School" {
		t.Fatalf("name = %q", row.Fields["name"])
	}
	if row.Fields["district"] != "Kaski" {
		t.Fatalf("district = %q", row.Fields["district"])
	}
	if row.Fields["lat"] != "28.2" {
		t.Fatalf("lat = %q", row.Fields["lat"])
	}
}

func TestParseShortRowLeavesTrailingFieldsEmpty(t *testing.T) {
	rows, err := Parse("name,district,province\nOnly Name\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0].Fields["name"] != "Only Name" || rows[0].Fields["province"] != "" {
		t.Fatalf("unexpected fields: %v", rows[0].Fields)
	}
}

func TestHeaderAliases(t *testing.T) {
	text := "school_name,municipality,lng,principal,contact_email,contact_phone,device_id,devices\n" +
		"Alias School,Pokhara Metro,83.9,Sita Gurung,sita@example.org,+977-1,LMA-1,3\n"
	rows, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	school := record(rows[0].Fields)
	if school.Name != "Alias School" {
		t.Fatalf("name = %q", school.Name)
	}
	if school.Palika != "Pokhara Metro" {
		t.Fatalf("palika = %q", school.Palika)
	}
	if school.Longitude != 83.9 {
		t.Fatalf("longitude = %v", school.Longitude)
	}
	if school.Contact.Headmaster != "Sita Gurung" || school.Contact.Email != "sita@example.org" || school.Contact.Phone != "+977-1" {
		t.Fatalf("contact = %+v", school.Contact)
	}
	if school.LoomaID != "LMA-1" || school.LoomaCount != 3 {
		t.Fatalf("looma = %q count %d", school.LoomaID, school.LoomaCount)
	}
}

func TestRecordCoercionDefaults(t *testing.T) {
	fields := map[string]string{
		"name":        "Defaults School",
		"latitude":    "not-a-number",
		"longitude":   "",
		"looma_count": "zero",
		"status":      "broken",
	}
	school := record(fields)
	if school.Latitude < fallbackLatitude || school.Latitude >= fallbackLatitude+1 {
		t.Fatalf("latitude %v outside jitter range", school.Latitude)
	}
	if school.Longitude < fallbackLongitude || school.Longitude >= fallbackLongitude+1 {
		t.Fatalf("longitude %v outside jitter range", school.Longitude)
	}
	if school.LoomaCount != 1 {
		t.Fatalf("loomaCount = %d, want 1", school.LoomaCount)
	}
	if school.Status != model.StatusOffline {
		t.Fatalf("status = %q, want offline", school.Status)
	}
}

func TestRunImportsRowsAndSkipsBlanks(t *testing.T) {
	p, dir := newTestPipeline()
	text := "name,district,looma_id,status\n" +
		"School A,Kaski,LMA-A,online\n" +
		",,,\n" +
		"School B,Morang,LMA-B,offline\n" +
		"School C,Bhaktapur,LMA-C,maintenance\n"

	result, err := p.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Imported != 3 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 3 imported, 0 failed", result)
	}

	stats, err := dir.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
}

func TestRunIsBestEffortPerRow(t *testing.T) {
	p, dir := newTestPipeline()
	text := "name,looma_id\n" +
		"First School,LMA-DUP\n" +
		"Second School,LMA-DUP\n" +
		"Third School,LMA-OK\n"

	result, err := p.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Imported != 2 || result.Failed != 1 {
		t.Fatalf("result = %+v, want 2 imported, 1 failed", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v", result.Errors)
	}
	rowErr := result.Errors[0]
	if rowErr.Line != 3 || rowErr.Name != "Second School" || rowErr.Error != "duplicate_looma_id" {
		t.Fatalf("row error = %+v", rowErr)
	}

	if _, err := dir.GetByLoomaID(context.Background(), "LMA-OK"); err != nil {
		t.Fatalf("third row not persisted: %v", err)
	}
	first, err := dir.GetByLoomaID(context.Background(), "LMA-DUP")
	if err != nil {
		t.Fatalf("first row not persisted: %v", err)
	}
	if first.Name != "First School" {
		t.Fatalf("duplicate winner = %q, want First School", first.Name)
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	p, dir := newTestPipeline()
	result, err := p.Run(context.Background(), Template())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Imported != 3 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 3 imported", result)
	}
	school, err := dir.GetByLoomaID(context.Background(), "LMA-901")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if school.Status != model.StatusOnline || school.Latitude != 27.7172 {
		t.Fatalf("template row mangled: %+v", school)
	}
}

func TestExportRoundTrips(t *testing.T) {
	_, dir := newTestPipeline()
	if _, err := dir.Create(context.Background(), model.School{
		Name:       "Export, With Comma",
		District:   "Kaski",
		Province:   "Gandaki Province",
		Latitude:   28.25,
		Longitude:  83.98,
		LoomaID:    "LMA-EXP",
		LoomaCount: 2,
		Status:     model.StatusOnline,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	schools, err := dir.Search(context.Background(), "", "all", "all")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	sheet := Export(schools)
	if strings.Count(sheet, "\n") != 2 {
		t.Fatalf("sheet = %q", sheet)
	}

	again, dir2 := newTestPipeline()
	result, err := again.Run(context.Background(), sheet)
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if result.Imported != 1 || result.Failed != 0 {
		t.Fatalf("reimport result = %+v", result)
	}
	school, err := dir2.GetByLoomaID(context.Background(), "LMA-EXP")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if school.Name != "Export  With Comma" || school.LoomaCount != 2 {
		t.Fatalf("reimported school = %+v", school)
	}
}
