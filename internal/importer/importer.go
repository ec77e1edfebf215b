package importer

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/isha-gupta80/loomaproject2222/internal/directory"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

// Reference point for records imported without usable coordinates:
// jittered around Kathmandu so they still land on the map.
const (
	fallbackLatitude  = 27.7
	fallbackLongitude = 85.3
)

// headerAliases maps each canonical attribute to the header spellings
// historical spreadsheets have used, in priority order. The first alias
// present in a row wins.
var headerAliases = map[string][]string{
	"name":       {"name", "school name", "school_name"},
	"district":   {"district"},
	"province":   {"province"},
	"palika":     {"palika", "municipality"},
	"latitude":   {"latitude", "lat"},
	"longitude":  {"longitude", "lng", "long"},
	"headmaster": {"headmaster", "principal", "contact_name"},
	"email":      {"email", "contact_email"},
	"phone":      {"phone", "contact_phone"},
	"loomaId":    {"looma_id", "loomaid", "looma_unique_id", "device_id"},
	"loomaCount": {"looma_count", "loomas", "devices"},
	"status":     {"status"},
}

type Row struct {
	Line   int
	Fields map[string]string
}

type RowError struct {
	Line  int    `json:"line"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

type Result struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

type Pipeline struct {
	directory *directory.Service
}

func New(dir *directory.Service) *Pipeline {
	return &Pipeline{directory: dir}
}

// Parse splits raw spreadsheet text into rows keyed by normalized
// header. The first line must be a header row and at least one data
// line must follow; beyond that, rows are independent and a short line
// simply leaves trailing attributes empty.
func Parse(text string) ([]Row, error) {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n")), "\n")
	if len(lines) < 2 {
		return nil, model.ErrEmptyInput
	}

	headers := splitCells(lines[0])
	for i, header := range headers {
		headers[i] = strings.ToLower(header)
	}

	rows := make([]Row, 0, len(lines)-1)
	for n, line := range lines[1:] {
		cells := splitCells(line)
		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				fields[header] = cells[i]
			} else {
				fields[header] = ""
			}
		}
		rows = append(rows, Row{Line: n + 2, Fields: fields})
	}
	return rows, nil
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i, cell := range cells {
		cells[i] = strings.Trim(strings.TrimSpace(cell), `'"`)
	}
	return cells
}

func resolve(fields map[string]string, attr string) string {
	for _, alias := range headerAliases[attr] {
		if value := fields[alias]; value != "" {
			return value
		}
	}
	return ""
}

// record coerces a parsed row into a school record. Unparseable
// coordinates fall back to a jitter around the reference point,
// unparseable device counts to 1 and unknown statuses to offline.
func record(fields map[string]string) model.School {
	latitude, err := strconv.ParseFloat(resolve(fields, "latitude"), 64)
	if err != nil {
		latitude = fallbackLatitude + rand.Float64()
	}
	longitude, err := strconv.ParseFloat(resolve(fields, "longitude"), 64)
	if err != nil {
		longitude = fallbackLongitude + rand.Float64()
	}
	count, err := strconv.Atoi(resolve(fields, "loomaCount"))
	if err != nil || count < 1 {
		count = 1
	}
	status := model.Status(resolve(fields, "status"))
	if !model.ValidStatus(status) {
		status = model.StatusOffline
	}

	return model.School{
		Name:      resolve(fields, "name"),
		District:  resolve(fields, "district"),
		Province:  resolve(fields, "province"),
		Palika:    resolve(fields, "palika"),
		Latitude:  latitude,
		Longitude: longitude,
		Contact: model.Contact{
			Headmaster: resolve(fields, "headmaster"),
			Email:      resolve(fields, "email"),
			Phone:      resolve(fields, "phone"),
		},
		LoomaID:    resolve(fields, "loomaId"),
		LoomaCount: count,
		Status:     status,
	}
}

// Run imports every usable row, one directory create per row. Rows
// without a name are blank or separator lines and are skipped silently;
// a failing row is counted and logged without stopping the rest of the
// batch.
func (p *Pipeline) Run(ctx context.Context, text string) (Result, error) {
	rows, err := Parse(text)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, row := range rows {
		school := record(row.Fields)
		if school.Name == "" {
			continue
		}
		if _, err := p.directory.Create(ctx, school); err != nil {
			log.Printf("import: row %d (%s): %v", row.Line, school.Name, err)
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: row.Line, Name: school.Name, Error: errorLabel(err)})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, model.ErrDuplicateLoomaID):
		return "duplicate_looma_id"
	case errors.Is(err, model.ErrValidation):
		return "validation_error"
	default:
		return "store_error"
	}
}
