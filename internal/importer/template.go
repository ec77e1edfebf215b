package importer

import (
	"strconv"
	"strings"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

var canonicalHeaders = []string{
	"name", "district", "province", "palika",
	"latitude", "longitude",
	"headmaster", "email", "phone",
	"looma_id", "looma_count", "status",
}

// Template returns a starter sheet with the canonical headers and a few
// example rows showing the expected value shapes.
func Template() string {
	var b strings.Builder
	b.WriteString(strings.Join(canonicalHeaders, ","))
	b.WriteByte('\n')
	b.WriteString("Shree Janata Secondary School,Kathmandu,Bagmati Province,Kathmandu Metropolitan,27.7172,85.3240,Ram Prasad Sharma,janata@school.edu.np,+977-9841000001,LMA-901,2,online\n")
	b.WriteString("Himalaya Basic School,Kaski,Gandaki Province,Pokhara Metropolitan,28.2096,83.9856,Sita Kumari Gurung,himalaya@school.edu.np,+977-9841000002,LMA-902,1,offline\n")
	b.WriteString("Saraswati Primary School,Morang,Koshi Province,Biratnagar Metropolitan,26.4525,87.2718,Hari Bahadur Rai,saraswati@school.edu.np,+977-9841000003,LMA-903,1,maintenance\n")
	return b.String()
}

// Export renders schools back into the same sheet format Parse accepts.
// Commas inside values are dropped so the naive splitter round-trips.
func Export(schools []model.School) string {
	var b strings.Builder
	b.WriteString(strings.Join(canonicalHeaders, ","))
	b.WriteByte('\n')
	for _, s := range schools {
		cells := []string{
			s.Name, s.District, s.Province, s.Palika,
			strconv.FormatFloat(s.Latitude, 'f', -1, 64),
			strconv.FormatFloat(s.Longitude, 'f', -1, 64),
			s.Contact.Headmaster, s.Contact.Email, s.Contact.Phone,
			s.LoomaID, strconv.Itoa(s.LoomaCount), string(s.Status),
		}
		for i, cell := range cells {
			cells[i] = strings.ReplaceAll(cell, ",", " ")
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
