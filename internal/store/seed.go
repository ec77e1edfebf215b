package store

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/isha-gupta80/loomaproject2222/internal/crypto"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

// Synthetic dataset for fallback mode: 144 plausible Nepali schools
// spread over the seven provinces.

const seedSchoolCount = 144

var nepalProvinces = []struct {
	name      string
	districts []string
}{
	{"Koshi", []string{"Jhapa", "Morang", "Sunsari", "Ilam", "Taplejung", "Panchthar", "Dhankuta", "Terhathum", "Sankhuwasabha", "Bhojpur", "Solukhumbu", "Okhaldhunga", "Khotang", "Udayapur"}},
	{"Madhesh", []string{"Saptari", "Siraha", "Dhanusha", "Mahottari", "Sarlahi", "Rautahat", "Bara", "Parsa"}},
	{"Bagmati", []string{"Kathmandu", "Bhaktapur", "Lalitpur", "Kavrepalanchok", "Sindhupalchok", "Rasuwa", "Nuwakot", "Dhading", "Makwanpur", "Chitwan", "Ramechhap", "Dolakha", "Sindhuli"}},
	{"Gandaki", []string{"Kaski", "Lamjung", "Tanahu", "Gorkha", "Manang", "Mustang", "Myagdi", "Parbat", "Baglung", "Syangja", "Nawalpur"}},
	{"Lumbini", []string{"Rupandehi", "Kapilvastu", "Palpa", "Arghakhanchi", "Gulmi", "Nawalparasi", "Dang", "Banke", "Bardiya", "Pyuthan", "Rolpa", "Rukum East"}},
	{"Karnali", []string{"Surkhet", "Dailekh", "Jajarkot", "Dolpa", "Jumla", "Kalikot", "Mugu", "Humla", "Salyan", "Rukum West"}},
	{"Sudurpashchim", []string{"Kailali", "Kanchanpur", "Dadeldhura", "Baitadi", "Darchula", "Bajhang", "Bajura", "Achham", "Doti"}},
}

var schoolPrefixes = []string{"Shree", "Janakalyan", "Adarsha", "Rastriya", "Himalaya", "Buddha", "Saraswati", "Janata", "Praja", "Nepal"}

var schoolSuffixes = []string{"Secondary School", "Higher Secondary School", "Basic School", "Model School", "Community School"}

var firstNames = []string{"Ram", "Shyam", "Hari", "Krishna", "Sita", "Gita", "Maya", "Laxmi", "Bishnu", "Ganesh", "Sarita", "Kamala", "Prem", "Deepak", "Anita", "Bimala", "Gopal", "Suresh", "Mahesh", "Rajesh"}

var lastNames = []string{"Sharma", "Thapa", "Adhikari", "Gurung", "Tamang", "Rai", "Limbu", "Magar", "KC", "Shrestha", "Poudel", "Gautam", "Neupane", "Bhattarai", "Khadka", "Basnet", "Bhandari", "Karki", "Ghimire", "Pandey"}

func seedSchools() []model.School {
	// Rough bounding box of Nepal.
	const (
		latMin = 26.3
		latMax = 30.4
		lngMin = 80.0
		lngMax = 88.2
	)

	now := time.Now().UTC()
	schools := make([]model.School, 0, seedSchoolCount)
	perProvince := seedSchoolCount/len(nepalProvinces) + 1

	id := 1
	for _, province := range nepalProvinces {
		for i := 0; i < perProvince && id <= seedSchoolCount; i++ {
			district := province.districts[i%len(province.districts)]
			headmaster := pick(firstNames) + " " + pick(lastNames)

			status := model.StatusOnline
			switch roll := rand.Float64(); {
			case roll >= 0.9:
				status = model.StatusMaintenance
			case roll >= 0.75:
				status = model.StatusOffline
			}

			var lastSeen time.Time
			switch status {
			case model.StatusOnline:
				lastSeen = now.Add(-time.Duration(rand.Intn(30)) * time.Minute)
			case model.StatusOffline:
				lastSeen = now.Add(-time.Duration(24+rand.Intn(6*24)) * time.Hour)
			default:
				lastSeen = now.Add(-time.Duration(rand.Intn(120)) * time.Minute)
			}

			loomaID := fmt.Sprintf("LMA-%03d", id)
			schools = append(schools, model.School{
				ID:        uuid.NewString(),
				Name:      fmt.Sprintf("%s %s %s", pick(schoolPrefixes), district, pick(schoolSuffixes)),
				Latitude:  latMin + rand.Float64()*(latMax-latMin),
				Longitude: lngMin + rand.Float64()*(lngMax-lngMin),
				Contact: model.Contact{
					Headmaster: headmaster,
					Email:      fmt.Sprintf("school%d@looma.edu.np", id),
					Phone:      fmt.Sprintf("+977-98%08d", rand.Intn(100000000)),
				},
				Province:   province.name,
				District:   district,
				Palika:     district + " Municipality",
				Status:     status,
				LastSeen:   model.At(lastSeen),
				LoomaID:    loomaID,
				LoomaCount: 1 + rand.Intn(9),
				Looma: model.Looma{
					ID:           loomaID,
					SerialNumber: fmt.Sprintf("SN-2023-%05d", id),
					Version:      fmt.Sprintf("v5.2.%d", rand.Intn(8)),
					LastUpdate:   model.At(now.Add(-time.Duration(rand.Intn(60*24)) * time.Hour)),
				},
				CreatedAt: model.At(now),
				UpdatedAt: model.At(now),
			})
			id++
		}
	}
	return schools
}

// seedUsers makes fallback mode usable end to end: without a backing
// store there is nowhere to create the first account from.
func seedUsers() []model.User {
	hash, err := crypto.HashPassword("looma-admin")
	if err != nil {
		log.Printf("fallback store: could not seed demo admin: %v", err)
		return nil
	}
	log.Printf("fallback store: seeded demo admin user %q", "admin")
	return []model.User{{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@looma.org",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    model.Now(),
	}}
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
