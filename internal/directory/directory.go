package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

// searchFields are the school fields the free-text search looks at. A
// record matches when any of them contains the query, case-insensitively,
// in live and fallback mode alike.
var searchFields = []string{"name", "district", "province", "palika", "contact.headmaster", "loomaId"}

type Stats struct {
	Total       int64 `json:"total"`
	Online      int64 `json:"online"`
	Offline     int64 `json:"offline"`
	Maintenance int64 `json:"maintenance"`
}

// Update carries a partial school record; nil fields are left untouched.
type Update struct {
	Name       *string        `json:"name"`
	Latitude   *float64       `json:"latitude"`
	Longitude  *float64       `json:"longitude"`
	Contact    *model.Contact `json:"contact"`
	Province   *string        `json:"province"`
	District   *string        `json:"district"`
	Palika     *string        `json:"palika"`
	Status     *model.Status  `json:"status"`
	LoomaID    *string        `json:"loomaId"`
	LoomaCount *int           `json:"loomaCount"`
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func New(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Create persists a new school record. The id is assigned when absent,
// a non-empty looma id must not already be registered, and an
// unrecognized status defaults to offline.
func (s *Service) Create(ctx context.Context, school model.School) (model.School, error) {
	if school.Name == "" {
		return model.School{}, model.ErrValidation
	}
	if school.LoomaID != "" {
		if _, err := s.GetByLoomaID(ctx, school.LoomaID); err == nil {
			return model.School{}, model.ErrDuplicateLoomaID
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.School{}, err
		}
	}

	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	if !model.ValidStatus(school.Status) {
		school.Status = model.StatusOffline
	}
	now := model.At(s.now())
	if school.LastSeen.IsZero() {
		school.LastSeen = now
	}
	school.CreatedAt = now
	school.UpdatedAt = now

	if err := s.store.Schools.Insert(ctx, school); err != nil {
		return model.School{}, storeErr(err)
	}
	return school, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (model.School, error) {
	school, err := s.store.Schools.FindOne(ctx, store.ByID(id))
	if err != nil {
		return model.School{}, storeErr(err)
	}
	return school, nil
}

// GetByLoomaID resolves a device id to its school. Device ids are
// expected unique; should a bad import have left duplicates, the first
// match wins.
func (s *Service) GetByLoomaID(ctx context.Context, loomaID string) (model.School, error) {
	school, err := s.store.Schools.FindOne(ctx, store.Filter{Eq: map[string]string{"loomaId": loomaID}})
	if err != nil {
		return model.School{}, storeErr(err)
	}
	return school, nil
}

// Patch merges the non-nil fields of update into the stored record and
// refreshes the update timestamp.
func (s *Service) Patch(ctx context.Context, id string, update Update) (model.School, error) {
	school, err := s.GetByID(ctx, id)
	if err != nil {
		return model.School{}, err
	}

	if update.Name != nil {
		school.Name = *update.Name
	}
	if update.Latitude != nil {
		school.Latitude = *update.Latitude
	}
	if update.Longitude != nil {
		school.Longitude = *update.Longitude
	}
	if update.Contact != nil {
		school.Contact = *update.Contact
	}
	if update.Province != nil {
		school.Province = *update.Province
	}
	if update.District != nil {
		school.District = *update.District
	}
	if update.Palika != nil {
		school.Palika = *update.Palika
	}
	if update.Status != nil {
		if !model.ValidStatus(*update.Status) {
			return model.School{}, model.ErrValidation
		}
		school.Status = *update.Status
	}
	if update.LoomaID != nil {
		school.LoomaID = *update.LoomaID
	}
	if update.LoomaCount != nil {
		school.LoomaCount = *update.LoomaCount
	}
	school.UpdatedAt = model.At(s.now())

	if _, err := s.store.Schools.ReplaceOne(ctx, store.ByID(id), school); err != nil {
		return model.School{}, storeErr(err)
	}
	return school, nil
}

// UpdateStatus sets the operational status and refreshes lastSeen. This
// is the only path outside creation and import that advances lastSeen.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.Status) (bool, error) {
	if !model.ValidStatus(status) {
		return false, model.ErrValidation
	}
	school, err := s.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := model.At(s.now())
	school.Status = status
	school.LastSeen = now
	school.UpdatedAt = now
	if _, err := s.store.Schools.ReplaceOne(ctx, store.ByID(id), school); err != nil {
		return false, storeErr(err)
	}
	return true, nil
}

// Delete removes the school and the scan and access-log children it
// owns.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Schools.DeleteOne(ctx, store.ByID(id))
	if err != nil {
		return false, storeErr(err)
	}
	if !deleted {
		return false, nil
	}
	children := store.Filter{Eq: map[string]string{"schoolId": id}}
	if _, err := s.store.QRScans.DeleteMany(ctx, children); err != nil {
		return true, storeErr(err)
	}
	if _, err := s.store.AccessLogs.DeleteMany(ctx, children); err != nil {
		return true, storeErr(err)
	}
	return true, nil
}

// Search filters schools by a case-insensitive substring query combined
// with exact status and province constraints. An empty or "all" value
// means no constraint for that dimension.
func (s *Service) Search(ctx context.Context, query, status, province string) ([]model.School, error) {
	filter := store.Filter{}
	if query != "" {
		filter.Contains = &store.Substring{Query: query, Fields: searchFields}
	}
	eq := map[string]string{}
	if status != "" && status != "all" {
		eq["status"] = status
	}
	if province != "" && province != "all" {
		eq["province"] = province
	}
	if len(eq) > 0 {
		filter.Eq = eq
	}

	schools, err := s.store.Schools.Find(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return schools, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	counts := []struct {
		dest   *int64
		filter store.Filter
	}{
		{&stats.Total, store.Filter{}},
		{&stats.Online, statusFilter(model.StatusOnline)},
		{&stats.Offline, statusFilter(model.StatusOffline)},
		{&stats.Maintenance, statusFilter(model.StatusMaintenance)},
	}
	for _, count := range counts {
		n, err := s.store.Schools.Count(ctx, count.filter)
		if err != nil {
			return Stats{}, storeErr(err)
		}
		*count.dest = n
	}
	return stats, nil
}

func statusFilter(status model.Status) store.Filter {
	return store.Filter{Eq: map[string]string{"status": string(status)}}
}

func storeErr(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
