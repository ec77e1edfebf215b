package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

func school(id, name, district, province, loomaID string, status model.Status) model.School {
	return model.School{
		ID:       id,
		Name:     name,
		District: district,
		Province: province,
		LoomaID:  loomaID,
		Status:   status,
	}
}

func TestMemoryCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	first := school("s1", "Shree Jhapa Basic School", "Jhapa", "Koshi", "LMA-001", model.StatusOnline)
	second := school("s2", "Buddha Kaski Model School", "Kaski", "Gandaki", "LMA-002", model.StatusOffline)
	for _, doc := range []model.School{first, second} {
		if err := st.Schools.Insert(ctx, doc); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := st.Schools.FindOne(ctx, ByID("s2"))
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if got.Name != second.Name {
		t.Fatalf("expected %s, got %s", second.Name, got.Name)
	}

	if _, err := st.Schools.FindOne(ctx, ByID("missing")); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	second.Status = model.StatusMaintenance
	replaced, err := st.Schools.ReplaceOne(ctx, ByID("s2"), second)
	if err != nil || !replaced {
		t.Fatalf("expected replace to match, got %v %v", replaced, err)
	}
	got, _ = st.Schools.FindOne(ctx, ByID("s2"))
	if got.Status != model.StatusMaintenance {
		t.Fatalf("expected maintenance after replace, got %s", got.Status)
	}

	count, err := st.Schools.Count(ctx, Filter{})
	if err != nil || count != 2 {
		t.Fatalf("expected count 2, got %d %v", count, err)
	}

	deleted, err := st.Schools.DeleteOne(ctx, ByID("s1"))
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
	}
	deleted, err = st.Schools.DeleteOne(ctx, ByID("s1"))
	if err != nil || deleted {
		t.Fatalf("expected second delete to report nothing, got %v %v", deleted, err)
	}
}

func TestMemoryCollectionPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		if err := st.Schools.Insert(ctx, school(id, "School "+id, "", "", "", model.StatusOnline)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	all, err := st.Schools.Find(ctx, Filter{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for i, doc := range all {
		if doc.ID != ids[i] {
			t.Fatalf("expected %s at position %d, got %s", ids[i], i, doc.ID)
		}
	}
}

func TestMemoryFindSorted(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "newest", "mid"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		scan := model.QRScan{ID: id, SchoolID: "s1", Timestamp: model.At(base.Add(offsets[i]))}
		if err := st.QRScans.Insert(ctx, scan); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	scans, err := st.QRScans.FindSorted(ctx, Filter{Eq: map[string]string{"schoolId": "s1"}}, "timestamp", 2)
	if err != nil {
		t.Fatalf("findSorted: %v", err)
	}
	if len(scans) != 2 || scans[0].ID != "newest" || scans[1].ID != "mid" {
		t.Fatalf("expected [newest mid], got %v", scans)
	}
}

func TestMemoryDeleteMany(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	now := time.Now().UTC()

	for i, expiry := range []time.Time{now.Add(-time.Hour), now.Add(-time.Minute), now.Add(time.Hour)} {
		session := model.Session{ID: string(rune('a' + i)), UserID: "u1", Token: "t", ExpiresAt: model.At(expiry)}
		if err := st.Sessions.Insert(ctx, session); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	deleted, err := st.Sessions.DeleteMany(ctx, Filter{Before: map[string]time.Time{"expiresAt": now}})
	if err != nil || deleted != 2 {
		t.Fatalf("expected 2 expired sessions deleted, got %d %v", deleted, err)
	}
	count, _ := st.Sessions.Count(ctx, Filter{})
	if count != 1 {
		t.Fatalf("expected 1 session left, got %d", count)
	}
}

func TestSeededMemoryDataset(t *testing.T) {
	ctx := context.Background()
	st := NewSeededMemory()

	if st.IsLive() {
		t.Fatalf("expected fallback mode")
	}
	if !st.Ping(ctx) {
		t.Fatalf("expected fallback ping to succeed")
	}

	total, err := st.Schools.Count(ctx, Filter{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != seedSchoolCount {
		t.Fatalf("expected %d seeded schools, got %d", seedSchoolCount, total)
	}

	var byStatus int64
	for _, status := range []model.Status{model.StatusOnline, model.StatusOffline, model.StatusMaintenance} {
		n, err := st.Schools.Count(ctx, Filter{Eq: map[string]string{"status": string(status)}})
		if err != nil {
			t.Fatalf("count %s: %v", status, err)
		}
		byStatus += n
	}
	if byStatus != total {
		t.Fatalf("status counts %d do not sum to total %d", byStatus, total)
	}

	// Each seeded device id is unique.
	seen := map[string]bool{}
	schools, _ := st.Schools.Find(ctx, Filter{})
	for _, s := range schools {
		if seen[s.LoomaID] {
			t.Fatalf("duplicate looma id %s in seed", s.LoomaID)
		}
		seen[s.LoomaID] = true
	}
}
