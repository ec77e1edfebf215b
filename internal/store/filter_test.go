package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterQueryTranslation(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	filter := Filter{
		Eq:    map[string]string{"status": "online"},
		After: map[string]time.Time{"expiresAt": now},
		Contains: &Substring{
			Query:  "kath",
			Fields: []string{"name", "district"},
		},
	}

	q := filter.Query()
	if q["status"] != "online" {
		t.Fatalf("expected status equality, got %v", q["status"])
	}
	gt, ok := q["expiresAt"].(bson.M)
	if !ok || !gt["$gt"].(time.Time).Equal(now) {
		t.Fatalf("expected $gt clause, got %v", q["expiresAt"])
	}
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or branches, got %v", q["$or"])
	}
	name := or[0].(bson.M)["name"].(bson.M)
	if name["$regex"] != "kath" || name["$options"] != "i" {
		t.Fatalf("expected case-insensitive regex, got %v", name)
	}
}

func TestFilterQueryEscapesRegexMeta(t *testing.T) {
	filter := Filter{Contains: &Substring{Query: "a.b", Fields: []string{"name"}}}
	or := filter.Query()["$or"].(bson.A)
	regex := or[0].(bson.M)["name"].(bson.M)["$regex"]
	if regex != `a\.b` {
		t.Fatalf("expected quoted pattern, got %v", regex)
	}
}

func TestFilterMatches(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := Fields{
		Strings: map[string]string{
			"status":   "online",
			"name":     "Shree Kathmandu Model School",
			"district": "Kathmandu",
		},
		Times: map[string]time.Time{"expiresAt": now.Add(time.Hour)},
	}

	cases := map[string]struct {
		filter Filter
		want   bool
	}{
		"equality hit":       {Filter{Eq: map[string]string{"status": "online"}}, true},
		"equality miss":      {Filter{Eq: map[string]string{"status": "offline"}}, false},
		"after hit":          {Filter{After: map[string]time.Time{"expiresAt": now}}, true},
		"after miss":         {Filter{After: map[string]time.Time{"expiresAt": now.Add(2 * time.Hour)}}, false},
		"before hit":         {Filter{Before: map[string]time.Time{"expiresAt": now.Add(2 * time.Hour)}}, true},
		"substring any-of":   {Filter{Contains: &Substring{Query: "KATHMANDU", Fields: []string{"palika", "district"}}}, true},
		"substring miss":     {Filter{Contains: &Substring{Query: "pokhara", Fields: []string{"name", "district"}}}, false},
		"combined and":       {Filter{Eq: map[string]string{"status": "online"}, Contains: &Substring{Query: "model", Fields: []string{"name"}}}, true},
		"combined and miss":  {Filter{Eq: map[string]string{"status": "offline"}, Contains: &Substring{Query: "model", Fields: []string{"name"}}}, false},
		"missing time field": {Filter{After: map[string]time.Time{"lastSeen": now}}, false},
	}

	for name, tc := range cases {
		if got := tc.filter.Matches(doc); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, got)
		}
	}
}
