package store

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter is the predicate description shared by both store modes. Field
// names are BSON paths ("contact.headmaster"), so the same filter
// translates to a Mongo query in live mode and evaluates against the
// in-memory field maps in fallback mode.
type Filter struct {
	// Eq requires exact equality on each named field.
	Eq map[string]string
	// After requires the named time field to be strictly later than the
	// given instant.
	After map[string]time.Time
	// Before requires the named time field to be strictly earlier than
	// the given instant.
	Before map[string]time.Time
	// Contains requires at least one of the named fields to contain the
	// query as a case-insensitive substring.
	Contains *Substring
}

type Substring struct {
	Query  string
	Fields []string
}

// Query renders the filter as a Mongo query document.
func (f Filter) Query() bson.M {
	q := bson.M{}
	for field, value := range f.Eq {
		q[field] = value
	}
	for field, at := range f.After {
		q[field] = bson.M{"$gt": at}
	}
	for field, at := range f.Before {
		q[field] = bson.M{"$lt": at}
	}
	if f.Contains != nil && f.Contains.Query != "" {
		or := make(bson.A, 0, len(f.Contains.Fields))
		for _, field := range f.Contains.Fields {
			or = append(or, bson.M{field: bson.M{
				"$regex":   regexp.QuoteMeta(f.Contains.Query),
				"$options": "i",
			}})
		}
		q["$or"] = or
	}
	return q
}

// Fields is the flattened view of a document that the in-memory mode
// evaluates filters against.
type Fields struct {
	Strings map[string]string
	Times   map[string]time.Time
}

// Matches evaluates the filter against a flattened document with the
// same semantics Query has on the live store.
func (f Filter) Matches(doc Fields) bool {
	for field, value := range f.Eq {
		if doc.Strings[field] != value {
			return false
		}
	}
	for field, at := range f.After {
		stored, ok := doc.Times[field]
		if !ok || !stored.After(at) {
			return false
		}
	}
	for field, at := range f.Before {
		stored, ok := doc.Times[field]
		if !ok || !stored.Before(at) {
			return false
		}
	}
	if f.Contains != nil && f.Contains.Query != "" {
		query := strings.ToLower(f.Contains.Query)
		matched := false
		for _, field := range f.Contains.Fields {
			if strings.Contains(strings.ToLower(doc.Strings[field]), query) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
