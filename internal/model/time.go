package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Time is the canonical timestamp used across the data model. Documents
// written by earlier versions of the dashboard stored dates as BSON
// datetimes, ISO 8601 strings or epoch milliseconds interchangeably;
// all of that tolerance lives here, at the storage edge, and every value
// surfaces as RFC 3339 UTC.
type Time time.Time

func Now() Time {
	return Time(time.Now().UTC().Truncate(time.Millisecond))
}

func At(t time.Time) Time {
	return Time(t.UTC().Truncate(time.Millisecond))
}

func (t Time) Std() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) After(other Time) bool {
	return time.Time(t).After(time.Time(other))
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(time.RFC3339Nano)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return time.Time(t).UTC().MarshalJSON()
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var parsed time.Time
	if err := parsed.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = At(parsed)
	return nil
}

func (t Time) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(time.Time(t).UTC())
}

func (t *Time) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	parsed, err := coerceBSONTime(bt, data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// coerceBSONTime is the single place where legacy date representations
// are accepted.
func coerceBSONTime(bt bsontype.Type, data []byte) (Time, error) {
	switch bt {
	case bsontype.DateTime:
		millis, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return Time{}, fmt.Errorf("malformed bson datetime")
		}
		return At(time.UnixMilli(millis)), nil
	case bsontype.String:
		raw, _, ok := bsoncore.ReadString(data)
		if !ok {
			return Time{}, fmt.Errorf("malformed bson string")
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Time{}, fmt.Errorf("parse time %q: %w", raw, err)
		}
		return At(parsed), nil
	case bsontype.Int64:
		millis, _, ok := bsoncore.ReadInt64(data)
		if !ok {
			return Time{}, fmt.Errorf("malformed bson int64")
		}
		return At(time.UnixMilli(millis)), nil
	case bsontype.Double:
		value, _, ok := bsoncore.ReadDouble(data)
		if !ok {
			return Time{}, fmt.Errorf("malformed bson double")
		}
		return At(time.UnixMilli(int64(value))), nil
	case bsontype.Null:
		return Time{}, nil
	default:
		return Time{}, fmt.Errorf("cannot decode %s into a timestamp", bt)
	}
}
