package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ExtractTime reads a timestamp field from a loosely-typed document. Older
// records store dates as RFC3339 strings instead of BSON dates.
func ExtractTime(m bson.M, key string) (time.Time, bool) {
	v, ok := m[key]
	if !ok {
		return time.Time{}, false
	}
	switch tv := v.(type) {
	case time.Time:
		return tv, true
	case bson.DateTime:
		return tv.Time(), true
	case string:
		if t, err := time.Parse(time.RFC3339Nano, tv); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, tv); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BSONTypeName names the BSON type of a value decoded into bson.M.
func BSONTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int32:
		return "int"
	case int64:
		return "long"
	case float64:
		return "double"
	case bson.Decimal128:
		return "decimal"
	case bson.ObjectID:
		return "objectId"
	case bson.DateTime, time.Time:
		return "date"
	case bson.A:
		return "array"
	case bson.M, bson.D:
		return "object"
	case bson.Binary:
		return "binData"
	case bson.Regex:
		return "regex"
	case bson.Timestamp:
		return "timestamp"
	}
	return "unknown"
}
