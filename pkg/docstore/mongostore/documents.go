package mongostore

import (
	"fmt"
	"time"

	"github.com/JaimeStill/catalog-console/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func fromDocument(doc bson.M) record.Record {
	r := record.Record{
		ID:     idString(doc["_id"]),
		Fields: make(record.Fields, len(doc)),
	}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		r.Fields[k] = normalize(v)
	}
	return r
}

func toDocument(fields record.Fields) bson.M {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	return doc
}

// normalize converts driver-specific decoded values into plain Go values.
func normalize(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time()
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Decimal128:
		return val.String()
	case bson.M:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalize(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalize(inner)
		}
		return out
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}
