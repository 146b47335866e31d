package mongostore

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JaimeStill/catalog-console/pkg/record"
)

func TestIDFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	if got := idFilter(oid.Hex()); got["_id"] != oid {
		t.Errorf("idFilter(hex) = %v, want ObjectID", got)
	}
	if got := idFilter("legacy-id"); got["_id"] != "legacy-id" {
		t.Errorf("idFilter(string) = %v, want string id", got)
	}
}

func TestFromDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	doc := bson.M{
		"_id":       oid,
		"name":      "Apples",
		"category":  "c1",
		"createdAt": primitive.NewDateTimeFromTime(created),
		"stock":     int32(12),
		"tags":      bson.A{"fresh", int64(1)},
		"meta":      bson.M{"origin": "farm"},
	}

	got := fromDocument(doc)

	want := record.Record{
		ID: oid.Hex(),
		Fields: record.Fields{
			"name":      "Apples",
			"category":  "c1",
			"createdAt": created,
			"stock":     float64(12),
			"tags":      []any{"fresh", float64(1)},
			"meta":      map[string]any{"origin": "farm"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fromDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestToDocument_DropsID(t *testing.T) {
	doc := toDocument(record.Fields{"_id": "x", "name": "Veg"})

	if _, ok := doc["_id"]; ok {
		t.Error("toDocument() kept _id")
	}
	if doc["name"] != "Veg" {
		t.Errorf("toDocument() name = %v", doc["name"])
	}
}
