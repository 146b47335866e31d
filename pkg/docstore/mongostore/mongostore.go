// Package mongostore implements the document store gateway over MongoDB.
// Record ids are the hex form of the document ObjectID; documents created
// outside the console with string ids are read and addressed as-is.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/record"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type store struct {
	client      *mongo.Client
	database    *mongo.Database
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a MongoDB-backed store. The client is configured here but the
// server is not contacted until Start runs its startup hook.
func New(cfg *docstore.Config, logger *slog.Logger) (docstore.System, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetConnectTimeout(cfg.ConnTimeoutDuration())

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	return &store{
		client:      client,
		database:    client.Database(cfg.Database),
		logger:      logger.With("system", "docstore", "driver", "mongo"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting document store", "database", s.database.Name())

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), s.connTimeout)
		defer cancel()

		if err := s.client.Ping(ctx, nil); err != nil {
			s.logger.Error("mongodb ping failed", "error", err)
			return
		}
		s.logger.Info("mongodb connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("closing mongodb connection")

		ctx, cancel := context.WithTimeout(context.Background(), s.connTimeout)
		defer cancel()

		if err := s.client.Disconnect(ctx); err != nil {
			s.logger.Error("mongodb disconnect failed", "error", err)
			return
		}
		s.logger.Info("mongodb connection closed")
	})

	return nil
}

func (s *store) List(ctx context.Context, collection string) ([]record.Record, error) {
	cur, err := s.database.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, unavailable("list "+collection, err)
	}
	defer cur.Close(ctx)

	records := make([]record.Record, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, unavailable("decode "+collection, err)
		}
		records = append(records, fromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, unavailable("list "+collection, err)
	}

	return records, nil
}

func (s *store) Get(ctx context.Context, collection, id string) (record.Record, error) {
	var doc bson.M
	err := s.database.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record.Record{}, docstore.ErrNotFound
		}
		return record.Record{}, unavailable("get "+collection, err)
	}
	return fromDocument(doc), nil
}

func (s *store) Create(ctx context.Context, collection string, fields record.Fields) (string, error) {
	doc := toDocument(fields)
	if _, ok := doc[record.FieldCreatedAt]; !ok {
		doc[record.FieldCreatedAt] = time.Now()
	}

	res, err := s.database.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", unavailable("create "+collection, err)
	}

	id := idString(res.InsertedID)
	s.logger.Debug("document created", "collection", collection, "id", id)
	return id, nil
}

func (s *store) Update(ctx context.Context, collection, id string, fields record.Fields) error {
	update := bson.M{"$set": toDocument(fields)}

	res, err := s.database.Collection(collection).UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return unavailable("update "+collection, err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.database.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return unavailable("delete "+collection, err)
	}
	if res.DeletedCount == 0 {
		s.logger.Debug("delete of absent document", "collection", collection, "id", id)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, docstore.ErrUnavailable, err)
}
