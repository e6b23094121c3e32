package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTimeout bounds every single archive operation.
const mongoTimeout = 5 * time.Second

// MongoStore is a MongoDB-backed maze store for server deployments.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoRecord is the stored document. The maze and options payloads
// travel as JSON strings so the document schema stays independent of
// the maze document schema.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"createdAt"`
	Options   string    `bson:"options,omitempty"`
	Maze      string    `bson:"maze,omitempty"`
}

// NewMongoStore connects to MongoDB and verifies the connection. The
// records live in the "mazes" collection of the given database, with a
// unique index on the name.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	collection := client.Database(dbName).Collection("mazes")
	indexes := collection.Indexes()
	_, err = indexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create name index: %w", err)
	}

	return &MongoStore{client: client, collection: collection}, nil
}

func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	doc := mongoRecord{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Options:   string(rec.Options),
		Maze:      string(rec.Maze),
	}

	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("maze name %q already taken", rec.Name)
		}
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()}, id.String())
}

func (s *MongoStore) GetByName(ctx context.Context, name string) (*Record, error) {
	return s.findOne(ctx, bson.M{"name": name}, name)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, ref string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var doc mongoRecord
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound(ref)
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return doc.record()
}

func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"maze": 0})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cur.Close(ctx)

	var records []*Record
	for cur.Next(ctx) {
		var doc mongoRecord
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id.String()}); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// record converts the stored document back to a Record.
func (d mongoRecord) record() (*Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse record id %q: %w", d.ID, err)
	}
	rec := &Record{
		ID:        id,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
	if d.Options != "" {
		rec.Options = json.RawMessage(d.Options)
	}
	if d.Maze != "" {
		rec.Maze = json.RawMessage(d.Maze)
	}
	return rec, nil
}

var _ Store = (*MongoStore)(nil)
