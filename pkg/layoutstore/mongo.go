package layoutstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// MongoConfig configures a MongoDB-backed layout store.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "ordertable"
	Collection string // defaults to "floorplans"
}

// layoutDoc is the MongoDB document shape. The room identifier doubles as the
// document id so Put is a natural upsert, and the layout itself is stored as
// its canonical JSON bytes to keep Get/Put symmetric with the other backends.
type layoutDoc struct {
	Room string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoStore keeps one document per room in a collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "ordertable"
	}
	if cfg.Collection == "" {
		cfg.Collection = "floorplans"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves the layout for a room.
func (s *MongoStore) Get(ctx context.Context, room string) (*layout.RoomLayout, error) {
	var doc layoutDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": room}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", room, err)
	}
	return decode(doc.Data)
}

// Put upserts the layout document for a room.
func (s *MongoStore) Put(ctx context.Context, l *layout.RoomLayout) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": l.Room},
		layoutDoc{Room: l.Room, Data: data},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", l.Room, err)
	}
	return nil
}

// Delete removes the layout document for a room.
func (s *MongoStore) Delete(ctx context.Context, room string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": room}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", room, err)
	}
	return nil
}

// List returns the stored rooms, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []string
	for cur.Next(ctx) {
		var doc struct {
			Room string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		rooms = append(rooms, doc.Room)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	slices.Sort(rooms)
	return rooms, nil
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
