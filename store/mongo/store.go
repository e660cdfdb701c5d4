package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/recapkit/recap/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	Transcript   string             `bson:"transcript"`
	CustomPrompt string             `bson:"customPrompt"`
	Summary      string             `bson:"summary"`
	MeetingTitle string             `bson:"meetingTitle"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d document) toRecord() *store.Record {
	return &store.Record{
		Id:           d.Id.Hex(),
		Transcript:   d.Transcript,
		CustomPrompt: d.CustomPrompt,
		Summary:      d.Summary,
		MeetingTitle: d.MeetingTitle,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type mongoStore struct {
	options    store.Options
	client     *mongo.Client
	collection *mongo.Collection
}

func (s *mongoStore) Insert(ctx context.Context, rec store.Record) (string, error) {
	now := time.Now().UTC()

	doc := document{
		Transcript:   rec.Transcript,
		CustomPrompt: rec.CustomPrompt,
		Summary:      rec.Summary,
		MeetingTitle: rec.MeetingTitle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert summary: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return id.Hex(), nil
}

func (s *mongoStore) FindById(ctx context.Context, id string) (*store.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidId, id)
	}

	var doc document
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find summary: %w", err)
	}

	return doc.toRecord(), nil
}

// UpdateById merges via a single $set so a partial update cannot
// interleave with a concurrent writer field-by-field.
func (s *mongoStore) UpdateById(ctx context.Context, id string, fields store.Fields) (*store.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidId, id)
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if fields.Summary.Provided() {
		set["summary"] = fields.Summary.Value()
	}
	if fields.CustomPrompt.Provided() {
		set["customPrompt"] = fields.CustomPrompt.Value()
	}
	if fields.Transcript.Provided() {
		set["transcript"] = fields.Transcript.Value()
	}
	if fields.MeetingTitle.Provided() {
		set["meetingTitle"] = fields.MeetingTitle.Value()
	}

	var doc document
	if err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		mongooptions.FindOneAndUpdate().SetReturnDocument(mongooptions.After),
	).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update summary: %w", err)
	}

	return doc.toRecord(), nil
}

func (s *mongoStore) CheckId(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidId, id)
	}
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func NewStore(opts ...store.Option) (*mongoStore, error) {
	options := store.NewOptions(opts...)

	client, err := mongo.Connect(options.Context, mongooptions.Client().ApplyURI(options.Location))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	s := &mongoStore{
		options:    options,
		client:     client,
		collection: client.Database(options.Database).Collection(options.Collection),
	}

	return s, nil
}
