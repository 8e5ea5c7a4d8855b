package counselling

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence surface the counselling service works against.
type Store interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Session, error)
	Find(ctx context.Context, filter Filter) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("counselling_sessions")}
}

func (r *Repository) Create(ctx context.Context, session *Session) error {
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	res, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Session, error) {
	var session Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *Repository) Find(ctx context.Context, filter Filter) ([]*Session, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.InstitutionID != nil {
		query["institution_id"] = *filter.InstitutionID
	}
	switch len(filter.Statuses) {
	case 0:
	case 1:
		query["status"] = filter.Statuses[0]
	default:
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time_of_day", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *Repository) Update(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("session not found")
	}
	return nil
}
