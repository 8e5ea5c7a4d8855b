package profile

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the persistence surface the profile service works against.
// Progress lives on the user record, so the store also carries the
// increment and read operations for that counter.
type Store interface {
	FindBasicInfo(ctx context.Context, userID primitive.ObjectID) (*BasicInfo, error)
	SaveBasicInfo(ctx context.Context, info *BasicInfo) error

	ListEducation(ctx context.Context, userID primitive.ObjectID) ([]*Education, error)
	FindEducation(ctx context.Context, id primitive.ObjectID) (*Education, error)
	CreateEducation(ctx context.Context, record *Education) error
	UpdateEducation(ctx context.Context, record *Education) error
	DeleteEducation(ctx context.Context, id primitive.ObjectID) error

	ListAchievements(ctx context.Context, userID primitive.ObjectID) ([]*Achievement, error)
	FindAchievement(ctx context.Context, id primitive.ObjectID) (*Achievement, error)
	CreateAchievement(ctx context.Context, record *Achievement) error
	UpdateAchievement(ctx context.Context, record *Achievement) error
	DeleteAchievement(ctx context.Context, id primitive.ObjectID) error

	ListCertifications(ctx context.Context, userID primitive.ObjectID) ([]*Certification, error)
	FindCertification(ctx context.Context, id primitive.ObjectID) (*Certification, error)
	CreateCertification(ctx context.Context, record *Certification) error
	UpdateCertification(ctx context.Context, record *Certification) error
	DeleteCertification(ctx context.Context, id primitive.ObjectID) error

	IncrementProgress(ctx context.Context, userID primitive.ObjectID, points int) error
	GetProgress(ctx context.Context, userID primitive.ObjectID) (int, error)
	SetProfileImage(ctx context.Context, userID primitive.ObjectID, url string) error
}

type Repository struct {
	basicInfo      *mongo.Collection
	education      *mongo.Collection
	achievements   *mongo.Collection
	certifications *mongo.Collection
	users          *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		basicInfo:      db.Collection("user_basic_info"),
		education:      db.Collection("user_education"),
		achievements:   db.Collection("user_achievements"),
		certifications: db.Collection("user_certifications"),
		users:          db.Collection("users"),
	}
}

func (r *Repository) FindBasicInfo(ctx context.Context, userID primitive.ObjectID) (*BasicInfo, error) {
	var info BasicInfo
	err := r.basicInfo.FindOne(ctx, bson.M{"user_id": userID}).Decode(&info)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *Repository) SaveBasicInfo(ctx context.Context, info *BasicInfo) error {
	info.UpdatedAt = time.Now()
	if info.ID.IsZero() {
		info.CreatedAt = info.UpdatedAt
		res, err := r.basicInfo.InsertOne(ctx, info)
		if err != nil {
			return err
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			info.ID = oid
		}
		return nil
	}
	_, err := r.basicInfo.ReplaceOne(ctx, bson.M{"_id": info.ID}, info)
	return err
}

func listByUser[T any](ctx context.Context, collection *mongo.Collection, userID primitive.ObjectID) ([]*T, error) {
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*T
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func findByID[T any](ctx context.Context, collection *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var record T
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func insertRecord(ctx context.Context, collection *mongo.Collection, record interface{}) (primitive.ObjectID, error) {
	res, err := collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *Repository) ListEducation(ctx context.Context, userID primitive.ObjectID) ([]*Education, error) {
	return listByUser[Education](ctx, r.education, userID)
}

func (r *Repository) FindEducation(ctx context.Context, id primitive.ObjectID) (*Education, error) {
	return findByID[Education](ctx, r.education, id)
}

func (r *Repository) CreateEducation(ctx context.Context, record *Education) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	oid, err := insertRecord(ctx, r.education, record)
	if err != nil {
		return err
	}
	record.ID = oid
	return nil
}

func (r *Repository) UpdateEducation(ctx context.Context, record *Education) error {
	record.UpdatedAt = time.Now()
	res, err := r.education.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("education record not found")
	}
	return nil
}

func (r *Repository) DeleteEducation(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.education.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *Repository) ListAchievements(ctx context.Context, userID primitive.ObjectID) ([]*Achievement, error) {
	return listByUser[Achievement](ctx, r.achievements, userID)
}

func (r *Repository) FindAchievement(ctx context.Context, id primitive.ObjectID) (*Achievement, error) {
	return findByID[Achievement](ctx, r.achievements, id)
}

func (r *Repository) CreateAchievement(ctx context.Context, record *Achievement) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	oid, err := insertRecord(ctx, r.achievements, record)
	if err != nil {
		return err
	}
	record.ID = oid
	return nil
}

func (r *Repository) UpdateAchievement(ctx context.Context, record *Achievement) error {
	record.UpdatedAt = time.Now()
	res, err := r.achievements.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("achievement record not found")
	}
	return nil
}

func (r *Repository) DeleteAchievement(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.achievements.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *Repository) ListCertifications(ctx context.Context, userID primitive.ObjectID) ([]*Certification, error) {
	return listByUser[Certification](ctx, r.certifications, userID)
}

func (r *Repository) FindCertification(ctx context.Context, id primitive.ObjectID) (*Certification, error) {
	return findByID[Certification](ctx, r.certifications, id)
}

func (r *Repository) CreateCertification(ctx context.Context, record *Certification) error {
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	oid, err := insertRecord(ctx, r.certifications, record)
	if err != nil {
		return err
	}
	record.ID = oid
	return nil
}

func (r *Repository) UpdateCertification(ctx context.Context, record *Certification) error {
	record.UpdatedAt = time.Now()
	res, err := r.certifications.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("certification record not found")
	}
	return nil
}

func (r *Repository) DeleteCertification(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.certifications.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *Repository) IncrementProgress(ctx context.Context, userID primitive.ObjectID, points int) error {
	if points == 0 {
		return nil
	}
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"user_profile_progress": points}})
	return err
}

func (r *Repository) SetProfileImage(ctx context.Context, userID primitive.ObjectID, url string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"profile_image": url}})
	return err
}

func (r *Repository) GetProgress(ctx context.Context, userID primitive.ObjectID) (int, error) {
	var doc struct {
		Progress int `bson:"user_profile_progress"`
	}
	err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	return doc.Progress, nil
}
