package institution

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence surface the institution service works against.
type Store interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Institution, error)
	FindByEmail(ctx context.Context, email string) (*Institution, error)
	Create(ctx context.Context, inst *Institution) error
	Update(ctx context.Context, inst *Institution) error
	Search(ctx context.Context, search string, skip, limit int64) ([]*Institution, int64, error)
	ListAll(ctx context.Context) ([]*InstitutionListItem, error)

	FindCategories(ctx context.Context, institutionID primitive.ObjectID) (*CourseCategory, error)
	SaveCategories(ctx context.Context, cats *CourseCategory) error

	CreateCourse(ctx context.Context, course *Course) error
	FindCourseByID(ctx context.Context, id primitive.ObjectID) (*Course, error)
	FindCoursesByInstitution(ctx context.Context, institutionID primitive.ObjectID) ([]*Course, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
}

// Repository handles DB operations for institutions, their courses and the
// per-institution course category lists.
type Repository struct {
	institutionsCollection *mongo.Collection
	coursesCollection      *mongo.Collection
	categoriesCollection   *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		institutionsCollection: db.Collection("institutions"),
		coursesCollection:      db.Collection("courses"),
		categoriesCollection:   db.Collection("course_categories"),
	}
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Institution, error) {
	var inst Institution
	err := r.institutionsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&inst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &inst, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Institution, error) {
	var inst Institution
	err := r.institutionsCollection.FindOne(ctx, bson.M{"email_address": email}).Decode(&inst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &inst, nil
}

func (r *Repository) Create(ctx context.Context, inst *Institution) error {
	inst.CreatedAt = time.Now()
	inst.UpdatedAt = inst.CreatedAt
	res, err := r.institutionsCollection.InsertOne(ctx, inst)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inst.ID = oid
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, inst *Institution) error {
	inst.UpdatedAt = time.Now()
	res, err := r.institutionsCollection.ReplaceOne(ctx, bson.M{"_id": inst.ID}, inst)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("institution not found")
	}
	return nil
}

// Search returns a newest-first page of institutions plus the unpaged total.
func (r *Repository) Search(ctx context.Context, search string, skip, limit int64) ([]*Institution, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["$or"] = []bson.M{
			{"institution_name": bson.M{"$regex": search, "$options": "i"}},
			{"email_address": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := r.institutionsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := r.institutionsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var institutions []*Institution
	if err := cursor.All(ctx, &institutions); err != nil {
		return nil, 0, err
	}
	return institutions, total, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*InstitutionListItem, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "institution_name": 1})
	cursor, err := r.institutionsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var items []*InstitutionListItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindCategories(ctx context.Context, institutionID primitive.ObjectID) (*CourseCategory, error) {
	var cats CourseCategory
	err := r.categoriesCollection.FindOne(ctx, bson.M{"institution_id": institutionID}).Decode(&cats)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cats, nil
}

func (r *Repository) SaveCategories(ctx context.Context, cats *CourseCategory) error {
	if cats.ID.IsZero() {
		res, err := r.categoriesCollection.InsertOne(ctx, cats)
		if err != nil {
			return err
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			cats.ID = oid
		}
		return nil
	}
	_, err := r.categoriesCollection.ReplaceOne(ctx, bson.M{"_id": cats.ID}, cats)
	return err
}

func (r *Repository) CreateCourse(ctx context.Context, course *Course) error {
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	res, err := r.coursesCollection.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid
	}
	return nil
}

func (r *Repository) FindCourseByID(ctx context.Context, id primitive.ObjectID) (*Course, error) {
	var course Course
	err := r.coursesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *Repository) FindCoursesByInstitution(ctx context.Context, institutionID primitive.ObjectID) ([]*Course, error) {
	cursor, err := r.coursesCollection.Find(ctx, bson.M{"institution_id": institutionID})
	if err != nil {
		return nil, err
	}
	var courses []*Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *Repository) UpdateCourse(ctx context.Context, course *Course) error {
	course.UpdatedAt = time.Now()
	res, err := r.coursesCollection.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("course not found")
	}
	return nil
}

func (r *Repository) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coursesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("course not found")
	}
	return nil
}
