package recommendation

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CareerGo/internal/institution"
)

// Catalog answers the candidate and category queries the orchestrator runs.
type Catalog interface {
	FindCandidates(ctx context.Context, categories []string, budget float64) ([]*Candidate, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Repository struct {
	courses          *mongo.Collection
	institutions     *mongo.Collection
	courseCategories *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		courses:          db.Collection("courses"),
		institutions:     db.Collection("institutions"),
		courseCategories: db.Collection("course_categories"),
	}
}

// FindCandidates pulls courses in the given categories at or under budget and
// joins each to its institution's display name and hostel flag.
func (r *Repository) FindCandidates(ctx context.Context, categories []string, budget float64) ([]*Candidate, error) {
	cursor, err := r.courses.Find(ctx, bson.M{
		"category": bson.M{"$in": categories},
		"fees":     bson.M{"$lte": budget},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*institution.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	institutions := make(map[primitive.ObjectID]*institution.Institution)
	candidates := make([]*Candidate, 0, len(courses))
	for _, course := range courses {
		inst, ok := institutions[course.InstitutionID]
		if !ok {
			var decoded institution.Institution
			err := r.institutions.FindOne(ctx, bson.M{"_id": course.InstitutionID}).Decode(&decoded)
			if err != nil {
				if err == mongo.ErrNoDocuments {
					continue
				}
				return nil, err
			}
			inst = &decoded
			institutions[course.InstitutionID] = inst
		}

		candidates = append(candidates, &Candidate{
			CourseID:        course.ID,
			CourseName:      course.CourseName,
			Category:        course.Category,
			Fees:            course.Fees,
			Duration:        course.Duration,
			Mode:            course.Mode,
			InstitutionID:   inst.ID,
			InstitutionName: inst.InstitutionName,
			Hostel:          inst.Hostel,
		})
	}
	return candidates, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	values, err := r.courseCategories.Distinct(ctx, "course_category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, value := range values {
		if category, ok := value.(string); ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}
