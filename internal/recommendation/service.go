package recommendation

import (
	"context"

	"go.uber.org/zap"

	"CareerGo/internal/apperr"
)

type Service struct {
	catalog Catalog
	ranker  Ranker
	logger  *zap.SugaredLogger
}

func NewService(catalog *Repository, ranker *OpenAIRanker, logger *zap.SugaredLogger) *Service {
	return &Service{catalog: catalog, ranker: ranker, logger: logger}
}

// NewServiceWith wires the service against explicit collaborators. Used by tests.
func NewServiceWith(catalog Catalog, ranker Ranker, logger *zap.SugaredLogger) *Service {
	return &Service{catalog: catalog, ranker: ranker, logger: logger}
}

// Recommend filters the catalog down to candidates matching the student's
// constraints and lets the ranker order them. Pairs the ranker invents that
// do not match any candidate are dropped.
func (s *Service) Recommend(ctx context.Context, req PreferenceRequest) ([]*Candidate, error) {
	categories, ok := CategoriesFor(req.EducationLevel, req.DegreeCategory)
	if !ok {
		return nil, apperr.InvalidRequest("No course categories match the given education level and degree category")
	}

	candidates, err := s.catalog.FindCandidates(ctx, categories, req.Budget)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if req.HostelRequired {
		withHostel := candidates[:0]
		for _, candidate := range candidates {
			if candidate.Hostel {
				withHostel = append(withHostel, candidate)
			}
		}
		candidates = withHostel
	}
	if len(candidates) == 0 {
		return []*Candidate{}, nil
	}

	pairs, err := s.ranker.Rank(ctx, req, candidates)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	byKey := make(map[string]*Candidate, len(candidates))
	for _, candidate := range candidates {
		byKey[candidate.InstitutionID.Hex()+"/"+candidate.CourseID.Hex()] = candidate
	}

	ranked := make([]*Candidate, 0, len(pairs))
	for _, pair := range pairs {
		candidate, ok := byKey[pair.InstitutionID+"/"+pair.CourseID]
		if !ok {
			s.logger.Warnw("ranker returned unknown pair",
				"institutionId", pair.InstitutionID, "courseId", pair.CourseID)
			continue
		}
		ranked = append(ranked, candidate)
	}
	return ranked, nil
}

func (s *Service) GetAllCourseCategories(ctx context.Context) ([]string, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}
