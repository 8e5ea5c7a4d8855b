package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
)

type memCatalog struct {
	candidates []*Candidate
	categories []string
}

func (m *memCatalog) FindCandidates(_ context.Context, categories []string, budget float64) ([]*Candidate, error) {
	allowed := make(map[string]bool, len(categories))
	for _, category := range categories {
		allowed[category] = true
	}
	var out []*Candidate
	for _, candidate := range m.candidates {
		if allowed[candidate.Category] && candidate.Fees <= budget {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (m *memCatalog) ListCategories(_ context.Context) ([]string, error) {
	return m.categories, nil
}

type stubRanker struct {
	pairs []RankedPair
	err   error
	seen  []*Candidate
}

func (s *stubRanker) Rank(_ context.Context, _ PreferenceRequest, candidates []*Candidate) ([]RankedPair, error) {
	s.seen = candidates
	return s.pairs, s.err
}

func candidate(category string, fees float64, hostel bool) *Candidate {
	return &Candidate{
		CourseID:        primitive.NewObjectID(),
		CourseName:      category + " Programme",
		Category:        category,
		Fees:            fees,
		InstitutionID:   primitive.NewObjectID(),
		InstitutionName: "Northfield University",
		Hostel:          hostel,
	}
}

func pairFor(c *Candidate) RankedPair {
	return RankedPair{InstitutionID: c.InstitutionID.Hex(), CourseID: c.CourseID.Hex()}
}

func TestRecommendUnknownCombinationFails(t *testing.T) {
	service := NewServiceWith(&memCatalog{}, &stubRanker{}, zap.NewNop().Sugar())

	_, err := service.Recommend(context.Background(), PreferenceRequest{
		EducationLevel: "Primary",
		DegreeCategory: "Engineering",
		Budget:         100000,
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestRecommendOrdersByRankerAnswer(t *testing.T) {
	first := candidate("Engineering", 50000, true)
	second := candidate("Technology", 40000, true)
	catalog := &memCatalog{candidates: []*Candidate{second, first}}
	ranker := &stubRanker{pairs: []RankedPair{pairFor(first), pairFor(second)}}
	service := NewServiceWith(catalog, ranker, zap.NewNop().Sugar())

	ranked, err := service.Recommend(context.Background(), PreferenceRequest{
		EducationLevel: "Undergraduate",
		DegreeCategory: "Engineering",
		Budget:         60000,
	})
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, first.CourseID, ranked[0].CourseID)
	assert.Equal(t, second.CourseID, ranked[1].CourseID)
}

func TestRecommendDropsUnknownPairs(t *testing.T) {
	known := candidate("Engineering", 50000, true)
	catalog := &memCatalog{candidates: []*Candidate{known}}
	ranker := &stubRanker{pairs: []RankedPair{
		{InstitutionID: primitive.NewObjectID().Hex(), CourseID: primitive.NewObjectID().Hex()},
		pairFor(known),
	}}
	service := NewServiceWith(catalog, ranker, zap.NewNop().Sugar())

	ranked, err := service.Recommend(context.Background(), PreferenceRequest{
		EducationLevel: "Undergraduate",
		DegreeCategory: "Engineering",
		Budget:         60000,
	})
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, known.CourseID, ranked[0].CourseID)
}

func TestRecommendHostelFilter(t *testing.T) {
	withHostel := candidate("Engineering", 50000, true)
	withoutHostel := candidate("Engineering", 45000, false)
	catalog := &memCatalog{candidates: []*Candidate{withHostel, withoutHostel}}
	ranker := &stubRanker{pairs: []RankedPair{pairFor(withHostel)}}
	service := NewServiceWith(catalog, ranker, zap.NewNop().Sugar())

	_, err := service.Recommend(context.Background(), PreferenceRequest{
		EducationLevel: "Undergraduate",
		DegreeCategory: "Engineering",
		Budget:         60000,
		HostelRequired: true,
	})
	require.NoError(t, err)

	require.Len(t, ranker.seen, 1)
	assert.Equal(t, withHostel.CourseID, ranker.seen[0].CourseID)
}

func TestRecommendEmptyCandidatesSkipsRanker(t *testing.T) {
	ranker := &stubRanker{}
	service := NewServiceWith(&memCatalog{}, ranker, zap.NewNop().Sugar())

	ranked, err := service.Recommend(context.Background(), PreferenceRequest{
		EducationLevel: "Undergraduate",
		DegreeCategory: "Engineering",
		Budget:         60000,
	})
	require.NoError(t, err)

	assert.Empty(t, ranked)
	assert.Nil(t, ranker.seen)
}

func TestParseRankingToleratesFences(t *testing.T) {
	content := "Here you go:\n```json\n[{\"institutionId\": \"a\", \"courseId\": \"b\"}]\n```"

	pairs, err := parseRanking(content)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0].InstitutionID)
	assert.Equal(t, "b", pairs[0].CourseID)
}

func TestParseRankingRejectsMissingKeys(t *testing.T) {
	_, err := parseRanking(`[{"institutionId": "a"}]`)
	require.Error(t, err)
}

func TestParseRankingRejectsProseOnly(t *testing.T) {
	_, err := parseRanking("I recommend Northfield University.")
	require.Error(t, err)
}
