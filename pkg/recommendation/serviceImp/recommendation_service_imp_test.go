package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agronome/database"
	"agronome/entities"
	"agronome/pkg/agronomy"
	climateRepo "agronome/pkg/climatedata/repositoryImp"
	"agronome/pkg/holding"
	holdingRepo "agronome/pkg/holding/repositoryImp"
	inputRepo "agronome/pkg/inputs/repositoryImp"
	"agronome/pkg/recommendation/repository"
	"agronome/pkg/recommendation/repositoryImp"
	"agronome/pkg/recommendation/service"
	soilRepo "agronome/pkg/soil/repositoryImp"
)

type fakeKB struct {
	tags []string
	refs []entities.ArticleRef
	err  error
}

func (f *fakeKB) References(tags []string, k int) ([]entities.ArticleRef, error) {
	f.tags = tags
	return f.refs, f.err
}

type fakeSensors struct{ snap *entities.SoilAnalysis }

func (f fakeSensors) SoilSnapshot(uint) (*entities.SoilAnalysis, error) { return f.snap, nil }

func fp(v float64) *float64 { return &v }
func up(v uint) *uint        { return &v }

func setup(t *testing.T) (*recSvc, Deps) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	hr := holdingRepo.New(db)
	require.NoError(t, hr.Create(&entities.Holding{UserID: "u", Name: "north"}))   // 1
	require.NoError(t, hr.Create(&entities.Holding{UserID: "other", Name: "east"})) // 2

	now := func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	d := Deps{
		Recs:     repositoryImp.New(db),
		Holdings: hr,
		Soil:     soilRepo.New(db),
		Climate:  climateRepo.New(db),
		Inputs:   inputRepo.New(db),
		Engine:   agronomy.NewEngine(agronomy.Default()).WithClock(now),
	}
	s := NewRecommendationService(d).(*recSvc)
	n := 0
	s.newID = func() string { n++; return "batch-" + string(rune('0'+n)) }
	return s, d
}

func TestGeneratePersistsTaggedBatch(t *testing.T) {
	s, d := setup(t)
	kb := &fakeKB{refs: []entities.ArticleRef{{Title: "Liming", URL: "https://example.org/lime"}}}
	s.KB = kb
	require.NoError(t, d.Soil.Create(&entities.SoilAnalysis{
		HoldingID: 1, ParcelID: up(7), SampleDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), PH: fp(5.0),
	}))

	b, err := s.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", b.BatchID)
	require.Len(t, b.Recommendations, 1)
	r := b.Recommendations[0]
	assert.Equal(t, "Amendment", r.Category)
	assert.Equal(t, "high", r.Priority)
	assert.Equal(t, entities.RecStatusNew, r.Status)
	assert.Equal(t, uint(7), *r.ParcelID)
	assert.Equal(t, []string{"amendment"}, kb.tags)
	assert.Equal(t, "Liming", b.References[0].Title)

	stored, err := s.List(1, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "batch-1", stored[0].BatchID)
	assert.Equal(t, 6.0, stored[0].Params["ph_threshold"])

	stored, err = s.List(1, repository.Filter{ParcelID: up(3)})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGenerateFallbackAndKBErrors(t *testing.T) {
	s, _ := setup(t)
	s.KB = &fakeKB{err: errors.New("kb down")}

	b, err := s.Generate(1)
	require.NoError(t, err)
	require.Len(t, b.Recommendations, 1)
	assert.Equal(t, "Information", b.Recommendations[0].Category)
	assert.Empty(t, b.References)
}

func TestGenerateUsesNewerSensorSnapshot(t *testing.T) {
	s, d := setup(t)
	require.NoError(t, d.Soil.Create(&entities.SoilAnalysis{
		HoldingID: 1, SampleDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), PH: fp(5.0),
	}))

	s.Sensors = fakeSensors{snap: &entities.SoilAnalysis{HoldingID: 1, SampleDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), PH: fp(8.0)}}
	b, err := s.Generate(1)
	require.NoError(t, err)
	require.Len(t, b.Recommendations, 1)
	assert.Equal(t, "Soil too alkaline", b.Recommendations[0].Title)

	s.Sensors = fakeSensors{snap: &entities.SoilAnalysis{HoldingID: 1, SampleDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), PH: fp(8.0)}}
	b, err = s.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "Soil too acidic", b.Recommendations[0].Title)
}

func TestGeneratePartialSnapshotKeepsStoredValues(t *testing.T) {
	s, d := setup(t)
	for _, m := range []time.Month{3, 5} {
		require.NoError(t, d.Soil.Create(&entities.SoilAnalysis{
			HoldingID: 1, SampleDate: time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC),
			NitrogenMgKg: fp(5), PhosphorusMgKg: fp(5), PotassiumMgKg: fp(50),
		}))
	}
	b, err := s.Generate(1)
	require.NoError(t, err)
	require.Len(t, b.Recommendations, 3)

	s.Sensors = fakeSensors{snap: &entities.SoilAnalysis{HoldingID: 1, SampleDate: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), MoisturePct: fp(22)}}
	b, err = s.Generate(1)
	require.NoError(t, err)
	require.Len(t, b.Recommendations, 3)
	for _, r := range b.Recommendations {
		assert.Equal(t, "Fertilization", r.Category)
		assert.Equal(t, "2025-06-14", r.Params["sample_date"])
	}
}

func TestStatusLifecycle(t *testing.T) {
	s, _ := setup(t)
	b, err := s.Generate(1)
	require.NoError(t, err)
	id := b.Recommendations[0].RecommendationID

	_, err = s.SetStatus("u", id, "done")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = s.SetStatus("other", id, "applied")
	assert.ErrorIs(t, err, holding.ErrNotFound)

	rec, err := s.SetStatus("u", id, " Applied ")
	require.NoError(t, err)
	assert.Equal(t, entities.RecStatusApplied, rec.Status)

	got, err := s.Get("u", id)
	require.NoError(t, err)
	assert.Equal(t, entities.RecStatusApplied, got.Status)

	_, err = s.Get("u", 999)
	assert.ErrorIs(t, err, repositoryImp.ErrNotFound)

	assert.ErrorIs(t, s.Delete("other", id), holding.ErrNotFound)
	require.NoError(t, s.Delete("u", id))
	assert.ErrorIs(t, s.Delete("u", id), repositoryImp.ErrNotFound)
}

func TestGenerateAll(t *testing.T) {
	s, _ := setup(t)
	failed, err := s.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, failed)

	one, err := s.List(1, repository.Filter{})
	require.NoError(t, err)
	two, err := s.List(2, repository.Filter{Status: entities.RecStatusNew})
	require.NoError(t, err)
	assert.Len(t, one, 1)
	assert.Len(t, two, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.GenerateAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
