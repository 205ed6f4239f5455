package serviceImp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"agronome/entities"
	"agronome/pkg/agronomy"
	climateRepo "agronome/pkg/climatedata/repository"
	holdingRepo "agronome/pkg/holding/repository"
	inputRepo "agronome/pkg/inputs/repository"
	"agronome/pkg/recommendation/repository"
	"agronome/pkg/recommendation/service"
	soilRepo "agronome/pkg/soil/repository"
)

const (
	climateLimit = 5
	inputLimit   = 10
	refLimit     = 3
)

type Deps struct {
	Recs     repository.RecommendationRepository
	Holdings holdingRepo.HoldingRepository
	Soil     soilRepo.SoilRepository
	Climate  climateRepo.ClimateRepository
	Inputs   inputRepo.InputRepository
	Engine   *agronomy.Engine
	// optional
	Sensors service.SoilSnapshotter
	KB      service.Referencer
}

type recSvc struct {
	Deps
	newID func() string
}

func NewRecommendationService(d Deps) service.RecommendationService {
	return &recSvc{Deps: d, newID: uuid.NewString}
}

func (s *recSvc) records(holdingID uint) (agronomy.HoldingRecords, error) {
	var in agronomy.HoldingRecords
	analyses, err := s.Soil.ListByHolding(holdingID)
	if err != nil {
		return in, fmt.Errorf("load soil analyses: %w", err)
	}
	if s.Sensors != nil {
		snap, err := s.Sensors.SoilSnapshot(holdingID)
		if err != nil {
			log.Printf("[recommendation] sensor snapshot holding=%d: %v", holdingID, err)
		} else if snap != nil && (len(analyses) == 0 || !analyses[0].SampleDate.After(snap.SampleDate)) {
			if len(analyses) > 0 {
				fillMissing(snap, analyses[0])
			}
			analyses = append([]entities.SoilAnalysis{*snap}, analyses...)
		}
	}
	in.SoilAnalyses = analyses

	if in.ClimateWindows, err = s.Climate.Recent(holdingID, climateLimit); err != nil {
		return in, fmt.Errorf("load climate windows: %w", err)
	}
	if in.Inputs, err = s.Inputs.Recent(holdingID, inputLimit); err != nil {
		return in, fmt.Errorf("load inputs: %w", err)
	}
	return in, nil
}

// fillMissing completes a sensor snapshot with the values the sensors did not
// report, taken from the newest stored analysis.
func fillMissing(snap *entities.SoilAnalysis, stored entities.SoilAnalysis) {
	for _, f := range []struct{ dst, src **float64 }{
		{&snap.PH, &stored.PH},
		{&snap.MoisturePct, &stored.MoisturePct},
		{&snap.NitrogenMgKg, &stored.NitrogenMgKg},
		{&snap.PhosphorusMgKg, &stored.PhosphorusMgKg},
		{&snap.PotassiumMgKg, &stored.PotassiumMgKg},
	} {
		if *f.dst == nil {
			*f.dst = *f.src
		}
	}
	if snap.ParcelID == nil {
		snap.ParcelID = stored.ParcelID
	}
}

func (s *recSvc) Generate(holdingID uint) (*service.Batch, error) {
	in, err := s.records(holdingID)
	if err != nil {
		return nil, err
	}
	recs := s.Engine.Evaluate(in)

	b := &service.Batch{
		BatchID:         s.newID(),
		HoldingID:       holdingID,
		Recommendations: make([]entities.Recommendation, 0, len(recs)),
		References:      []entities.ArticleRef{},
	}
	var cats []string
	seen := map[string]bool{}
	for _, r := range recs {
		b.Recommendations = append(b.Recommendations, entities.Recommendation{
			HoldingID:   holdingID,
			ParcelID:    r.ParcelID,
			BatchID:     b.BatchID,
			Category:    string(r.Category),
			Title:       r.Title,
			Description: r.Description,
			Params:      map[string]any(r.Params),
			Priority:    string(r.Priority),
			Status:      entities.RecStatusNew,
		})
		if c := strings.ToLower(string(r.Category)); !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	if err := s.Recs.BulkInsert(b.Recommendations); err != nil {
		return nil, fmt.Errorf("save recommendations: %w", err)
	}

	if s.KB != nil {
		refs, err := s.KB.References(cats, refLimit)
		if err != nil {
			log.Printf("[recommendation] kb references: %v", err)
		} else if refs != nil {
			b.References = refs
		}
	}
	return b, nil
}

func (s *recSvc) GenerateAll(ctx context.Context) (int, error) {
	hs, err := s.Holdings.ListAll()
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, h := range hs {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		if _, err := s.Generate(h.HoldingID); err != nil {
			failed++
			log.Printf("[recommendation] regenerate holding=%d: %v", h.HoldingID, err)
		}
	}
	return failed, nil
}

func (s *recSvc) List(holdingID uint, f repository.Filter) ([]entities.Recommendation, error) {
	return s.Recs.ListByHolding(holdingID, f)
}

// Get hides other users' recommendations behind holding.ErrNotFound.
func (s *recSvc) Get(uid string, id uint) (*entities.Recommendation, error) {
	rec, err := s.Recs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Holdings.FindByID(rec.HoldingID, uid); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recSvc) SetStatus(uid string, id uint, status string) (*entities.Recommendation, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entities.ValidRecStatus(status) {
		return nil, service.ErrInvalidStatus
	}
	rec, err := s.Get(uid, id)
	if err != nil {
		return nil, err
	}
	if err := s.Recs.PatchStatus(id, status); err != nil {
		return nil, err
	}
	rec.Status = status
	return rec, nil
}

func (s *recSvc) Delete(uid string, id uint) error {
	if _, err := s.Get(uid, id); err != nil {
		return err
	}
	return s.Recs.Delete(id)
}
