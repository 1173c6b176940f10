package college

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/eduvate/eduvate-api/internal/cache"
)

// Service combines the store with a candidate cache for predictions.
type Service struct {
	store Store
	cache cache.Cache
	ttl   time.Duration
}

func NewService(store Store, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{store: store, cache: c, ttl: ttl}
}

func (s *Service) Store() Store { return s.store }

const candidatesPrefix = "predict:candidates:"

func candidatesKey(examType string) string { return candidatesPrefix + examType }

// NormalizeExamType lower-cases and trims an exam type tag.
func NormalizeExamType(examType string) string {
	return strings.ToLower(strings.TrimSpace(examType))
}

// Candidates returns the latest-cutoff candidate list for examType, reading
// through the cache. Cache failures are logged and fall back to the store.
func (s *Service) Candidates(ctx context.Context, examType string) ([]Candidate, error) {
	examType = NormalizeExamType(examType)
	key := candidatesKey(examType)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var out []Candidate
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		log.Printf("college: dropping undecodable cache entry %s", key)
		_ = s.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Printf("college: cache get %s (%s): %v", key, s.cache.Name(), err)
	}

	out, err := s.store.LatestCutoffs(ctx, examType)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			log.Printf("college: cache set %s (%s): %v", key, s.cache.Name(), err)
		}
	}
	return out, nil
}

// Predict loads candidates for examType and classifies them.
func (s *Service) Predict(ctx context.Context, rank float64, category, examType string) (Prediction, error) {
	cands, err := s.Candidates(ctx, examType)
	if err != nil {
		return Prediction{}, err
	}
	return Predict(rank, category, cands), nil
}

// Detail returns a college with its cutoff history grouped by exam type.
func (s *Service) Detail(ctx context.Context, id int64) (Detail, error) {
	c, err := s.store.GetCollege(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	cuts, err := s.store.ListCutoffs(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{College: c, Cutoffs: map[string][]YearlyCutoff{}}
	for _, cu := range cuts {
		d.Cutoffs[cu.ExamType] = append(d.Cutoffs[cu.ExamType], YearlyCutoff{Year: cu.Year, CutoffSet: cu.CutoffSet})
	}
	return d, nil
}

// AddCutoff stores one record and invalidates the cached candidates.
func (s *Service) AddCutoff(ctx context.Context, c Cutoff) (Cutoff, error) {
	c.ExamType = NormalizeExamType(c.ExamType)
	out, err := s.store.AddCutoff(ctx, c)
	if err != nil {
		return Cutoff{}, err
	}
	s.InvalidateExam(ctx, c.ExamType)
	return out, nil
}

// ImportCutoffs stores a batch of records and invalidates every exam type it touched.
func (s *Service) ImportCutoffs(ctx context.Context, cs []Cutoff) (inserted, skipped int, err error) {
	exams := map[string]struct{}{}
	for i := range cs {
		cs[i].ExamType = NormalizeExamType(cs[i].ExamType)
		exams[cs[i].ExamType] = struct{}{}
	}
	inserted, skipped, err = s.store.AddCutoffs(ctx, cs)
	if err != nil {
		return 0, 0, err
	}
	if inserted > 0 {
		keys := make([]string, 0, len(exams))
		for e := range exams {
			keys = append(keys, e)
		}
		s.InvalidateExam(ctx, keys...)
	}
	return inserted, skipped, nil
}

// InvalidateExam drops cached candidate lists.
func (s *Service) InvalidateExam(ctx context.Context, examTypes ...string) {
	keys := make([]string, 0, len(examTypes))
	for _, e := range examTypes {
		keys = append(keys, candidatesKey(NormalizeExamType(e)))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("college: cache delete (%s): %v", s.cache.Name(), err)
	}
}

// InvalidateAll drops the cached candidate lists of every exam type. Call it
// after bulk reloads that replace college ids.
func (s *Service) InvalidateAll(ctx context.Context) error {
	return errors.Wrapf(s.cache.DeletePrefix(ctx, candidatesPrefix), "college: flush %s cache", s.cache.Name())
}
