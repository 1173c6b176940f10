package college

import "strings"

// MaxPerTier caps each tier of a Prediction.
const MaxPerTier = 20

type Category string

const (
	CategoryGeneral Category = "general"
	CategoryOBC     Category = "obc"
	CategorySC      Category = "sc"
	CategoryST      Category = "st"
	CategoryEWS     Category = "ews"
)

// ParseCategory normalizes a category tag. Unknown tags are treated as general.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryGeneral, CategoryOBC, CategorySC, CategoryST, CategoryEWS:
		return c
	default:
		return CategoryGeneral
	}
}

// Multiplier compensates for reservation-based cutoff differences.
func (c Category) Multiplier() float64 {
	switch c {
	case CategoryOBC:
		return 1.5
	case CategorySC:
		return 3.0
	case CategoryST:
		return 2.5
	case CategoryEWS:
		return 1.2
	default:
		return 1.0
	}
}

// For returns the cutoff applicable to c, falling back to the general cutoff
// when c has none. ok is false when neither is published.
func (s CutoffSet) For(c Category) (cutoff float64, ok bool) {
	var v *int64
	switch c {
	case CategoryOBC:
		v = s.OBC
	case CategorySC:
		v = s.SC
	case CategoryST:
		v = s.ST
	case CategoryEWS:
		v = s.EWS
	}
	if v == nil || *v <= 0 {
		v = s.General
	}
	if v == nil || *v <= 0 {
		return 0, false
	}
	return float64(*v), true
}

type Tier string

const (
	TierSafe        Tier = "safe"
	TierLikely      Tier = "likely"
	TierCompetitive Tier = "competitive"
)

// Band upper bounds as fractions of the cutoff; each bound is inclusive.
const (
	safeBound        = 0.6
	likelyBound      = 1.0
	competitiveBound = 1.5
)

// Classify places an adjusted rank against a cutoff. ok is false when the
// rank is beyond every band.
func Classify(adjustedRank, cutoff float64) (tier Tier, ok bool) {
	switch {
	case adjustedRank <= cutoff*safeBound:
		return TierSafe, true
	case adjustedRank <= cutoff*likelyBound:
		return TierLikely, true
	case adjustedRank <= cutoff*competitiveBound:
		return TierCompetitive, true
	default:
		return "", false
	}
}

// AdjustedRank divides rank by the category multiplier.
func AdjustedRank(rank float64, c Category) float64 {
	return rank / c.Multiplier()
}

type Prediction struct {
	Safe        []College `json:"safe"`
	Likely      []College `json:"likely"`
	Competitive []College `json:"competitive"`
}

// Predict buckets candidates into tiers. Candidates must already be ordered
// by institutional ranking; that order is kept within each tier. rank must be
// positive; callers validate it.
func Predict(rank float64, category string, candidates []Candidate) Prediction {
	cat := ParseCategory(category)
	adjusted := AdjustedRank(rank, cat)

	p := Prediction{Safe: []College{}, Likely: []College{}, Competitive: []College{}}
	for _, c := range candidates {
		cutoff, ok := c.CutoffSet.For(cat)
		if !ok {
			continue
		}
		tier, ok := Classify(adjusted, cutoff)
		if !ok {
			continue
		}
		switch tier {
		case TierSafe:
			if len(p.Safe) < MaxPerTier {
				p.Safe = append(p.Safe, c.College)
			}
		case TierLikely:
			if len(p.Likely) < MaxPerTier {
				p.Likely = append(p.Likely, c.College)
			}
		case TierCompetitive:
			if len(p.Competitive) < MaxPerTier {
				p.Competitive = append(p.Competitive, c.College)
			}
		}
	}
	return p
}
