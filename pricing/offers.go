package pricing

import (
	"math"
	"strconv"
)

// Grade is a condition tier used by the wholesale sheet.
type Grade string

const (
	GradeSwap Grade = "swap"
	GradeA    Grade = "a"
	GradeB    Grade = "b"
	GradeC    Grade = "c"
	GradeD    Grade = "d"
	GradeDOA  Grade = "doa"
)

// Grades lists all condition tiers in sheet column order.
var Grades = []Grade{GradeSwap, GradeA, GradeB, GradeC, GradeD, GradeDOA}

// SeriesBucket groups device generations for margin policy purposes.
type SeriesBucket string

const (
	BucketFlagship SeriesBucket = "flagship"
	BucketStandard SeriesBucket = "standard"
	BucketLegacy   SeriesBucket = "legacy"
)

// flagshipMinSeries is the lowest numeric generation priced as flagship.
const flagshipMinSeries = 12

// GradePrices holds one nullable price per condition tier.
type GradePrices struct {
	Swap *float64
	A    *float64
	B    *float64
	C    *float64
	D    *float64
	DOA  *float64
}

// Get returns the price for a grade.
func (g GradePrices) Get(grade Grade) *float64 {
	switch grade {
	case GradeSwap:
		return g.Swap
	case GradeA:
		return g.A
	case GradeB:
		return g.B
	case GradeC:
		return g.C
	case GradeD:
		return g.D
	case GradeDOA:
		return g.DOA
	}
	return nil
}

// Set assigns the price for a grade.
func (g *GradePrices) Set(grade Grade, v *float64) {
	switch grade {
	case GradeSwap:
		g.Swap = v
	case GradeA:
		g.A = v
	case GradeB:
		g.B = v
	case GradeC:
		g.C = v
	case GradeD:
		g.D = v
	case GradeDOA:
		g.DOA = v
	}
}

// MarginPolicy maps series bucket and grade to the markdown factor applied to a
// wholesale price to produce the customer-facing offer. The table is business
// configuration injected into the pipeline, not a structural constant.
type MarginPolicy struct {
	Factors map[SeriesBucket]map[Grade]float64
}

// DefaultMarginPolicy returns the shop's standing margin table. Better
// condition carries a smaller markdown; newer generations hold value better.
func DefaultMarginPolicy() MarginPolicy {
	return MarginPolicy{
		Factors: map[SeriesBucket]map[Grade]float64{
			BucketFlagship: {
				GradeSwap: 0.90, GradeA: 0.85, GradeB: 0.78,
				GradeC: 0.70, GradeD: 0.60, GradeDOA: 0.45,
			},
			BucketStandard: {
				GradeSwap: 0.88, GradeA: 0.82, GradeB: 0.75,
				GradeC: 0.68, GradeD: 0.58, GradeDOA: 0.42,
			},
			BucketLegacy: {
				GradeSwap: 0.85, GradeA: 0.78, GradeB: 0.70,
				GradeC: 0.62, GradeD: 0.52, GradeDOA: 0.38,
			},
		},
	}
}

// BucketForSeries maps a series token to its margin bucket. Unknown or absent
// series use the standard bucket rather than failing; this runs inside the
// per-row loop of a sync and one odd row must not abort the run.
func BucketForSeries(series *string) SeriesBucket {
	if series == nil {
		return BucketStandard
	}
	if n, err := strconv.Atoi(*series); err == nil {
		if n >= flagshipMinSeries {
			return BucketFlagship
		}
		return BucketLegacy
	}
	switch *series {
	case "SE", "X", "XS", "XR":
		return BucketLegacy
	}
	return BucketStandard
}

// factor resolves the markdown factor for a bucket and grade, falling back to
// the standard bucket when the policy table has no entry.
func (p MarginPolicy) factor(bucket SeriesBucket, grade Grade) (float64, bool) {
	if grades, ok := p.Factors[bucket]; ok {
		if f, ok := grades[grade]; ok {
			return f, true
		}
	}
	if bucket != BucketStandard {
		return p.factor(BucketStandard, grade)
	}
	return 0, false
}

// ComputeOffers derives the customer-facing offer for every grade that has a
// usable wholesale price. A nil or negative grade price yields a nil offer;
// the calculator never invents a price from partial data. The function is pure
// and deterministic, which keeps re-syncs idempotent.
func ComputeOffers(prices GradePrices, series *string, policy MarginPolicy) GradePrices {
	bucket := BucketForSeries(series)

	var offers GradePrices
	for _, grade := range Grades {
		price := prices.Get(grade)
		if price == nil || *price < 0 {
			continue
		}
		f, ok := policy.factor(bucket, grade)
		if !ok {
			continue
		}
		offer := roundToCents(*price * f)
		offers.Set(grade, &offer)
	}
	return offers
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
