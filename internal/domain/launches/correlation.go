package launches

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/launchdash/internal/domain/model"
)

// PayloadOutcomeCorrelation returns the Pearson correlation between payload
// mass and outcome class. ok is false when fewer than two records are given
// or either variable is constant.
func PayloadOutcomeCorrelation(records []model.LaunchRecord) (r float64, ok bool) {
	if len(records) < 2 {
		return 0, false
	}
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = rec.PayloadMassKG
		ys[i] = float64(rec.Class)
	}
	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
