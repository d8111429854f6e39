package shape

import (
	"math"
	"sort"

	"ShapeMatch/internal/domain/models"
)

// Degenerate-metric fallbacks. A zero-norm vector makes the cosine ratio
// undefined; we fix the distance at 1. A zero standard deviation makes
// z-scores undefined; we fix them at 0 so the metric drops out of the
// combined score for that pool.
const (
	zeroNormCosine = 1.0
	zeroStddevZ    = 0.0
)

// Score ranks every candidate day against the reference vector. Pass one
// computes raw Euclidean and cosine distances per day; pass two standardizes
// both metrics over the whole pool and combines them by euclideanWeight.
// Ties on the combined score break by calendar day ascending. The full
// scored pool is returned in rank order; callers truncate to their top N.
func Score(pool models.CandidatePool, ref models.DayVector, euclideanWeight float64) []models.SimilarityScore {
	scores := make([]models.SimilarityScore, 0, len(pool))
	for key, v := range pool {
		scores = append(scores, models.SimilarityScore{
			Day:       key,
			Euclidean: euclidean(v.Values, ref.Values),
			Cosine:    cosineDistance(v.Values, ref.Values),
		})
	}

	eMean, eStd := meanStddev(scores, func(s models.SimilarityScore) float64 { return s.Euclidean })
	cMean, cStd := meanStddev(scores, func(s models.SimilarityScore) float64 { return s.Cosine })

	for i := range scores {
		scores[i].EuclideanZ = zscore(scores[i].Euclidean, eMean, eStd)
		scores[i].CosineZ = zscore(scores[i].Cosine, cMean, cStd)
		scores[i].CombinedScore = euclideanWeight*scores[i].EuclideanZ + (1-euclideanWeight)*scores[i].CosineZ
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].CombinedScore != scores[j].CombinedScore {
			return scores[i].CombinedScore < scores[j].CombinedScore
		}
		return scores[i].Day < scores[j].Day
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

func euclidean(v, r [24]float64) float64 {
	var sum float64
	for i := range v {
		d := v[i] - r[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func cosineDistance(v, r [24]float64) float64 {
	var dot, nv, nr float64
	for i := range v {
		dot += v[i] * r[i]
		nv += v[i] * v[i]
		nr += r[i] * r[i]
	}
	if nv == 0 || nr == 0 {
		return zeroNormCosine
	}
	return 1 - dot/(math.Sqrt(nv)*math.Sqrt(nr))
}

// meanStddev computes the mean and population standard deviation of one
// metric across the pool.
func meanStddev(scores []models.SimilarityScore, metric func(models.SimilarityScore) float64) (float64, float64) {
	n := float64(len(scores))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range scores {
		sum += metric(s)
	}
	mean := sum / n

	var sq float64
	for _, s := range scores {
		d := metric(s) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}

func zscore(x, mean, std float64) float64 {
	if std == 0 {
		return zeroStddevZ
	}
	return (x - mean) / std
}
