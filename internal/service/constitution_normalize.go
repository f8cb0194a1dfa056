package service

import (
	"math"
	"sort"

	"veda-core/internal/domain"
)

// Normalize convierte un vector crudo en porcentajes: floor(100*x/total + 0.5).
// No redistribuye el redondeo, la suma puede quedar entre 99 y 101.
func Normalize(raw domain.DoshaVector) (domain.DoshaVector, error) {
	total := raw.Total()
	if total == 0 {
		return domain.DoshaVector{}, &domain.DegenerateScoreError{Raw: raw}
	}
	return scaleTo100(raw, total), nil
}

// NormalizeSigned usa como total la suma de valores absolutos y conserva el signo de cada
// componente. Sirve para vectores de efecto, que pueden ser negativos o cancelarse.
func NormalizeSigned(raw domain.DoshaVector) (domain.DoshaVector, error) {
	total := abs(raw.Vata) + abs(raw.Pitta) + abs(raw.Kapha)
	if total == 0 {
		return domain.DoshaVector{}, &domain.DegenerateScoreError{Raw: raw}
	}
	return scaleTo100(raw, total), nil
}

// Rank ordena los doshas de mayor a menor valor; los empates siguen domain.CanonicalOrder.
func Rank(v domain.DoshaVector) [3]domain.Dosha {
	order := domain.CanonicalOrder
	sort.SliceStable(order[:], func(i, j int) bool {
		return v.Get(order[i]) > v.Get(order[j])
	})
	return order
}

// Classify normaliza y asigna primario, secundario y terciario.
func Classify(raw domain.DoshaVector) (domain.Classification, error) {
	scores, err := Normalize(raw)
	if err != nil {
		return domain.Classification{}, err
	}
	return ClassifyNormalized(scores), nil
}

// ClassifyNormalized ordena un vector que ya esta en porcentajes.
func ClassifyNormalized(scores domain.DoshaVector) domain.Classification {
	ranked := Rank(scores)
	return domain.Classification{
		Scores:    scores,
		Primary:   ranked[0],
		Secondary: ranked[1],
		Tertiary:  ranked[2],
	}
}

// scaleTo100 redondea las mitades hacia +inf: -12.5 -> -12, 12.5 -> 13.
func scaleTo100(raw domain.DoshaVector, total int) domain.DoshaVector {
	pct := func(x int) int {
		return int(math.Floor(100*float64(x)/float64(total) + 0.5))
	}
	return domain.DoshaVector{
		Vata:  pct(raw.Vata),
		Pitta: pct(raw.Pitta),
		Kapha: pct(raw.Kapha),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
