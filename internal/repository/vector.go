package repository

import (
	"math"

	pgvector "github.com/pgvector/pgvector-go"

	"veda-core/internal/domain"
)

// toPgVector guarda el vector en orden vata, pitta, kapha.
func toPgVector(v domain.DoshaVector) pgvector.Vector {
	return pgvector.NewVector([]float32{float32(v.Vata), float32(v.Pitta), float32(v.Kapha)})
}

func fromPgVector(v pgvector.Vector) domain.DoshaVector {
	s := v.Slice()
	get := func(i int) int {
		if i >= len(s) {
			return 0
		}
		return int(math.Round(float64(s[i])))
	}
	return domain.DoshaVector{Vata: get(0), Pitta: get(1), Kapha: get(2)}
}
