package repository

import (
	"testing"

	pgvector "github.com/pgvector/pgvector-go"

	"veda-core/internal/domain"
)

func TestPgVectorRoundTrip(t *testing.T) {
	in := domain.DoshaVector{Vata: 97, Pitta: 3, Kapha: 0}
	out := fromPgVector(toPgVector(in))
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}

	short := fromPgVector(pgvector.NewVector([]float32{12.6}))
	if short != (domain.DoshaVector{Vata: 13}) {
		t.Fatalf("expected missing components to be zero, got %+v", short)
	}
}
