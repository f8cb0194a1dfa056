package service

import (
	"fmt"
	"sort"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
)

// ConstitutionEngine convierte respuestas del cuestionario en una clasificacion.
// Es una funcion pura de la tabla de pesos; se puede compartir entre goroutines.
type ConstitutionEngine struct {
	table *WeightTable
}

func NewConstitutionEngine(table *WeightTable) *ConstitutionEngine {
	return &ConstitutionEngine{table: table}
}

// NewConstitutionEngineFromCatalog exige que el cuestionario del catalogo cubra todas las preguntas.
func NewConstitutionEngineFromCatalog(c *catalog.Catalog) (*ConstitutionEngine, error) {
	table, err := NewWeightTable(c.Questions())
	if err != nil {
		return nil, err
	}
	if err := table.Covers(domain.RequiredTraits); err != nil {
		return nil, err
	}
	return NewConstitutionEngine(table), nil
}

// Validate comprueba que el AnswerSet este completo y que cada valor exista para su pregunta.
// Los errores salen en orden determinista: primero faltantes (orden de cuestionario),
// despues claves desconocidas (orden alfabetico), despues valores invalidos.
func (e *ConstitutionEngine) Validate(answers domain.AnswerSet) error {
	for _, k := range e.table.traits {
		if _, ok := answers[k]; !ok {
			return &domain.InvalidAnswerError{Trait: k, Reason: "missing answer"}
		}
	}
	if len(answers) != len(e.table.traits) {
		unknown := make([]string, 0)
		for k := range answers {
			if _, ok := e.table.options[k]; !ok {
				unknown = append(unknown, string(k))
			}
		}
		sort.Strings(unknown)
		if len(unknown) > 0 {
			return &domain.InvalidAnswerError{Trait: domain.TraitKey(unknown[0]), Value: answers[domain.TraitKey(unknown[0])], Reason: "unknown trait"}
		}
	}
	for _, k := range e.table.traits {
		if _, err := e.table.Lookup(k, answers[k]); err != nil {
			return err
		}
	}
	return nil
}

// Aggregate suma las contribuciones de todas las respuestas en un vector crudo.
func (e *ConstitutionEngine) Aggregate(answers domain.AnswerSet) (domain.DoshaVector, error) {
	if err := e.Validate(answers); err != nil {
		return domain.DoshaVector{}, err
	}
	var raw domain.DoshaVector
	for _, k := range e.table.traits {
		w, _ := e.table.Lookup(k, answers[k])
		raw = raw.Add(w)
	}
	return raw, nil
}

// ComputeConstitution valida, agrega, normaliza y clasifica.
func (e *ConstitutionEngine) ComputeConstitution(answers domain.AnswerSet) (domain.Classification, error) {
	raw, err := e.Aggregate(answers)
	if err != nil {
		return domain.Classification{}, err
	}
	cls, err := Classify(raw)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify %+v: %w", raw, err)
	}
	return cls, nil
}
