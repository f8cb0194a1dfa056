package service

import (
	"fmt"

	"veda-core/internal/domain"
)

type weightEntry struct {
	trait  domain.TraitKey
	weight domain.DoshaVector
}

// WeightTable es la tabla fija respuesta -> contribucion por dosha.
// Se construye una vez y no expone forma de modificarla.
type WeightTable struct {
	traits  []domain.TraitKey
	options map[domain.TraitKey]map[string]struct{}
	byValue map[string]weightEntry
}

// NewWeightTable valida el cuestionario y construye la tabla.
// Falla si una clave de pregunta no es reconocida, si una pregunta se repite o no tiene
// opciones, si un id de opcion aparece dos veces o si algun peso es negativo.
func NewWeightTable(questions []domain.TraitQuestion) (*WeightTable, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("weight table: no questions")
	}
	t := &WeightTable{
		options: make(map[domain.TraitKey]map[string]struct{}, len(questions)),
		byValue: make(map[string]weightEntry),
	}
	for _, q := range questions {
		if !domain.IsRequiredTrait(q.Key) {
			return nil, fmt.Errorf("weight table: unknown trait %q", q.Key)
		}
		if _, dup := t.options[q.Key]; dup {
			return nil, fmt.Errorf("weight table: duplicate trait %q", q.Key)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("weight table: trait %q has no options", q.Key)
		}
		opts := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if opt.ID == "" {
				return nil, fmt.Errorf("weight table: trait %q has an option without id", q.Key)
			}
			if prev, dup := t.byValue[opt.ID]; dup {
				return nil, fmt.Errorf("weight table: option %q declared for %q and %q", opt.ID, prev.trait, q.Key)
			}
			w := opt.Weight
			if w.Vata < 0 || w.Pitta < 0 || w.Kapha < 0 {
				return nil, fmt.Errorf("weight table: option %q has negative weight %+v", opt.ID, w)
			}
			t.byValue[opt.ID] = weightEntry{trait: q.Key, weight: w}
			opts[opt.ID] = struct{}{}
		}
		t.options[q.Key] = opts
		t.traits = append(t.traits, q.Key)
	}
	return t, nil
}

// Traits devuelve las preguntas requeridas, en el orden del cuestionario.
func (t *WeightTable) Traits() []domain.TraitKey {
	return append([]domain.TraitKey(nil), t.traits...)
}

// Covers indica si la tabla incluye todas las claves dadas.
func (t *WeightTable) Covers(keys []domain.TraitKey) error {
	for _, k := range keys {
		if _, ok := t.options[k]; !ok {
			return fmt.Errorf("weight table: missing trait %q", k)
		}
	}
	return nil
}

// Lookup resuelve el peso de una respuesta. La opcion tiene que existir y pertenecer a esa pregunta.
func (t *WeightTable) Lookup(trait domain.TraitKey, value string) (domain.DoshaVector, error) {
	entry, ok := t.byValue[value]
	if !ok {
		return domain.DoshaVector{}, &domain.InvalidAnswerError{Trait: trait, Value: value, Reason: "value not in weight table"}
	}
	if entry.trait != trait {
		return domain.DoshaVector{}, &domain.InvalidAnswerError{
			Trait:  trait,
			Value:  value,
			Reason: fmt.Sprintf("value belongs to %s", entry.trait),
		}
	}
	return entry.weight, nil
}
