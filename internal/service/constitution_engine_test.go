package service

import (
	"errors"
	"testing"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
)

func vataAnswers() domain.AnswerSet {
	return domain.AnswerSet{
		domain.TraitBodyType:             "lightSlim",
		domain.TraitSkinType:             "drySensitive",
		domain.TraitHairType:             "thinDryWiry",
		domain.TraitAppetite:             "variableIrregular",
		domain.TraitDigestion:            "delicateIrregular",
		domain.TraitSleepQuality:         "lightRestless",
		domain.TraitSleepDuration:        "poorlyDefined",
		domain.TraitTemperament:          "quickChanging",
		domain.TraitEmotionalState:       "anxiousNervous",
		domain.TraitPreferredTemperature: "coldWind",
		domain.TraitPhysicalActivity:     "irregularsporadic",
		domain.TraitFlexibility:          "looseflexible",
	}
}

func pittaAnswers() domain.AnswerSet {
	return domain.AnswerSet{
		domain.TraitBodyType:             "mediumMusclular",
		domain.TraitSkinType:             "fairReddish",
		domain.TraitHairType:             "fairFineStraight",
		domain.TraitAppetite:             "sharpIncreased",
		domain.TraitDigestion:            "efficient",
		domain.TraitSleepQuality:         "fitfulInterrupted",
		domain.TraitSleepDuration:        "mediumDefined",
		domain.TraitTemperament:          "focusedIntense",
		domain.TraitEmotionalState:       "irritableImpatient",
		domain.TraitPreferredTemperature: "hotSun",
		domain.TraitPhysicalActivity:     "moderate",
		domain.TraitFlexibility:          "moderate_flex",
	}
}

func defaultEngine(t *testing.T) *ConstitutionEngine {
	t.Helper()
	engine, err := NewConstitutionEngineFromCatalog(catalog.MustDefault())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func option(id string, v, p, k int) domain.AnswerOption {
	return domain.AnswerOption{ID: id, Weight: domain.DoshaVector{Vata: v, Pitta: p, Kapha: k}}
}

func fixtureEngine(t *testing.T, questions ...domain.TraitQuestion) *ConstitutionEngine {
	t.Helper()
	table, err := NewWeightTable(questions)
	if err != nil {
		t.Fatalf("weight table: %v", err)
	}
	return NewConstitutionEngine(table)
}

func mustCompute(t *testing.T, engine *ConstitutionEngine, answers domain.AnswerSet) domain.Classification {
	t.Helper()
	cls, err := engine.ComputeConstitution(answers)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return cls
}

func expectRanking(t *testing.T, cls domain.Classification, primary, secondary, tertiary domain.Dosha) {
	t.Helper()
	if cls.Primary != primary || cls.Secondary != secondary || cls.Tertiary != tertiary {
		t.Fatalf("expected %s/%s/%s, got %s/%s/%s", primary, secondary, tertiary, cls.Primary, cls.Secondary, cls.Tertiary)
	}
}

func expectInvalidAnswer(t *testing.T, err error, trait domain.TraitKey) *domain.InvalidAnswerError {
	t.Helper()
	var invalid *domain.InvalidAnswerError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAnswerError, got %v", err)
	}
	if invalid.Trait != trait {
		t.Fatalf("expected trait %s, got %s", trait, invalid.Trait)
	}
	if !errors.Is(err, domain.ErrInvalidAnswer) {
		t.Fatalf("expected error to wrap ErrInvalidAnswer")
	}
	return invalid
}

func TestComputeConstitution_AllVata(t *testing.T) {
	engine := defaultEngine(t)

	raw, err := engine.Aggregate(vataAnswers())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if want := (domain.DoshaVector{Vata: 35, Pitta: 1, Kapha: 0}); raw != want {
		t.Fatalf("expected raw %+v, got %+v", want, raw)
	}

	cls := mustCompute(t, engine, vataAnswers())
	if want := (domain.DoshaVector{Vata: 97, Pitta: 3, Kapha: 0}); cls.Scores != want {
		t.Fatalf("expected scores %+v, got %+v", want, cls.Scores)
	}
	expectRanking(t, cls, domain.Vata, domain.Pitta, domain.Kapha)
}

func TestComputeConstitution_TieBreakAmongZeros(t *testing.T) {
	cls := mustCompute(t, defaultEngine(t), pittaAnswers())
	if want := (domain.DoshaVector{Vata: 0, Pitta: 100, Kapha: 0}); cls.Scores != want {
		t.Fatalf("expected scores %+v, got %+v", want, cls.Scores)
	}
	expectRanking(t, cls, domain.Pitta, domain.Vata, domain.Kapha)
}

func TestComputeConstitution_ThreeTraitFixture(t *testing.T) {
	engine := fixtureEngine(t,
		domain.TraitQuestion{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("b-a", 3, 0, 0)}},
		domain.TraitQuestion{Key: domain.TraitSkinType, Options: []domain.AnswerOption{option("s-a", 3, 0, 0)}},
		domain.TraitQuestion{Key: domain.TraitHairType, Options: []domain.AnswerOption{option("h-a", 3, 0, 0)}},
	)
	answers := domain.AnswerSet{
		domain.TraitBodyType: "b-a",
		domain.TraitSkinType: "s-a",
		domain.TraitHairType: "h-a",
	}

	raw, err := engine.Aggregate(answers)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if raw != (domain.DoshaVector{Vata: 9}) {
		t.Fatalf("expected raw {9,0,0}, got %+v", raw)
	}

	cls := mustCompute(t, engine, answers)
	if cls.Scores != (domain.DoshaVector{Vata: 100}) {
		t.Fatalf("expected scores {100,0,0}, got %+v", cls.Scores)
	}
	expectRanking(t, cls, domain.Vata, domain.Pitta, domain.Kapha)
}

func TestComputeConstitution_ExactTopTie(t *testing.T) {
	engine := fixtureEngine(t,
		domain.TraitQuestion{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("b", 5, 5, 0)}},
		domain.TraitQuestion{Key: domain.TraitSkinType, Options: []domain.AnswerOption{option("s", 5, 5, 5)}},
	)
	cls := mustCompute(t, engine, domain.AnswerSet{domain.TraitBodyType: "b", domain.TraitSkinType: "s"})
	if want := (domain.DoshaVector{Vata: 40, Pitta: 40, Kapha: 20}); cls.Scores != want {
		t.Fatalf("expected scores %+v, got %+v", want, cls.Scores)
	}
	expectRanking(t, cls, domain.Vata, domain.Pitta, domain.Kapha)
}

func TestComputeConstitution_Idempotent(t *testing.T) {
	engine := defaultEngine(t)
	answers := vataAnswers()
	answers[domain.TraitBodyType] = "heavyRobust"
	answers[domain.TraitAppetite] = "sharpIncreased"

	first := mustCompute(t, engine, answers)
	for i := 0; i < 5; i++ {
		if again := mustCompute(t, engine, answers); again != first {
			t.Fatalf("run %d: expected %+v, got %+v", i, first, again)
		}
	}
}

func TestComputeConstitution_MissingTrait(t *testing.T) {
	answers := vataAnswers()
	delete(answers, domain.TraitFlexibility)

	_, err := defaultEngine(t).ComputeConstitution(answers)
	expectInvalidAnswer(t, err, domain.TraitFlexibility)
}

func TestComputeConstitution_UnknownValue(t *testing.T) {
	answers := vataAnswers()
	answers[domain.TraitSkinType] = "scaly"

	_, err := defaultEngine(t).ComputeConstitution(answers)
	if invalid := expectInvalidAnswer(t, err, domain.TraitSkinType); invalid.Value != "scaly" {
		t.Fatalf("expected offending value scaly, got %q", invalid.Value)
	}
}

func TestComputeConstitution_ValueOfOtherTrait(t *testing.T) {
	answers := vataAnswers()
	answers[domain.TraitSkinType] = "lightSlim"

	_, err := defaultEngine(t).ComputeConstitution(answers)
	expectInvalidAnswer(t, err, domain.TraitSkinType)
}

func TestComputeConstitution_UnknownTrait(t *testing.T) {
	answers := vataAnswers()
	answers["eyeColor"] = "brown"

	_, err := defaultEngine(t).ComputeConstitution(answers)
	expectInvalidAnswer(t, err, domain.TraitKey("eyeColor"))
}

func TestComputeConstitution_Degenerate(t *testing.T) {
	engine := fixtureEngine(t,
		domain.TraitQuestion{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("zero", 0, 0, 0)}},
	)
	_, err := engine.ComputeConstitution(domain.AnswerSet{domain.TraitBodyType: "zero"})
	var degenerate *domain.DegenerateScoreError
	if !errors.As(err, &degenerate) || !errors.Is(err, domain.ErrDegenerateScore) {
		t.Fatalf("expected DegenerateScoreError, got %v", err)
	}
}

func TestNewWeightTable_Validation(t *testing.T) {
	cases := []struct {
		name      string
		questions []domain.TraitQuestion
	}{
		{"empty", nil},
		{"unknown trait", []domain.TraitQuestion{{Key: "eyeColor", Options: []domain.AnswerOption{option("x", 1, 0, 0)}}}},
		{"no options", []domain.TraitQuestion{{Key: domain.TraitBodyType}}},
		{"negative weight", []domain.TraitQuestion{{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("x", -1, 0, 0)}}}},
		{"duplicate option", []domain.TraitQuestion{
			{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("x", 1, 0, 0)}},
			{Key: domain.TraitSkinType, Options: []domain.AnswerOption{option("x", 0, 1, 0)}},
		}},
		{"duplicate trait", []domain.TraitQuestion{
			{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("x", 1, 0, 0)}},
			{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("y", 0, 1, 0)}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWeightTable(tc.questions); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestWeightTable_CoversRequiredTraits(t *testing.T) {
	table, err := NewWeightTable(catalog.MustDefault().Questions())
	if err != nil {
		t.Fatalf("weight table: %v", err)
	}
	if err := table.Covers(domain.RequiredTraits); err != nil {
		t.Fatalf("expected default table to cover required traits: %v", err)
	}
	if got := len(table.Traits()); got != len(domain.RequiredTraits) {
		t.Fatalf("expected %d traits, got %d", len(domain.RequiredTraits), got)
	}

	partial, err := NewWeightTable([]domain.TraitQuestion{
		{Key: domain.TraitBodyType, Options: []domain.AnswerOption{option("x", 1, 0, 0)}},
	})
	if err != nil {
		t.Fatalf("weight table: %v", err)
	}
	if err := partial.Covers(domain.RequiredTraits); err == nil {
		t.Fatalf("expected partial table not to cover required traits")
	}
}
