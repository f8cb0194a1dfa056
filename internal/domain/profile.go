package domain

import "time"

// ConstitutionProfile es el resultado persistido por sujeto.
// Baseline (prakriti) se escribe una sola vez; Current (vikriti) se reescribe en cada evaluacion.
type ConstitutionProfile struct {
	ID               string      `json:"id"`
	SubjectID        string      `json:"subject_id"`
	Baseline         DoshaVector `json:"baseline"`
	Current          DoshaVector `json:"current"`
	PrimaryType      Dosha       `json:"primary_type"`
	SecondaryType    Dosha       `json:"secondary_type"`
	CurrentPrimary   Dosha       `json:"current_primary"`
	CurrentSecondary Dosha       `json:"current_secondary"`
	Imbalance        bool        `json:"imbalance"`
	LastAssessedAt   time.Time   `json:"last_assessed_at"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// ImbalanceReport detalla la deriva entre baseline y current.
type ImbalanceReport struct {
	Imbalanced bool        `json:"imbalanced"`
	Diff       DoshaVector `json:"diff"`
	MaxDiff    int         `json:"max_diff"`
	Threshold  int         `json:"threshold"`
	// Drifted son los doshas cuya diferencia supera el umbral, en orden canonico.
	Drifted []Dosha `json:"drifted"`
}

// Assessment registra una evaluacion individual (historial).
type Assessment struct {
	ID        string      `json:"id"`
	ProfileID string      `json:"profile_id"`
	SubjectID string      `json:"subject_id"`
	Answers   AnswerSet   `json:"answers"`
	Raw       DoshaVector `json:"raw"`
	Scores    DoshaVector `json:"scores"`
	Primary   Dosha       `json:"primary"`
	Secondary Dosha       `json:"secondary"`
	CreatedAt time.Time   `json:"created_at"`
}
