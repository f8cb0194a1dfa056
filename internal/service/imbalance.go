package service

import "veda-core/internal/domain"

// DefaultImbalanceThreshold es la deriva maxima (en puntos porcentuales) entre prakriti y
// vikriti que todavia se considera equilibrio. Estrictamente mayor que este valor es desequilibrio.
const DefaultImbalanceThreshold = 15

// ImbalanceDetector compara baseline y current con un umbral configurable.
type ImbalanceDetector struct {
	Threshold int
}

// NewImbalanceDetector usa DefaultImbalanceThreshold si threshold es negativo.
func NewImbalanceDetector(threshold int) ImbalanceDetector {
	if threshold < 0 {
		threshold = DefaultImbalanceThreshold
	}
	return ImbalanceDetector{Threshold: threshold}
}

// Compare calcula |baseline(X) - current(X)| por dosha.
func (d ImbalanceDetector) Compare(baseline, current domain.DoshaVector) domain.ImbalanceReport {
	report := domain.ImbalanceReport{
		Diff: domain.DoshaVector{
			Vata:  abs(baseline.Vata - current.Vata),
			Pitta: abs(baseline.Pitta - current.Pitta),
			Kapha: abs(baseline.Kapha - current.Kapha),
		},
		Threshold: d.Threshold,
		Drifted:   []domain.Dosha{},
	}
	for _, dosha := range domain.CanonicalOrder {
		diff := report.Diff.Get(dosha)
		if diff > report.MaxDiff {
			report.MaxDiff = diff
		}
		if diff > d.Threshold {
			report.Drifted = append(report.Drifted, dosha)
		}
	}
	report.Imbalanced = report.MaxDiff > d.Threshold
	return report
}

// Detect evalua un perfil persistido.
func (d ImbalanceDetector) Detect(profile domain.ConstitutionProfile) domain.ImbalanceReport {
	return d.Compare(profile.Baseline, profile.Current)
}

// DetectImbalance usa el umbral por defecto.
func DetectImbalance(profile domain.ConstitutionProfile) domain.ImbalanceReport {
	return NewImbalanceDetector(DefaultImbalanceThreshold).Detect(profile)
}
