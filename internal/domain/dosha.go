package domain

import (
	"fmt"
	"strings"
)

// Dosha identifica uno de los tres tipos constitucionales.
type Dosha string

const (
	Vata  Dosha = "VATA"
	Pitta Dosha = "PITTA"
	Kapha Dosha = "KAPHA"
)

// CanonicalOrder es el orden fijo de desempate: Vata antes que Pitta antes que Kapha.
// Cualquier ranking de componentes con el mismo valor se resuelve con este orden.
var CanonicalOrder = [3]Dosha{Vata, Pitta, Kapha}

// ParseDosha acepta el nombre en cualquier capitalizacion ("vata", "Pitta", "KAPHA").
func ParseDosha(raw string) (Dosha, error) {
	switch Dosha(strings.ToUpper(strings.TrimSpace(raw))) {
	case Vata:
		return Vata, nil
	case Pitta:
		return Pitta, nil
	case Kapha:
		return Kapha, nil
	}
	return "", fmt.Errorf("unknown dosha %q", raw)
}

func (d Dosha) Valid() bool {
	return d == Vata || d == Pitta || d == Kapha
}

// Rank devuelve la posicion de d en CanonicalOrder (-1 si no es valido).
func (d Dosha) Rank() int {
	for i, c := range CanonicalOrder {
		if c == d {
			return i
		}
	}
	return -1
}

func (d Dosha) String() string { return string(d) }

// DoshaVector es el vector de tres componentes (Vata, Pitta, Kapha).
// En agregacion cruda puede tener cualquier signo; normalizado son porcentajes.
type DoshaVector struct {
	Vata  int `json:"vata" yaml:"vata"`
	Pitta int `json:"pitta" yaml:"pitta"`
	Kapha int `json:"kapha" yaml:"kapha"`
}

// Get devuelve el componente de un dosha.
func (v DoshaVector) Get(d Dosha) int {
	switch d {
	case Vata:
		return v.Vata
	case Pitta:
		return v.Pitta
	case Kapha:
		return v.Kapha
	}
	return 0
}

// Add suma componente a componente.
func (v DoshaVector) Add(o DoshaVector) DoshaVector {
	return DoshaVector{
		Vata:  v.Vata + o.Vata,
		Pitta: v.Pitta + o.Pitta,
		Kapha: v.Kapha + o.Kapha,
	}
}

func (v DoshaVector) Total() int {
	return v.Vata + v.Pitta + v.Kapha
}

// Components devuelve los valores en CanonicalOrder.
func (v DoshaVector) Components() [3]int {
	return [3]int{v.Vata, v.Pitta, v.Kapha}
}

func (v DoshaVector) IsZero() bool {
	return v.Vata == 0 && v.Pitta == 0 && v.Kapha == 0
}

// Classification es el resultado normalizado y ordenado de una evaluacion.
type Classification struct {
	Scores    DoshaVector `json:"scores"`
	Primary   Dosha       `json:"primary"`
	Secondary Dosha       `json:"secondary"`
	Tertiary  Dosha       `json:"tertiary"`
}

// DoshaInfo agrupa los textos descriptivos de un dosha.
type DoshaInfo struct {
	Dosha           Dosha    `json:"dosha" yaml:"dosha"`
	Elements        string   `json:"elements" yaml:"elements"`
	Description     string   `json:"description" yaml:"description"`
	Characteristics []string `json:"characteristics" yaml:"characteristics"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	FeedingHabits   []string `json:"feeding_habits" yaml:"feeding_habits"`
}
