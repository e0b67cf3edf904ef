package plan

import (
	"errors"
	"strings"

	"github.com/churrasco-tools/churrasco/pkg/utils/fold"
)

// Appetite is how hungry the guests are expected to be.
type Appetite string

const (
	Leve   Appetite = "leve"
	Medio  Appetite = "medio"
	Pesado Appetite = "pesado"
)

// DefaultAppetite is used when the user does not pick one.
const DefaultAppetite = Medio

// ErrUnknownAppetite is returned when a name does not match any level.
var ErrUnknownAppetite = errors.New("unknown appetite level")

// Appetites returns every level from lightest to heaviest.
func Appetites() []Appetite {
	return []Appetite{Leve, Medio, Pesado}
}

// DefaultGramsPerPerson returns how many grams of meat each guest eats per
// appetite level.
func DefaultGramsPerPerson() map[Appetite]float64 {
	return map[Appetite]float64{
		Leve:   300,
		Medio:  400,
		Pesado: 500,
	}
}

// ParseAppetite resolves a level by name, ignoring case and accents, so
// "Médio" is accepted as well.
func ParseAppetite(s string) (Appetite, error) {
	s = fold.String(s)
	for _, a := range Appetites() {
		if s == string(a) {
			return a, nil
		}
	}
	return "", ErrUnknownAppetite
}

// Valid reports whether a is one of the known levels.
func (a Appetite) Valid() bool {
	for _, v := range Appetites() {
		if a == v {
			return true
		}
	}
	return false
}

// Title returns the level with its first letter in upper case.
func (a Appetite) Title() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

func (a Appetite) String() string {
	return string(a)
}
