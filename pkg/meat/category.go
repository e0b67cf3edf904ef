package meat

import (
	"errors"
	"strings"

	"github.com/churrasco-tools/churrasco/pkg/utils/fold"
)

// Category is the stable key of a meat kind.
type Category string

const (
	Bovina   Category = "bovina"
	Frango   Category = "frango"
	Suina    Category = "suina"
	Linguica Category = "linguica"
)

// ErrUnknownCategory is returned when a name does not match any category.
var ErrUnknownCategory = errors.New("unknown meat category")

var displayNames = map[Category]string{
	Bovina:   "Carne Bovina",
	Frango:   "Frango",
	Suina:    "Carne Suína",
	Linguica: "Linguiça",
}

// All returns every category in display order.
func All() []Category {
	return []Category{Bovina, Frango, Suina, Linguica}
}

// DefaultWeights returns the weights used to seed a new allocation. They do
// not need to sum to 100; the allocation engine renormalizes them over the
// selected categories.
func DefaultWeights() map[Category]float64 {
	return map[Category]float64{
		Bovina:   50,
		Frango:   20,
		Suina:    10,
		Linguica: 20,
	}
}

// DisplayName returns the human readable name of c. Unknown categories are
// returned as their raw key.
func (c Category) DisplayName() string {
	if n, ok := displayNames[c]; ok {
		return n
	}
	return string(c)
}

// Valid reports whether c belongs to the catalog.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// Parse resolves a user supplied name to a Category. It accepts the key or
// the display name, case-insensitively and with or without accents.
func Parse(s string) (Category, error) {
	key := normalize(s)
	if key == "" {
		return "", ErrUnknownCategory
	}
	for _, c := range All() {
		if key == string(c) || key == normalize(c.DisplayName()) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// ParseList resolves every name in names, stopping at the first unknown one.
func ParseList(names []string) ([]Category, error) {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func normalize(s string) string {
	s = fold.String(s)
	s = strings.ReplaceAll(s, "carne ", "")
	return strings.ReplaceAll(s, " ", "")
}
