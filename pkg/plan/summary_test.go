package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churrasco-tools/churrasco/pkg/meat"
)

func TestProject(t *testing.T) {
	s := Project(Input{
		Guests:   10,
		Appetite: Medio,
		Selected: []meat.Category{meat.Bovina, meat.Frango},
		Shares:   map[meat.Category]float64{meat.Bovina: 75, meat.Frango: 25},
		Prices:   map[meat.Category]float64{meat.Bovina: 60, meat.Frango: 20},
	})

	assert.Equal(t, 400.0, s.GramsPerPerson)
	assert.InDelta(t, 4, s.TotalKg, 1e-9)
	require.Len(t, s.Lines, 2)

	assert.Equal(t, meat.Bovina, s.Lines[0].Category)
	assert.Equal(t, "Carne Bovina", s.Lines[0].Name)
	assert.InDelta(t, 3, s.Lines[0].Kg, 1e-9)
	assert.InDelta(t, 180, s.Lines[0].Cost, 1e-9)

	assert.InDelta(t, 1, s.Lines[1].Kg, 1e-9)
	assert.InDelta(t, 20, s.Lines[1].Cost, 1e-9)

	assert.InDelta(t, 100, s.TotalShare, 1e-9)
	assert.InDelta(t, 200, s.TotalCost, 1e-9)
	assert.InDelta(t, 20, s.CostPerPerson, 1e-9)
}

func TestProjectMissingPriceAndNoGuests(t *testing.T) {
	s := Project(Input{
		Guests:         0,
		Appetite:       Pesado,
		GramsPerPerson: 0,
		Selected:       []meat.Category{meat.Suina},
		Shares:         map[meat.Category]float64{meat.Suina: 100},
	})
	assert.Equal(t, 500.0, s.GramsPerPerson)
	assert.Zero(t, s.TotalKg)
	assert.Zero(t, s.TotalCost)
	assert.Zero(t, s.CostPerPerson)

	s = Project(Input{
		Guests:         3,
		Appetite:       Leve,
		GramsPerPerson: 350,
		Selected:       []meat.Category{meat.Suina, meat.Linguica},
		Shares:         map[meat.Category]float64{meat.Suina: 50, meat.Linguica: 50},
		Prices:         map[meat.Category]float64{meat.Linguica: 30},
	})
	assert.Equal(t, 350.0, s.GramsPerPerson)
	assert.Zero(t, s.Lines[0].Cost)
	assert.InDelta(t, 0.525*30, s.Lines[1].Cost, 1e-9)
}

func TestParseAppetite(t *testing.T) {
	for in, want := range map[string]Appetite{"leve": Leve, "Médio": Medio, "MÉDIO": Medio, "Lêve": Leve, " PESADO ": Pesado} {
		got, err := ParseAppetite(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseAppetite("faminto")
	assert.ErrorIs(t, err, ErrUnknownAppetite)
	assert.Equal(t, "Medio", Medio.Title())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 71.43, Round2(50.0/70*100))
	assert.Equal(t, 28.57, Round2(20.0/70*100))
	assert.Equal(t, 0.0, Round2(0.001))
}
