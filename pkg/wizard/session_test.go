package wizard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
)

func TestSetGuests(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "5", want: 5},
		{in: " 12 ", want: 12},
		{in: "", want: 0},
		{in: "0", wantErr: true},
		{in: "05", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "2.5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "99999999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := NewSession(Options{})
			require.NoError(t, s.SetGuests("7"))

			err := s.SetGuests(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidGuests)
				assert.Equal(t, 7, s.Guests(), "rejected input must keep the old value")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Guests())
		})
	}
}

func TestSelectionReinitializesAllocation(t *testing.T) {
	s := NewSession(Options{})
	assert.Zero(t, s.Allocation().Total())

	require.NoError(t, s.ToggleCategory(meat.Bovina))
	require.NoError(t, s.ToggleCategory(meat.Frango))
	assert.InDelta(t, 71.43, s.Allocation().Share(meat.Bovina), 0.005)
	assert.InDelta(t, 28.57, s.Allocation().Share(meat.Frango), 0.005)

	require.NoError(t, s.ToggleLock(meat.Bovina))
	require.NoError(t, s.SetShare(meat.Frango, 10))
	assert.True(t, s.Allocation().Locked(meat.Bovina))

	// Adding a meat drops every lock and starts over from the defaults.
	require.NoError(t, s.ToggleCategory(meat.Suina))
	a := s.Allocation()
	assert.False(t, a.Locked(meat.Bovina))
	assert.InDelta(t, 62.5, a.Share(meat.Bovina), 1e-9)
	assert.InDelta(t, 25, a.Share(meat.Frango), 1e-9)
	assert.InDelta(t, 12.5, a.Share(meat.Suina), 1e-9)

	require.NoError(t, s.ToggleCategory(meat.Bovina))
	assert.Equal(t, []meat.Category{meat.Frango, meat.Suina}, s.Selected())
	assert.Zero(t, s.Allocation().Share(meat.Bovina))

	assert.ErrorIs(t, s.ToggleCategory(meat.Category("tofu")), meat.ErrUnknownCategory)
}

func TestSetSelectionKeepsLocksWhenUnchanged(t *testing.T) {
	s := NewSession(Options{})
	require.NoError(t, s.SetSelection([]meat.Category{meat.Bovina, meat.Frango, meat.Bovina}))
	assert.Equal(t, []meat.Category{meat.Bovina, meat.Frango}, s.Selected())

	require.NoError(t, s.ToggleLock(meat.Frango))
	require.NoError(t, s.SetSelection([]meat.Category{meat.Bovina, meat.Frango}))
	assert.True(t, s.Allocation().Locked(meat.Frango))

	require.NoError(t, s.SetSelection([]meat.Category{meat.Frango}))
	assert.False(t, s.Allocation().Locked(meat.Frango))
	assert.InDelta(t, 100, s.Allocation().Share(meat.Frango), 1e-9)
}

func TestSetPrice(t *testing.T) {
	s := NewSession(Options{})

	require.NoError(t, s.SetPrice(meat.Bovina, "59,90"))
	p, ok := s.Price(meat.Bovina)
	require.True(t, ok)
	assert.Equal(t, 59.9, p)

	require.NoError(t, s.SetPrice(meat.Frango, "18.5"))

	// Characters outside digits and separators are refused outright.
	assert.ErrorIs(t, s.SetPrice(meat.Bovina, "R$ 10"), ErrInvalidPrice)
	p, _ = s.Price(meat.Bovina)
	assert.Equal(t, 59.9, p)

	// A well formed but non positive number removes the price.
	assert.ErrorIs(t, s.SetPrice(meat.Bovina, "0"), ErrInvalidPrice)
	_, ok = s.Price(meat.Bovina)
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetPrice(meat.Frango, "1.2.3"), ErrInvalidPrice)
	_, ok = s.Price(meat.Frango)
	assert.False(t, ok)

	require.NoError(t, s.SetPrice(meat.Suina, "20"))
	require.NoError(t, s.SetPrice(meat.Suina, ""))
	_, ok = s.Price(meat.Suina)
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetPrice(meat.Category("tofu"), "10"), meat.ErrUnknownCategory)
}

func TestSharesRequireSelection(t *testing.T) {
	s := NewSession(Options{})
	require.NoError(t, s.ToggleCategory(meat.Bovina))
	assert.ErrorIs(t, s.SetShare(meat.Frango, 10), ErrNotSelected)
	assert.ErrorIs(t, s.ToggleLock(meat.Frango), ErrNotSelected)
}

func TestSetAppetite(t *testing.T) {
	s := NewSession(Options{Appetite: plan.Appetite("faminto")})
	assert.Equal(t, plan.DefaultAppetite, s.Appetite())

	require.NoError(t, s.SetAppetite(plan.Leve))
	assert.Equal(t, 300.0, s.GramsPerPerson())

	err := s.SetAppetite(plan.Appetite("faminto"))
	assert.ErrorIs(t, err, plan.ErrUnknownAppetite)
	assert.Equal(t, plan.Leve, s.Appetite())
	assert.Equal(t, 300.0, s.GramsPerPerson())
}

func TestWizardFlow(t *testing.T) {
	s := NewSession(Options{})
	assert.Equal(t, StepGuests, s.Step())

	assert.ErrorIs(t, s.Advance(), ErrNoGuests)
	require.NoError(t, s.SetGuests("10"))
	assert.ErrorIs(t, s.Advance(), ErrNoCategories)
	require.NoError(t, s.ToggleCategory(meat.Bovina))
	require.NoError(t, s.ToggleCategory(meat.Frango))
	require.NoError(t, s.SetAppetite(plan.Pesado))
	require.NoError(t, s.Advance())
	assert.Equal(t, StepPrices, s.Step())

	require.NoError(t, s.SetPrice(meat.Bovina, "60"))
	err := s.Advance()
	require.ErrorIs(t, err, ErrMissingPrice)
	assert.Contains(t, err.Error(), "Frango")
	require.NoError(t, s.SetPrice(meat.Frango, "20"))
	require.NoError(t, s.Advance())
	assert.Equal(t, StepShares, s.Step())

	require.NoError(t, s.SetShare(meat.Bovina, 80))
	require.NoError(t, s.ToggleLock(meat.Bovina))
	require.NoError(t, s.SetShare(meat.Frango, 15))
	err = s.Advance()
	require.ErrorIs(t, err, ErrSharesUnbalanced)
	assert.Contains(t, err.Error(), "95.0%")

	s.Normalize()
	require.NoError(t, s.Advance())
	assert.Equal(t, StepResult, s.Step())
	assert.ErrorIs(t, s.Advance(), ErrLastStep)

	sum := s.Summary()
	assert.Equal(t, 10, sum.Guests)
	assert.Equal(t, plan.Pesado, sum.Appetite)
	assert.Equal(t, 500.0, sum.GramsPerPerson)
	assert.InDelta(t, 5, sum.TotalKg, 1e-9)
	require.Len(t, sum.Lines, 2)
	assert.InDelta(t, 100, sum.TotalShare, 1e-9)
	wantCost := 80.0/95*5*60 + 15.0/95*5*20
	assert.InDelta(t, wantCost, sum.TotalCost, 1e-9)

	s.Back()
	s.Back()
	s.Back()
	s.Back()
	assert.Equal(t, StepGuests, s.Step())
	assert.Equal(t, 10, s.Guests(), "going back keeps the data")

	s.Reset()
	assert.Equal(t, StepGuests, s.Step())
	assert.Zero(t, s.Guests())
	assert.Empty(t, s.Selected())
}

func TestOptionsFromConfig(t *testing.T) {
	f, err := config.NewFile(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	require.NoError(t, f.SetPrice(meat.Bovina, 55))
	require.NoError(t, f.SetGramsPerPerson(plan.Leve, 200))
	require.NoError(t, f.SetDefaultWeight(meat.Frango, 50))
	f.SetDefaultAppetite(plan.Leve)

	s := NewSession(OptionsFromConfig(f))
	assert.Equal(t, plan.Leve, s.Appetite())
	assert.Equal(t, 200.0, s.GramsPerPerson())
	p, ok := s.Price(meat.Bovina)
	require.True(t, ok)
	assert.Equal(t, 55.0, p)

	require.NoError(t, s.SetSelection([]meat.Category{meat.Bovina, meat.Frango}))
	assert.InDelta(t, 50, s.Allocation().Share(meat.Bovina), 1e-9)
	assert.InDelta(t, 50, s.Allocation().Share(meat.Frango), 1e-9)
}
