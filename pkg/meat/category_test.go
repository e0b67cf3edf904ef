package meat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "bovina", want: Bovina},
		{in: "  FRANGO ", want: Frango},
		{in: "Carne Suína", want: Suina},
		{in: "suina", want: Suina},
		{in: "Linguiça", want: Linguica},
		{in: "linguica", want: Linguica},
		{in: "LINGUIÇA", want: Linguica},
		{in: "Suìna", want: Suina},
		{in: "", wantErr: true},
		{in: "peixe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseListStopsAtUnknown(t *testing.T) {
	got, err := ParseList([]string{"bovina", "frango"})
	require.NoError(t, err)
	assert.Equal(t, []Category{Bovina, Frango}, got)

	_, err = ParseList([]string{"bovina", "tofu"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCatalogIsConsistent(t *testing.T) {
	weights := DefaultWeights()
	for _, c := range All() {
		assert.True(t, c.Valid(), c)
		assert.NotEqual(t, string(c), c.DisplayName(), "missing display name for %s", c)
		assert.Contains(t, weights, c)
	}
	assert.False(t, Category("peixe").Valid())
	assert.Equal(t, "peixe", Category("peixe").DisplayName())
}
