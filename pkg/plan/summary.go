package plan

import (
	"math"

	"github.com/churrasco-tools/churrasco/pkg/meat"
)

// Input is everything the projection needs. Shares are percentages in
// [0, 100]; a missing price counts as zero.
type Input struct {
	Guests         int
	Appetite       Appetite
	GramsPerPerson float64
	Selected       []meat.Category
	Shares         map[meat.Category]float64
	Prices         map[meat.Category]float64
}

// Line is the projection of one category.
type Line struct {
	Category meat.Category `json:"category" yaml:"category"`
	Name     string        `json:"name" yaml:"name"`
	Share    float64       `json:"sharePercent" yaml:"sharePercent"`
	Kg       float64       `json:"kg" yaml:"kg"`
	Price    float64       `json:"pricePerKg" yaml:"pricePerKg"`
	Cost     float64       `json:"cost" yaml:"cost"`
}

// Summary is the cost and weight breakdown of a plan. Values are not
// rounded; use Round2 when displaying them.
type Summary struct {
	Guests         int      `json:"guests" yaml:"guests"`
	Appetite       Appetite `json:"appetite" yaml:"appetite"`
	GramsPerPerson float64  `json:"gramsPerPerson" yaml:"gramsPerPerson"`
	TotalKg        float64  `json:"totalKg" yaml:"totalKg"`
	Lines          []Line   `json:"lines" yaml:"lines"`
	TotalShare     float64  `json:"totalSharePercent" yaml:"totalSharePercent"`
	TotalCost      float64  `json:"totalCost" yaml:"totalCost"`
	CostPerPerson  float64  `json:"costPerPerson" yaml:"costPerPerson"`
}

// Project computes the summary of in. When GramsPerPerson is not set the
// default for the appetite level is used.
func Project(in Input) Summary {
	grams := in.GramsPerPerson
	if grams <= 0 {
		grams = DefaultGramsPerPerson()[in.Appetite]
	}

	s := Summary{
		Guests:         in.Guests,
		Appetite:       in.Appetite,
		GramsPerPerson: grams,
		TotalKg:        float64(in.Guests) * grams / 1000,
		Lines:          make([]Line, 0, len(in.Selected)),
	}

	for _, c := range in.Selected {
		share := in.Shares[c]
		price := in.Prices[c]
		kg := share / 100 * float64(in.Guests) * grams / 1000
		cost := price * kg

		s.Lines = append(s.Lines, Line{
			Category: c,
			Name:     c.DisplayName(),
			Share:    share,
			Kg:       kg,
			Price:    price,
			Cost:     cost,
		})
		s.TotalShare += share
		s.TotalCost += cost
	}

	if in.Guests > 0 {
		s.CostPerPerson = s.TotalCost / float64(in.Guests)
	}

	return s
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
