package config

import (
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
)

// Config holds the presets a planning session starts from.
type Config interface {
	DefaultWeights() map[meat.Category]float64
	GramsPerPerson(plan.Appetite) float64
	Prices() map[meat.Category]float64
	DefaultAppetite() plan.Appetite
	ExportURL() string
	ExportFormat() string

	SetDefaultWeight(meat.Category, float64) error
	SetGramsPerPerson(plan.Appetite, float64) error
	SetPrice(meat.Category, float64) error
	DeletePrice(meat.Category)
	SetDefaultAppetite(plan.Appetite)
	SetExportURL(string)
	SetExportFormat(string)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
