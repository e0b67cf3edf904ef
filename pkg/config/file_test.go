package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
)

func TestNewFileMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	f, err := NewFile(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, meat.DefaultWeights(), f.DefaultWeights())
	assert.Equal(t, plan.Medio, f.DefaultAppetite())
	assert.Equal(t, 400.0, f.GramsPerPerson(plan.Medio))
	assert.Empty(t, f.Prices())
	assert.Equal(t, "png", f.ExportFormat())

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0644))
	f, err = NewFile(empty)
	require.NoError(t, err)
	assert.Equal(t, meat.DefaultWeights(), f.DefaultWeights())
}

func TestNewFileInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0644))

	_, err := NewFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestFileOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
defaultWeights:
  bovina: 70
  peixe: 10
gramsPerPerson:
  pesado: 600
  leve: -1
prices:
  frango: 19.9
  suina: 0
appetite: pesado
`), 0644))

	f, err := NewFile(p)
	require.NoError(t, err)

	weights := f.DefaultWeights()
	assert.Equal(t, 70.0, weights[meat.Bovina])
	assert.Equal(t, 20.0, weights[meat.Frango])
	assert.NotContains(t, weights, meat.Category("peixe"))

	assert.Equal(t, 600.0, f.GramsPerPerson(plan.Pesado))
	assert.Equal(t, 300.0, f.GramsPerPerson(plan.Leve))
	assert.Equal(t, map[meat.Category]float64{meat.Frango: 19.9}, f.Prices())
	assert.Equal(t, plan.Pesado, f.DefaultAppetite())
}

func TestFileSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.json", "nested/config.yml"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), name)
			f := NewFileFromConfig(nil, p)

			require.NoError(t, f.SetPrice(meat.Bovina, 59.9))
			require.NoError(t, f.SetDefaultWeight(meat.Suina, 35))
			require.NoError(t, f.SetGramsPerPerson(plan.Leve, 250))
			f.SetDefaultAppetite(plan.Leve)
			f.SetExportURL("mem://localhost/out/plan.json")
			f.SetExportFormat("json")
			require.NoError(t, f.Save())

			loaded, err := NewFile(p)
			require.NoError(t, err)
			assert.Equal(t, map[meat.Category]float64{meat.Bovina: 59.9}, loaded.Prices())
			assert.Equal(t, 35.0, loaded.DefaultWeights()[meat.Suina])
			assert.Equal(t, 250.0, loaded.GramsPerPerson(plan.Leve))
			assert.Equal(t, plan.Leve, loaded.DefaultAppetite())
			assert.Equal(t, "mem://localhost/out/plan.json", loaded.ExportURL())
			assert.Equal(t, "json", loaded.ExportFormat())

			loaded.DeletePrice(meat.Bovina)
			assert.Empty(t, loaded.Prices())
		})
	}
}

func TestFileSettersValidate(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	assert.Error(t, f.SetPrice(meat.Frango, 0))
	assert.Error(t, f.SetDefaultWeight(meat.Frango, -1))
	assert.Error(t, f.SetGramsPerPerson(plan.Medio, 0))
}

func TestNewRawFileConfigFromConfig(t *testing.T) {
	_, err := NewRawFileConfigFromConfig(nil)
	require.Error(t, err)

	f := NewFileFromConfig(nil, "")
	require.NoError(t, f.SetPrice(meat.Linguica, 28))
	raw, err := NewRawFileConfigFromConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 28.0, raw.Prices["linguica"])
	assert.Equal(t, 500.0, raw.GramsPerPerson["pesado"])
	assert.Equal(t, "medio", *raw.Appetite)
	assert.Len(t, raw.DefaultWeights, len(meat.All()))
}
