package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
	"github.com/churrasco-tools/churrasco/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Appetite: ptr.To(string(plan.DefaultAppetite)),
		// Relative URLs resolve against the working directory.
		ExportURL:    ptr.To("resultado-churrasco.png"),
		ExportFormat: ptr.To("png"),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// DefaultPath returns the per-user config location, falling back to the
// working directory when it cannot be determined.
func DefaultPath() string {
	if p := os.Getenv("CHURRASCO_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "churrasco.json"
	}
	return filepath.Join(dir, "churrasco", "config.json")
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// RawFileConfig is the on-disk shape of the preset file. Unset fields fall
// back to the package defaults.
type RawFileConfig struct {
	DefaultWeights map[string]float64 `json:"defaultWeights,omitempty" yaml:"defaultWeights,omitempty"`
	GramsPerPerson map[string]float64 `json:"gramsPerPerson,omitempty" yaml:"gramsPerPerson,omitempty"`
	Prices         map[string]float64 `json:"prices,omitempty" yaml:"prices,omitempty"`
	Appetite       *string            `json:"appetite,omitempty" yaml:"appetite,omitempty"`
	ExportURL      *string            `json:"exportURL,omitempty" yaml:"exportURL,omitempty"`
	ExportFormat   *string            `json:"exportFormat,omitempty" yaml:"exportFormat,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		DefaultWeights: map[string]float64{},
		GramsPerPerson: map[string]float64{},
		Prices:         map[string]float64{},
		Appetite:       ptr.To(string(c.DefaultAppetite())),
		ExportURL:      ptr.To(c.ExportURL()),
		ExportFormat:   ptr.To(c.ExportFormat()),
	}
	for k, v := range c.DefaultWeights() {
		rawConfig.DefaultWeights[string(k)] = v
	}
	for _, a := range plan.Appetites() {
		rawConfig.GramsPerPerson[string(a)] = c.GramsPerPerson(a)
	}
	for k, v := range c.Prices() {
		rawConfig.Prices[string(k)] = v
	}

	return rawConfig, nil
}

func (f *File) Path() string {
	return f.filepath
}

// DefaultWeights returns the catalog weights overridden by the file.
func (f *File) DefaultWeights() map[meat.Category]float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	weights := meat.DefaultWeights()
	for k, v := range f.c.DefaultWeights {
		c, err := meat.Parse(k)
		if err != nil {
			logrus.WithField("category", k).Warn("ignoring default weight of unknown category")
			continue
		}
		weights[c] = v
	}

	return weights
}

func (f *File) GramsPerPerson(a plan.Appetite) float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if g, ok := f.c.GramsPerPerson[string(a)]; ok && g > 0 {
		return g
	}

	return plan.DefaultGramsPerPerson()[a]
}

// Prices returns the remembered price per kilo of every category that has
// one.
func (f *File) Prices() map[meat.Category]float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	prices := map[meat.Category]float64{}
	for k, v := range f.c.Prices {
		c, err := meat.Parse(k)
		if err != nil || v <= 0 {
			continue
		}
		prices[c] = v
	}

	return prices
}

func (f *File) DefaultAppetite() plan.Appetite {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Appetite != nil {
		if a, err := plan.ParseAppetite(*f.c.Appetite); err == nil {
			return a
		}
		logrus.WithField("appetite", *f.c.Appetite).Warn("invalid appetite in config, using default")
	}

	return plan.Appetite(*defaultFileConfig.Appetite)
}

func (f *File) ExportURL() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ExportURL != nil && *f.c.ExportURL != "" {
		return *f.c.ExportURL
	}

	return *defaultFileConfig.ExportURL
}

func (f *File) ExportFormat() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ExportFormat != nil && *f.c.ExportFormat != "" {
		return *f.c.ExportFormat
	}

	return *defaultFileConfig.ExportFormat
}

func (f *File) SetDefaultWeight(c meat.Category, w float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if w < 0 {
		return pkgerrors.Errorf("default weight of %s must not be negative, got %v", c, w)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c.DefaultWeights == nil {
		f.c.DefaultWeights = map[string]float64{}
	}
	f.c.DefaultWeights[string(c)] = w

	return nil
}

func (f *File) SetGramsPerPerson(a plan.Appetite, g float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if g <= 0 {
		return pkgerrors.Errorf("grams per person for %s must be positive, got %v", a, g)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c.GramsPerPerson == nil {
		f.c.GramsPerPerson = map[string]float64{}
	}
	f.c.GramsPerPerson[string(a)] = g

	return nil
}

func (f *File) SetPrice(c meat.Category, p float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if p <= 0 {
		return pkgerrors.Errorf("price of %s must be positive, got %v", c, p)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c.Prices == nil {
		f.c.Prices = map[string]float64{}
	}
	f.c.Prices[string(c)] = p

	return nil
}

func (f *File) DeletePrice(c meat.Category) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.c.Prices, string(c))
}

func (f *File) SetDefaultAppetite(a plan.Appetite) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.Appetite = ptr.To(string(a))
}

func (f *File) SetExportURL(u string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.ExportURL = &u
}

func (f *File) SetExportFormat(format string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.ExportFormat = &format
}

func (f *File) isYAML() bool {
	switch strings.ToLower(filepath.Ext(f.filepath)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using a streaming decoder
	// will not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if f.isYAML() {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if dir := filepath.Dir(f.filepath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pkgerrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	if f.isYAML() {
		enc := yaml.NewEncoder(fp)
		enc.SetIndent(2)
		err = enc.Encode(f.c)
		if err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(fp)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"path":            f.filepath,
		"defaultAppetite": f.DefaultAppetite(),
		"prices":          len(f.Prices()),
		"exportURL":       f.ExportURL(),
		"exportFormat":    f.ExportFormat(),
	}
}
