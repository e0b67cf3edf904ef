package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/churrasco-tools/churrasco/pkg/allocation"
	"github.com/churrasco-tools/churrasco/pkg/config"
	"github.com/churrasco-tools/churrasco/pkg/meat"
	"github.com/churrasco-tools/churrasco/pkg/plan"
)

var (
	guestsPattern = regexp.MustCompile(`^[1-9][0-9]*$`)
	pricePattern  = regexp.MustCompile(`^\d*[,.\d]*$`)
)

// Options seeds a new Session. Zero values fall back to the catalog
// defaults.
type Options struct {
	Catalog        []meat.Category
	DefaultWeights map[meat.Category]float64
	GramsPerPerson map[plan.Appetite]float64
	Prices         map[meat.Category]float64
	Appetite       plan.Appetite
}

// OptionsFromConfig builds Options out of a preset file.
func OptionsFromConfig(c config.Config) Options {
	grams := map[plan.Appetite]float64{}
	for _, a := range plan.Appetites() {
		grams[a] = c.GramsPerPerson(a)
	}
	return Options{
		Catalog:        meat.All(),
		DefaultWeights: c.DefaultWeights(),
		GramsPerPerson: grams,
		Prices:         c.Prices(),
		Appetite:       c.DefaultAppetite(),
	}
}

// Session is the state of one planning session.
type Session struct {
	opts Options

	step     Step
	guests   string
	appetite plan.Appetite
	selected []meat.Category
	prices   map[meat.Category]float64
	alloc    allocation.Allocation
}

func NewSession(opts Options) *Session {
	if len(opts.Catalog) == 0 {
		opts.Catalog = meat.All()
	}
	if opts.DefaultWeights == nil {
		opts.DefaultWeights = meat.DefaultWeights()
	}
	if opts.GramsPerPerson == nil {
		opts.GramsPerPerson = plan.DefaultGramsPerPerson()
	}
	if !opts.Appetite.Valid() {
		opts.Appetite = plan.DefaultAppetite
	}

	s := &Session{opts: opts}
	s.Reset()
	return s
}

// Reset discards everything and goes back to the first step. Remembered
// prices from the options are restored.
func (s *Session) Reset() {
	s.step = StepGuests
	s.guests = ""
	s.appetite = s.opts.Appetite
	s.selected = nil
	s.prices = map[meat.Category]float64{}
	for c, p := range s.opts.Prices {
		if p > 0 {
			s.prices[c] = p
		}
	}
	s.alloc = allocation.Initialize(s.opts.Catalog, nil, s.opts.DefaultWeights)

	logrus.WithField("step", s.step).Debug("session reset")
}

func (s *Session) Step() Step {
	return s.step
}

// Catalog returns the categories the user can pick from.
func (s *Session) Catalog() []meat.Category {
	return append([]meat.Category(nil), s.opts.Catalog...)
}

// Guests returns the guest count, or 0 when it has not been entered.
func (s *Session) Guests() int {
	if s.guests == "" {
		return 0
	}
	n, _ := strconv.Atoi(s.guests)
	return n
}

// SetGuests accepts an empty string, which clears the count, or a positive
// integer without leading zeros. Anything else is rejected and the current
// value is kept.
func (s *Session) SetGuests(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		s.guests = ""
		return nil
	}
	if !guestsPattern.MatchString(text) {
		return fmt.Errorf("%w: %q", ErrInvalidGuests, text)
	}
	if _, err := strconv.Atoi(text); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidGuests, text)
	}
	s.guests = text

	logrus.WithField("guests", text).Debug("guest count set")
	return nil
}

func (s *Session) Appetite() plan.Appetite {
	return s.appetite
}

// SetAppetite changes the appetite level. Unknown levels are rejected and
// the current one is kept.
func (s *Session) SetAppetite(a plan.Appetite) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", plan.ErrUnknownAppetite, a)
	}
	s.appetite = a
	logrus.WithField("appetite", a).Debug("appetite set")
	return nil
}

// Selected returns the selected categories in the order they were picked.
func (s *Session) Selected() []meat.Category {
	return append([]meat.Category(nil), s.selected...)
}

func (s *Session) IsSelected(c meat.Category) bool {
	for _, sel := range s.selected {
		if sel == c {
			return true
		}
	}
	return false
}

// ToggleCategory adds c to the selection or removes it. The allocation is
// rebuilt from the default weights, dropping every lock.
func (s *Session) ToggleCategory(c meat.Category) error {
	if !s.inCatalog(c) {
		return fmt.Errorf("%w: %q", meat.ErrUnknownCategory, c)
	}

	if s.IsSelected(c) {
		next := make([]meat.Category, 0, len(s.selected))
		for _, sel := range s.selected {
			if sel != c {
				next = append(next, sel)
			}
		}
		s.selected = next
	} else {
		s.selected = append(append([]meat.Category(nil), s.selected...), c)
	}

	s.resetAllocation()
	return nil
}

// SetSelection replaces the selection. Duplicates are dropped. The
// allocation is only rebuilt when the selection actually changes.
func (s *Session) SetSelection(cs []meat.Category) error {
	var next []meat.Category
	seen := map[meat.Category]bool{}
	for _, c := range cs {
		if !s.inCatalog(c) {
			return fmt.Errorf("%w: %q", meat.ErrUnknownCategory, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		next = append(next, c)
	}

	if sameCategories(s.selected, next) {
		return nil
	}
	s.selected = next
	s.resetAllocation()
	return nil
}

// Price returns the price per kilo of c and whether it is set.
func (s *Session) Price(c meat.Category) (float64, bool) {
	p, ok := s.prices[c]
	return p, ok
}

// Prices returns a copy of every price that is set.
func (s *Session) Prices() map[meat.Category]float64 {
	out := make(map[meat.Category]float64, len(s.prices))
	for c, p := range s.prices {
		out[c] = p
	}
	return out
}

// SetPrice parses text as a price per kilo. Both "," and "." work as the
// decimal separator. Text with other characters is rejected and the price
// is kept. A number that is not positive removes the price. An empty text
// removes it without error.
func (s *Session) SetPrice(c meat.Category, text string) error {
	if !s.inCatalog(c) {
		return fmt.Errorf("%w: %q", meat.ErrUnknownCategory, c)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		delete(s.prices, c)
		return nil
	}
	if !pricePattern.MatchString(text) {
		return fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}

	p, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil || p <= 0 {
		delete(s.prices, c)
		return fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}

	return s.SetPriceValue(c, p)
}

// SetPriceValue sets an already parsed price.
func (s *Session) SetPriceValue(c meat.Category, p float64) error {
	if !s.inCatalog(c) {
		return fmt.Errorf("%w: %q", meat.ErrUnknownCategory, c)
	}
	if p <= 0 {
		delete(s.prices, c)
		return fmt.Errorf("%w: %v", ErrInvalidPrice, p)
	}
	s.prices[c] = p

	logrus.WithFields(logrus.Fields{
		"category": c,
		"price":    p,
	}).Debug("price set")
	return nil
}

// Allocation returns the current shares. The returned value is a snapshot.
func (s *Session) Allocation() allocation.Allocation {
	return s.alloc
}

// SetShare sets the percentage of c and lets the other unlocked meats
// absorb the difference. Editing a locked meat is silently ignored.
func (s *Session) SetShare(c meat.Category, v float64) error {
	if !s.IsSelected(c) {
		return fmt.Errorf("%w: %s", ErrNotSelected, c)
	}
	s.alloc = s.alloc.SetValue(c, v)

	logrus.WithFields(logrus.Fields{
		"category": c,
		"value":    v,
		"total":    s.alloc.Total(),
	}).Debug("share set")
	return nil
}

// ToggleLock locks or unlocks the share of c.
func (s *Session) ToggleLock(c meat.Category) error {
	if !s.IsSelected(c) {
		return fmt.Errorf("%w: %s", ErrNotSelected, c)
	}
	s.alloc = s.alloc.ToggleLock(c)

	logrus.WithFields(logrus.Fields{
		"category": c,
		"locked":   s.alloc.Locked(c),
		"total":    s.alloc.Total(),
	}).Debug("lock toggled")
	return nil
}

// Normalize rescales the shares so they add up to exactly 100%.
func (s *Session) Normalize() {
	s.alloc = s.alloc.Normalize()
	logrus.WithField("total", s.alloc.Total()).Debug("shares normalized")
}

// Check returns the reason the current step cannot be left, or nil.
func (s *Session) Check() error {
	switch s.step {
	case StepGuests:
		if s.Guests() <= 0 {
			return ErrNoGuests
		}
		if len(s.selected) == 0 {
			return ErrNoCategories
		}
	case StepPrices:
		for _, c := range s.selected {
			if p, ok := s.prices[c]; !ok || p <= 0 {
				return fmt.Errorf("%w: %s", ErrMissingPrice, c.DisplayName())
			}
		}
	case StepShares:
		if !s.alloc.Balanced(allocation.DefaultTolerance) {
			return fmt.Errorf("%w: total is %.1f%%", ErrSharesUnbalanced, s.alloc.Total())
		}
	case StepResult:
		return ErrLastStep
	}
	return nil
}

// Advance moves to the next step if the current one is complete.
func (s *Session) Advance() error {
	if err := s.Check(); err != nil {
		return err
	}
	s.step++

	logrus.WithField("step", s.step).Debug("advanced")
	return nil
}

// Back moves to the previous step. It never goes before the first one.
func (s *Session) Back() {
	if s.step > StepGuests {
		s.step--
	}
	logrus.WithField("step", s.step).Debug("went back")
}

// GramsPerPerson returns the grams each guest eats at the current appetite.
func (s *Session) GramsPerPerson() float64 {
	if g, ok := s.opts.GramsPerPerson[s.appetite]; ok && g > 0 {
		return g
	}
	return plan.DefaultGramsPerPerson()[s.appetite]
}

// Summary projects the current state into a cost and weight breakdown.
// It can be called at any step; the result step only guarantees the data
// is complete.
func (s *Session) Summary() plan.Summary {
	return plan.Project(plan.Input{
		Guests:         s.Guests(),
		Appetite:       s.appetite,
		GramsPerPerson: s.GramsPerPerson(),
		Selected:       s.Selected(),
		Shares:         s.alloc.Shares(),
		Prices:         s.Prices(),
	})
}

func (s *Session) resetAllocation() {
	s.alloc = allocation.Initialize(s.opts.Catalog, s.selected, s.opts.DefaultWeights)

	logrus.WithFields(logrus.Fields{
		"selected": s.selected,
		"total":    s.alloc.Total(),
	}).Debug("allocation reinitialized")
}

func (s *Session) inCatalog(c meat.Category) bool {
	for _, k := range s.opts.Catalog {
		if k == c {
			return true
		}
	}
	return false
}

func sameCategories(a, b []meat.Category) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
