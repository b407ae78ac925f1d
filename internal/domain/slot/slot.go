package slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/dinekit/internal/domain"
)

// DefaultLayout renders a wall-clock time as "9:00 AM".
const DefaultLayout = "3:04 PM"

// clockLayouts are accepted when parsing wall-clock input.
var clockLayouts = []string{"15:04", "3:04 PM", "03:04 PM", "3:04PM", "15:04:05"}

// Formatter renders a slot time as its display label.
// The same Formatter labels slots and normalizes blackout/popular sets.
type Formatter func(time.Time) string

// DefaultFormatter formats with DefaultLayout.
func DefaultFormatter(t time.Time) string { return t.Format(DefaultLayout) }

// TimeSlot is one bookable start time. It is a pure projection of the generator input.
type TimeSlot struct {
	Time        time.Time `json:"-"`
	Label       string    `json:"label"`
	IsAvailable bool      `json:"is_available"`
	IsPopular   bool      `json:"is_popular"`
}

// Labels is a set of display labels.
type Labels map[string]struct{}

// Has reports whether label is in the set.
func (l Labels) Has(label string) bool {
	_, ok := l[label]
	return ok
}

// Generator produces time slots with a single shared Formatter.
type Generator struct {
	format Formatter
}

// Option configures a Generator.
type Option func(*Generator)

// WithFormatter overrides the label formatter.
func WithFormatter(f Formatter) Option {
	return func(g *Generator) {
		if f != nil {
			g.format = f
		}
	}
}

// NewGenerator creates a Generator using DefaultFormatter unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{format: DefaultFormatter}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Label formats t with the generator's formatter.
func (g *Generator) Label(t time.Time) string { return g.format(t) }

// Labels parses wall-clock strings in any accepted layout and re-labels them
// with the generator's formatter, so "09:00 AM", "9:00 AM" and "09:00" all match one slot.
func (g *Generator) Labels(clocks ...string) (Labels, error) {
	out := make(Labels, len(clocks))
	for _, c := range clocks {
		t, err := ParseClock(c)
		if err != nil {
			return nil, err
		}
		out[g.Label(t)] = struct{}{}
	}
	return out, nil
}

// ParseClock parses a wall-clock time such as "10:00", "22:30" or "9:00 PM".
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized clock time %q", domain.ErrInvalidSlotRequest, s)
}

// Generate returns slots from open (inclusive) stepping by increment, stopping
// strictly before closing. open >= closing yields an empty sequence.
// Availability and popularity are looked up by the slot's label.
func (g *Generator) Generate(
	open, closing time.Time, increment time.Duration, unavailable, popular Labels,
) ([]TimeSlot, error) {
	if increment <= 0 {
		return nil, fmt.Errorf("%w: increment must be positive, got %s", domain.ErrInvalidSlotRequest, increment)
	}
	slots := make([]TimeSlot, 0)
	for t := open; t.Before(closing); t = t.Add(increment) {
		label := g.Label(t)
		slots = append(slots, TimeSlot{
			Time:        t,
			Label:       label,
			IsAvailable: !unavailable.Has(label),
			IsPopular:   popular.Has(label),
		})
	}
	return slots, nil
}

// Request is wall-clock generator input as it arrives from configuration or a view.
type Request struct {
	Open             string
	Close            string
	IncrementMinutes int
	Unavailable      []string
	Popular          []string
}

// GenerateClock parses a Request and generates its slots.
func (g *Generator) GenerateClock(req Request) ([]TimeSlot, error) {
	open, err := ParseClock(req.Open)
	if err != nil {
		return nil, err
	}
	closing, err := ParseClock(req.Close)
	if err != nil {
		return nil, err
	}
	unavailable, err := g.Labels(req.Unavailable...)
	if err != nil {
		return nil, fmt.Errorf("unavailable: %w", err)
	}
	popular, err := g.Labels(req.Popular...)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return g.Generate(open, closing, time.Duration(req.IncrementMinutes)*time.Minute, unavailable, popular)
}
