package fortune

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/fortunecookie/pkg/random"
)

// SpecialChance is the probability of the special message.
const SpecialChance = 0.01

// KeyGenerator picks the catalog key for a request.
type KeyGenerator struct {
	rng          random.Source
	now          func() time.Time
	modeCalendar bool
}

// KeyOption configures a KeyGenerator.
type KeyOption func(*KeyGenerator)

// WithRandom sets the random source. It must be safe for concurrent use.
func WithRandom(src random.Source) KeyOption {
	return func(g *KeyGenerator) {
		if src != nil {
			g.rng = src
		}
	}
}

// WithClock overrides time.Now for the calendar check.
func WithClock(now func() time.Time) KeyOption {
	return func(g *KeyGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithModeCalendarKeys namespaces the Monday and Friday keys by mode
// ("fortune.joke.monday" instead of "fortune.monday").
func WithModeCalendarKeys() KeyOption {
	return func(g *KeyGenerator) { g.modeCalendar = true }
}

// NewKeyGenerator creates a generator using the process-wide random source.
func NewKeyGenerator(opts ...KeyOption) *KeyGenerator {
	g := &KeyGenerator{rng: random.Default(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns, first match wins: the special key with SpecialChance, the
// Monday/Friday key on those days, or "<namespace>.<n>" with n in [1, FortunesCount].
func (g *KeyGenerator) Generate(cfg Config) string {
	ns := cfg.Mode.Namespace()

	if g.rng.Float64() < SpecialChance {
		return ns + ".special"
	}

	calendarNS := ModeDefault.Namespace()
	if g.modeCalendar {
		calendarNS = ns
	}
	switch g.now().Weekday() {
	case time.Monday:
		return calendarNS + ".monday"
	case time.Friday:
		return calendarNS + ".friday"
	}

	count := max(cfg.FortunesCount, 1)
	return ns + "." + strconv.Itoa(g.rng.IntN(count)+1)
}
