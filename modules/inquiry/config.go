package inquiry

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the inquiry module settings.
type Config struct {
	BusinessName string `env:"BUSINESS_NAME" envDefault:"Studio Bella"`

	// Inbox receives submissions by e-mail. Empty means submissions are
	// only simulated.
	Inbox string `env:"INQUIRY_INBOX"`

	SubmitDelay     time.Duration `env:"INQUIRY_SUBMIT_DELAY" envDefault:"2s"`
	SuccessDuration time.Duration `env:"INQUIRY_SUCCESS_DURATION" envDefault:"5s"`

	Timezone       string   `env:"INQUIRY_TIMEZONE" envDefault:"America/Sao_Paulo"`
	ClosedWeekdays []string `env:"INQUIRY_CLOSED_WEEKDAYS" envSeparator:"," envDefault:"sunday"`

	CatalogPath string `env:"INQUIRY_CATALOG_PATH"`

	// HeroImage is loaded lazily once the hero scrolls into view. Empty
	// renders the hero without an image.
	HeroImage string `env:"INQUIRY_HERO_IMAGE"`

	RateLimit    int           `env:"INQUIRY_RATE_LIMIT" envDefault:"5"`
	RateInterval time.Duration `env:"INQUIRY_RATE_INTERVAL" envDefault:"1m"`

	CounterTick time.Duration `env:"INQUIRY_COUNTER_TICK" envDefault:"16ms"`
}

// Location loads the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Weekdays parses ClosedWeekdays. Names are English, case-insensitive,
// full or three-letter.
func (c Config) Weekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.ClosedWeekdays))
	for _, name := range c.ClosedWeekdays {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		days = append(days, day)
	}
	return days, nil
}

var weekdayNames = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		m[name] = d
		m[name[:3]] = d
	}
	return m
}()

// ValidatorOptions turns the config into Validator options.
func (c Config) ValidatorOptions() ([]Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	days, err := c.Weekdays()
	if err != nil {
		return nil, err
	}
	return []Option{WithLocation(loc), WithClosedWeekdays(days...)}, nil
}
