package inquiry

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var slotRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CatalogService is one bookable service.
type CatalogService struct {
	ID       string            `yaml:"id"`
	Name     map[string]string `yaml:"name"`
	Duration time.Duration     `yaml:"duration"`
}

// Stat is a number shown in the "about" section, counted up from zero.
type Stat struct {
	Key    string `yaml:"key"`
	Target int    `yaml:"target"`
}

// Catalog lists what can be booked and the figures shown on the page.
type Catalog struct {
	Services []CatalogService `yaml:"services"`
	Slots    []string         `yaml:"slots"`
	Stats    []Stat           `yaml:"stats"`
}

// ParseCatalog decodes and checks a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a catalog file. An empty path returns the embedded
// default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is broken.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	if len(c.Services) == 0 {
		return fmt.Errorf("%w: no services", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Services))
	for i, s := range c.Services {
		if s.ID == "" {
			return fmt.Errorf("%w: service #%d has no id", ErrInvalidCatalog, i+1)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate service %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = true
	}
	for _, slot := range c.Slots {
		if !slotRegex.MatchString(slot) {
			return fmt.Errorf("%w: time slot %q is not HH:MM", ErrInvalidCatalog, slot)
		}
	}
	for _, st := range c.Stats {
		if st.Key == "" || st.Target < 0 {
			return fmt.Errorf("%w: bad stat %q", ErrInvalidCatalog, st.Key)
		}
	}
	return nil
}

// ServiceIDs lists the service identifiers in catalog order.
func (c *Catalog) ServiceIDs() []string {
	ids := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// ServiceName returns the service name in lang, then in the site's
// default language, then the id itself.
func (c *Catalog) ServiceName(id, lang string) string {
	for _, s := range c.Services {
		if s.ID != id {
			continue
		}
		if name, ok := s.Name[lang]; ok {
			return name
		}
		if name, ok := s.Name[DefaultLanguage]; ok {
			return name
		}
		return id
	}
	return id
}
