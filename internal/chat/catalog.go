package chat

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultCatalog []byte

// Scenario is a customer brief the user designs against.
type Scenario struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Difficulty   string   `yaml:"difficulty" json:"difficulty"`
	PartnerRole  string   `yaml:"partner_role" json:"partner_role"`
	Requirements []string `yaml:"requirements" json:"requirements"`
}

// Catalog is an immutable set of scenarios keyed by id.
type Catalog struct {
	order []Scenario
	byID  map[string]Scenario
}

type catalogFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadCatalog reads a YAML catalog from path, or the built-in catalog when
// path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scenarios: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog. Ids must be non-empty and unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}

	c := &Catalog{byID: make(map[string]Scenario, len(f.Scenarios))}
	for i, s := range f.Scenarios {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("scenario #%d: id required", i+1)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("scenario %q: duplicate id", s.ID)
		}
		if s.PartnerRole == "" {
			s.PartnerRole = DefaultRole
		}
		c.byID[s.ID] = s
		c.order = append(c.order, s)
	}
	return c, nil
}

func (c *Catalog) Get(id string) (Scenario, bool) {
	if c == nil {
		return Scenario{}, false
	}
	s, ok := c.byID[id]
	return s, ok
}

// List returns scenarios in file order.
func (c *Catalog) List() []Scenario {
	if c == nil {
		return nil
	}
	out := make([]Scenario, len(c.order))
	copy(out, c.order)
	return out
}
