package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog holds the role→companies and company→keypoints lookup tables.
// It is immutable once built; accessors hand out copies.
type Catalog struct {
	roles     []string
	companies map[string][]string
	keypoints map[string]string
}

type fileFormat struct {
	Roles []struct {
		Name      string   `yaml:"name"`
		Companies []string `yaml:"companies"`
	} `yaml:"roles"`
	Keypoints map[string]string `yaml:"keypoints"`
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or the built-in one when path is empty
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("catalog: at least one role is required")
	}

	c := &Catalog{
		roles:     make([]string, 0, len(doc.Roles)),
		companies: make(map[string][]string, len(doc.Roles)),
		keypoints: make(map[string]string, len(doc.Keypoints)),
	}

	for _, r := range doc.Roles {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: role name is required")
		}
		if _, dup := c.companies[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate role %q", name)
		}

		companies := make([]string, 0, len(r.Companies))
		for _, company := range r.Companies {
			company = strings.TrimSpace(company)
			if company == "" || slices.Contains(companies, company) {
				continue
			}
			companies = append(companies, company)
		}

		c.roles = append(c.roles, name)
		c.companies[name] = companies
	}

	for company, text := range doc.Keypoints {
		c.keypoints[strings.TrimSpace(company)] = strings.TrimSpace(text)
	}

	return c, nil
}

// Roles returns role names in catalog order
func (c *Catalog) Roles() []string {
	return slices.Clone(c.roles)
}

// Companies returns the companies selectable for role, nil for unknown or empty roles
func (c *Catalog) Companies(role string) []string {
	companies, ok := c.companies[role]
	if !ok {
		return nil
	}
	return slices.Clone(companies)
}

func (c *Catalog) HasRole(role string) bool {
	_, ok := c.companies[role]
	return ok
}

// Offers reports whether company is selectable for role
func (c *Catalog) Offers(role, company string) bool {
	return slices.Contains(c.companies[role], company)
}

// Keypoints returns the descriptive text for company
func (c *Catalog) Keypoints(company string) (string, bool) {
	text, ok := c.keypoints[company]
	return text, ok
}
