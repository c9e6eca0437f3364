// Package content defines the read-only portfolio data rendered by the page
// and served to remote viewers.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid portfolio")

//go:embed portfolio.yaml
var defaultYAML []byte

// Portfolio is the complete data object behind the page.
type Portfolio struct {
	Personal     Personal      `yaml:"personal" json:"personal"`
	Stats        []Stat        `yaml:"stats" json:"stats"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Services     []Service     `yaml:"services" json:"services"`
	Experience   []Experience  `yaml:"experience" json:"experience"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Contact      []Contact     `yaml:"contact" json:"contact"`
	Footer       string        `yaml:"footer" json:"footer"`
}

// Personal holds the hero banner and about text.
type Personal struct {
	Name         string   `yaml:"name" json:"name"`
	Greeting     string   `yaml:"greeting" json:"greeting"`
	Title        string   `yaml:"title" json:"title"`
	Headline     string   `yaml:"headline" json:"headline"`
	Tagline      string   `yaml:"tagline" json:"tagline"`
	About        string   `yaml:"about" json:"about"`
	Availability string   `yaml:"availability" json:"availability"`
	TechStack    []string `yaml:"tech_stack" json:"techStack"`
	// QuickChat is the link behind the quick-chat button. Empty hides it.
	QuickChat string `yaml:"quick_chat" json:"quickChat,omitempty"`
}

// Stat is one animated number in the stats grid.
type Stat struct {
	Value  float64 `yaml:"value" json:"value"`
	Suffix string  `yaml:"suffix" json:"suffix"`
	Label  string  `yaml:"label" json:"label"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Icon        string   `yaml:"icon" json:"icon"`
	Tech        []string `yaml:"tech" json:"tech"`
	Impact      string   `yaml:"impact" json:"impact"`
}

type Service struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Icon        string   `yaml:"icon" json:"icon"`
	Features    []string `yaml:"features" json:"features"`
}

type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Role         string   `yaml:"role" json:"role"`
	Period       string   `yaml:"period" json:"period"`
	Description  string   `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

type Testimonial struct {
	Name    string `yaml:"name" json:"name"`
	Role    string `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// Contact is one channel in the contact grid.
type Contact struct {
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value" json:"value"`
	Link  string `yaml:"link" json:"link"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Default returns the built-in portfolio.
func Default() *Portfolio {
	p, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded portfolio: %v", err))
	}
	return p
}

// Load reads and validates a portfolio file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, falling back to Default when path is empty or the
// file does not exist.
func LoadOrDefault(path string) (*Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	p, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

// Parse decodes YAML and validates the result.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports the first structural problem in p.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Personal.Name) == "" {
		return fmt.Errorf("%w: personal.name is required", ErrInvalid)
	}
	for i, s := range p.Stats {
		if s.Value < 0 {
			return fmt.Errorf("%w: stats[%d].value must not be negative", ErrInvalid, i)
		}
		if s.Label == "" {
			return fmt.Errorf("%w: stats[%d].label is required", ErrInvalid, i)
		}
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			return fmt.Errorf("%w: projects[%d].title is required", ErrInvalid, i)
		}
	}
	for i, s := range p.Services {
		if s.Title == "" {
			return fmt.Errorf("%w: services[%d].title is required", ErrInvalid, i)
		}
	}
	for i, e := range p.Experience {
		if e.Company == "" {
			return fmt.Errorf("%w: experience[%d].company is required", ErrInvalid, i)
		}
	}
	for i, c := range p.Contact {
		if c.Type == "" {
			return fmt.Errorf("%w: contact[%d].type is required", ErrInvalid, i)
		}
	}
	return nil
}
