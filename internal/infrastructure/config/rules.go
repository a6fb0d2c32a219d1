package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"eticket-service/pkg/eticket"
)

// ParserRules is the optional YAML file that tunes the parser.
//
//	first_name_whitelist: [SANTIAGO, ROSARIO]
//	location_tokens: [PANAMA, CARACAS]
//	amount_tolerance: "0.01"
type ParserRules struct {
	FirstNameWhitelist []string `yaml:"first_name_whitelist"`
	LocationTokens     []string `yaml:"location_tokens"`
	AmountTolerance    string   `yaml:"amount_tolerance"`
}

// LoadParserRules reads and validates a rules file
func LoadParserRules(path string) (*ParserRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules ParserRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	rules.setDefaults()
	if err := rules.validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}
	return &rules, nil
}

func (r *ParserRules) setDefaults() {
	if strings.TrimSpace(r.AmountTolerance) == "" {
		r.AmountTolerance = eticket.DefaultTolerance().String()
	}
}

func (r *ParserRules) validate() error {
	tolerance, err := decimal.NewFromString(r.AmountTolerance)
	if err != nil {
		return fmt.Errorf("amount_tolerance %q is not a number", r.AmountTolerance)
	}
	if tolerance.IsNegative() {
		return fmt.Errorf("amount_tolerance must be non-negative")
	}
	for i, token := range r.LocationTokens {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("location token at index %d is empty", i)
		}
	}
	return nil
}

// ParserConfig builds the parser configuration. Values from rules override
// the environment, which overrides the built-in defaults.
func (c *Config) ParserConfig(rules *ParserRules) eticket.Config {
	cfg := eticket.DefaultConfig()
	// A zero tolerance from the environment means unset; rules may still set 0.
	if !c.AmountTolerance.IsZero() {
		cfg.Tolerance = c.AmountTolerance
	}
	if len(c.FirstNameWhitelist) > 0 {
		cfg.FirstNameWhitelist = upperAll(c.FirstNameWhitelist)
	}

	if rules == nil {
		return cfg
	}
	if len(rules.FirstNameWhitelist) > 0 {
		cfg.FirstNameWhitelist = upperAll(rules.FirstNameWhitelist)
	}
	if len(rules.LocationTokens) > 0 {
		cfg.LocationTokens = upperAll(rules.LocationTokens)
	}
	if tolerance, err := decimal.NewFromString(rules.AmountTolerance); err == nil {
		cfg.Tolerance = tolerance
	}
	return cfg
}

func upperAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.ToUpper(strings.TrimSpace(item)))
	}
	return out
}
