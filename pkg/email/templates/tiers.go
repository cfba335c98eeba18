package templates

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var tiersYAML []byte

type tierCatalog struct {
	Default string `yaml:"default"`
	Tiers   []struct {
		Name     string   `yaml:"name"`
		Aliases  []string `yaml:"aliases"`
		Benefits []string `yaml:"benefits"`
	} `yaml:"tiers"`
}

var (
	tierBenefits   map[string][]string
	defaultBenefit []string
)

func init() {
	benefits, def, err := parseTiers(tiersYAML)
	if err != nil {
		panic(err)
	}
	tierBenefits, defaultBenefit = benefits, def
}

func parseTiers(raw []byte) (map[string][]string, []string, error) {
	var cat tierCatalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, nil, fmt.Errorf("templates: parse tiers: %w", err)
	}

	out := make(map[string][]string)
	for _, t := range cat.Tiers {
		out[strings.ToLower(t.Name)] = t.Benefits
		for _, a := range t.Aliases {
			out[strings.ToLower(a)] = t.Benefits
		}
	}

	def, ok := out[strings.ToLower(cat.Default)]
	if !ok {
		return nil, nil, fmt.Errorf("templates: default tier %q not defined", cat.Default)
	}
	return out, def, nil
}

// TierBenefits returns the benefit list for tierName.
func TierBenefits(tierName string) []string {
	if b, ok := tierBenefits[strings.ToLower(strings.TrimSpace(tierName))]; ok {
		return b
	}
	return defaultBenefit
}
