package diag

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadKnowledgeBase reads a YAML rules file and returns a validated
// knowledge base. A loaded file replaces the compiled-in tables wholesale
// rather than merging with them; only the fallback section is mandatory.
// Prefixes are uppercased and keywords lowercased on load so matching
// behaves the same regardless of file casing.
func LoadKnowledgeBase(path string) (KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KnowledgeBase{}, fmt.Errorf("reading rules file: %w", err)
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return KnowledgeBase{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	kb.normalize()
	if err := kb.validate(); err != nil {
		return KnowledgeBase{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return kb, nil
}

func (kb *KnowledgeBase) normalize() {
	for i := range kb.FaultCodes {
		kb.FaultCodes[i].Prefix = strings.ToUpper(kb.FaultCodes[i].Prefix)
	}
	for i := range kb.Keywords {
		for j := range kb.Keywords[i].Keywords {
			kb.Keywords[i].Keywords[j] = strings.ToLower(kb.Keywords[i].Keywords[j])
		}
	}
}

func (kb KnowledgeBase) validate() error {
	for i, rule := range kb.FaultCodes {
		if strings.TrimSpace(rule.Prefix) == "" {
			return fmt.Errorf("fault_codes[%d]: prefix is required", i)
		}
		if len(rule.Candidates) == 0 {
			return fmt.Errorf("fault_codes[%d] (%s): at least one candidate is required", i, rule.Prefix)
		}
		for j, c := range rule.Candidates {
			if strings.TrimSpace(c.Part) == "" {
				return fmt.Errorf("fault_codes[%d].candidates[%d]: part is required", i, j)
			}
		}
	}

	for i, hint := range kb.Keywords {
		if len(hint.Keywords) == 0 {
			return fmt.Errorf("keywords[%d]: at least one keyword is required", i)
		}
		for j, k := range hint.Keywords {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("keywords[%d].keywords[%d]: keyword must not be blank", i, j)
			}
		}
		if strings.TrimSpace(hint.Part) == "" {
			return fmt.Errorf("keywords[%d]: part is required", i)
		}
	}

	if len(kb.Fallback) == 0 {
		return fmt.Errorf("fallback: at least one candidate is required")
	}
	for i, c := range kb.Fallback {
		if strings.TrimSpace(c.Part) == "" {
			return fmt.Errorf("fallback[%d]: part is required", i)
		}
	}

	return nil
}
