// Package security implements the deny-pattern guardrail and the safe-mode allow-list.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/deskcommander/assets"
	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/pkg/filesystem"
	"github.com/doeshing/deskcommander/internal/ports"
)

// Guardrail implements the SecurityService port.
//
// Matching is case-sensitive substring/regex matching against a fixed
// list; the first matching pattern determines the denial reason. This is
// advisory filtering, not a security boundary.
type Guardrail struct {
	patterns  []compiledPattern
	allowList []string
	safePipes []string
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule domain.DenyPattern
}

// PolicyDocument is the YAML schema root for ~/.deskcommander/guardrail.yaml.
type PolicyDocument struct {
	Rules struct {
		DenyPatterns []domain.DenyPattern `yaml:"deny_patterns"`
		AllowList    []string             `yaml:"safe_mode_allow_list"`
		SafePipes    []string             `yaml:"safe_pipes"`
	} `yaml:"rules"`
}

// NewGuardrail loads guardrail rules from disk (or embedded defaults when missing).
func NewGuardrail(path string) (*Guardrail, error) {
	doc, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledPattern, 0, len(doc.Rules.DenyPatterns))
	for _, rule := range doc.Rules.DenyPatterns {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile deny pattern %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledPattern{re: re, rule: rule})
	}

	return &Guardrail{
		patterns:  compiled,
		allowList: doc.Rules.AllowList,
		safePipes: doc.Rules.SafePipes,
	}, nil
}

// Evaluate implements ports.SecurityService.
func (g *Guardrail) Evaluate(command string) domain.Verdict {
	command = strings.TrimSpace(command)
	risk := estimateRisk(command)
	for _, pattern := range g.patterns {
		if pattern.re.MatchString(command) {
			return domain.Deny(pattern.rule, risk)
		}
	}
	return domain.Allow(risk)
}

// SafeModeAllows reports whether the command stays within the read-only
// allow-list. Allow-listed commands combined with shell metacharacters are
// rejected unless every construct is one of the safe pipes.
func (g *Guardrail) SafeModeAllows(command string) bool {
	command = strings.TrimSpace(strings.ToLower(command))
	if command == "" {
		return false
	}
	for _, safe := range g.allowList {
		if safe == "" {
			continue
		}
		if command == safe || strings.HasPrefix(command, safe+" ") {
			if !containsShellConstructs(command) {
				return true
			}
			return g.onlySafePipes(command)
		}
	}
	return false
}

func containsShellConstructs(command string) bool {
	for _, meta := range []string{"|", ">", "<", "&&", ";", "`", "$("} {
		if strings.Contains(command, meta) {
			return true
		}
	}
	return false
}

func (g *Guardrail) onlySafePipes(command string) bool {
	for _, pipe := range g.safePipes {
		if strings.Contains(command, pipe) {
			return true
		}
	}
	return false
}

// estimateRisk gives a coarse advisory rating shown alongside the command.
func estimateRisk(command string) domain.RiskEstimate {
	lower := strings.ToLower(command)
	for _, term := range []string{"rm", "delete", "sudo", "chmod", "chown", "format", "mkfs"} {
		if strings.Contains(lower, term) {
			return domain.RiskHigh
		}
	}
	return domain.RiskLow
}

func loadRules(path string) (PolicyDocument, error) {
	var doc PolicyDocument
	path = resolveRulesPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to embedded defaults
		data = assets.DefaultGuardrailYAML
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return PolicyDocument{}, err
	}
	if len(doc.Rules.DenyPatterns) == 0 {
		var defaults PolicyDocument
		if err := yaml.Unmarshal(assets.DefaultGuardrailYAML, &defaults); err != nil {
			return PolicyDocument{}, err
		}
		doc.Rules.DenyPatterns = defaults.Rules.DenyPatterns
	}
	if len(doc.Rules.AllowList) == 0 {
		var defaults PolicyDocument
		if err := yaml.Unmarshal(assets.DefaultGuardrailYAML, &defaults); err == nil {
			doc.Rules.AllowList = defaults.Rules.AllowList
			if len(doc.Rules.SafePipes) == 0 {
				doc.Rules.SafePipes = defaults.Rules.SafePipes
			}
		}
	}
	if len(doc.Rules.SafePipes) == 0 {
		doc.Rules.SafePipes = defaultSafePipes()
	}
	return doc, nil
}

func defaultSafePipes() []string {
	return []string{"| grep", "| egrep", "| fgrep", "| less", "| more", "| head", "| tail", "| sort", "| uniq", "| wc"}
}

func resolveRulesPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.UserHomeDir(), ".deskcommander", "guardrail.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// LoadPolicyDocument returns the raw YAML structure.
func LoadPolicyDocument(path string) (PolicyDocument, error) {
	return loadRules(path)
}

// SavePolicyDocument writes the YAML structure to disk.
func SavePolicyDocument(path string, doc PolicyDocument) error {
	path = resolveRulesPath(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var _ ports.SecurityService = (*Guardrail)(nil)
