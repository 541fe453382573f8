package domain

// RiskEstimate is a coarse advisory rating shown next to generated commands.
type RiskEstimate string

const (
	RiskLow  RiskEstimate = "LOW"
	RiskHigh RiskEstimate = "HIGH"
)

// DenyPattern identifies a known-dangerous command shape.
// The list is static configuration and never mutated at runtime.
type DenyPattern struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Message string `yaml:"message" json:"message"`
}

// Verdict is the Safety Filter outcome for a candidate command.
// The filter is advisory only; it is documented as incomplete and
// bypassable, not a security boundary.
type Verdict struct {
	Allowed        bool         `json:"allowed"`
	Reason         string       `json:"reason,omitempty"`
	Risk           RiskEstimate `json:"risk"`
	MatchedPattern string       `json:"matched_pattern,omitempty"`
}

// Allow builds an allowing verdict with the given risk estimate.
func Allow(risk RiskEstimate) Verdict {
	return Verdict{Allowed: true, Risk: risk}
}

// Deny builds a denying verdict naming the first matched pattern.
func Deny(pattern DenyPattern, risk RiskEstimate) Verdict {
	return Verdict{
		Allowed:        false,
		Reason:         pattern.Message,
		Risk:           risk,
		MatchedPattern: pattern.Pattern,
	}
}
