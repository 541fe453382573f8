package assets

import (
	_ "embed"
)

// DefaultGuardrailYAML contains the embedded default guardrail rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// IndexHTML contains the embedded single-page web UI.
//
//go:embed web/index.html
var IndexHTML []byte
