package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout is the default timeout for command execution
	DefaultCommandTimeout = 30 * time.Second
	// DefaultStatusProbeTimeout bounds the Ollama reachability probe
	DefaultStatusProbeTimeout = 2 * time.Second
	// DefaultTagsTimeout bounds the model listing request
	DefaultTagsTimeout = 5 * time.Second
)

// Model defaults
const (
	// DefaultOllamaURL is the local generation endpoint
	DefaultOllamaURL = "http://localhost:11434/api/generate"
	// DefaultOllamaModel is the model used when none is configured
	DefaultOllamaModel = "gemma3:4b"
	// DefaultNumPredict caps completion length for command generation
	DefaultNumPredict = 100
	// DefaultTemperature is the sampling temperature for generation
	DefaultTemperature = 0.7
)

// History constants
const (
	// HistoryDisplayCap is the fixed size of the in-memory history ring
	HistoryDisplayCap = 10
	// HistoryOutputLimit truncates stored command output beyond this length
	HistoryOutputLimit = 500
	// DefaultHistoryLimit is the default number of persisted records to display
	DefaultHistoryLimit = 20
)

// Server defaults
const (
	// DefaultPort is the web UI listen port
	DefaultPort = 7860
	// DefaultBindAddr keeps the server loopback-only
	DefaultBindAddr = "127.0.0.1"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
