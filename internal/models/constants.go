package models

// ============================================================================
// VALIDATION DEFAULTS
// ============================================================================

// Title length bounds, counted in runes. Overridable through config.
const (
	DefaultTitleMinLength = 3
	DefaultTitleMaxLength = 15
)

// ============================================================================
// STORE DEFAULTS
// ============================================================================

// DefaultMaxRetries is how many times a busy transaction is attempted
const DefaultMaxRetries = 5
