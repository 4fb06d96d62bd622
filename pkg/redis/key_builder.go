package redis

import (
	"fmt"
	"strings"
)

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: "hackadmin:" + prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyDashboardStats is per subject: department admins see scoped totals
func (kb *KeyBuilder) KeyDashboardStats(subject string) string {
	return kb.BuildKey(fmt.Sprintf(KeyDashboardStats, subject))
}

func (kb *KeyBuilder) KeyRegistrationStatus() string {
	return kb.BuildKey(KeyRegistrationStatus)
}

func (kb *KeyBuilder) KeyJudges() string {
	return kb.BuildKey(KeyJudges)
}

func (kb *KeyBuilder) KeyParticipantStats() string {
	return kb.BuildKey(KeyParticipantStats)
}

func (kb *KeyBuilder) KeyPanels(departments []string) string {
	scope := strings.Join(departments, ",")
	if scope == "" {
		scope = "all"
	}
	return kb.BuildKey(fmt.Sprintf(KeyPanels, scope))
}

// PatternPanels matches every cached panel listing
func (kb *KeyBuilder) PatternPanels() string {
	return kb.BuildKey("console:panels:*")
}

// PatternDashboard matches every cached dashboard
func (kb *KeyBuilder) PatternDashboard() string {
	return kb.BuildKey("console:dashboard:*")
}
