package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"hackadmin/internal/session"
)

// Profile is the CLI's saved login, stored as YAML in the user's home
type Profile struct {
	BaseURL string          `yaml:"base_url"`
	Session session.Context `yaml:"session"`
	SavedAt time.Time       `yaml:"saved_at,omitempty"`
}

// DefaultProfilePath returns ~/.hackadmin.yaml
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hackadmin.yaml"
	}
	return filepath.Join(home, ".hackadmin.yaml")
}

// LoadProfile reads a profile. A missing file yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// Save writes the profile readable by the owner only; it holds a token
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// LoggedIn reports whether the profile holds an unexpired token
func (p *Profile) LoggedIn(now time.Time) bool {
	return p.Session.Token != "" && !p.Session.Expired(now)
}

// Clear forgets the session but keeps the backend URL
func (p *Profile) Clear() {
	p.Session = session.Context{}
	p.SavedAt = time.Time{}
}
