// Package keystore provides storage and management of named keystream profiles
package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Profile is a saved keystream generation run: the configuration that
// produced it and the captured bits, so a stream can be reused for
// decryption later.
type Profile struct {
	Name      string    `json:"name"`
	Seed      string    `json:"seed"`
	Taps      []int     `json:"taps"`
	Width     int       `json:"width"`
	KeyStream string    `json:"key_stream"`
	Verified  bool      `json:"verified"` // taps confirmed primitive by search
	Created   time.Time `json:"created"`
}

// Store manages keystream profiles as individual JSON files in a
// directory.
type Store struct {
	storePath string
}

// NewStore opens (creating if needed) a profile store at the given
// directory.
func NewStore(storePath string) (*Store, error) {
	if err := os.MkdirAll(storePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &Store{storePath: storePath}, nil
}

// Save writes a profile, refusing to overwrite an existing one of the
// same name.
func (s *Store) Save(profile *Profile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if profile.KeyStream == "" {
		return fmt.Errorf("profile has no keystream")
	}

	path := s.profilePath(profile.Name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("profile '%s' already exists", profile.Name)
	}

	if profile.Created.IsZero() {
		profile.Created = time.Now().UTC()
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

// Load reads a profile by name.
func (s *Store) Load(name string) (*Profile, error) {
	data, err := os.ReadFile(s.profilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile '%s' not found", name)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile '%s': %w", name, err)
	}

	return profile, nil
}

// List returns all stored profiles sorted by name.
func (s *Store) List() ([]*Profile, error) {
	entries, err := os.ReadDir(s.storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	profiles := make([]*Profile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		profile, err := s.Load(name)
		if err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// Delete removes a profile by name.
func (s *Store) Delete(name string) error {
	path := s.profilePath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("profile '%s' not found", name)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.storePath, name+".json")
}
