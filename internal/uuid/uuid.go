// Package uuid hides ID generation behind a small interface so
// repositories can take a deterministic generator in tests.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers for stored entities
type Generator interface {
	New() string
}

// GoogleUUIDGenerator is the production Generator, backed by random
// (v4) UUIDs.
type GoogleUUIDGenerator struct{}

// New returns a fresh UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
