package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for trace ids and JWT ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// New returns a version 7 UUID, falling back to version 4 if the clock
// source fails.
func (g *UUIDGenerator) New() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}

// Generate returns [UUIDGenerator.New] as a string.
func (g *UUIDGenerator) Generate() string {
	return g.New().String()
}
