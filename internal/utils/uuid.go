package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers used to tag every vault
// operation in the logs (op_id field).
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
