package utils

import "github.com/google/uuid"

// UUIDGenerator issues transaction nonces and trace ids. Ids are UUIDv7 so
// nonces of one sender sort by issue time.
type UUIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7}
}

// Generate falls back to a random UUIDv4 when no v7 id can be made.
func (g *UUIDGenerator) Generate() string {
	if id, err := g.newV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
