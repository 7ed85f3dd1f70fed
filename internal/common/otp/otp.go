package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_otp.go github.com/settleco/accord/internal/common/otp Generator

// Generator produces one-time join codes for sessions
type Generator interface {
	NewCode() (string, error)
}

// codeDigits is the length of a join code
const codeDigits = 6

// DefaultGenerator implements Generator using crypto/rand
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewCode returns a zero-padded 6-digit numeric code
func (g *DefaultGenerator) NewCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate join code: %w", err)
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
