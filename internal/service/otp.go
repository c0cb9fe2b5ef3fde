package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

const defaultCodeLength = 6

var _ model.CodeGenerator = (*DigitCodeGenerator)(nil)

// DigitCodeGenerator produces fixed-length numeric codes from crypto/rand.
type DigitCodeGenerator struct {
	length int
	limit  *big.Int
}

func NewDigitCodeGenerator(length int) *DigitCodeGenerator {
	if length <= 0 {
		length = defaultCodeLength
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	return &DigitCodeGenerator{length: length, limit: limit}
}

func (g *DigitCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.limit)
	if err != nil {
		return "", fmt.Errorf("failed to read random code: %w", err)
	}
	return fmt.Sprintf("%0*d", g.length, n.Int64()), nil
}
