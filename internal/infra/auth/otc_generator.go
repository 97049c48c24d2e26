package auth

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"

	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // codes fall in [codeMin, codeMin+codeSpan)
)

// otcGenerator draws six-digit login codes from crypto/rand.
type otcGenerator struct {
	random io.Reader
}

// NewOTCGenerator returns a CodeGenerator backed by crypto/rand.
func NewOTCGenerator() service.CodeGenerator {
	return &otcGenerator{random: rand.Reader}
}

// Generate returns a code uniform over [100000, 999999]. rand.Int rejects
// out-of-range samples, so there is no modulo bias.
func (g *otcGenerator) Generate() (string, error) {
	n, err := rand.Int(g.random, big.NewInt(codeSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random code")
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
