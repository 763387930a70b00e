package generator

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// OwnerSecretLength is the number of characters in a minted owner secret.
const OwnerSecretLength = 32

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiased is the largest multiple of len(alphanumeric) that fits in a byte.
const maxUnbiased = 256 - 256%len(alphanumeric)

// Generator mints slugs and owner secrets from a random source.
type Generator struct {
	rand io.Reader
}

// Default draws from crypto/rand.
var Default = New(rand.Reader)

// New returns a Generator reading randomness from r.
func New(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Slug returns a random (version 4) UUID in canonical hyphenated form.
func (g *Generator) Slug() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return "", fmt.Errorf("failed to generate slug: %w", err)
	}
	return id.String(), nil
}

// OwnerSecret returns OwnerSecretLength characters drawn uniformly from [A-Za-z0-9].
func (g *Generator) OwnerSecret() (string, error) {
	return g.Alphanumeric(OwnerSecretLength)
}

// Alphanumeric returns length characters drawn uniformly from [A-Za-z0-9].
// Bytes that would bias the distribution are discarded.
func (g *Generator) Alphanumeric(length int) (string, error) {
	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(out) < length {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphanumeric[int(b)%len(alphanumeric)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
