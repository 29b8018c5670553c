// Package nvidia implements the OAuth2 authorization-code login flow for the
// NVIDIA GeForce NOW identity provider. It handles PKCE (Proof Key for Code
// Exchange) code generation, authorization URL assembly, and the loopback
// callback listener that captures the browser redirect carrying the
// authorization code. Token exchange and storage happen elsewhere.
package nvidia

import (
	"crypto/rand"
	"fmt"

	"github.com/opennow-dev/opennow-rewrite/internal/digest"
	"github.com/opennow-dev/opennow-rewrite/internal/urlcodec"
)

// PKCECodes holds a PKCE code verifier and its derived S256 challenge.
// The pair is generated together per login attempt and must never be mixed
// across sessions: the challenge is always exactly derivable from the verifier.
type PKCECodes struct {
	// CodeVerifier is the secret random string revealed at token-exchange time.
	CodeVerifier string
	// CodeChallenge is base64url(SHA-256(CodeVerifier)) without padding.
	CodeChallenge string
}

const (
	// verifierAlphabet is the 62-character alphanumeric set the provider accepts.
	verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// verifierLength comfortably clears the RFC 7636 minimum of 43 characters.
	verifierLength = 64
)

// GeneratePKCECodes generates a new pair of PKCE codes. It creates a
// cryptographically random code verifier and its corresponding SHA-256 code
// challenge, as specified in RFC 7636. A failing random source is a defect of
// the environment, not a recoverable condition, so the error is surfaced
// rather than degraded around.
func GeneratePKCECodes() (*PKCECodes, error) {
	codeVerifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	return &PKCECodes{
		CodeVerifier:  codeVerifier,
		CodeChallenge: generateCodeChallenge(codeVerifier),
	}, nil
}

// generateCodeVerifier draws verifierLength characters uniformly from the
// alphanumeric alphabet using crypto/rand.
func generateCodeVerifier() (string, error) {
	// 248 is the largest multiple of 62 that fits in a byte; rejecting bytes
	// above it keeps the modulo draw uniform.
	const limit = 248

	out := make([]byte, 0, verifierLength)
	buf := make([]byte, verifierLength)
	for len(out) < verifierLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, verifierAlphabet[int(b)%len(verifierAlphabet)])
			if len(out) == verifierLength {
				break
			}
		}
	}
	return string(out), nil
}

// generateCodeChallenge creates a code challenge from a given code verifier
// by hashing it with SHA-256 and base64url-encoding the digest without
// padding (the S256 method).
func generateCodeChallenge(codeVerifier string) string {
	hash := digest.Sum256([]byte(codeVerifier))
	return urlcodec.Base64URL(hash[:])
}
