// Package keys derives the per-user credential a node's proxy back-ends see.
// The panel never ships the raw account secret to nodes; it ships a derived
// key, so rotating the derivation algorithm rotates every credential at once.
package keys

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Algorithm selects the derivation applied to the account secret.
type Algorithm string

const (
	// AlgorithmPlain passes the secret through unchanged. Kept for
	// installations migrated from panels that stored proxy keys directly.
	AlgorithmPlain Algorithm = "plain"

	// AlgorithmXXH128 hashes username and secret into a UUID-shaped key.
	AlgorithmXXH128 Algorithm = "xxh128"
)

// Derive computes the node-visible key for a user.
func Derive(algorithm Algorithm, username, secret string) (string, error) {
	switch algorithm {
	case AlgorithmPlain, "":
		return secret, nil
	case AlgorithmXXH128:
		sum := xxh3.Hash128([]byte(username + ":" + secret)).Bytes()
		// Proxy back-ends expect UUID-shaped credentials.
		return fmt.Sprintf("%x-%x-%x-%x-%x",
			sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16]), nil
	default:
		return "", fmt.Errorf("unknown key algorithm %q", algorithm)
	}
}
