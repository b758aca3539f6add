package keys

import (
	"regexp"
	"testing"

	"github.com/shoenig/test/must"
)

func TestDerive_Plain(t *testing.T) {
	key, err := Derive(AlgorithmPlain, "alice", "s3cret")
	must.NoError(t, err)
	must.Eq(t, "s3cret", key)

	// The zero value behaves like plain for configs that never set it.
	key, err = Derive("", "alice", "s3cret")
	must.NoError(t, err)
	must.Eq(t, "s3cret", key)
}

func TestDerive_XXH128(t *testing.T) {
	key, err := Derive(AlgorithmXXH128, "alice", "s3cret")
	must.NoError(t, err)
	must.RegexMatch(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), key)

	// Deterministic, and sensitive to both inputs.
	again, err := Derive(AlgorithmXXH128, "alice", "s3cret")
	must.NoError(t, err)
	must.Eq(t, key, again)

	other, err := Derive(AlgorithmXXH128, "bob", "s3cret")
	must.NoError(t, err)
	must.NotEq(t, key, other)

	other, err = Derive(AlgorithmXXH128, "alice", "different")
	must.NoError(t, err)
	must.NotEq(t, key, other)
}

func TestDerive_Unknown(t *testing.T) {
	_, err := Derive("md5", "alice", "s3cret")
	must.Error(t, err)
}
