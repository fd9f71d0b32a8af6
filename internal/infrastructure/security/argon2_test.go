package security

import (
	"strings"
	"testing"
)

// cheap parameters keep the tests fast
func testParams() Argon2Params {
	return Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestHashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	encoded, err := h.Hash("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("unexpected encoding %q", encoded)
	}
	if !h.Verify("correct horse", encoded) {
		t.Error("correct password rejected")
	}
	if h.Verify("wrong horse", encoded) {
		t.Error("wrong password accepted")
	}
	again, _ := h.Hash("correct horse")
	if again == encoded {
		t.Error("salts must differ between hashes")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h := NewArgon2Hasher(testParams())
	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$AAAA$AAAA", "$argon2id$v=19$garbage$AAAA$AAAA"} {
		if h.Verify("x", encoded) {
			t.Errorf("Verify accepted %q", encoded)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	weak := NewArgon2Hasher(testParams())
	encoded, _ := weak.Hash("pw")
	if weak.NeedsRehash(encoded) {
		t.Error("hash with current params should not need rehash")
	}
	stronger := testParams()
	stronger.Iterations = 2
	if !NewArgon2Hasher(stronger).NeedsRehash(encoded) {
		t.Error("hash with fewer iterations should need rehash")
	}
	if !weak.NeedsRehash("not-a-hash") {
		t.Error("unparseable hash should need rehash")
	}
	if !NewArgon2Hasher(stronger).Verify("pw", encoded) {
		t.Error("old hashes must still verify with their own params")
	}
}

func TestZeroParamsUseDefaults(t *testing.T) {
	h := NewArgon2Hasher(Argon2Params{Memory: 1024, Iterations: 1})
	if h.params.Parallelism != 2 || h.params.KeyLength != 32 || h.params.SaltLength != 16 {
		t.Errorf("defaults not applied: %+v", h.params)
	}
}
