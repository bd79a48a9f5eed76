package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/avoronin/credvault/models"
)

func TestNewKeyDeriver_EmptyMasterSecret(t *testing.T) {
	_, err := NewKeyDeriver(nil)
	if !errors.Is(err, ErrMasterSecretRequired) {
		t.Fatalf("expected ErrMasterSecretRequired, got %v", err)
	}

	_, err = NewKeyDeriver([]byte{})
	if !errors.Is(err, ErrMasterSecretRequired) {
		t.Fatalf("expected ErrMasterSecretRequired, got %v", err)
	}
}

func TestDerive_LegacyKnownAnswers(t *testing.T) {
	// Vectors produced by the original derivation:
	// urlsafe_b64encode((secret + "-" + owner).ljust(32)[:32]).
	tests := []struct {
		name   string
		secret string
		owner  int64
		want   string
	}{
		{
			name:   "short input is padded with spaces",
			secret: "default-secret-key",
			owner:  1,
			want:   "ZGVmYXVsdC1zZWNyZXQta2V5LTEgICAgICAgICAgICA=",
		},
		{
			name:   "different owner shifts only the scope suffix",
			secret: "default-secret-key",
			owner:  2,
			want:   "ZGVmYXVsdC1zZWNyZXQta2V5LTIgICAgICAgICAgICA=",
		},
		{
			name:   "long input is truncated to 32 bytes",
			secret: strings.Repeat("m", 40),
			owner:  7,
			want:   "bW1tbW1tbW1tbW1tbW1tbW1tbW1tbW1tbW1tbW1tbW0=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deriver, err := NewKeyDeriver([]byte(tt.secret))
			if err != nil {
				t.Fatalf("NewKeyDeriver error: %v", err)
			}

			key, err := deriver.Derive(models.KeySchemeOwnerLegacy, tt.owner)
			if err != nil {
				t.Fatalf("Derive error: %v", err)
			}
			if got := string(key); got != tt.want {
				t.Fatalf("derived key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	deriver, err := NewKeyDeriver([]byte("master"))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	for _, scheme := range []models.KeyScheme{models.KeySchemeOwnerLegacy, models.KeySchemeOwnerHKDF} {
		k1, err := deriver.Derive(scheme, 42)
		if err != nil {
			t.Fatalf("Derive error: %v", err)
		}
		k2, err := deriver.Derive(scheme, 42)
		if err != nil {
			t.Fatalf("Derive error: %v", err)
		}
		if !bytes.Equal(k1, k2) {
			t.Fatalf("scheme %d: expected derivation to be deterministic", scheme)
		}
	}
}

func TestDerive_OwnersGetDistinctKeys(t *testing.T) {
	deriver, err := NewKeyDeriver([]byte("master"))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	for _, scheme := range []models.KeyScheme{models.KeySchemeOwnerLegacy, models.KeySchemeOwnerHKDF} {
		kA, err := deriver.Derive(scheme, 1)
		if err != nil {
			t.Fatalf("Derive error: %v", err)
		}
		kB, err := deriver.Derive(scheme, 2)
		if err != nil {
			t.Fatalf("Derive error: %v", err)
		}
		if bytes.Equal(kA, kB) {
			t.Fatalf("scheme %d: expected different owners to get different keys", scheme)
		}
	}
}

func TestDerive_SchemesAreIndependent(t *testing.T) {
	deriver, err := NewKeyDeriver([]byte("master"))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	legacy, err := deriver.Derive(models.KeySchemeOwnerLegacy, 5)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	hardened, err := deriver.Derive(models.KeySchemeOwnerHKDF, 5)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if bytes.Equal(legacy, hardened) {
		t.Fatalf("expected legacy and hkdf schemes to derive different keys")
	}
}

func TestDerive_UnknownScheme(t *testing.T) {
	deriver, err := NewKeyDeriver([]byte("master"))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	_, err = deriver.Derive(models.KeyScheme(99), 1)
	if !errors.Is(err, ErrUnknownKeyScheme) {
		t.Fatalf("expected ErrUnknownKeyScheme, got %v", err)
	}
}

func TestKeyMaterial_BytesRoundTrip(t *testing.T) {
	deriver, err := NewKeyDeriver([]byte("master"))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	key, err := deriver.Derive(models.KeySchemeOwnerHKDF, 3)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	raw, err := key.Bytes()
	if err != nil {
		t.Fatalf("Bytes error: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("raw key length = %d, want 32", len(raw))
	}
}

func TestKeyMaterial_StringIsMasked(t *testing.T) {
	key := KeyMaterial("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	if got := key.String(); strings.Contains(got, "AAAA") {
		t.Fatalf("String() leaked key material: %q", got)
	}
}
