package secretbox

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	secret := []byte("hunter2-the-redis-password")

	blob, err := Seal(secret, "correct horse battery staple")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(blob, secret) {
		t.Fatal("sealed blob contains plaintext")
	}

	got, err := Open(blob, "correct horse battery staple")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("opened = %q, want %q", got, secret)
	}
}

func TestOpen_WrongPassphrase(t *testing.T) {
	blob, err := Seal([]byte("secret"), "passphrase-one")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := Open(blob, "passphrase-two"); !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("err = %v, want %v", err, ErrOpenFailed)
	}
}

func TestOpen_TamperedBlob(t *testing.T) {
	blob, err := Seal([]byte("secret"), "long-enough-pass")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	// Flip one byte in the salt; the bound header must fail auth.
	blob[3] ^= 0xff
	if _, err := Open(blob, "long-enough-pass"); err == nil {
		t.Fatal("tampered blob opened")
	}
}

func TestSeal_WeakPassphrase(t *testing.T) {
	if _, err := Seal([]byte("secret"), "short"); !errors.Is(err, ErrPassphraseTooWeak) {
		t.Fatalf("err = %v, want %v", err, ErrPassphraseTooWeak)
	}
}

func TestOpen_MalformedBlob(t *testing.T) {
	for _, blob := range [][]byte{nil, {1}, {9, 9, 0, 0}, bytes.Repeat([]byte{0}, 30)} {
		if _, err := Open(blob, "long-enough-pass"); err == nil {
			t.Errorf("Open(%v) accepted malformed blob", blob)
		}
	}
}

// Distinct salts: sealing the same secret twice never repeats bytes.
func TestSeal_Unique(t *testing.T) {
	a, err := Seal([]byte("secret"), "long-enough-pass")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	b, err := Seal([]byte("secret"), "long-enough-pass")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two seals produced identical blobs")
	}
}
