package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrPassphraseTooWeak rejects passphrases under 8 characters.
	ErrPassphraseTooWeak = errors.New("secretbox: passphrase too weak (minimum 8 characters)")

	// ErrOpenFailed means a wrong passphrase or a corrupted blob.
	ErrOpenFailed = errors.New("secretbox: open failed - wrong passphrase or corrupted data")

	// ErrBadBlob means the blob header is not one this package wrote.
	ErrBadBlob = errors.New("secretbox: malformed sealed blob")
)

const (
	blobVersion = 1

	cipherAESGCM   = 1
	cipherChaCha20 = 2

	saltLen = 16

	// Argon2id parameters for key derivation from the passphrase.
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	minPassphraseLen = 8
)

// Seal encrypts secret under a key derived from passphrase and returns
// a self-describing blob safe to write to a config file.
func Seal(secret []byte, passphrase string) ([]byte, error) {
	if len(passphrase) < minPassphraseLen {
		return nil, ErrPassphraseTooWeak
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("secretbox: salt: %w", err)
	}

	cipherID := preferredCipher()
	aead, err := newAEAD(cipherID, deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("secretbox: nonce: %w", err)
	}

	header := []byte{blobVersion, byte(cipherID)}
	header = append(header, salt...)

	// The header is bound as additional data, so tampering with the
	// cipher byte or salt fails authentication.
	sealed := aead.Seal(nil, nonce, secret, header)

	blob := header
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return blob, nil
}

// Open reverses Seal.
func Open(blob []byte, passphrase string) ([]byte, error) {
	if len(blob) < 2+saltLen {
		return nil, ErrBadBlob
	}
	if blob[0] != blobVersion {
		return nil, ErrBadBlob
	}
	cipherID := int(blob[1])

	header := blob[:2+saltLen]
	salt := blob[2 : 2+saltLen]

	aead, err := newAEAD(cipherID, deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	rest := blob[2+saltLen:]
	if len(rest) < aead.NonceSize() {
		return nil, ErrBadBlob
	}
	nonce := rest[:aead.NonceSize()]

	secret, err := aead.Open(nil, nonce, rest[aead.NonceSize():], header)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return secret, nil
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func newAEAD(cipherID int, key []byte) (cipher.AEAD, error) {
	switch cipherID {
	case cipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case cipherChaCha20:
		return chacha20poly1305.New(key)
	default:
		return nil, ErrBadBlob
	}
}

// preferredCipher picks AES-GCM where Go uses hardware AES, and
// ChaCha20-Poly1305 on architectures without it.
func preferredCipher() int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return cipherAESGCM
	default:
		return cipherChaCha20
	}
}
