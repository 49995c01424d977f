// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// ErrCiphertextTooShort is returned by Open when the blob is shorter than
// the GCM nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// sealer is the private implementation of [Sealer].
type sealer struct {
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSealer constructs a [Sealer] with Argon2id parameters sized for a
// one-off derivation at process start:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewSealer() Sealer {
	return &sealer{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
	}
}

// DeriveKey implements [Sealer]. The salt is SHA-256 of the scope so any
// scope length yields a fixed-size salt.
func (s *sealer) DeriveKey(entropy, scope string) []byte {
	salt := sha256.Sum256([]byte("lexiflow-credentials:" + scope))
	return argon2.IDKey(
		[]byte(entropy),
		salt[:],
		s.argonTime,
		s.argonMemory,
		s.argonThreads,
		s.argonKeyLen,
	)
}

// Seal implements [Sealer]. Output layout: nonce (12 bytes) ‖ ciphertext.
func (s *sealer) Seal(value any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [Sealer].
func (s *sealer) Open(blob, key []byte, target any) error {
	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("decrypt data: %w", err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
