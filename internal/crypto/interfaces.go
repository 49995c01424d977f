// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// Sealer protects small client secrets at rest. It knows nothing about
// files, sessions or the network.
//
// Flow:
//
//	key  = DeriveKey(entropy, scope)     (Argon2id)
//	blob = Seal(value, key)              (JSON + AES-256-GCM, nonce ‖ ciphertext)
//	Open(blob, key, &value)
type Sealer interface {
	// DeriveKey derives a 256-bit key from a fixed entropy string and a
	// scope (e.g. OS user name). The same inputs always yield the same key.
	DeriveKey(entropy, scope string) []byte

	// Seal serializes value to JSON and encrypts it with key.
	Seal(value any, key []byte) ([]byte, error)

	// Open decrypts a blob produced by Seal and unmarshals it into target.
	// Returns an error if the key is wrong or the blob was tampered with.
	Open(blob, key []byte, target any) error
}
