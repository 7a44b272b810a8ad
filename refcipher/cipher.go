// Package refcipher derives the ciphertext the harness transmits to the AES
// design.
//
// Blocks are encrypted independently under one key (electronic codebook
// mode): no IV, no chaining and no authentication tag, so identical plaintext
// blocks give identical ciphertext. This is only suitable for generating test
// vectors.
package refcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Cipher encrypts and decrypts single 16-byte blocks under a fixed key.
type Cipher struct {
	block cipher.Block
}

// New creates a Cipher for a 16, 24 or 32 byte AES key.
func New(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("reference cipher: %w", err)
	}
	return &Cipher{block: block}, nil
}

// EncryptBlock encrypts exactly one block.
func (c *Cipher) EncryptBlock(plaintext []byte) ([]byte, error) {
	if len(plaintext) != aes.BlockSize {
		return nil, fmt.Errorf("plaintext must be exactly %d bytes, got %d", aes.BlockSize, len(plaintext))
	}
	out := make([]byte, aes.BlockSize)
	c.block.Encrypt(out, plaintext)
	return out, nil
}

// DecryptBlock decrypts exactly one block.
func (c *Cipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != aes.BlockSize {
		return nil, fmt.Errorf("ciphertext must be exactly %d bytes, got %d", aes.BlockSize, len(ciphertext))
	}
	out := make([]byte, aes.BlockSize)
	c.block.Decrypt(out, ciphertext)
	return out, nil
}
