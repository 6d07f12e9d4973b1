// Package xorcipher implements the symmetric XOR stream cipher layered
// on top of an LFSR keystream. Encryption and decryption are the same
// operation: XOR with the keystream, cycling the keystream when the
// message is longer.
package xorcipher

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKeyStream is returned when an empty keystream is supplied.
	ErrEmptyKeyStream = errors.New("xorcipher: keystream is empty")

	// ErrInvalidSymbol is returned in binary mode when the message or
	// keystream contains a character other than '0' or '1'.
	ErrInvalidSymbol = errors.New("xorcipher: input must contain only '0' and '1'")
)

// Encrypt XORs every plaintext byte with the corresponding keystream
// byte, wrapping the keystream index modulo its length. The keystream
// is consumed as raw byte values, so a '0'/'1' bit string acts as a
// repeating byte mask.
func Encrypt(plaintext []byte, keyStream string) ([]byte, error) {
	if len(keyStream) == 0 {
		return nil, ErrEmptyKeyStream
	}

	ciphertext := make([]byte, len(plaintext))
	for i, b := range plaintext {
		ciphertext[i] = b ^ keyStream[i%len(keyStream)]
	}
	return ciphertext, nil
}

// Decrypt reverses Encrypt. XOR is an involution, so this is the same
// operation.
func Decrypt(ciphertext []byte, keyStream string) ([]byte, error) {
	return Encrypt(ciphertext, keyStream)
}

// EncryptBinary XORs a '0'/'1' message string with a '0'/'1' keystream
// bit by bit, wrapping the keystream index modulo its length. Any
// other symbol in either input is rejected.
func EncryptBinary(bits, keyStream string) (string, error) {
	if len(keyStream) == 0 {
		return "", ErrEmptyKeyStream
	}
	if err := checkBinary(keyStream); err != nil {
		return "", fmt.Errorf("invalid keystream: %w", err)
	}
	if err := checkBinary(bits); err != nil {
		return "", fmt.Errorf("invalid message: %w", err)
	}

	out := make([]byte, len(bits))
	for i := 0; i < len(bits); i++ {
		bit := (bits[i] - '0') ^ (keyStream[i%len(keyStream)] - '0')
		out[i] = bit + '0'
	}
	return string(out), nil
}

// DecryptBinary reverses EncryptBinary.
func DecryptBinary(bits, keyStream string) (string, error) {
	return EncryptBinary(bits, keyStream)
}

func checkBinary(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return fmt.Errorf("%w: found %q at position %d", ErrInvalidSymbol, s[i], i)
		}
	}
	return nil
}
