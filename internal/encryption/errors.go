package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to decrypt an empty file.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data is not a multiple of the cipher's block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrKeySize is returned when the key is not exactly 16 bytes.
	ErrKeySize = errors.New("key must be 16 bytes (32 hex characters)")
)
