// Package xtea implements XTEA, the 64-bit-block Feistel cipher with a 128-bit key designed by Needham and Wheeler as
// the successor to [TEA]. Each block is transformed by a fixed number of rounds (32 by default) of additive mixing
// keyed by a running sum derived from the golden ratio; see the [XTEA] technical report for the round structure.
//
// Blocks are packed and unpacked as two big-endian 32-bit words. This convention is part of the wire format: an
// implementation using the opposite byte order produces entirely different ciphertext with no error signaled.
//
// XTEA provides confidentiality only. It has no authentication and no mode of operation; callers encrypting more than
// one block of related data should compose a Cipher with [crypto/cipher] modes and a MAC.
//
// [TEA]: https://www.cl.cam.ac.uk/ftp/papers/djw-rmn/djw-rmn-tea.html
// [XTEA]: https://www.cl.cam.ac.uk/ftp/users/djw3/xtea.ps
package xtea

import (
	"encoding/binary"
	"errors"
)

const (
	// BlockSize is the size of an XTEA block, in bytes.
	BlockSize = 8

	// KeySize is the size of an XTEA key, in bytes.
	KeySize = 16

	// DefaultRounds is the number of Feistel rounds applied to each block unless overridden with WithRounds.
	DefaultRounds = 32

	delta = 0x9e3779b9
)

var (
	// ErrInvalidLength is returned when an input's length is not a multiple of BlockSize.
	ErrInvalidLength = errors.New("xtea: input length not a multiple of block size")

	// ErrShortBuffer is returned when an output buffer is shorter than the input it must hold.
	ErrShortBuffer = errors.New("xtea: output buffer shorter than input")
)

// A Cipher is an instance of XTEA using a particular key and round count.
//
// A Cipher is immutable once constructed and safe for concurrent use by multiple goroutines.
type Cipher struct {
	key    [4]uint32
	rounds uint32
}

// New creates a new Cipher with the given key words and DefaultRounds rounds. Any key value is valid; XTEA has no weak
// keys to reject.
func New(key [4]uint32) *Cipher {
	return &Cipher{key: key, rounds: DefaultRounds}
}

// NewFromBytes creates a new Cipher with DefaultRounds rounds, decoding the key as four big-endian 32-bit words.
func NewFromBytes(key [KeySize]byte) *Cipher {
	return New([4]uint32{
		binary.BigEndian.Uint32(key[0:]),
		binary.BigEndian.Uint32(key[4:]),
		binary.BigEndian.Uint32(key[8:]),
		binary.BigEndian.Uint32(key[12:]),
	})
}

// WithRounds returns a copy of the Cipher which applies n rounds per block. The receiver is unchanged, so a Cipher
// shared between goroutines never observes a partial round-count update.
//
// A round count of 0 degenerates the cipher to the identity function, which offers no confidentiality whatsoever.
//
// WithRounds panics if n is negative.
func (c *Cipher) WithRounds(n int) *Cipher {
	if n < 0 {
		panic("invalid argument to WithRounds: n cannot be negative")
	}
	return &Cipher{key: c.key, rounds: uint32(n)}
}

// Encipher enciphers src into dst, processing each 8-byte block independently and in order. dst and src may be the
// same slice; each block is read in full before its output is written.
//
// It returns ErrInvalidLength if src's length is not a multiple of BlockSize and ErrShortBuffer if dst is shorter than
// src. Validation happens before any block is transformed, so on error dst is untouched. A zero-length src is valid
// and writes nothing.
func (c *Cipher) Encipher(dst, src []byte) error {
	if err := checkBuffers(dst, src); err != nil {
		return err
	}
	for i := 0; i < len(src); i += BlockSize {
		v0 := binary.BigEndian.Uint32(src[i:])
		v1 := binary.BigEndian.Uint32(src[i+4:])
		v0, v1 = c.encipherBlock(v0, v1)
		binary.BigEndian.PutUint32(dst[i:], v0)
		binary.BigEndian.PutUint32(dst[i+4:], v1)
	}
	return nil
}

// Decipher deciphers src into dst under the same contract as Encipher. Deciphering the output of Encipher with the
// same Cipher reproduces the original input byte for byte.
func (c *Cipher) Decipher(dst, src []byte) error {
	if err := checkBuffers(dst, src); err != nil {
		return err
	}
	for i := 0; i < len(src); i += BlockSize {
		v0 := binary.BigEndian.Uint32(src[i:])
		v1 := binary.BigEndian.Uint32(src[i+4:])
		v0, v1 = c.decipherBlock(v0, v1)
		binary.BigEndian.PutUint32(dst[i:], v0)
		binary.BigEndian.PutUint32(dst[i+4:], v1)
	}
	return nil
}

func checkBuffers(dst, src []byte) error {
	if len(src)%BlockSize != 0 {
		return ErrInvalidLength
	}
	if len(dst) < len(src) {
		return ErrShortBuffer
	}
	return nil
}

// encipherBlock applies the XTEA round function to a single block. All arithmetic wraps at 32 bits; the sum-dependent
// key indexing (sum&3 for the first half-round, sum>>11&3 for the second) is what spreads the four key words across
// the round sequence and must stay exactly as written.
func (c *Cipher) encipherBlock(v0, v1 uint32) (uint32, uint32) {
	var sum uint32
	for range c.rounds {
		v0 += (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.key[sum&3])
		sum += delta
		v1 += (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.key[(sum>>11)&3])
	}
	return v0, v1
}

// decipherBlock inverts encipherBlock, starting from the final sum value and undoing the half-rounds in reverse order.
func (c *Cipher) decipherBlock(v0, v1 uint32) (uint32, uint32) {
	sum := delta * c.rounds
	for range c.rounds {
		v1 -= (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.key[(sum>>11)&3])
		sum -= delta
		v0 -= (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.key[sum&3])
	}
	return v0, v1
}
