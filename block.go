package xtea

import (
	"crypto/cipher"
	"encoding/binary"
)

// BlockSize returns the XTEA block size in bytes. It implements cipher.Block.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt enciphers the first 8 bytes of src into dst, implementing cipher.Block so the Cipher composes with the
// [crypto/cipher] modes. dst and src may overlap entirely.
//
// Encrypt panics if src or dst is shorter than BlockSize.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("xtea: input not full block")
	}
	if len(dst) < BlockSize {
		panic("xtea: output not full block")
	}
	v0, v1 := c.encipherBlock(binary.BigEndian.Uint32(src), binary.BigEndian.Uint32(src[4:]))
	binary.BigEndian.PutUint32(dst, v0)
	binary.BigEndian.PutUint32(dst[4:], v1)
}

// Decrypt deciphers the first 8 bytes of src into dst, implementing cipher.Block.
//
// Decrypt panics if src or dst is shorter than BlockSize.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("xtea: input not full block")
	}
	if len(dst) < BlockSize {
		panic("xtea: output not full block")
	}
	v0, v1 := c.decipherBlock(binary.BigEndian.Uint32(src), binary.BigEndian.Uint32(src[4:]))
	binary.BigEndian.PutUint32(dst, v0)
	binary.BigEndian.PutUint32(dst[4:], v1)
}

var _ cipher.Block = (*Cipher)(nil)
