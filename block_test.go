package xtea_test

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/codahale/xtea"
)

func TestCipher_BlockSize(t *testing.T) {
	c := xtea.New([4]uint32{})
	if got, want := c.BlockSize(), xtea.BlockSize; got != want {
		t.Errorf("BlockSize() = %d, want = %d", got, want)
	}
}

func TestCipher_Encrypt(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		for _, v := range vectors {
			t.Run(v.name, func(t *testing.T) {
				c := mustCipher(t, v.key)
				dst := make([]byte, xtea.BlockSize)
				c.Encrypt(dst, mustHex(t, v.plaintext))
				if got, want := hex.EncodeToString(dst), v.ciphertext; got != want {
					t.Errorf("Encrypt(%s) = %s, want = %s", v.plaintext, got, want)
				}
			})
		}
	})

	t.Run("short input", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("The code did not panic")
			}
		}()

		c := xtea.New([4]uint32{})
		c.Encrypt(make([]byte, xtea.BlockSize), make([]byte, xtea.BlockSize-1))
	})

	t.Run("short output", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("The code did not panic")
			}
		}()

		c := xtea.New([4]uint32{})
		c.Encrypt(make([]byte, xtea.BlockSize-1), make([]byte, xtea.BlockSize))
	})
}

func TestCipher_Decrypt(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		for _, v := range vectors {
			t.Run(v.name, func(t *testing.T) {
				c := mustCipher(t, v.key)
				dst := make([]byte, xtea.BlockSize)
				c.Decrypt(dst, mustHex(t, v.ciphertext))
				if got, want := hex.EncodeToString(dst), v.plaintext; got != want {
					t.Errorf("Decrypt(%s) = %s, want = %s", v.ciphertext, got, want)
				}
			})
		}
	})

	t.Run("short input", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("The code did not panic")
			}
		}()

		c := xtea.New([4]uint32{})
		c.Decrypt(make([]byte, xtea.BlockSize), make([]byte, xtea.BlockSize-1))
	})
}

func TestCipher_CTRMode(t *testing.T) {
	c := mustCipher(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := make([]byte, xtea.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatal(err)
	}

	// CTR turns the block cipher into a stream cipher, so the input need not be block-aligned.
	plaintext := []byte("this message is deliberately not a multiple of eight bytes long")[:61]
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(c, iv).XORKeyStream(ciphertext, plaintext)

	got := make([]byte, len(ciphertext))
	cipher.NewCTR(c, iv).XORKeyStream(got, ciphertext)
	if !bytes.Equal(got, plaintext) {
		t.Errorf("CTR round trip = %q, want = %q", got, plaintext)
	}
}
