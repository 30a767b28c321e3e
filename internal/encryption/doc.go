// Package encryption provides concurrent file encryption using the XTEA block cipher with PKCS#7 padding.
// Blocks are enciphered independently, and outputs are written atomically via temporary files.
package encryption
