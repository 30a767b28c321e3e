package xtea

import (
	"errors"
	"io"
)

// readerBufSize is the size of the buffer a reader fills from the underlying io.Reader before transforming.
const readerBufSize = 512

// EncipherWriter wraps the given io.Writer with a writer which enciphers whatever is written to it. Written bytes are
// gathered into 8-byte blocks, so a trailing partial block is held back until a later write completes it.
//
// N.B.: The returned io.WriteCloser must be closed. Close returns ErrInvalidLength if the total number of bytes
// written is not a multiple of BlockSize; the trailing partial block is never flushed, since the cipher has no
// padding.
func (c *Cipher) EncipherWriter(w io.Writer) io.WriteCloser {
	return &blockWriter{f: c.Encipher, w: w, out: nil, n: 0, closed: false}
}

// DecipherWriter wraps the given io.Writer with a writer which deciphers whatever is written to it, under the same
// contract as EncipherWriter.
func (c *Cipher) DecipherWriter(w io.Writer) io.WriteCloser {
	return &blockWriter{f: c.Decipher, w: w, out: nil, n: 0, closed: false}
}

// EncipherReader wraps the given io.Reader with a reader which enciphers whatever is read from it, one 8-byte block at
// a time. If the underlying reader reaches EOF partway through a block, Read returns ErrInvalidLength in place of
// io.EOF.
func (c *Cipher) EncipherReader(r io.Reader) io.Reader {
	return &blockReader{f: c.Encipher, r: r, data: make([]byte, readerBufSize)}
}

// DecipherReader wraps the given io.Reader with a reader which deciphers whatever is read from it, under the same
// contract as EncipherReader.
func (c *Cipher) DecipherReader(r io.Reader) io.Reader {
	return &blockReader{f: c.Decipher, r: r, data: make([]byte, readerBufSize)}
}

type blockWriter struct {
	f      func(dst, src []byte) error
	w      io.Writer
	out    []byte
	rem    [BlockSize]byte
	n      int
	closed bool
}

func (b *blockWriter) Write(p []byte) (n int, err error) {
	// Complete a held-back partial block before touching the new bytes.
	if b.n > 0 {
		k := copy(b.rem[b.n:], p)
		b.n += k
		n += k
		p = p[k:]
		if b.n < BlockSize {
			return n, nil
		}
		if err := b.transformAndWrite(b.rem[:]); err != nil {
			return n, err
		}
		b.n = 0
	}

	if whole := len(p) - len(p)%BlockSize; whole > 0 {
		if err := b.transformAndWrite(p[:whole]); err != nil {
			return n, err
		}
		n += whole
		p = p[whole:]
	}

	b.n = copy(b.rem[:], p)
	return n + b.n, nil
}

func (b *blockWriter) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.n > 0 {
		return ErrInvalidLength
	}
	return nil
}

// transformAndWrite copies src so the caller's slice is never transformed in place, then writes the whole transformed
// chunk to the underlying writer.
func (b *blockWriter) transformAndWrite(src []byte) error {
	b.out = append(b.out[:0], src...)
	if err := b.f(b.out, b.out); err != nil {
		return err
	}
	for n := 0; n < len(b.out); {
		nn, err := b.w.Write(b.out[n:])
		n += nn
		if err != nil && !errors.Is(err, io.ErrShortWrite) {
			return err
		}
	}
	return nil
}

type blockReader struct {
	f    func(dst, src []byte) error
	r    io.Reader
	data []byte
	buf  []byte
	rem  [BlockSize]byte
	n    int
	err  error
}

func (b *blockReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(b.buf) == 0 {
		if b.err != nil {
			return 0, b.err
		}
		b.fill()
	}
	n = copy(p, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// fill reads from the underlying reader, transforms every whole block read so far, and holds back the remainder for
// the next fill.
func (b *blockReader) fill() {
	copy(b.data, b.rem[:b.n])
	nr, rerr := b.r.Read(b.data[b.n:])
	total := b.n + nr
	whole := total - total%BlockSize
	b.n = copy(b.rem[:], b.data[whole:total])
	if err := b.f(b.data[:whole], b.data[:whole]); err != nil {
		b.err = err
		return
	}
	b.buf = b.data[:whole]
	if rerr != nil {
		if errors.Is(rerr, io.EOF) && b.n > 0 {
			rerr = ErrInvalidLength
		}
		b.err = rerr
	}
}

var (
	_ io.WriteCloser = (*blockWriter)(nil)
	_ io.Reader      = (*blockReader)(nil)
)
