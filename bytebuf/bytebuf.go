// Package bytebuf provides a growable byte buffer with independent read and write cursors and big-endian accessors
// for fixed-width integers. It suits assembling and parsing binary messages where reads trail writes, like framing
// blocks for a cipher or accumulating a key-derivation transcript.
package bytebuf

import (
	"encoding/binary"
	"io"
)

// A Buffer is a byte window with a read cursor and a write cursor. Reads consume from the read cursor and fail with
// io.ErrUnexpectedEOF when they would pass the end of the window; writes grow the window as needed and never fail.
//
// The zero value is an empty buffer ready for use.
type Buffer struct {
	buf  []byte
	rpos int
	wpos int
}

// New constructs a Buffer using the given bytes as the initial window. Both cursors start at zero, so the contents are
// immediately readable and writes overwrite from the front.
func New(contents []byte) *Buffer {
	return &Buffer{buf: contents, rpos: 0, wpos: 0}
}

// NewSize constructs a Buffer with a zero-filled window of n bytes.
func NewSize(n int) *Buffer {
	return &Buffer{buf: make([]byte, n), rpos: 0, wpos: 0}
}

// Len returns the size of the window in bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Readable returns the number of bytes between the read cursor and the end of the window.
func (b *Buffer) Readable() int {
	return len(b.buf) - b.rpos
}

// Writable returns the number of bytes between the write cursor and the end of the window.
func (b *Buffer) Writable() int {
	return len(b.buf) - b.wpos
}

// Bytes returns the whole window. The slice is only valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// ReadableBytes returns the unread portion of the window without consuming it.
func (b *Buffer) ReadableBytes() []byte {
	return b.buf[b.rpos:]
}

// AdvanceRead moves the read cursor forward by n bytes, clamped to the readable range.
func (b *Buffer) AdvanceRead(n int) {
	b.rpos += min(max(n, 0), b.Readable())
}

// AdvanceWrite moves the write cursor forward by n bytes, clamped to the writable range.
func (b *Buffer) AdvanceWrite(n int) {
	b.wpos += min(max(n, 0), b.Writable())
}

// Reset rewinds both cursors to the start of the window. The window and its contents are unchanged.
func (b *Buffer) Reset() {
	b.rpos, b.wpos = 0, 0
}

// Read copies unread bytes into p, implementing io.Reader. It returns io.EOF once the window is exhausted.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.Readable() == 0 {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.rpos:])
	b.rpos += n
	return n, nil
}

// Write appends p at the write cursor, growing the window as needed. It implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.ensure(len(p))
	copy(b.buf[b.wpos:], p)
	b.wpos += len(p)
	return len(p), nil
}

// ReadUint8 consumes one byte.
func (b *Buffer) ReadUint8() (uint8, error) {
	if b.Readable() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	v := b.buf[b.rpos]
	b.rpos++
	return v, nil
}

// ReadInt8 consumes one byte as a signed value.
func (b *Buffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

// ReadUint16 consumes two bytes as a big-endian unsigned value.
func (b *Buffer) ReadUint16() (uint16, error) {
	if b.Readable() < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(b.buf[b.rpos:])
	b.rpos += 2
	return v, nil
}

// ReadInt16 consumes two bytes as a big-endian signed value.
func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadUint32 consumes four bytes as a big-endian unsigned value.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.Readable() < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(b.buf[b.rpos:])
	b.rpos += 4
	return v, nil
}

// ReadInt32 consumes four bytes as a big-endian signed value.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadUint64 consumes eight bytes as a big-endian unsigned value.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.Readable() < 8 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(b.buf[b.rpos:])
	b.rpos += 8
	return v, nil
}

// ReadInt64 consumes eight bytes as a big-endian signed value.
func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// WriteUint8 writes one byte.
func (b *Buffer) WriteUint8(v uint8) {
	b.ensure(1)
	b.buf[b.wpos] = v
	b.wpos++
}

// WriteInt8 writes one byte.
func (b *Buffer) WriteInt8(v int8) {
	b.WriteUint8(uint8(v))
}

// WriteUint16 writes two bytes, big-endian.
func (b *Buffer) WriteUint16(v uint16) {
	b.ensure(2)
	binary.BigEndian.PutUint16(b.buf[b.wpos:], v)
	b.wpos += 2
}

// WriteInt16 writes two bytes, big-endian.
func (b *Buffer) WriteInt16(v int16) {
	b.WriteUint16(uint16(v))
}

// WriteUint32 writes four bytes, big-endian.
func (b *Buffer) WriteUint32(v uint32) {
	b.ensure(4)
	binary.BigEndian.PutUint32(b.buf[b.wpos:], v)
	b.wpos += 4
}

// WriteInt32 writes four bytes, big-endian.
func (b *Buffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

// WriteUint64 writes eight bytes, big-endian.
func (b *Buffer) WriteUint64(v uint64) {
	b.ensure(8)
	binary.BigEndian.PutUint64(b.buf[b.wpos:], v)
	b.wpos += 8
}

// WriteInt64 writes eight bytes, big-endian.
func (b *Buffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

// ensure grows the window so at least n bytes are writable, doubling to amortize repeated small writes.
func (b *Buffer) ensure(n int) {
	if b.wpos+n <= len(b.buf) {
		return
	}
	grown := make([]byte, max(len(b.buf)*2, b.wpos+n))
	copy(grown, b.buf)
	b.buf = grown
}

var (
	_ io.Reader = (*Buffer)(nil)
	_ io.Writer = (*Buffer)(nil)
)
