// Package wire implements the primitive binary codec shared by every
// packet and event on the Nebulous wire: big-endian fixed-width
// integers and floats, length-prefixed MUTF8 strings, variable-length
// byte arrays, and the compressed float/int encodings used pervasively
// by the protocol.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ErrCorruption is returned when an encode operation would violate a
// declared wire constraint (a field too long, a malformed shuffle
// self-check). It is always returned wrapped in an error with a more
// specific message, so callers test for it with errors.Is.
var ErrCorruption = fmt.Errorf("wire: corruption")

// Writer accumulates a packet payload using big-endian primitives. The
// zero value is ready to use.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns a Writer with the given initial capacity hint.
func NewWriter(sizeHint int) *Writer {
	w := &Writer{}
	w.buf.Grow(sizeHint)
	return w
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) U8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) I8(v int8) { w.buf.WriteByte(byte(v)) }

func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// U24 writes the low 24 bits of v big-endian, used by CompressedInt3
// and the 3-byte compressed floats.
func (w *Writer) U24(v uint32) {
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v))
}

// RawBytes writes b verbatim with no length prefix.
func (w *Writer) RawBytes(b []byte) { w.buf.Write(b) }

// MUTF8 writes a u16 length followed by the modified-UTF8 encoding of
// s. It is an encoder error (ErrCorruption) if the encoded form
// exceeds 65535 bytes.
func (w *Writer) MUTF8(s string) error {
	enc := EncodeMUTF8(s)
	if len(enc) > 0xFFFF {
		return fmt.Errorf("%w: MUTF8 string encodes to %d bytes, exceeds 65535", ErrCorruption, len(enc))
	}
	w.U16(uint16(len(enc)))
	w.buf.Write(enc)
	return nil
}

// VarBytes1 writes a 1-byte length prefix followed by b. It is an
// encoder error if len(b) > 255.
func (w *Writer) VarBytes1(b []byte) error {
	if len(b) > 0xFF {
		return fmt.Errorf("%w: variable byte array of %d bytes exceeds 1-byte length prefix", ErrCorruption, len(b))
	}
	w.U8(uint8(len(b)))
	w.buf.Write(b)
	return nil
}

// VarBytes2 writes a 2-byte length prefix followed by b. It is an
// encoder error if len(b) > 65535.
func (w *Writer) VarBytes2(b []byte) error {
	if len(b) > 0xFFFF {
		return fmt.Errorf("%w: variable byte array of %d bytes exceeds 2-byte length prefix", ErrCorruption, len(b))
	}
	w.U16(uint16(len(b)))
	w.buf.Write(b)
	return nil
}

// CompressedFloat2 writes the 2-byte compressed encoding of value over
// [0, maxRange] (§4.A).
func (w *Writer) CompressedFloat2(value, maxRange float32) {
	w.U16(CompressFloat2(value, maxRange))
}

// CompressedFloat3 writes the 3-byte compressed encoding of value over
// [0, maxRange].
func (w *Writer) CompressedFloat3(value, maxRange float32) {
	w.U24(CompressFloat3(value, maxRange))
}

// CompressedFloat1Clamped writes the 1-byte compressed encoding of
// value over [min, max].
func (w *Writer) CompressedFloat1Clamped(value, min, max float32) {
	w.U8(CompressFloat1Clamped(value, min, max))
}

// CompressedInt3 writes the 3-byte unsigned encoding of v.
func (w *Writer) CompressedInt3(v uint32) { w.U24(v) }

// Reader consumes a packet payload using big-endian primitives.
type Reader struct {
	b   []byte
	pos int
}

// NewReader wraps b for sequential big-endian reads.
func NewReader(b []byte) *Reader { return &Reader{b: b} }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.pos }

// Exhausted reports whether every byte has been consumed.
func (r *Reader) Exhausted() bool { return r.pos >= len(r.b) }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return fmt.Errorf("wire: need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.b[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// U24 reads a 3-byte big-endian unsigned integer.
func (r *Reader) U24() (uint32, error) {
	if err := r.need(3); err != nil {
		return 0, err
	}
	v := uint32(r.b[r.pos])<<16 | uint32(r.b[r.pos+1])<<8 | uint32(r.b[r.pos+2])
	r.pos += 3
	return v, nil
}

// RawBytes reads n bytes verbatim.
func (r *Reader) RawBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.b[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// MUTF8 reads a u16-length-prefixed modified-UTF8 string. Ill-formed
// byte sequences are tolerated: invalid sequences are replaced rather
// than causing a read error, per spec.
func (r *Reader) MUTF8() (string, error) {
	l, err := r.U16()
	if err != nil {
		return "", err
	}
	raw, err := r.RawBytes(int(l))
	if err != nil {
		return "", err
	}
	return DecodeMUTF8(raw), nil
}

// VarBytes1 reads a 1-byte-length-prefixed byte array.
func (r *Reader) VarBytes1() ([]byte, error) {
	l, err := r.U8()
	if err != nil {
		return nil, err
	}
	return r.RawBytes(int(l))
}

// VarBytes2 reads a 2-byte-length-prefixed byte array.
func (r *Reader) VarBytes2() ([]byte, error) {
	l, err := r.U16()
	if err != nil {
		return nil, err
	}
	return r.RawBytes(int(l))
}

// CompressedFloat2 reads the 2-byte compressed encoding over
// [0, maxRange].
func (r *Reader) CompressedFloat2(maxRange float32) (float32, error) {
	raw, err := r.U16()
	if err != nil {
		return 0, err
	}
	return DecompressFloat2(raw, maxRange), nil
}

// CompressedFloat3 reads the 3-byte compressed encoding over
// [0, maxRange].
func (r *Reader) CompressedFloat3(maxRange float32) (float32, error) {
	raw, err := r.U24()
	if err != nil {
		return 0, err
	}
	return DecompressFloat3(raw, maxRange), nil
}

// CompressedFloat1Clamped reads the 1-byte compressed encoding over
// [min, max].
func (r *Reader) CompressedFloat1Clamped(min, max float32) (float32, error) {
	raw, err := r.U8()
	if err != nil {
		return 0, err
	}
	return DecompressFloat1Clamped(raw, min, max), nil
}

// CompressedInt3 reads the 3-byte unsigned integer encoding.
func (r *Reader) CompressedInt3() (uint32, error) { return r.U24() }
