// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wire provides the big-endian primitives shared by the Clarity value codec
// and the transaction envelope codec.
//
// Decoding works over an in-memory byte slice with an explicit cursor, so every error
// can report the byte offset at which it occurred.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// MaxShortLength is the largest length that fits a 1-byte length prefix
const MaxShortLength = math.MaxUint8

// Reader decodes big-endian primitives from a byte slice
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// NewReaderAt returns a Reader positioned at the given offset into data. The offset may
// equal len(data) but not exceed it
func NewReaderAt(data []byte, offset int) (*Reader, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("offset %d out of range for %d bytes", offset, len(data))
	}
	return &Reader{data: data, pos: offset}, nil
}

// Offset returns the current cursor position
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) need(n int) error {
	if n < 0 || n > r.Remaining() {
		return TruncatedInputError{
			Offset:    r.pos,
			Needed:    n,
			Remaining: r.Remaining(),
		}
	}
	return nil
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads n bytes and returns a copy of them
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	ret := make([]byte, n)
	copy(ret, r.data[r.pos:r.pos+n])
	r.pos += n
	return ret, nil
}

// ReadInto fills dst from the input
func (r *Reader) ReadInto(dst []byte) error {
	if err := r.need(len(dst)); err != nil {
		return err
	}
	copy(dst, r.data[r.pos:r.pos+len(dst)])
	r.pos += len(dst)
	return nil
}

// ReadUint16 reads a big-endian uint16
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadUint64 reads a big-endian uint64
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadShortString reads a string with a 1-byte length prefix
func (r *Reader) ReadShortString() (string, error) {
	length, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	tmp, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(tmp), nil
}

// ReadLongBytes reads a byte string with a 4-byte length prefix
func (r *Reader) ReadLongBytes() ([]byte, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(r.Remaining()) {
		return nil, TruncatedInputError{
			Offset:    r.pos,
			Needed:    int(length),
			Remaining: r.Remaining(),
		}
	}
	return r.ReadBytes(int(length))
}

// Finish returns an error if any input remains unread
func (r *Reader) Finish() error {
	if r.Remaining() > 0 {
		return TrailingDataError{
			Offset:    r.pos,
			Remaining: r.Remaining(),
		}
	}
	return nil
}

// Writer encodes big-endian primitives into a growing buffer
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded data
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteByte appends a single byte. It never returns an error
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteBytes appends raw bytes
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteUint16 appends a big-endian uint16
func (w *Writer) WriteUint16(v uint16) {
	w.buf.Write(binary.BigEndian.AppendUint16(nil, v))
}

// WriteUint32 appends a big-endian uint32
func (w *Writer) WriteUint32(v uint32) {
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
}

// WriteUint64 appends a big-endian uint64
func (w *Writer) WriteUint64(v uint64) {
	w.buf.Write(binary.BigEndian.AppendUint64(nil, v))
}

// WriteShortString appends a string with a 1-byte length prefix
func (w *Writer) WriteShortString(s string) error {
	if len(s) > MaxShortLength {
		return fmt.Errorf(
			"string length %d exceeds maximum of %d",
			len(s),
			MaxShortLength,
		)
	}
	_ = w.buf.WriteByte(byte(len(s)))
	w.buf.WriteString(s)
	return nil
}

// WriteLongBytes appends a byte string with a 4-byte length prefix
func (w *Writer) WriteLongBytes(data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf(
			"byte string length %d exceeds maximum of %d",
			len(data),
			uint64(math.MaxUint32),
		)
	}
	w.WriteUint32(uint32(len(data))) // #nosec G115
	w.buf.Write(data)
	return nil
}
