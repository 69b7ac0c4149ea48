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

package wire

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderPrimitives(t *testing.T) {
	w := NewWriter()
	_ = w.WriteByte(0xab)
	w.WriteUint16(0x0102)
	w.WriteUint32(0x03040506)
	w.WriteUint64(0x0708090a0b0c0d0e)
	require.NoError(t, w.WriteShortString("hello"))
	require.NoError(t, w.WriteLongBytes([]byte{0xde, 0xad}))
	assert.Equal(
		t,
		[]byte{
			0xab,
			0x01, 0x02,
			0x03, 0x04, 0x05, 0x06,
			0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
			0x05, 'h', 'e', 'l', 'l', 'o',
			0x00, 0x00, 0x00, 0x02, 0xde, 0xad,
		},
		w.Bytes(),
	)

	r := NewReader(w.Bytes())
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), b)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x03040506), u32)
	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0708090a0b0c0d0e), u64)
	s, err := r.ReadShortString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	data, err := r.ReadLongBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, data)
	assert.NoError(t, r.Finish())
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x05, 0x01})
	_, err := r.ReadLongBytes()
	require.Error(t, err)
	var truncErr TruncatedInputError
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, 4, truncErr.Offset)
	assert.Equal(t, 5, truncErr.Needed)
	assert.Equal(t, 1, truncErr.Remaining)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.ErrorIs(t, err, ErrMalformedValue)
}

func TestReaderTrailingData(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.ReadByte()
	require.NoError(t, err)
	err = r.Finish()
	assert.ErrorIs(t, err, ErrTrailingData)
	assert.Equal(t, "1 bytes of trailing data at offset 1", err.Error())
}

func TestWriteShortStringTooLong(t *testing.T) {
	w := NewWriter()
	err := w.WriteShortString(strings.Repeat("a", 256))
	assert.Error(t, err)
	assert.Equal(t, 0, w.Len())
}

func TestNewReaderAt(t *testing.T) {
	r, err := NewReaderAt([]byte{0x01, 0x02, 0x03}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Offset())
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), b)
	_, err = r.ReadByte()
	assert.ErrorIs(t, err, ErrTruncatedInput)

	for _, offset := range []int{-1, 4} {
		_, err := NewReaderAt([]byte{0x01, 0x02, 0x03}, offset)
		assert.Error(t, err)
	}
}
