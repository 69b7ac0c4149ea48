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

package clarity

import (
	"fmt"
	"unicode/utf8"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/wire"
)

const (
	DefaultMaxDepth       = 16
	DefaultMaxListLength  = 1 << 20
	DefaultMaxTupleFields = 1 << 16

	maxPrincipalVersion = 31
)

// DecodeConfig bounds the resources a single decode may consume
type DecodeConfig struct {
	// MaxDepth is the deepest nesting level allowed. The outermost value is at depth 0
	MaxDepth int
	// MaxListLength is the largest list item count accepted
	MaxListLength uint32
	// MaxTupleFields is the largest tuple field count accepted
	MaxTupleFields uint32
}

// DefaultDecodeConfig returns the limits used when no options are given
func DefaultDecodeConfig() DecodeConfig {
	return DecodeConfig{
		MaxDepth:       DefaultMaxDepth,
		MaxListLength:  DefaultMaxListLength,
		MaxTupleFields: DefaultMaxTupleFields,
	}
}

// DecodeOption is a function that modifies a DecodeConfig
type DecodeOption func(*DecodeConfig)

// WithMaxDepth sets the maximum nesting depth
func WithMaxDepth(depth int) DecodeOption {
	return func(c *DecodeConfig) {
		c.MaxDepth = depth
	}
}

// WithMaxListLength sets the maximum list item count
func WithMaxListLength(length uint32) DecodeOption {
	return func(c *DecodeConfig) {
		c.MaxListLength = length
	}
}

// WithMaxTupleFields sets the maximum tuple field count
func WithMaxTupleFields(count uint32) DecodeOption {
	return func(c *DecodeConfig) {
		c.MaxTupleFields = count
	}
}

// Decode decodes a single value that must span all of data
func Decode(data []byte, opts ...DecodeOption) (Value, error) {
	r := wire.NewReader(data)
	v, err := DecodeFrom(r, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeAt decodes a single value starting at offset and returns it along with the
// offset of the first byte after it
func DecodeAt(data []byte, offset int, opts ...DecodeOption) (Value, int, error) {
	r, err := wire.NewReaderAt(data, offset)
	if err != nil {
		return nil, offset, err
	}
	v, err := DecodeFrom(r, opts...)
	if err != nil {
		return nil, offset, err
	}
	return v, r.Offset(), nil
}

// DecodeFrom decodes a single value from the reader, leaving the cursor after it
func DecodeFrom(r *wire.Reader, opts ...DecodeOption) (Value, error) {
	d := decoder{
		r:   r,
		cfg: DefaultDecodeConfig(),
	}
	for _, opt := range opts {
		opt(&d.cfg)
	}
	return d.decode(0)
}

type decoder struct {
	r   *wire.Reader
	cfg DecodeConfig
}

func (d *decoder) malformed(offset int, format string, args ...any) error {
	return wire.MalformedValueError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) decode(depth int) (Value, error) {
	start := d.r.Offset()
	if depth > d.cfg.MaxDepth {
		return nil, wire.DepthExceededError{Offset: start, Limit: d.cfg.MaxDepth}
	}
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch ValueType(tag) {
	case TypeInt:
		var ret Int
		if err := d.r.ReadInto(ret.raw[:]); err != nil {
			return nil, err
		}
		return ret, nil
	case TypeUInt:
		var ret UInt
		if err := d.r.ReadInto(ret.raw[:]); err != nil {
			return nil, err
		}
		return ret, nil
	case TypeBuffer:
		data, err := d.r.ReadLongBytes()
		if err != nil {
			return nil, err
		}
		return Buffer{Data: data}, nil
	case TypeBoolTrue:
		return True, nil
	case TypeBoolFalse:
		return False, nil
	case TypePrincipalStandard:
		addr, err := d.address()
		if err != nil {
			return nil, err
		}
		return StandardPrincipal{Address: addr}, nil
	case TypePrincipalContract:
		addr, err := d.address()
		if err != nil {
			return nil, err
		}
		nameOffset := d.r.Offset()
		name, err := d.r.ReadShortString()
		if err != nil {
			return nil, err
		}
		if err := ValidateContractName(name); err != nil {
			return nil, d.malformed(nameOffset, "%s", err)
		}
		return ContractPrincipal{Address: addr, Name: name}, nil
	case TypeResponseOk:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		return ResponseOk{Value: inner}, nil
	case TypeResponseErr:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		return ResponseErr{Value: inner}, nil
	case TypeOptionalNone:
		return OptionalNone{}, nil
	case TypeOptionalSome:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		return OptionalSome{Value: inner}, nil
	case TypeList:
		return d.list(depth)
	case TypeTuple:
		return d.tuple(depth)
	case TypeStringASCII:
		data, err := d.r.ReadLongBytes()
		if err != nil {
			return nil, err
		}
		for idx, b := range data {
			if b >= utf8.RuneSelf {
				return nil, d.malformed(
					start+5+idx,
					"non-ASCII byte 0x%02x in string-ascii",
					b,
				)
			}
		}
		return StringASCII{Data: string(data)}, nil
	case TypeStringUTF8:
		data, err := d.r.ReadLongBytes()
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			return nil, d.malformed(start, "invalid UTF-8 in string-utf8")
		}
		return StringUTF8{Data: string(data)}, nil
	default:
		return nil, d.malformed(start, "unknown type tag 0x%02x", tag)
	}
}

func (d *decoder) address() (address.Address, error) {
	offset := d.r.Offset()
	version, err := d.r.ReadByte()
	if err != nil {
		return address.Address{}, err
	}
	if version > maxPrincipalVersion {
		return address.Address{}, d.malformed(
			offset,
			"principal version %d out of range",
			version,
		)
	}
	var ret address.Address
	ret.Version = version
	if err := d.r.ReadInto(ret.Hash[:]); err != nil {
		return address.Address{}, err
	}
	return ret, nil
}

// count reads a 4-byte item count and checks it against the configured limit and
// against the bytes left, since every item takes at least one byte
func (d *decoder) count(kind string, limit uint32) (int, error) {
	offset := d.r.Offset()
	count, err := d.r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if count > limit {
		return 0, d.malformed(
			offset,
			"%s count %d exceeds maximum of %d",
			kind,
			count,
			limit,
		)
	}
	if uint64(count) > uint64(d.r.Remaining()) {
		return 0, wire.TruncatedInputError{
			Offset:    d.r.Offset(),
			Needed:    int(count),
			Remaining: d.r.Remaining(),
		}
	}
	return int(count), nil
}

func (d *decoder) list(depth int) (Value, error) {
	count, err := d.count("list", d.cfg.MaxListLength)
	if err != nil {
		return nil, err
	}
	items := make([]Value, 0, count)
	for range count {
		item, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return List{Items: items}, nil
}

func (d *decoder) tuple(depth int) (Value, error) {
	count, err := d.count("tuple field", d.cfg.MaxTupleFields)
	if err != nil {
		return nil, err
	}
	fields := make([]TupleField, 0, count)
	seen := make(map[string]struct{}, count)
	for range count {
		nameOffset := d.r.Offset()
		name, err := d.r.ReadShortString()
		if err != nil {
			return nil, err
		}
		if err := ValidateClarityName(name); err != nil {
			return nil, d.malformed(nameOffset, "%s", err)
		}
		if _, ok := seen[name]; ok {
			return nil, d.malformed(nameOffset, "duplicate tuple field name %q", name)
		}
		seen[name] = struct{}{}
		val, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		fields = append(fields, TupleField{Name: name, Value: val})
	}
	return Tuple{Fields: fields}, nil
}
