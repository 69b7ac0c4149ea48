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

package transaction

import (
	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/wire"
)

const maxAddressVersion = 31

func encodeAddress(w *wire.Writer, addr address.Address) {
	_ = w.WriteByte(addr.Version)
	w.WriteBytes(addr.Hash[:])
}

func decodeAddress(r *wire.Reader) (address.Address, error) {
	offset := r.Offset()
	var ret address.Address
	var err error
	if ret.Version, err = r.ReadByte(); err != nil {
		return address.Address{}, err
	}
	if ret.Version > maxAddressVersion {
		return address.Address{}, wire.MalformedValueError{
			Offset: offset,
			Reason: "address version out of range",
		}
	}
	if err := r.ReadInto(ret.Hash[:]); err != nil {
		return address.Address{}, err
	}
	return ret, nil
}

// decodeName reads a 1-byte length prefixed name and checks it with validate
func decodeName(r *wire.Reader, validate func(string) error) (string, error) {
	offset := r.Offset()
	name, err := r.ReadShortString()
	if err != nil {
		return "", err
	}
	if err := validate(name); err != nil {
		return "", wire.MalformedValueError{Offset: offset, Reason: err.Error()}
	}
	return name, nil
}
