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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/gostacks/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArrayStruct struct {
	cbor.StructAsArray
	Version uint
	Data    []byte
	Keys    [][]byte
}

func TestEncode(t *testing.T) {
	testDefs := []struct {
		object  any
		dataHex string
	}{
		{
			object:  testArrayStruct{Version: 1, Data: []byte{0x01, 0x02}, Keys: [][]byte{{0xff}}},
			dataHex: "83014201028141ff",
		},
		{
			// Map keys are sorted
			object:  map[string]int{"b": 1, "a": 2},
			dataHex: "a2616102616201",
		},
	}
	for _, testDef := range testDefs {
		data, err := cbor.Encode(testDef.object)
		require.NoError(t, err)
		assert.Equal(t, testDef.dataHex, hex.EncodeToString(data))
	}
}

func TestDecode(t *testing.T) {
	data, _ := hex.DecodeString("83014201028141ff")
	var dest testArrayStruct
	n, err := cbor.Decode(data, &dest)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint(1), dest.Version)
	assert.Equal(t, []byte{0x01, 0x02}, dest.Data)
	assert.Equal(t, [][]byte{{0xff}}, dest.Keys)
}

func TestDecodeFull(t *testing.T) {
	data, _ := hex.DecodeString("83014201028141ff00")
	var dest testArrayStruct
	// Decode stops after the first item
	n, err := cbor.Decode(data, &dest)
	require.NoError(t, err)
	assert.Equal(t, len(data)-1, n)
	assert.Error(t, cbor.DecodeFull(data, &dest))
}

func TestDecodeNestingLimit(t *testing.T) {
	data := make([]byte, 0, cbor.MaxNestedLevels+2)
	for range cbor.MaxNestedLevels + 1 {
		// Single element array
		data = append(data, 0x81)
	}
	data = append(data, 0x00)
	var dest any
	assert.Error(t, cbor.DecodeFull(data, &dest))
}
