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

package abi_test

import (
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/clarity"
	"github.com/blinklabs-io/gostacks/clarity/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAbiJSON = `{
  "functions": [
    {
      "name": "transfer",
      "access": "public",
      "args": [
        {"name": "amount", "type": "uint128"},
        {"name": "confirm", "type": "bool"}
      ],
      "outputs": {"type": {"response": {"ok": "bool", "error": "uint128"}}}
    },
    {
      "name": "get-info",
      "access": "read_only",
      "args": [
        {"name": "id", "type": {"buffer": {"length": 4}}},
        {"name": "who", "type": {"optional": "principal"}},
        {"name": "entries", "type": {"list": {"type": "int128", "length": 2}}},
        {"name": "meta", "type": {"tuple": [{"name": "a", "type": "uint128"}, {"name": "b", "type": {"string-ascii": {"length": 8}}}]}}
      ],
      "outputs": {"type": "none"}
    },
    {"name": "dup", "access": "private", "args": [], "outputs": {"type": "bool"}},
    {"name": "dup", "access": "private", "args": [], "outputs": {"type": "bool"}}
  ],
  "variables": [{"name": "owner", "type": "principal", "access": "constant"}],
  "maps": [{"name": "balances", "key": "principal", "value": "uint128"}],
  "fungible_tokens": [{"name": "token"}],
  "non_fungible_tokens": [{"name": "nft", "type": {"string-utf8": {"length": 32}}}]
}`

func mustAbi(t *testing.T) abi.Abi {
	t.Helper()
	ret, err := abi.ParseAbi([]byte(testAbiJSON))
	require.NoError(t, err)
	return ret
}

func mustTuple(t *testing.T, fields ...clarity.TupleField) clarity.Tuple {
	t.Helper()
	ret, err := clarity.NewTuple(fields...)
	require.NoError(t, err)
	return ret
}

func TestParseAbi(t *testing.T) {
	contractAbi := mustAbi(t)
	require.Len(t, contractAbi.Functions, 4)
	transfer := contractAbi.Functions[0]
	assert.Equal(t, abi.AccessPublic, transfer.Access)
	assert.Equal(t, "(response bool uint)", transfer.Outputs.Type.String())
	info := contractAbi.Functions[1]
	assert.Equal(t, abi.BufferType(4), info.Args[0].Type)
	assert.Equal(t, "(optional principal)", info.Args[1].Type.String())
	assert.Equal(t, "(list 2 int)", info.Args[2].Type.String())
	assert.Equal(t, "(tuple (a uint) (b (string-ascii 8)))", info.Args[3].Type.String())
	assert.Equal(t, "(string-utf8 32)", contractAbi.NonFungibleTokens[0].Type.String())
	assert.Equal(t, abi.Primitive(abi.KindUInt128), contractAbi.Maps[0].Value)

	// Types survive a JSON round trip
	data, err := json.Marshal(info.Args[3].Type)
	require.NoError(t, err)
	var tmpType abi.Type
	require.NoError(t, json.Unmarshal(data, &tmpType))
	assert.Equal(t, info.Args[3].Type, tmpType)

	_, err = abi.ParseAbi([]byte(`{"functions": [{"name": "f", "args": [{"name": "x", "type": "float"}]}]}`))
	assert.Error(t, err)
	_, err = abi.ParseAbi([]byte(`{"functions": [{"name": "f", "args": [{"name": "x", "type": {"map": {}}}]}]}`))
	assert.Error(t, err)
}

func TestResolveFunction(t *testing.T) {
	contractAbi := mustAbi(t)
	fn, err := abi.ResolveFunction(contractAbi, "transfer")
	require.NoError(t, err)
	assert.Equal(t, "transfer", fn.Name)

	_, err = abi.ResolveFunction(contractAbi, "missing")
	assert.ErrorIs(t, err, abi.ErrFunctionNotFound)

	_, err = abi.ResolveFunction(contractAbi, "dup")
	var ambiguous abi.AmbiguousAbiError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Count)
	assert.ErrorIs(t, err, abi.ErrAmbiguousAbi)
}

func TestValidateCall(t *testing.T) {
	contractAbi := mustAbi(t)
	fn, err := abi.ResolveFunction(contractAbi, "transfer")
	require.NoError(t, err)

	err = abi.ValidateCall(
		[]clarity.Value{clarity.NewUIntFromUint64(10), clarity.True},
		fn,
	)
	assert.NoError(t, err)

	err = abi.ValidateCall(
		[]clarity.Value{clarity.NewIntFromInt64(10), clarity.True},
		fn,
	)
	var mismatch abi.ArgumentTypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Index)
	assert.Equal(t, "uint", mismatch.Expected)
	assert.Equal(t, "int", mismatch.Actual)
	assert.ErrorIs(t, err, abi.ErrArgumentTypeMismatch)

	// Fail fast on the first mismatch
	err = abi.ValidateCall(
		[]clarity.Value{clarity.NewIntFromInt64(10), clarity.NewIntFromInt64(1)},
		fn,
	)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Index)

	err = abi.ValidateCall([]clarity.Value{clarity.NewUIntFromUint64(10)}, fn)
	var countErr abi.ArgumentCountMismatchError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 2, countErr.Expected)
	assert.Equal(t, 1, countErr.Actual)

	err = abi.ValidateContractCall(contractAbi, "missing", nil)
	assert.ErrorIs(t, err, abi.ErrFunctionNotFound)
	err = abi.ValidateContractCall(
		contractAbi,
		"transfer",
		[]clarity.Value{clarity.NewUIntFromUint64(1), clarity.False},
	)
	assert.NoError(t, err)
}

func TestMatchType(t *testing.T) {
	addr := address.Address{Version: address.AddressVersionMainnetSingleSig}
	contract, err := clarity.NewContractPrincipal(addr, "c")
	require.NoError(t, err)
	ascii, err := clarity.NewStringASCII("abc")
	require.NoError(t, err)
	utf, err := clarity.NewStringUTF8("héé")
	require.NoError(t, err)
	tupleType := abi.TupleType(
		abi.TupleEntry{Name: "a", Type: abi.Primitive(abi.KindUInt128)},
		abi.TupleEntry{Name: "b", Type: abi.Primitive(abi.KindBool)},
	)
	testDefs := []struct {
		name    string
		value   clarity.Value
		abiType abi.Type
		match   bool
	}{
		{"BufferSameLength", clarity.NewBuffer([]byte{1, 2}), abi.BufferType(2), true},
		{"BufferShorter", clarity.NewBuffer([]byte{1}), abi.BufferType(2), false},
		{"BufferLonger", clarity.NewBuffer([]byte{1, 2, 3}), abi.BufferType(2), false},
		{"StandardPrincipal", clarity.NewStandardPrincipal(addr), abi.Primitive(abi.KindPrincipal), true},
		{"StandardPrincipalAsTrait", clarity.NewStandardPrincipal(addr), abi.Primitive(abi.KindTraitReference), false},
		{"ContractPrincipalAsTrait", contract, abi.Primitive(abi.KindTraitReference), true},
		{"NoneAsOptional", clarity.OptionalNone{}, abi.OptionalType(abi.Primitive(abi.KindBool)), true},
		{"NoneAsNone", clarity.OptionalNone{}, abi.Primitive(abi.KindNone), true},
		{"SomeMatching", clarity.NewSome(clarity.True), abi.OptionalType(abi.Primitive(abi.KindBool)), true},
		{"SomeWrongInner", clarity.NewSome(clarity.True), abi.OptionalType(abi.Primitive(abi.KindInt128)), false},
		{
			"OkSide",
			clarity.NewOk(clarity.True),
			abi.ResponseType(abi.Primitive(abi.KindBool), abi.Primitive(abi.KindUInt128)),
			true,
		},
		{
			"ErrSide",
			clarity.NewErr(clarity.True),
			abi.ResponseType(abi.Primitive(abi.KindBool), abi.Primitive(abi.KindUInt128)),
			false,
		},
		{
			"ListExactLength",
			clarity.NewList(clarity.NewIntFromInt64(1), clarity.NewIntFromInt64(2)),
			abi.ListType(abi.Primitive(abi.KindInt128), 2),
			true,
		},
		{
			"ListWrongLength",
			clarity.NewList(clarity.NewIntFromInt64(1)),
			abi.ListType(abi.Primitive(abi.KindInt128), 2),
			false,
		},
		{
			"ListWrongItem",
			clarity.NewList(clarity.NewIntFromInt64(1), clarity.True),
			abi.ListType(abi.Primitive(abi.KindInt128), 2),
			false,
		},
		{
			"TupleExtraField",
			mustTuple(
				t,
				clarity.TupleField{Name: "a", Value: clarity.NewUIntFromUint64(1)},
				clarity.TupleField{Name: "b", Value: clarity.True},
				clarity.TupleField{Name: "c", Value: clarity.False},
			),
			tupleType,
			true,
		},
		{
			"TupleMissingField",
			mustTuple(
				t,
				clarity.TupleField{Name: "a", Value: clarity.NewUIntFromUint64(1)},
				clarity.TupleField{Name: "c", Value: clarity.False},
			),
			tupleType,
			false,
		},
		{"StringASCIIShorter", ascii, abi.StringASCIIType(8), true},
		{"StringASCIITooLong", ascii, abi.StringASCIIType(2), false},
		{"StringUTF8Characters", utf, abi.StringUTF8Type(3), true},
		{"StringKindMismatch", ascii, abi.StringUTF8Type(8), false},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Equal(t, testDef.match, abi.MatchType(testDef.value, testDef.abiType))
		})
	}
}

func TestMatchTypeAfterDecode(t *testing.T) {
	encoded, err := clarity.Encode(clarity.NewBuffer([]byte{0xaa, 0xbb, 0xcc}))
	require.NoError(t, err)
	decoded, err := clarity.Decode(encoded)
	require.NoError(t, err)
	assert.True(t, abi.MatchType(decoded, abi.BufferType(3)))
	assert.False(t, abi.MatchType(decoded, abi.BufferType(4)))
}

func TestParseValue(t *testing.T) {
	v, err := abi.ParseValue("12345", abi.Primitive(abi.KindUInt128))
	require.NoError(t, err)
	assert.Equal(t, clarity.NewUIntFromUint64(12345), v)

	v, err = abi.ParseValue("-7", abi.Primitive(abi.KindInt128))
	require.NoError(t, err)
	assert.Equal(t, clarity.NewIntFromInt64(-7), v)

	v, err = abi.ParseValue("TRUE", abi.Primitive(abi.KindBool))
	require.NoError(t, err)
	assert.Equal(t, clarity.True, v)

	v, err = abi.ParseValue(
		"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.my-contract",
		abi.Primitive(abi.KindTraitReference),
	)
	require.NoError(t, err)
	assert.IsType(t, clarity.ContractPrincipal{}, v)

	v, err = abi.ParseValue("hi", abi.BufferType(4))
	require.NoError(t, err)
	assert.Equal(t, clarity.NewBuffer([]byte("hi")), v)

	_, err = abi.ParseValue("hello", abi.BufferType(4))
	assert.Error(t, err)
	_, err = abi.ParseValue("-1", abi.Primitive(abi.KindUInt128))
	assert.ErrorIs(t, err, clarity.ErrInvalidValue)
	_, err = abi.ParseValue("yes", abi.Primitive(abi.KindBool))
	assert.Error(t, err)
	_, err = abi.ParseValue("1", abi.Primitive(abi.KindNone))
	assert.ErrorIs(t, err, abi.ErrUnsupportedAbiEncoding)
	_, err = abi.ParseValue("u1", abi.ListType(abi.Primitive(abi.KindUInt128), 1))
	var unsupported abi.UnsupportedAbiEncodingError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "(list 1 uint)", unsupported.Type)

	fn, err := abi.ResolveFunction(mustAbi(t), "transfer")
	require.NoError(t, err)
	args, err := abi.ParseArgs([]string{"10", "true"}, fn)
	require.NoError(t, err)
	assert.NoError(t, abi.ValidateCall(args, fn))
	_, err = abi.ParseArgs([]string{"10"}, fn)
	assert.ErrorIs(t, err, abi.ErrArgumentCountMismatch)
}
