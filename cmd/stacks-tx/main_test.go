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

package main

import (
	"context"
	"encoding/hex"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/internal/test"
	"github.com/blinklabs-io/gostacks/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func TestParseHashMode(t *testing.T) {
	hashMode, err := parseHashMode("p2wsh")
	require.NoError(t, err)
	assert.Equal(t, address.HashModeP2WSH, hashMode)
	_, err = parseHashMode("p2tr")
	assert.Error(t, err)
}

func TestOriginFlags(t *testing.T) {
	keyHex := func(idx int) string {
		return hex.EncodeToString(test.PrivateKey(idx).PublicKey().Bytes())
	}

	var none originFlags
	_, ok, err := none.origin()
	require.NoError(t, err)
	assert.False(t, ok)

	single := originFlags{publicKeys: stringList{keyHex(0)}, signaturesRequired: 1}
	origin, ok, err := single.origin()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, address.HashModeP2PKH, origin.HashMode)

	multi := originFlags{
		publicKeys:         stringList{keyHex(0) + "," + keyHex(1), keyHex(2)},
		signaturesRequired: 2,
	}
	origin, ok, err = multi.origin()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, address.HashModeP2SH, origin.HashMode)
	assert.Len(t, origin.PublicKeys, 3)
	assert.Equal(t, uint16(2), origin.SignaturesRequired)

	tooMany := originFlags{publicKeys: stringList{keyHex(0)}, signaturesRequired: 2}
	_, _, err = tooMany.origin()
	assert.Error(t, err)
}

func TestReadHexInput(t *testing.T) {
	data, err := readHexInput(" 0x0a0b\n", "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, data)
	_, err = readHexInput("", "")
	assert.Error(t, err)
}

func TestPostConditionString(t *testing.T) {
	pc, err := transaction.NewStxPostCondition(
		transaction.OriginPrincipal(),
		transaction.FungibleConditionGreaterEqual,
		12345,
	)
	require.NoError(t, err)
	assert.Equal(t, "origin stx gte 12345", postConditionString(pc))
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := newLogger(debug)
		require.NoError(t, err)
		slogger := slog.New(zapslog.NewHandler(logger.Core()))
		assert.Equal(t, debug, logger.Core().Enabled(zap.DebugLevel))
		assert.Equal(t, debug, slogger.Enabled(context.Background(), slog.LevelDebug))
	}
}
