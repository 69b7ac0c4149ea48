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

// Package abi models published contract interfaces and checks call arguments against them.
//
// The ABI is consumed as plain data. Fetching it from a node is left to the caller.
package abi

import (
	"encoding/json"
	"fmt"
)

// Access is the visibility of a contract function or variable
type Access string

const (
	AccessPublic   Access = "public"
	AccessReadOnly Access = "read_only"
	AccessPrivate  Access = "private"
	AccessConstant Access = "constant"
	AccessVariable Access = "variable"
)

type Abi struct {
	Functions         []Function         `json:"functions"`
	Variables         []Variable         `json:"variables"`
	Maps              []Map              `json:"maps"`
	FungibleTokens    []FungibleToken    `json:"fungible_tokens"`
	NonFungibleTokens []NonFungibleToken `json:"non_fungible_tokens"`
	ClarityVersion    string             `json:"clarity_version,omitempty"`
	Epoch             string             `json:"epoch,omitempty"`
}

type Function struct {
	Name    string     `json:"name"`
	Access  Access     `json:"access"`
	Args    []Argument `json:"args"`
	Outputs Output     `json:"outputs"`
}

type Argument struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

type Output struct {
	Type Type `json:"type"`
}

type Variable struct {
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Access Access `json:"access"`
}

type Map struct {
	Name  string `json:"name"`
	Key   Type   `json:"key"`
	Value Type   `json:"value"`
}

type FungibleToken struct {
	Name string `json:"name"`
}

type NonFungibleToken struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// ParseAbi decodes a contract interface from its JSON form
func ParseAbi(data []byte) (Abi, error) {
	var ret Abi
	if err := json.Unmarshal(data, &ret); err != nil {
		return Abi{}, fmt.Errorf("failed to decode contract ABI: %w", err)
	}
	return ret, nil
}

// ResolveFunction returns the single function with the given name
func ResolveFunction(contractAbi Abi, name string) (Function, error) {
	var ret Function
	count := 0
	for _, fn := range contractAbi.Functions {
		if fn.Name == name {
			ret = fn
			count++
		}
	}
	switch count {
	case 0:
		return Function{}, FunctionNotFoundError{Name: name}
	case 1:
		return ret, nil
	default:
		return Function{}, AmbiguousAbiError{Name: name, Count: count}
	}
}
