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
	"regexp"
)

const (
	MaxClarityNameLength  = 128
	MaxContractNameLength = 128
)

var (
	clarityNameRegex = regexp.MustCompile(
		`^[a-zA-Z]([a-zA-Z0-9]|[-_!?+<>=/*])*$|^[-+=/*]$|^[<>]=?$`,
	)
	contractNameRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$`)
)

// ValidateClarityName checks a function, asset, or tuple field name
func ValidateClarityName(name string) error {
	return validateName("clarity", name, MaxClarityNameLength, clarityNameRegex)
}

// ValidateContractName checks a contract name
func ValidateContractName(name string) error {
	return validateName("contract", name, MaxContractNameLength, contractNameRegex)
}

func validateName(kind string, name string, maxLen int, re *regexp.Regexp) error {
	if len(name) == 0 {
		return InvalidNameError{Kind: kind, Name: name, Reason: "empty"}
	}
	if len(name) > maxLen {
		return InvalidNameError{
			Kind:   kind,
			Name:   name,
			Reason: fmt.Sprintf("longer than %d bytes", maxLen),
		}
	}
	if !re.MatchString(name) {
		return InvalidNameError{
			Kind:   kind,
			Name:   name,
			Reason: "contains invalid characters",
		}
	}
	return nil
}
