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
	"errors"
	"fmt"

	"github.com/blinklabs-io/gostacks/wire"
)

// Authorization is either standard (origin only) or sponsored (origin plus a sponsor
// who pays the fee)
type Authorization struct {
	Type    AuthType
	Origin  SpendingCondition
	Sponsor SpendingCondition
}

func NewStandardAuthorization(origin SpendingCondition) Authorization {
	return Authorization{
		Type:   AuthTypeStandard,
		Origin: origin,
	}
}

// NewSponsoredAuthorization returns a sponsored authorization. A nil sponsor is replaced
// by an empty placeholder to be set once the sponsor is known
func NewSponsoredAuthorization(origin SpendingCondition, sponsor SpendingCondition) Authorization {
	if sponsor == nil {
		sponsor = initialSigHashSponsor()
	}
	return Authorization{
		Type:    AuthTypeSponsored,
		Origin:  origin,
		Sponsor: sponsor,
	}
}

func (a Authorization) clone() Authorization {
	ret := Authorization{Type: a.Type}
	if a.Origin != nil {
		ret.Origin = cloneSpendingCondition(a.Origin)
	}
	if a.Sponsor != nil {
		ret.Sponsor = cloneSpendingCondition(a.Sponsor)
	}
	return ret
}

// intoInitialSigHash returns the authorization with every condition reset to its
// pre-signing form
func (a Authorization) intoInitialSigHash() Authorization {
	ret := Authorization{
		Type:   a.Type,
		Origin: clearSpendingCondition(a.Origin),
	}
	if a.Type == AuthTypeSponsored {
		ret.Sponsor = initialSigHashSponsor()
	}
	return ret
}

func encodeAuthorization(w *wire.Writer, auth Authorization) error {
	if auth.Origin == nil {
		return errors.New("authorization has no origin spending condition")
	}
	_ = w.WriteByte(byte(auth.Type))
	switch auth.Type {
	case AuthTypeStandard:
		return encodeSpendingCondition(w, auth.Origin)
	case AuthTypeSponsored:
		if auth.Sponsor == nil {
			return errors.New("sponsored authorization has no sponsor spending condition")
		}
		if err := encodeSpendingCondition(w, auth.Origin); err != nil {
			return err
		}
		return encodeSpendingCondition(w, auth.Sponsor)
	default:
		return fmt.Errorf("unknown authorization type %s", auth.Type)
	}
}

func decodeAuthorization(r *wire.Reader) (Authorization, error) {
	offset := r.Offset()
	authType, err := r.ReadByte()
	if err != nil {
		return Authorization{}, err
	}
	ret := Authorization{Type: AuthType(authType)}
	switch ret.Type {
	case AuthTypeStandard, AuthTypeSponsored:
	default:
		return Authorization{}, wire.UnsupportedVariantError{
			Offset: offset,
			Field:  "authorization type",
			Tag:    uint64(authType),
		}
	}
	if ret.Origin, err = decodeSpendingCondition(r); err != nil {
		return Authorization{}, err
	}
	if ret.Type == AuthTypeSponsored {
		if ret.Sponsor, err = decodeSpendingCondition(r); err != nil {
			return Authorization{}, err
		}
	}
	return ret, nil
}
