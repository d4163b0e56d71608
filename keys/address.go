// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/mistcoin/mistd/fault"
)

const (
	checksumLength    = 4
	fingerprintLength = 8
)

// Address - the public keys a sender needs to pay an account
type Address struct {
	ViewPublic  [ed25519.PublicKeySize]byte `json:"viewPublic"`
	SpendPublic [ed25519.PublicKeySize]byte `json:"spendPublic"`
}

// String - base58 rendering of view key, spend key and a checksum
func (address Address) String() string {
	buffer := make([]byte, 0, 2*ed25519.PublicKeySize+checksumLength)
	buffer = append(buffer, address.ViewPublic[:]...)
	buffer = append(buffer, address.SpendPublic[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON etc.
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - decode and verify a rendered address
func (address *Address) UnmarshalText(s []byte) error {
	decoded, err := base58.Decode(string(s))
	if nil != err {
		return fault.ErrCannotDecodeAddress
	}
	if 2*ed25519.PublicKeySize+checksumLength != len(decoded) {
		return fault.ErrCannotDecodeAddress
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return fault.ErrChecksumMismatch
	}

	copy(address.ViewPublic[:], decoded[:ed25519.PublicKeySize])
	copy(address.SpendPublic[:], decoded[ed25519.PublicKeySize:checksumStart])
	return nil
}

// AddressFromString - decode a rendered address
func AddressFromString(s string) (*Address, error) {
	address := &Address{}
	if err := address.UnmarshalText([]byte(s)); nil != err {
		return nil, err
	}
	return address, nil
}

// Fingerprint - short hex identifier for logs and listings
//
// a prefix of the digest of both public keys, not a substitute for
// the full address
func (address Address) Fingerprint() string {
	digest := sha3.Sum256(append(address.ViewPublic[:], address.SpendPublic[:]...))
	return hex.EncodeToString(digest[:fingerprintLength])
}

// VerifyBySpendKey - check a signature against the spend public key
func (address Address) VerifyBySpendKey(message []byte, signature []byte) bool {
	return ed25519.Verify(address.SpendPublic[:], message, signature)
}

// VerifyByViewKey - check a signature against the view public key
func (address Address) VerifyByViewKey(message []byte, signature []byte) bool {
	return ed25519.Verify(address.ViewPublic[:], message, signature)
}
