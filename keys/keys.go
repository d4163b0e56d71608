// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keys - account key derivation
//
// An account is derived from 32 bytes of root entropy: the view and
// spend signing pairs are expanded from it with HKDF-SHA3 under
// distinct info strings, so the two subkeys cannot be related without
// the entropy.
package keys

import (
	"io"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/mistcoin/mistd/fault"
)

// EntropyLength - bytes of root entropy for one account
const EntropyLength = 32

// domain separation for the two subkeys
const (
	viewKeyInfo  = "mist-view-key"
	spendKeyInfo = "mist-spend-key"
)

// RootEntropy - the single secret an account is derived from
type RootEntropy [EntropyLength]byte

// RootEntropyFromBytes - validate the length of external entropy
func RootEntropyFromBytes(entropy *RootEntropy, buffer []byte) error {
	if EntropyLength != len(buffer) {
		return fault.ErrInvalidKeyLength
	}
	copy(entropy[:], buffer)
	return nil
}

// AccountKey - the private half of an account
type AccountKey struct {
	viewPrivate  ed25519.PrivateKey
	spendPrivate ed25519.PrivateKey
}

// NewAccountKey - derive the account subkeys from root entropy
func NewAccountKey(entropy RootEntropy) (*AccountKey, error) {
	viewSeed, err := deriveSeed(entropy, viewKeyInfo)
	if nil != err {
		return nil, err
	}
	spendSeed, err := deriveSeed(entropy, spendKeyInfo)
	if nil != err {
		return nil, err
	}
	return &AccountKey{
		viewPrivate:  ed25519.NewKeyFromSeed(viewSeed),
		spendPrivate: ed25519.NewKeyFromSeed(spendSeed),
	}, nil
}

// expand one ed25519 seed from the root entropy
func deriveSeed(entropy RootEntropy, info string) ([]byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	expander := hkdf.New(sha3.New256, entropy[:], nil, []byte(info))
	if _, err := io.ReadFull(expander, seed); nil != err {
		return nil, err
	}
	return seed, nil
}

// Address - the public half of an account
func (account *AccountKey) Address() *Address {
	address := &Address{}
	copy(address.ViewPublic[:], account.viewPrivate.Public().(ed25519.PublicKey))
	copy(address.SpendPublic[:], account.spendPrivate.Public().(ed25519.PublicKey))
	return address
}

// SignWithSpendKey - sign a message with the spend key
//
// block signatures carry this signature with the spend public key as
// the signer
func (account *AccountKey) SignWithSpendKey(message []byte) []byte {
	return ed25519.Sign(account.spendPrivate, message)
}

// SignWithViewKey - sign a message with the view key
func (account *AccountKey) SignWithViewKey(message []byte) []byte {
	return ed25519.Sign(account.viewPrivate, message)
}
