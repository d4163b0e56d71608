// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/mistcoin/mistd/fault"
)

// byte sizes for the txout fields
const (
	PublicKeySize    = 32 // one-time output public key
	CommitmentSize   = 32 // amount commitment
	payloadCountSize = 2  // length of the encrypted payload

	// MaximumPayloadSize - sanity limit for the encrypted payload
	MaximumPayloadSize = 2048

	minimumTxOutSize = PublicKeySize + CommitmentSize + payloadCountSize
)

// TxOut - one transaction output
//
// the payload is opaque to the engine: only the owner's view key can
// decrypt it
type TxOut struct {
	PublicKey        [PublicKeySize]byte  `json:"publicKey"`
	Commitment       [CommitmentSize]byte `json:"commitment"`
	EncryptedPayload []byte               `json:"encryptedPayload"`
}

// PackedTxOut - a packed txout record
type PackedTxOut []byte

// Pack - turn a txout into its canonical packed form
func (txOut *TxOut) Pack() PackedTxOut {
	packed := make(PackedTxOut, 0, minimumTxOutSize+len(txOut.EncryptedPayload))
	packed = append(packed, txOut.PublicKey[:]...)
	packed = append(packed, txOut.Commitment[:]...)

	count := make([]byte, payloadCountSize)
	binary.LittleEndian.PutUint16(count, uint16(len(txOut.EncryptedPayload)))
	packed = append(packed, count...)
	packed = append(packed, txOut.EncryptedPayload...)
	return packed
}

// UnpackTxOut - unpack one txout from the front of a buffer
//
// returns the txout and the number of bytes consumed so contents
// records can be unpacked sequentially
func UnpackTxOut(buffer []byte) (*TxOut, int, error) {
	if len(buffer) < minimumTxOutSize {
		return nil, 0, fault.ErrInvalidRecordLength
	}

	txOut := &TxOut{}
	copy(txOut.PublicKey[:], buffer[:PublicKeySize])
	copy(txOut.Commitment[:], buffer[PublicKeySize:PublicKeySize+CommitmentSize])

	payloadLength := int(binary.LittleEndian.Uint16(buffer[PublicKeySize+CommitmentSize:]))
	if payloadLength > MaximumPayloadSize {
		return nil, 0, fault.ErrCorruptRecord
	}

	total := minimumTxOutSize + payloadLength
	if len(buffer) < total {
		return nil, 0, fault.ErrInvalidRecordLength
	}

	txOut.EncryptedPayload = make([]byte, payloadLength)
	copy(txOut.EncryptedPayload, buffer[minimumTxOutSize:total])
	return txOut, total, nil
}

// KeyImageLength - number of bytes in a key image
const KeyImageLength = 32

// KeyImage - unique tag marking an output as spent
type KeyImage [KeyImageLength]byte

// KeyImageFromBytes - convert and validate a byte slice
func KeyImageFromBytes(keyImage *KeyImage, buffer []byte) error {
	if KeyImageLength != len(buffer) {
		return fault.ErrInvalidKeyLength
	}
	copy(keyImage[:], buffer)
	return nil
}

// String - hex representation for use by the fmt package (for %s)
func (keyImage KeyImage) String() string {
	return hex.EncodeToString(keyImage[:])
}

// MarshalText - convert a key image to hex text
func (keyImage KeyImage) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(keyImage))
	buffer := make([]byte, size)
	hex.Encode(buffer, keyImage[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a key image
func (keyImage *KeyImage) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	return KeyImageFromBytes(keyImage, buffer[:byteCount])
}
