// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/binary"

	"github.com/mistcoin/mistd/fault"
)

// Signature - one attestation attached to a block by upstream consensus
//
// opaque to the engine: stored and returned byte for byte, never
// interpreted or verified here
type Signature struct {
	Signer    []byte `json:"signer"`
	Signature []byte `json:"signature"`
}

// limits for one block
const (
	MaximumSignatures    = 1000
	maximumSignaturePart = 1024
)

const (
	signatureCountSize = 2
	partCountSize      = 2
)

// PackSignatures - turn a signature list into the canonical packed form
func PackSignatures(signatures []Signature) []byte {
	packed := make([]byte, signatureCountSize, 64)
	binary.LittleEndian.PutUint16(packed, uint16(len(signatures)))

	count := make([]byte, partCountSize)
	for i := range signatures {
		binary.LittleEndian.PutUint16(count, uint16(len(signatures[i].Signer)))
		packed = append(packed, count...)
		packed = append(packed, signatures[i].Signer...)

		binary.LittleEndian.PutUint16(count, uint16(len(signatures[i].Signature)))
		packed = append(packed, count...)
		packed = append(packed, signatures[i].Signature...)
	}
	return packed
}

// UnpackSignatures - turn a packed record back into a signature list
func UnpackSignatures(record []byte) ([]Signature, error) {
	if len(record) < signatureCountSize {
		return nil, fault.ErrInvalidRecordLength
	}
	signatureCount := int(binary.LittleEndian.Uint16(record))
	if signatureCount > MaximumSignatures {
		return nil, fault.ErrTransactionCountOutOfRange
	}
	buffer := record[signatureCountSize:]

	unpackPart := func() ([]byte, error) {
		if len(buffer) < partCountSize {
			return nil, fault.ErrInvalidRecordLength
		}
		length := int(binary.LittleEndian.Uint16(buffer))
		if length > maximumSignaturePart {
			return nil, fault.ErrCorruptRecord
		}
		buffer = buffer[partCountSize:]
		if len(buffer) < length {
			return nil, fault.ErrInvalidRecordLength
		}
		part := make([]byte, length)
		copy(part, buffer[:length])
		buffer = buffer[length:]
		return part, nil
	}

	signatures := make([]Signature, 0, signatureCount)
	for i := 0; i < signatureCount; i += 1 {
		signer, err := unpackPart()
		if nil != err {
			return nil, err
		}
		signature, err := unpackPart()
		if nil != err {
			return nil, err
		}
		signatures = append(signatures, Signature{
			Signer:    signer,
			Signature: signature,
		})
	}
	if 0 != len(buffer) {
		return nil, fault.ErrCorruptRecord
	}
	return signatures, nil
}
