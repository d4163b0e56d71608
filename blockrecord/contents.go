// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/binary"

	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/fault"
)

// limits for one block
//
// limited so a corrupt count cannot drive a huge allocation
const (
	MaximumTxOuts    = 10000
	MaximumKeyImages = 10000
)

const countSize = 4

// Contents - the outputs created and key images spent by one block
//
// owned by exactly one block and immutable once that block is written
type Contents struct {
	TxOuts    []TxOut    `json:"txOuts"`
	KeyImages []KeyImage `json:"keyImages"`
}

// PackedContents - a packed contents record
type PackedContents []byte

// Pack - turn block contents into the canonical packed form
//
// the contents hash in the block header is the digest of exactly this
// packing
func (contents *Contents) Pack() PackedContents {
	packed := make(PackedContents, 0, 256)

	count := make([]byte, countSize)
	binary.LittleEndian.PutUint32(count, uint32(len(contents.TxOuts)))
	packed = append(packed, count...)
	for i := range contents.TxOuts {
		packed = append(packed, contents.TxOuts[i].Pack()...)
	}

	binary.LittleEndian.PutUint32(count, uint32(len(contents.KeyImages)))
	packed = append(packed, count...)
	for i := range contents.KeyImages {
		packed = append(packed, contents.KeyImages[i][:]...)
	}
	return packed
}

// Unpack - turn a packed record back into block contents
func (record PackedContents) Unpack() (*Contents, error) {
	buffer := []byte(record)
	if len(buffer) < countSize {
		return nil, fault.ErrInvalidRecordLength
	}

	txOutCount := int(binary.LittleEndian.Uint32(buffer))
	if txOutCount > MaximumTxOuts {
		return nil, fault.ErrTransactionCountOutOfRange
	}
	buffer = buffer[countSize:]

	contents := &Contents{
		TxOuts: make([]TxOut, 0, txOutCount),
	}
	for i := 0; i < txOutCount; i += 1 {
		txOut, n, err := UnpackTxOut(buffer)
		if nil != err {
			return nil, err
		}
		contents.TxOuts = append(contents.TxOuts, *txOut)
		buffer = buffer[n:]
	}

	if len(buffer) < countSize {
		return nil, fault.ErrInvalidRecordLength
	}
	keyImageCount := int(binary.LittleEndian.Uint32(buffer))
	if keyImageCount > MaximumKeyImages {
		return nil, fault.ErrTransactionCountOutOfRange
	}
	buffer = buffer[countSize:]

	if len(buffer) != keyImageCount*KeyImageLength {
		return nil, fault.ErrInvalidRecordLength
	}
	contents.KeyImages = make([]KeyImage, keyImageCount)
	for i := 0; i < keyImageCount; i += 1 {
		copy(contents.KeyImages[i][:], buffer[:KeyImageLength])
		buffer = buffer[KeyImageLength:]
	}
	return contents, nil
}

// Digest - the contents hash committed to by the block header
func (record PackedContents) Digest() blockdigest.Digest {
	return blockdigest.NewDigest(record)
}
