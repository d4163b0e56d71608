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

// PackedHeader - use fixed size array to simplify validation
type PackedHeader [TotalHeaderSize]byte

// currently supported block version
const (
	Version        = 1
	MinimumVersion = 1
)

// byte sizes for the header fields
const (
	VersionSize            = 2                  // block version number
	IndexSize              = 8                  // position of this block in the chain
	ParentIDSize           = blockdigest.Length // digest of the previous block header
	CumulativeTxoCountSize = 8                  // total txouts in the chain including this block
	ContentsHashSize       = blockdigest.Length // digest of the packed block contents
)

// offsets of the fields
const (
	versionOffset            = 0
	indexOffset              = versionOffset + VersionSize
	parentIDOffset           = indexOffset + IndexSize
	cumulativeTxoCountOffset = parentIDOffset + ParentIDSize
	contentsHashOffset       = cumulativeTxoCountOffset + CumulativeTxoCountSize

	// TotalHeaderSize - total bytes in a packed header
	TotalHeaderSize = contentsHashOffset + ContentsHashSize
)

// Header - the unpacked header structure
type Header struct {
	Version            uint16             `json:"version"`
	Index              uint64             `json:"index,string"`
	ParentID           blockdigest.Digest `json:"parentId"`
	CumulativeTxoCount uint64             `json:"cumulativeTxoCount,string"`
	ContentsHash       blockdigest.Digest `json:"contentsHash"`
}

// Pack - turn a header into its canonical packed form
func (header *Header) Pack() PackedHeader {
	packed := PackedHeader{}
	binary.LittleEndian.PutUint16(packed[versionOffset:], header.Version)
	binary.LittleEndian.PutUint64(packed[indexOffset:], header.Index)
	copy(packed[parentIDOffset:], header.ParentID[:])
	binary.LittleEndian.PutUint64(packed[cumulativeTxoCountOffset:], header.CumulativeTxoCount)
	copy(packed[contentsHashOffset:], header.ContentsHash[:])
	return packed
}

// Unpack - turn a packed record back into a header
func (record PackedHeader) Unpack() (*Header, error) {
	header := &Header{}

	header.Version = binary.LittleEndian.Uint16(record[versionOffset:])
	if header.Version < MinimumVersion || header.Version > Version {
		return nil, fault.ErrInvalidBlockVersion
	}

	header.Index = binary.LittleEndian.Uint64(record[indexOffset:])
	header.CumulativeTxoCount = binary.LittleEndian.Uint64(record[cumulativeTxoCountOffset:])

	err := blockdigest.DigestFromBytes(&header.ParentID, record[parentIDOffset:cumulativeTxoCountOffset])
	if nil != err {
		return nil, err
	}
	err = blockdigest.DigestFromBytes(&header.ContentsHash, record[contentsHashOffset:])
	if nil != err {
		return nil, err
	}
	return header, nil
}

// Digest - the block identifier: digest of the packed header
func (record PackedHeader) Digest() blockdigest.Digest {
	return blockdigest.NewDigest(record[:])
}

// PackedHeaderFromBytes - validate the length of a stored record
func PackedHeaderFromBytes(buffer []byte) (PackedHeader, error) {
	packed := PackedHeader{}
	if TotalHeaderSize != len(buffer) {
		return packed, fault.ErrInvalidRecordLength
	}
	copy(packed[:], buffer)
	return packed, nil
}
