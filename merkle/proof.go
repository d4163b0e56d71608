// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/binary"

	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/storage"
)

// Proof - a membership path for one leaf
//
// the ordered sibling digests, bottom up, together with the leaf's
// position are sufficient to recompute the root of the tree the proof
// was generated against
type Proof struct {
	LeafIndex uint64   `json:"leafIndex,string"`
	Siblings  []Digest `json:"siblings"`
}

// NewProof - build the proof for a leaf in the tree shape defined by leafCount
func NewProof(txn storage.Txn, leafIndex uint64, leafCount uint64) (*Proof, error) {
	if leafIndex >= leafCount {
		return nil, fault.ErrInvalidProof
	}

	height := Height(leafCount)
	proof := &Proof{
		LeafIndex: leafIndex,
		Siblings:  make([]Digest, 0, height),
	}

	for level := uint(0); level < height; level += 1 {
		index := leafIndex >> level
		sibling, ok, err := nodeAt(txn, level, index^1, leafCount)
		if nil != err {
			return nil, err
		}
		if !ok {
			// childless right position: the node pairs with itself
			sibling, ok, err = nodeAt(txn, level, index, leafCount)
			if nil != err {
				return nil, err
			}
			if !ok {
				return nil, fault.ErrCorruptRecord
			}
		}
		proof.Siblings = append(proof.Siblings, sibling)
	}
	return proof, nil
}

// Root - recompute the root from the proof and the leaf's own digest
func (proof *Proof) Root(leaf Digest) Digest {
	digest := leaf
	index := proof.LeafIndex
	for _, sibling := range proof.Siblings {
		if 0 == index&1 {
			digest = Combine(digest, sibling)
		} else {
			digest = Combine(sibling, digest)
		}
		index >>= 1
	}
	return digest
}

// Verify - check that the proof links the leaf to the expected root
func (proof *Proof) Verify(leaf Digest, root Digest) bool {
	return proof.Root(leaf) == root
}

// sizes for the packed proof
const (
	leafIndexSize    = 8
	siblingCountSize = 2
)

// Pack - canonical packed form for the wire
func (proof *Proof) Pack() []byte {
	packed := make([]byte, leafIndexSize+siblingCountSize, leafIndexSize+siblingCountSize+len(proof.Siblings)*DigestLength)
	binary.LittleEndian.PutUint64(packed, proof.LeafIndex)
	binary.LittleEndian.PutUint16(packed[leafIndexSize:], uint16(len(proof.Siblings)))
	for i := range proof.Siblings {
		packed = append(packed, proof.Siblings[i][:]...)
	}
	return packed
}

// UnpackProof - turn a packed record back into a proof
func UnpackProof(record []byte) (*Proof, error) {
	if len(record) < leafIndexSize+siblingCountSize {
		return nil, fault.ErrInvalidRecordLength
	}
	count := int(binary.LittleEndian.Uint16(record[leafIndexSize:]))
	if count > maximumLevel {
		return nil, fault.ErrCorruptRecord
	}
	if len(record) != leafIndexSize+siblingCountSize+count*DigestLength {
		return nil, fault.ErrInvalidRecordLength
	}

	proof := &Proof{
		LeafIndex: binary.LittleEndian.Uint64(record),
		Siblings:  make([]Digest, count),
	}
	buffer := record[leafIndexSize+siblingCountSize:]
	for i := 0; i < count; i += 1 {
		copy(proof.Siblings[i][:], buffer[:DigestLength])
		buffer = buffer[DigestLength:]
	}
	return proof, nil
}
