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

// limit recursion; 64 levels cover every possible leaf index
const maximumLevel = 64

// storage key for one node: level byte followed by big endian index
func nodeKey(level uint, index uint64) []byte {
	key := make([]byte, 9)
	key[0] = byte(level)
	binary.BigEndian.PutUint64(key[1:], index)
	return key
}

func putNode(txn storage.Txn, level uint, index uint64, digest Digest) error {
	return txn.Put(storage.Merkle, nodeKey(level, index), digest[:])
}

func getNode(txn storage.Txn, level uint, index uint64) (Digest, error) {
	buffer, err := txn.Get(storage.Merkle, nodeKey(level, index))
	if nil != err {
		return Digest{}, err
	}
	if nil == buffer {
		// complete subtrees are always stored, so a missing node
		// means the table was damaged
		return Digest{}, fault.ErrCorruptRecord
	}
	var digest Digest
	err = DigestFromBytes(&digest, buffer)
	return digest, err
}

// true if the node's whole span of leaves lies below the leaf count
func isFull(level uint, index uint64, leafCount uint64) bool {
	if level >= maximumLevel {
		return false
	}
	span := uint64(1) << level
	last := (index+1)*span - 1
	return last < leafCount && last/span == index // second test guards overflow
}

// Height - number of proof levels for a tree holding leafCount leaves
func Height(leafCount uint64) uint {
	height := uint(0)
	for leafCount > uint64(1)<<height {
		height += 1
	}
	return height
}

// Append - extend the tree with new leaves starting at position leafCount
//
// must run inside the block writer's transaction: leaves and every
// newly completed internal node are persisted; ragged nodes are not
// stored at all, so nothing here ever overwrites an existing record
func Append(txn storage.Txn, leafCount uint64, leaves []Digest) error {
	for i := range leaves {
		position := leafCount + uint64(i)
		err := putNode(txn, 0, position, leaves[i])
		if nil != err {
			return err
		}

		// climbing while the index is odd walks exactly the
		// subtrees this leaf completes
		digest := leaves[i]
		index := position
		level := uint(0)
		for 1 == index&1 {
			left, err := getNode(txn, level, index-1)
			if nil != err {
				return err
			}
			digest = Combine(left, digest)
			index >>= 1
			level += 1
			err = putNode(txn, level, index, digest)
			if nil != err {
				return err
			}
		}
	}
	return nil
}

// digest of the node (level, index) in the tree shape defined by leafCount
//
// full nodes come from the table; ragged right-edge nodes are
// recomputed, pairing a childless right position with its sibling
func nodeAt(txn storage.Txn, level uint, index uint64, leafCount uint64) (Digest, bool, error) {
	if level >= maximumLevel {
		return Digest{}, false, fault.ErrCorruptRecord
	}
	firstLeaf := index << level
	if firstLeaf>>level != index || firstLeaf >= leafCount {
		return Digest{}, false, nil // empty span
	}

	if 0 == level || isFull(level, index, leafCount) {
		digest, err := getNode(txn, level, index)
		if nil != err {
			return Digest{}, false, err
		}
		return digest, true, nil
	}

	left, ok, err := nodeAt(txn, level-1, 2*index, leafCount)
	if nil != err {
		return Digest{}, false, err
	}
	if !ok {
		return Digest{}, false, fault.ErrCorruptRecord
	}
	right, ok, err := nodeAt(txn, level-1, 2*index+1, leafCount)
	if nil != err {
		return Digest{}, false, err
	}
	if !ok {
		right = left
	}
	return Combine(left, right), true, nil
}

// Root - the accumulator root for the tree holding leafCount leaves
//
// a pure function of the ordered leaf sequence: asking for the root
// at any past leaf count reproduces the root as it was then
func Root(txn storage.Txn, leafCount uint64) (Digest, error) {
	if 0 == leafCount {
		return Digest{}, nil
	}
	digest, ok, err := nodeAt(txn, Height(leafCount), 0, leafCount)
	if nil != err {
		return Digest{}, err
	}
	if !ok {
		return Digest{}, fault.ErrCorruptRecord
	}
	return digest, nil
}
