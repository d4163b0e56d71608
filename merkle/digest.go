// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/mistcoin/mistd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a tree node digest
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(sha3.Sum256(record))
}

// Combine - digest of two concatenated child digests
//
// this is the only combination rule in the tree; changing it would
// invalidate every stored proof
func Combine(left Digest, right Digest) Digest {
	buffer := make([]byte, 0, 2*DigestLength)
	buffer = append(buffer, left[:]...)
	buffer = append(buffer, right[:]...)
	return NewDigest(buffer)
}

// String - hex representation for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// IsEmpty - true if the digest is all zero
func (digest Digest) IsEmpty() bool {
	return digest == Digest{}
}

// DigestFromBytes - convert and validate a byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidRecordLength
	}
	copy(digest[:], buffer)
	return nil
}
