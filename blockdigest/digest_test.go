// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest_test

import (
	"fmt"
	"testing"

	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/fault"
)

// digests must be deterministic and sensitive to every input byte
func TestDigest(t *testing.T) {
	d1 := blockdigest.NewDigest([]byte("hello world"))
	d2 := blockdigest.NewDigest([]byte("hello world"))
	d3 := blockdigest.NewDigest([]byte("hello worlD"))

	if d1 != d2 {
		t.Errorf("digest not deterministic: %#v != %#v", d1, d2)
	}
	if d1 == d3 {
		t.Errorf("digest not input sensitive: %#v", d1)
	}
	if d1.IsEmpty() {
		t.Error("digest of data is empty")
	}

	empty := blockdigest.Digest{}
	if !empty.IsEmpty() {
		t.Error("zero digest is not empty")
	}
}

// text marshalling round trip
func TestMarshalText(t *testing.T) {
	d := blockdigest.NewDigest([]byte("round trip"))

	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %s", err)
	}

	var back blockdigest.Digest
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %s", err)
	}
	if back != d {
		t.Errorf("round trip mismatch: %#v != %#v", back, d)
	}

	err = back.UnmarshalText(text[:10])
	if fault.ErrInvalidRecordLength != err {
		t.Errorf("unexpected error: %v  expected: %v", err, fault.ErrInvalidRecordLength)
	}
}

// scanning the printed form must return the same digest
func TestScan(t *testing.T) {
	d := blockdigest.NewDigest([]byte("scan me"))

	var back blockdigest.Digest
	n, err := fmt.Sscan(d.String(), &back)
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items, expected 1", n)
	}
	if back != d {
		t.Errorf("scan mismatch: %#v != %#v", back, d)
	}
}

// binary conversion validates the length
func TestDigestFromBytes(t *testing.T) {
	d := blockdigest.NewDigest([]byte("binary"))

	var back blockdigest.Digest
	err := blockdigest.DigestFromBytes(&back, d[:])
	if nil != err {
		t.Fatalf("digest from bytes error: %s", err)
	}
	if back != d {
		t.Errorf("mismatch: %#v != %#v", back, d)
	}

	err = blockdigest.DigestFromBytes(&back, d[:16])
	if fault.ErrInvalidRecordLength != err {
		t.Errorf("unexpected error: %v  expected: %v", err, fault.ErrInvalidRecordLength)
	}
}
