// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"bytes"
	"testing"

	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
)

// build a txout with recognisable field values
func makeTxOut(seed byte) blockrecord.TxOut {
	txOut := blockrecord.TxOut{
		EncryptedPayload: []byte{seed, seed + 1, seed + 2},
	}
	for i := range txOut.PublicKey {
		txOut.PublicKey[i] = seed
	}
	for i := range txOut.Commitment {
		txOut.Commitment[i] = seed ^ 0xff
	}
	return txOut
}

func TestHeaderPackUnpack(t *testing.T) {
	header := &blockrecord.Header{
		Version:            blockrecord.Version,
		Index:              7,
		ParentID:           blockdigest.NewDigest([]byte("parent")),
		CumulativeTxoCount: 19,
		ContentsHash:       blockdigest.NewDigest([]byte("contents")),
	}

	packed := header.Pack()
	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if *unpacked != *header {
		t.Errorf("round trip mismatch: %+v != %+v", unpacked, header)
	}

	// the digest must cover every header field
	other := *header
	other.CumulativeTxoCount = 20
	otherPacked := other.Pack()
	if packed.Digest() == otherPacked.Digest() {
		t.Error("digest ignores cumulative txo count")
	}
}

func TestHeaderBadVersion(t *testing.T) {
	header := &blockrecord.Header{
		Version: blockrecord.Version + 1,
		Index:   0,
	}
	packed := header.Pack()
	_, err := packed.Unpack()
	if fault.ErrInvalidBlockVersion != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrInvalidBlockVersion)
	}
}

func TestHeaderFromBytes(t *testing.T) {
	header := &blockrecord.Header{Version: blockrecord.Version}
	packed := header.Pack()

	back, err := blockrecord.PackedHeaderFromBytes(packed[:])
	if nil != err {
		t.Fatalf("from bytes error: %s", err)
	}
	if back != packed {
		t.Error("from bytes mismatch")
	}

	_, err = blockrecord.PackedHeaderFromBytes(packed[:blockrecord.TotalHeaderSize-1])
	if fault.ErrInvalidRecordLength != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrInvalidRecordLength)
	}
}

func TestTxOutPackUnpack(t *testing.T) {
	txOut := makeTxOut(0x41)
	packed := txOut.Pack()

	// unpack must also report how much it consumed when the buffer
	// carries a following record
	extended := append(append(blockrecord.PackedTxOut{}, packed...), 0xde, 0xad)
	unpacked, n, err := blockrecord.UnpackTxOut(extended)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("consumed %d bytes, expected %d", n, len(packed))
	}
	if txOut.PublicKey != unpacked.PublicKey {
		t.Error("public key mismatch")
	}
	if txOut.Commitment != unpacked.Commitment {
		t.Error("commitment mismatch")
	}
	if !bytes.Equal(txOut.EncryptedPayload, unpacked.EncryptedPayload) {
		t.Error("payload mismatch")
	}

	_, _, err = blockrecord.UnpackTxOut(packed[:10])
	if fault.ErrInvalidRecordLength != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrInvalidRecordLength)
	}
}

func TestContentsPackUnpack(t *testing.T) {
	contents := &blockrecord.Contents{
		TxOuts: []blockrecord.TxOut{
			makeTxOut(0x01),
			makeTxOut(0x02),
		},
		KeyImages: []blockrecord.KeyImage{
			{0x10},
			{0x20},
			{0x30},
		},
	}

	packed := contents.Pack()
	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(contents.TxOuts) != len(unpacked.TxOuts) {
		t.Fatalf("txout count: %d  expected: %d", len(unpacked.TxOuts), len(contents.TxOuts))
	}
	if len(contents.KeyImages) != len(unpacked.KeyImages) {
		t.Fatalf("key image count: %d  expected: %d", len(unpacked.KeyImages), len(contents.KeyImages))
	}
	for i := range contents.KeyImages {
		if contents.KeyImages[i] != unpacked.KeyImages[i] {
			t.Errorf("key image %d mismatch", i)
		}
	}

	// packing is canonical: identical contents give identical digests
	if packed.Digest() != contents.Pack().Digest() {
		t.Error("digest not deterministic")
	}

	// a corrupted byte must change the digest
	corrupted := append(blockrecord.PackedContents{}, packed...)
	corrupted[len(corrupted)-1] ^= 0x01
	if packed.Digest() == corrupted.Digest() {
		t.Error("digest ignores final byte")
	}

	// truncation is detected
	_, err = packed[:len(packed)-1].Unpack()
	if fault.ErrInvalidRecordLength != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrInvalidRecordLength)
	}
}

func TestEmptyContents(t *testing.T) {
	contents := &blockrecord.Contents{}
	unpacked, err := contents.Pack().Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if 0 != len(unpacked.TxOuts) || 0 != len(unpacked.KeyImages) {
		t.Error("empty contents round trip not empty")
	}
}

func TestSignaturesPackUnpack(t *testing.T) {
	signatures := []blockrecord.Signature{
		{Signer: []byte("node-1-key"), Signature: []byte("node-1-signature")},
		{Signer: []byte("node-2-key"), Signature: []byte("node-2-signature")},
	}

	packed := blockrecord.PackSignatures(signatures)
	unpacked, err := blockrecord.UnpackSignatures(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(signatures) != len(unpacked) {
		t.Fatalf("count: %d  expected: %d", len(unpacked), len(signatures))
	}
	for i := range signatures {
		if !bytes.Equal(signatures[i].Signer, unpacked[i].Signer) {
			t.Errorf("signer %d mismatch", i)
		}
		if !bytes.Equal(signatures[i].Signature, unpacked[i].Signature) {
			t.Errorf("signature %d mismatch", i)
		}
	}

	// trailing garbage is rejected
	_, err = blockrecord.UnpackSignatures(append(packed, 0x00))
	if fault.ErrCorruptRecord != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrCorruptRecord)
	}
}

func TestKeyImageText(t *testing.T) {
	keyImage := blockrecord.KeyImage{0xab, 0xcd}

	text, err := keyImage.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var back blockrecord.KeyImage
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if back != keyImage {
		t.Errorf("round trip mismatch: %s != %s", back, keyImage)
	}

	err = back.UnmarshalText([]byte("abcd"))
	if fault.ErrInvalidKeyLength != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ErrInvalidKeyLength)
	}
}
