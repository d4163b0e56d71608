// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/genesis"
)

func makeTxOut(tag byte) blockrecord.TxOut {
	txOut := blockrecord.TxOut{
		EncryptedPayload: []byte{tag, 0x01, 0x02},
	}
	txOut.PublicKey[0] = tag
	txOut.Commitment[0] = tag
	return txOut
}

func TestMakeBlock(t *testing.T) {
	txOuts := []blockrecord.TxOut{makeTxOut(1), makeTxOut(2)}

	header, contents, err := genesis.MakeBlock(txOuts)
	assert.NoError(t, err, "make block error")

	assert.Equal(t, uint64(0), header.Index, "wrong index")
	assert.True(t, header.ParentID.IsEmpty(), "wrong parent")
	assert.Equal(t, uint64(2), header.CumulativeTxoCount, "wrong txo count")
	assert.Equal(t, contents.Pack().Digest(), header.ContentsHash, "wrong contents hash")
	assert.Empty(t, contents.KeyImages, "origin block cannot spend")
}

func TestMakeBlockEmpty(t *testing.T) {
	_, _, err := genesis.MakeBlock(nil)
	assert.Equal(t, fault.ErrTransactionCountOutOfRange, err, "wrong error")
}
