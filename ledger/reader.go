// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/merkle"
	"github.com/mistcoin/mistd/storage"
)

// NumBlocks - number of blocks in the chain
func (l *Ledger) NumBlocks() (uint64, error) {
	var count uint64
	err := l.store.View(func(txn storage.Txn) error {
		n, _, err := storage.GetN(txn, storage.Metadata, storage.BlockCountKey)
		count = n
		return err
	})
	return count, err
}

// NextGlobalIndex - the global index the next transaction output will
// be assigned, i.e. the total created so far
func (l *Ledger) NextGlobalIndex() (uint64, error) {
	var count uint64
	err := l.store.View(func(txn storage.Txn) error {
		n, _, err := storage.GetN(txn, storage.Metadata, storage.TxoCountKey)
		count = n
		return err
	})
	return count, err
}

// GetBlock - the unpacked header of one block
func (l *Ledger) GetBlock(index uint64) (*blockrecord.Header, error) {
	var header *blockrecord.Header
	err := l.store.View(func(txn storage.Txn) error {
		packed, err := packedHeader(txn, index)
		if nil != err {
			return err
		}
		header, err = packed.Unpack()
		return err
	})
	if nil != err {
		return nil, err
	}
	return header, nil
}

// GetBlockDigest - the identifier of one block
func (l *Ledger) GetBlockDigest(index uint64) (blockdigest.Digest, error) {
	var digest blockdigest.Digest
	err := l.store.View(func(txn storage.Txn) error {
		d, err := l.blockDigest(txn, index)
		digest = d
		return err
	})
	return digest, err
}

// GetBlockContents - the outputs and key images of one block
func (l *Ledger) GetBlockContents(index uint64) (*blockrecord.Contents, error) {
	var contents *blockrecord.Contents
	err := l.store.View(func(txn storage.Txn) error {
		value, err := txn.Get(storage.Contents, storage.Uint64Key(index))
		if nil != err {
			return err
		}
		if nil == value {
			return fault.ErrBlockNotFound
		}
		contents, err = blockrecord.PackedContents(value).Unpack()
		return err
	})
	if nil != err {
		return nil, err
	}
	return contents, nil
}

// GetSignatures - the signatures attached to one block
//
// a block stored without signatures yields an empty slice
func (l *Ledger) GetSignatures(index uint64) ([]blockrecord.Signature, error) {
	var signatures []blockrecord.Signature
	err := l.store.View(func(txn storage.Txn) error {
		blockKey := storage.Uint64Key(index)

		present, err := txn.Has(storage.Blocks, blockKey)
		if nil != err {
			return err
		}
		if !present {
			return fault.ErrBlockNotFound
		}

		value, err := txn.Get(storage.Signatures, blockKey)
		if nil != err {
			return err
		}
		if nil == value {
			return nil
		}
		signatures, err = blockrecord.UnpackSignatures(value)
		return err
	})
	if nil != err {
		return nil, err
	}
	return signatures, nil
}

// GetTxOut - one transaction output by its global index
func (l *Ledger) GetTxOut(globalIndex uint64) (*blockrecord.TxOut, error) {
	var txOut *blockrecord.TxOut
	err := l.store.View(func(txn storage.Txn) error {
		value, err := txn.Get(storage.TxOuts, storage.Uint64Key(globalIndex))
		if nil != err {
			return err
		}
		if nil == value {
			return fault.ErrTransactionOutputNotFound
		}
		txOut, _, err = blockrecord.UnpackTxOut(value)
		return err
	})
	if nil != err {
		return nil, err
	}
	return txOut, nil
}

// ContainsKeyImage - true if the key image has ever been spent
func (l *Ledger) ContainsKeyImage(keyImage blockrecord.KeyImage) (bool, error) {
	var spent bool
	err := l.store.View(func(txn storage.Txn) error {
		s, err := txn.Has(storage.KeyImages, keyImage[:])
		spent = s
		return err
	})
	return spent, err
}

// KeyImageSpentAt - the index of the block that spent a key image
func (l *Ledger) KeyImageSpentAt(keyImage blockrecord.KeyImage) (uint64, error) {
	var index uint64
	err := l.store.View(func(txn storage.Txn) error {
		n, found, err := storage.GetN(txn, storage.KeyImages, keyImage[:])
		if nil != err {
			return err
		}
		if !found {
			return fault.ErrKeyImageNotFound
		}
		index = n
		return nil
	})
	return index, err
}

// GetProof - membership proof for one output against the accumulator
// as of a past block
//
// the proof is valid against RootAtBlock(asOfBlock); requesting an
// output created after that block fails
func (l *Ledger) GetProof(globalIndex uint64, asOfBlock uint64) (*merkle.Proof, error) {
	var proof *merkle.Proof
	err := l.store.View(func(txn storage.Txn) error {
		packed, err := packedHeader(txn, asOfBlock)
		if nil != err {
			return err
		}
		header, err := packed.Unpack()
		if nil != err {
			return err
		}
		if globalIndex >= header.CumulativeTxoCount {
			return fault.ErrTransactionOutputNotFound
		}
		proof, err = merkle.NewProof(txn, globalIndex, header.CumulativeTxoCount)
		return err
	})
	if nil != err {
		return nil, err
	}
	return proof, nil
}

// RootAtBlock - the accumulator root over every output up to and
// including one block
func (l *Ledger) RootAtBlock(index uint64) (merkle.Digest, error) {
	var root merkle.Digest
	err := l.store.View(func(txn storage.Txn) error {
		packed, err := packedHeader(txn, index)
		if nil != err {
			return err
		}
		header, err := packed.Unpack()
		if nil != err {
			return err
		}
		root, err = merkle.Root(txn, header.CumulativeTxoCount)
		return err
	})
	return root, err
}
