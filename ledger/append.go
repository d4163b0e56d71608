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

// Append - validate a candidate block against the chain head and
// commit it
//
// validation order: linkage, key image freshness, contents hash;
// every failure aborts the transaction leaving the store untouched
//
// returns the digest of the newly written block header
func (l *Ledger) Append(header *blockrecord.Header, contents *blockrecord.Contents, signatures []blockrecord.Signature) (blockdigest.Digest, error) {

	if nil == header || nil == contents {
		return blockdigest.Digest{}, fault.ErrInvalidBlockContents
	}

	// refuse anything the record layer would not unpack again
	if header.Version < blockrecord.MinimumVersion || header.Version > blockrecord.Version {
		return blockdigest.Digest{}, fault.ErrInvalidBlockVersion
	}

	var digest blockdigest.Digest

	err := l.store.Update(func(txn storage.Txn) error {

		blockCount, _, err := storage.GetN(txn, storage.Metadata, storage.BlockCountKey)
		if nil != err {
			return err
		}
		txoCount, _, err := storage.GetN(txn, storage.Metadata, storage.TxoCountKey)
		if nil != err {
			return err
		}

		// linkage
		if 0 == blockCount {
			if 0 != header.Index || !header.ParentID.IsEmpty() {
				return fault.ErrInvalidBlockLink
			}
		} else {
			if 0 == header.Index {
				return fault.ErrOutOfPlaceGenesisBlock
			}
			if header.Index != blockCount {
				return fault.ErrInvalidBlockLink
			}
			parentDigest, err := l.blockDigest(txn, blockCount-1)
			if nil != err {
				return err
			}
			if header.ParentID != parentDigest {
				return fault.ErrInvalidBlockLink
			}
		}
		if header.CumulativeTxoCount != txoCount+uint64(len(contents.TxOuts)) {
			return fault.ErrInvalidBlockLink
		}

		// key image freshness, including duplicates within the block
		seen := make(map[blockrecord.KeyImage]struct{}, len(contents.KeyImages))
		for _, keyImage := range contents.KeyImages {
			if _, ok := seen[keyImage]; ok {
				return fault.ErrDuplicateKeyImage
			}
			seen[keyImage] = struct{}{}

			spent, err := txn.Has(storage.KeyImages, keyImage[:])
			if nil != err {
				return err
			}
			if spent {
				return fault.ErrDuplicateKeyImage
			}
		}

		// contents hash
		packedContents := contents.Pack()
		if header.ContentsHash != packedContents.Digest() {
			return fault.ErrInvalidBlockContents
		}

		// all checks passed: write everything
		blockKey := storage.Uint64Key(header.Index)
		packedBlock := header.Pack()
		if err := txn.Put(storage.Blocks, blockKey, packedBlock[:]); nil != err {
			return err
		}
		if err := txn.Put(storage.Contents, blockKey, packedContents); nil != err {
			return err
		}
		if len(signatures) > 0 {
			if err := txn.Put(storage.Signatures, blockKey, blockrecord.PackSignatures(signatures)); nil != err {
				return err
			}
		}

		leaves := make([]merkle.Digest, len(contents.TxOuts))
		for i := range contents.TxOuts {
			globalIndex := txoCount + uint64(i)
			txoKey := storage.Uint64Key(globalIndex)

			present, err := txn.Has(storage.TxOuts, txoKey)
			if nil != err {
				return err
			}
			if present {
				return fault.ErrDuplicateTransactionOutput
			}

			packed := contents.TxOuts[i].Pack()
			if err := txn.Put(storage.TxOuts, txoKey, packed); nil != err {
				return err
			}
			leaves[i] = merkle.NewDigest(packed)
		}
		if err := merkle.Append(txn, txoCount, leaves); nil != err {
			return err
		}

		for _, keyImage := range contents.KeyImages {
			if err := storage.PutN(txn, storage.KeyImages, keyImage[:], header.Index); nil != err {
				return err
			}
		}

		if err := storage.PutN(txn, storage.Metadata, storage.BlockCountKey, header.Index+1); nil != err {
			return err
		}
		if err := storage.PutN(txn, storage.Metadata, storage.TxoCountKey, header.CumulativeTxoCount); nil != err {
			return err
		}

		digest = packedBlock.Digest()
		return nil
	})
	if nil != err {
		return blockdigest.Digest{}, err
	}

	l.log.Infof("appended block: %d  digest: %s  txouts: %d  key images: %d",
		header.Index, digest, len(contents.TxOuts), len(contents.KeyImages))

	return digest, nil
}
