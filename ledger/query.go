// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/storage"
)

// KeyImageStatus - outcome of a single key image lookup
type KeyImageStatus int

// lookup outcomes in increasing order of precedence for collation
const (
	KeyImageNotSpent KeyImageStatus = iota
	KeyImageError
	KeyImageSpent
)

// KeyImageResult - one key image lookup outcome
//
// SpentAtBlock is only meaningful when Status is KeyImageSpent
type KeyImageResult struct {
	KeyImage     blockrecord.KeyImage `json:"keyImage"`
	Status       KeyImageStatus       `json:"status"`
	SpentAtBlock uint64               `json:"spentAtBlock"`
}

// CheckKeyImages - look up a batch of key images on one snapshot
//
// individual lookup failures are reported per key image so one bad
// record cannot poison the whole batch
func (l *Ledger) CheckKeyImages(keyImages []blockrecord.KeyImage) ([]KeyImageResult, error) {
	results := make([]KeyImageResult, len(keyImages))

	err := l.store.View(func(txn storage.Txn) error {
		for i, keyImage := range keyImages {
			results[i].KeyImage = keyImage

			index, found, err := storage.GetN(txn, storage.KeyImages, keyImage[:])
			if nil != err {
				results[i].Status = KeyImageError
				continue
			}
			if found {
				results[i].Status = KeyImageSpent
				results[i].SpentAtBlock = index
			} else {
				results[i].Status = KeyImageNotSpent
			}
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return results, nil
}

// CollateShardResults - merge key image lookups from several shards
// into one answer per key image
//
// a spent verdict from any shard wins over an error, and an error
// wins over not-spent: a shard failure must never convert a spent
// key image into a spendable one
//
// key images keep the order of their first appearance
func CollateShardResults(shards ...[]KeyImageResult) []KeyImageResult {
	order := make([]blockrecord.KeyImage, 0)
	merged := make(map[blockrecord.KeyImage]KeyImageResult)

	for _, shard := range shards {
		for _, result := range shard {
			current, ok := merged[result.KeyImage]
			if !ok {
				order = append(order, result.KeyImage)
				merged[result.KeyImage] = result
				continue
			}
			if result.Status > current.Status {
				merged[result.KeyImage] = result
			}
		}
	}

	collated := make([]KeyImageResult, len(order))
	for i, keyImage := range order {
		collated[i] = merged[keyImage]
	}
	return collated
}
