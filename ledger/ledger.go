// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/mistcoin/mistd/blockdigest"
	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/storage"
)

// digests are immutable once a block is written so the cache only
// exists to bound memory, not for coherence
const (
	digestCacheExpiry  = 10 * time.Minute
	digestCacheCleanup = 20 * time.Minute
)

// Ledger - the chain storage engine over an open store
type Ledger struct {
	store   *storage.Store
	log     *logger.L
	digests *cache.Cache
}

// New - create a ledger over an already open store
func New(store *storage.Store) *Ledger {
	return &Ledger{
		store:   store,
		log:     logger.New("ledger"),
		digests: cache.New(digestCacheExpiry, digestCacheCleanup),
	}
}

// read the packed header of one block inside an open transaction
func packedHeader(txn storage.Txn, index uint64) (blockrecord.PackedHeader, error) {
	value, err := txn.Get(storage.Blocks, storage.Uint64Key(index))
	if nil != err {
		return blockrecord.PackedHeader{}, err
	}
	if nil == value {
		return blockrecord.PackedHeader{}, fault.ErrBlockNotFound
	}
	return blockrecord.PackedHeaderFromBytes(value)
}

// blockDigest - digest of one block, going to the store only on a
// cache miss
func (l *Ledger) blockDigest(txn storage.Txn, index uint64) (blockdigest.Digest, error) {
	key := strconv.FormatUint(index, 10)
	if cached, ok := l.digests.Get(key); ok {
		return cached.(blockdigest.Digest), nil
	}

	packed, err := packedHeader(txn, index)
	if nil != err {
		return blockdigest.Digest{}, err
	}
	digest := packed.Digest()
	l.digests.Set(key, digest, cache.DefaultExpiration)
	return digest, nil
}
