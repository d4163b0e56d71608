// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - canonical binary encoding of ledger records
//
// The packed forms defined here are the on-disk format and the wire
// format consumed by the bridge and audit services, so the layouts
// are fixed: multi-byte integers are little endian at fixed offsets,
// the block identifier is the SHA3-256 digest of the packed header
// and the contents hash is the SHA3-256 digest of the packed block
// contents.
package blockrecord
