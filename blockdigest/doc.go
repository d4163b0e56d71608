// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - implementation of block header hashing
//
// uses SHA3-256; the chain carries no proof-of-work so the digest
// only needs collision resistance, not mining hardness
package blockdigest
