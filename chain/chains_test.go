// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/mistcoin/mistd/chain"
)

func TestValid(t *testing.T) {
	valid := []string{chain.Mist, chain.Testing, chain.Local}
	for _, name := range valid {
		if !chain.Valid(name) {
			t.Errorf("chain: %q unexpectedly invalid", name)
		}
	}
	invalid := []string{"", "MIST", "mainnet", "mist "}
	for _, name := range invalid {
		if chain.Valid(name) {
			t.Errorf("chain: %q unexpectedly valid", name)
		}
	}
}
