// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mistcoin/mistd/blockrecord"
	"github.com/mistcoin/mistd/fault"
	"github.com/mistcoin/mistd/ledger"
)

// dispatch one read-only enquiry
func processCommand(l *ledger.Ledger, arguments []string) error {
	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "info":
		return showInfo(l)

	case "block":
		index, err := parseUint64(arguments, 0, "INDEX")
		if nil != err {
			return err
		}
		return showBlock(l, index)

	case "txo":
		globalIndex, err := parseUint64(arguments, 0, "GLOBAL-INDEX")
		if nil != err {
			return err
		}
		return showTxOut(l, globalIndex)

	case "proof":
		globalIndex, err := parseUint64(arguments, 0, "GLOBAL-INDEX")
		if nil != err {
			return err
		}
		asOfBlock, err := parseUint64(arguments, 1, "BLOCK")
		if nil != err {
			return err
		}
		return showProof(l, globalIndex, asOfBlock)

	case "spent":
		if len(arguments) < 1 {
			return fmt.Errorf("missing KEY-IMAGE-HEX argument")
		}
		return showSpent(l, arguments[0])

	default:
		return fmt.Errorf("unknown command: %q", command)
	}
}

func parseUint64(arguments []string, position int, name string) (uint64, error) {
	if len(arguments) <= position {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	value, err := strconv.ParseUint(arguments[position], 10, 64)
	if nil != err {
		return 0, fmt.Errorf("invalid %s: %q", name, arguments[position])
	}
	return value, nil
}

func printJSON(title string, value interface{}) error {
	buffer, err := json.MarshalIndent(value, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", title, buffer)
	return nil
}

func showInfo(l *ledger.Ledger) error {
	numBlocks, err := l.NumBlocks()
	if nil != err {
		return err
	}
	numTxOuts, err := l.NextGlobalIndex()
	if nil != err {
		return err
	}

	info := struct {
		Blocks uint64 `json:"blocks"`
		TxOuts uint64 `json:"txOuts"`
		Head   string `json:"head,omitempty"`
		Root   string `json:"root,omitempty"`
	}{
		Blocks: numBlocks,
		TxOuts: numTxOuts,
	}

	if numBlocks > 0 {
		digest, err := l.GetBlockDigest(numBlocks - 1)
		if nil != err {
			return err
		}
		root, err := l.RootAtBlock(numBlocks - 1)
		if nil != err {
			return err
		}
		info.Head = digest.String()
		info.Root = root.String()
	}
	return printJSON("info", info)
}

func showBlock(l *ledger.Ledger, index uint64) error {
	header, err := l.GetBlock(index)
	if nil != err {
		return err
	}
	contents, err := l.GetBlockContents(index)
	if nil != err {
		return err
	}
	digest, err := l.GetBlockDigest(index)
	if nil != err {
		return err
	}

	block := struct {
		Digest   string                `json:"digest"`
		Header   *blockrecord.Header   `json:"header"`
		Contents *blockrecord.Contents `json:"contents"`
	}{
		Digest:   digest.String(),
		Header:   header,
		Contents: contents,
	}
	return printJSON("block", block)
}

func showTxOut(l *ledger.Ledger, globalIndex uint64) error {
	txOut, err := l.GetTxOut(globalIndex)
	if nil != err {
		return err
	}
	return printJSON("txo", txOut)
}

func showProof(l *ledger.Ledger, globalIndex uint64, asOfBlock uint64) error {
	proof, err := l.GetProof(globalIndex, asOfBlock)
	if nil != err {
		return err
	}
	root, err := l.RootAtBlock(asOfBlock)
	if nil != err {
		return err
	}

	result := struct {
		LeafIndex uint64   `json:"leafIndex"`
		Siblings  []string `json:"siblings"`
		Root      string   `json:"root"`
	}{
		LeafIndex: proof.LeafIndex,
		Root:      root.String(),
	}
	for _, sibling := range proof.Siblings {
		result.Siblings = append(result.Siblings, sibling.String())
	}
	return printJSON("proof", result)
}

func showSpent(l *ledger.Ledger, keyImageHex string) error {
	buffer, err := hex.DecodeString(keyImageHex)
	if nil != err {
		return fmt.Errorf("invalid KEY-IMAGE-HEX: %q", keyImageHex)
	}
	keyImage := blockrecord.KeyImage{}
	if err := blockrecord.KeyImageFromBytes(&keyImage, buffer); nil != err {
		return err
	}

	spentAt, err := l.KeyImageSpentAt(keyImage)
	if fault.ErrKeyImageNotFound == err {
		return printJSON("spent", map[string]interface{}{"spent": false})
	}
	if nil != err {
		return err
	}
	return printJSON("spent", map[string]interface{}{"spent": true, "block": spentAt})
}
