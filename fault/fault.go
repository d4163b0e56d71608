// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrBlockNotFound              = NotFoundError("block not found")
	ErrCannotDecodeAddress        = RecordError("cannot decode address")
	ErrChecksumMismatch           = RecordError("checksum mismatch")
	ErrCorruptRecord              = RecordError("corrupt record")
	ErrDatabaseVersionMismatch    = ProcessError("database version mismatch")
	ErrDuplicateKeyImage          = ExistsError("duplicate key image")
	ErrDuplicateTransactionOutput = ExistsError("duplicate transaction output")
	ErrInvalidBlockContents       = InvalidError("invalid block contents")
	ErrInvalidBlockLink           = InvalidError("invalid block link")
	ErrInvalidBlockVersion        = InvalidError("invalid block version")
	ErrInvalidChain               = InvalidError("invalid chain")
	ErrInvalidConfiguration       = InvalidError("invalid configuration")
	ErrInvalidKeyLength           = LengthError("invalid key length")
	ErrInvalidProof               = InvalidError("invalid proof")
	ErrInvalidRecordLength        = LengthError("invalid record length")
	ErrInvalidStorageBackend      = InvalidError("invalid storage backend")
	ErrKeyImageNotFound           = NotFoundError("key image not found")
	ErrOutOfPlaceGenesisBlock     = InvalidError("out of place genesis block")
	ErrStorageCapacityExceeded    = ProcessError("storage capacity exceeded")
	ErrTableNotFound              = NotFoundError("table not found")
	ErrTransactionCountOutOfRange = InvalidError("transaction count out of range")
	ErrTransactionIsNotWritable   = ProcessError("transaction is not writable")
	ErrTransactionOutputNotFound  = NotFoundError("transaction output not found")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
