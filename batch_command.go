// Copyright 2014-2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aerospike

import (
	"github.com/aerospike/aerospike-expressions-go/types"
)

// BatchCommandKind is the kind of a record of a batch request.
type BatchCommandKind byte

const (
	// BatchCommandRead reads bins or runs read operations.
	BatchCommandRead BatchCommandKind = BatchCommandKind(_BRT_BATCH_READ)
	// BatchCommandWrite runs read/write operations.
	BatchCommandWrite BatchCommandKind = BatchCommandKind(_BRT_BATCH_WRITE)
	// BatchCommandDelete deletes the record.
	BatchCommandDelete BatchCommandKind = BatchCommandKind(_BRT_BATCH_DELETE)
	// BatchCommandUDF runs a user defined function.
	BatchCommandUDF BatchCommandKind = BatchCommandKind(_BRT_BATCH_UDF)
)

// BatchCommand is one record of a batch request, resolved for the
// Transport. The transport reports the outcome through SetRecord or
// SetResult; records it does not report stay NO_RESPONSE.
type BatchCommand struct {
	// Index is the position of the record in the BatchRecords.
	Index int
	Kind  BatchCommandKind
	Key   *Key

	ReadAttr   int
	WriteAttr  int
	InfoAttr   int
	Generation uint32
	Expiration uint32
	SendKey    bool

	// Filter is the packed filter expression of the record, or of the
	// batch when the record has none.
	Filter []byte

	BinNames []string
	Ops      []*Operation

	PackageName  string
	FunctionName string
	Args         []Value

	Txn *Txn

	node   string
	record BatchRecordIfc
	sent   bool
}

func newBatchCommand(index int, rec BatchRecordIfc, defaults *batchDefaults, parent *BatchPolicy) (*BatchCommand, Error) {
	ba, err := rec.attr(defaults)
	if err != nil {
		return nil, err
	}

	cmd := &BatchCommand{
		Index:      index,
		Kind:       BatchCommandKind(rec.getType()),
		Key:        rec.key(),
		ReadAttr:   ba.readAttr,
		WriteAttr:  ba.writeAttr,
		InfoAttr:   ba.infoAttr,
		Generation: ba.generation,
		Expiration: ba.expiration,
		SendKey:    ba.sendKey || parent.SendKey,
		Txn:        parent.Txn,
		record:     rec,
	}

	switch r := rec.(type) {
	case *BatchRead:
		cmd.BinNames = r.BinNames
		cmd.Ops = r.Ops
	case *BatchWrite:
		cmd.Ops = r.Ops
	case *BatchUDF:
		cmd.PackageName = r.PackageName
		cmd.FunctionName = r.FunctionName
		cmd.Args = r.FunctionArgs
	}

	filter := ba.filterExp
	if filter == nil {
		filter = parent.FilterExpression
	}
	if filter != nil {
		if cmd.Filter, err = filter.Pack(); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

// IsWrite returns true if the record may be modified.
func (cmd *BatchCommand) IsWrite() bool {
	return cmd.WriteAttr&_INFO2_WRITE != 0
}

// MarkSent records that the command was written to the connection. Writes
// that fail afterwards are reported in doubt.
func (cmd *BatchCommand) MarkSent() {
	cmd.sent = true
}

// SetRecord reports a successful result.
func (cmd *BatchCommand) SetRecord(record *Record) {
	if record != nil && record.Key == nil {
		record.Key = cmd.Key
	}
	cmd.record.setRecord(record)
}

// SetResult reports a result code for the record. inDoubt only applies to
// writes.
func (cmd *BatchCommand) SetResult(resultCode types.ResultCode, inDoubt bool) {
	if resultCode == types.OK {
		cmd.record.setRecord(nil)
		return
	}
	cmd.record.setError(cmd.node, resultCode, inDoubt)
}

// ResultCode returns the current result of the record.
func (cmd *BatchCommand) ResultCode() types.ResultCode {
	return cmd.record.resultCode()
}

// setNodeError reports a node level failure for a record the node did not
// answer for.
func (cmd *BatchCommand) setNodeError(err Error) {
	if cmd.record.resultCode() != types.NO_RESPONSE {
		return
	}
	inDoubt := cmd.IsWrite() && (err.IsInDoubt() || cmd.sent)
	cmd.record.setError(cmd.node, err.resultCode(), inDoubt)
	if br := cmd.record.BatchRec(); br.Err != nil {
		br.Err.wrap(cloneError(err))
	}
}
