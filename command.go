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

const (
	// Contains a read operation.
	_INFO1_READ int = (1 << 0)
	// Get all bins.
	_INFO1_GET_ALL int = (1 << 1)
	// Batch read or exists.
	_INFO1_BATCH int = (1 << 3)
	// Read all replicas in AP mode.
	_INFO1_READ_MODE_AP_ALL int = (1 << 4)
	// Do not read the bins
	_INFO1_NOBINDATA int = (1 << 5)
	// Compress the response.
	_INFO1_COMPRESS_RESPONSE int = (1 << 7)

	// Create or update record
	_INFO2_WRITE int = (1 << 0)
	// Fling a record into the belly of Moloch.
	_INFO2_DELETE int = (1 << 1)
	// Update if expected generation == old.
	_INFO2_GENERATION int = (1 << 2)
	// Update if new generation >= old, good for restore.
	_INFO2_GENERATION_GT int = (1 << 3)
	// Leave a tombstone when the record is deleted.
	_INFO2_DURABLE_DELETE int = (1 << 4)
	// Create only. Fail if record already exists.
	_INFO2_CREATE_ONLY int = (1 << 5)
	// Return a result for every operation.
	_INFO2_RESPOND_ALL_OPS int = (1 << 7)

	// This is the last of a multi-part message.
	_INFO3_LAST int = (1 << 0)
	// Commit to master only before declaring success.
	_INFO3_COMMIT_MASTER int = (1 << 1)
	// Update only. Merge bins.
	_INFO3_UPDATE_ONLY int = (1 << 3)
	// Create or completely replace record.
	_INFO3_CREATE_OR_REPLACE int = (1 << 4)
	// Completely replace existing record only.
	_INFO3_REPLACE_ONLY int = (1 << 5)
	// See ReadModeSC.
	_INFO3_SC_READ_TYPE int = (1 << 6)
	// See ReadModeSC.
	_INFO3_SC_READ_RELAX int = (1 << 7)
)

// CommandKind is the kind of a single record command.
type CommandKind int

const (
	// CommandRead reads the bins of a record.
	CommandRead CommandKind = iota
	// CommandReadHeader reads the meta data of a record.
	CommandReadHeader
	// CommandExists checks the existence of a record.
	CommandExists
	// CommandWrite writes bins with a basic operation.
	CommandWrite
	// CommandDelete deletes a record.
	CommandDelete
	// CommandTouch resets the expiration of a record.
	CommandTouch
	// CommandOperate runs a list of operations on a record.
	CommandOperate
	// CommandUDF runs a server side user defined function on a record.
	CommandUDF
)

var commandKindNames = [...]string{
	CommandRead:       "read",
	CommandReadHeader: "read_header",
	CommandExists:     "exists",
	CommandWrite:      "write",
	CommandDelete:     "delete",
	CommandTouch:      "touch",
	CommandOperate:    "operate",
	CommandUDF:        "udf",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandKindNames) {
		return "unknown"
	}
	return commandKindNames[k]
}

// Command is a single record request handed to the Transport. All the
// client side work is done: policies are resolved, the filter expression
// is packed and the header attributes are set. The transport only needs
// to encode and send it.
type Command struct {
	Kind CommandKind
	Key  *Key

	// Policy is the governing policy. For writes it is the BasePolicy of
	// WritePolicy.
	Policy      *BasePolicy
	WritePolicy *WritePolicy

	ReadAttr   int
	WriteAttr  int
	InfoAttr   int
	Generation uint32
	// Expiration is resolved, it never holds TTLClientDefault.
	Expiration uint32

	// Filter is the packed filter expression, or nil.
	Filter []byte

	BinNames []string
	Bins     []*Bin
	// OpType is the operation applied to Bins by CommandWrite.
	OpType OperationType
	Ops    []*Operation

	PackageName  string
	FunctionName string
	Args         []Value

	Txn *Txn

	// Node is set by the client to the node the command is sent to.
	Node string
	// Iteration is the attempt number, starting at 1.
	Iteration int
}

// IsWrite returns true if the command may modify the record.
func (cmd *Command) IsWrite() bool {
	return cmd.WriteAttr&_INFO2_WRITE != 0
}

func newReadCommand(policy *BasePolicy, key *Key, binNames []string) (*Command, Error) {
	cmd := &Command{Kind: CommandRead, Key: key, Policy: policy, BinNames: binNames}
	cmd.setRead(policy)
	if len(binNames) == 0 {
		cmd.ReadAttr |= _INFO1_GET_ALL
	}
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newReadHeaderCommand(policy *BasePolicy, key *Key) (*Command, Error) {
	cmd := &Command{Kind: CommandReadHeader, Key: key, Policy: policy}
	cmd.setRead(policy)
	cmd.ReadAttr |= _INFO1_NOBINDATA
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newExistsCommand(policy *BasePolicy, key *Key) (*Command, Error) {
	cmd := &Command{Kind: CommandExists, Key: key, Policy: policy}
	cmd.setRead(policy)
	cmd.ReadAttr |= _INFO1_NOBINDATA
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newWriteCommand(policy *WritePolicy, key *Key, bins []*Bin, opType OperationType, defaultExpiration uint32) (*Command, Error) {
	if len(bins) == 0 {
		return nil, newError(types.PARAMETER_ERROR, "No bins were passed")
	}
	for _, bin := range bins {
		if err := validateBinName(bin.Name); err != nil {
			return nil, err
		}
		if iv, ok := bin.Value.(invalidValue); ok {
			return nil, iv.err
		}
	}

	cmd := &Command{Kind: CommandWrite, Key: key, Bins: bins, OpType: opType}
	cmd.setWrite(policy, _INFO2_WRITE, defaultExpiration)
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newDeleteCommand(policy *WritePolicy, key *Key, defaultExpiration uint32) (*Command, Error) {
	cmd := &Command{Kind: CommandDelete, Key: key}
	cmd.setWrite(policy, _INFO2_WRITE|_INFO2_DELETE, defaultExpiration)
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newTouchCommand(policy *WritePolicy, key *Key, defaultExpiration uint32) (*Command, Error) {
	cmd := &Command{Kind: CommandTouch, Key: key, Ops: []*Operation{TouchOp()}}
	cmd.setWrite(policy, _INFO2_WRITE, defaultExpiration)
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newOperateCommand(policy *WritePolicy, key *Key, ops []*Operation, defaultExpiration uint32) (*Command, Error) {
	if len(ops) == 0 {
		return nil, cloneError(ErrNoOperationsSpecified)
	}

	readAttr := 0
	writeAttr := 0
	readHeader := false
	for i, op := range ops {
		if op == nil {
			return nil, newErrorf(types.PARAMETER_ERROR, "Operation %d is nil", i)
		}
		if op.err != nil {
			return nil, op.err
		}

		if !op.opType.isWrite {
			readAttr |= _INFO1_READ

			// Read all bins if no bin is specified.
			if op.binName == "" && !op.headerOnly {
				readAttr |= _INFO1_GET_ALL
			}
			if op.headerOnly {
				readHeader = true
			}
			continue
		}
		writeAttr = _INFO2_WRITE
	}
	if readHeader && readAttr&_INFO1_GET_ALL == 0 {
		readAttr |= _INFO1_NOBINDATA
	}

	cmd := &Command{Kind: CommandOperate, Key: key, Ops: ops}
	if writeAttr != 0 {
		cmd.setWrite(policy, writeAttr, defaultExpiration)
		if policy.RespondPerEachOp {
			cmd.WriteAttr |= _INFO2_RESPOND_ALL_OPS
		}
		cmd.ReadAttr |= readAttr
	} else {
		cmd.WritePolicy = policy
		cmd.setRead(&policy.BasePolicy)
		cmd.ReadAttr |= readAttr
	}

	// per operation ttl overrides the policy
	for _, op := range ops {
		if op.meta.HasExpiration {
			cmd.Expiration = resolveExpiration(op.meta.Expiration, defaultExpiration)
		}
	}
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func newUDFCommand(policy *WritePolicy, key *Key, packageName, functionName string, args []Value, defaultExpiration uint32) (*Command, Error) {
	if packageName == "" || functionName == "" {
		return nil, newError(types.PARAMETER_ERROR, "UDF package and function names are required")
	}
	cmd := &Command{Kind: CommandUDF, Key: key, PackageName: packageName, FunctionName: functionName, Args: args}
	cmd.setWrite(policy, _INFO2_WRITE, defaultExpiration)
	return cmd, cmd.setFilter(policy.FilterExpression)
}

func (cmd *Command) setRead(policy *BasePolicy) {
	cmd.Policy = policy
	cmd.Txn = policy.Txn
	cmd.ReadAttr = _INFO1_READ | readModeAttr(policy.ReadModeAP)
	if policy.UseCompression {
		cmd.ReadAttr |= _INFO1_COMPRESS_RESPONSE
	}
	cmd.InfoAttr = readModeSCAttr(policy.ReadModeSC)
}

// setWrite sets the header attributes from the write policy.
func (cmd *Command) setWrite(policy *WritePolicy, writeAttr int, defaultExpiration uint32) {
	cmd.Policy = &policy.BasePolicy
	cmd.WritePolicy = policy
	cmd.Txn = policy.Txn
	cmd.WriteAttr = writeAttr
	cmd.InfoAttr = 0

	switch policy.RecordExistsAction {
	case UPDATE:
	case UPDATE_ONLY:
		cmd.InfoAttr |= _INFO3_UPDATE_ONLY
	case REPLACE:
		cmd.InfoAttr |= _INFO3_CREATE_OR_REPLACE
	case REPLACE_ONLY:
		cmd.InfoAttr |= _INFO3_REPLACE_ONLY
	case CREATE_ONLY:
		cmd.WriteAttr |= _INFO2_CREATE_ONLY
	}

	cmd.Generation, cmd.WriteAttr = generationAttr(policy.GenerationPolicy, policy.Generation, cmd.WriteAttr)

	if policy.DurableDelete {
		cmd.WriteAttr |= _INFO2_DURABLE_DELETE
	}
	if policy.CommitLevel == COMMIT_MASTER {
		cmd.InfoAttr |= _INFO3_COMMIT_MASTER
	}

	cmd.Expiration = resolveExpiration(policy.Expiration, defaultExpiration)
}

func (cmd *Command) setFilter(exp *Expression) Error {
	if exp == nil {
		return nil
	}
	buf, err := exp.Pack()
	if err != nil {
		return err
	}
	cmd.Filter = buf
	return nil
}

func readModeAttr(mode ReadModeAP) int {
	if mode == ReadModeAPAll {
		return _INFO1_READ_MODE_AP_ALL
	}
	return 0
}

func readModeSCAttr(mode ReadModeSC) int {
	switch mode {
	case ReadModeSCLinearize:
		return _INFO3_SC_READ_TYPE
	case ReadModeSCAllowReplica:
		return _INFO3_SC_READ_RELAX
	case ReadModeSCAllowUnavailable:
		return _INFO3_SC_READ_TYPE | _INFO3_SC_READ_RELAX
	}
	return 0
}

func generationAttr(policy GenerationPolicy, generation uint32, writeAttr int) (uint32, int) {
	switch policy {
	case EXPECT_GEN_EQUAL:
		return generation, writeAttr | _INFO2_GENERATION
	case EXPECT_GEN_GT:
		return generation, writeAttr | _INFO2_GENERATION_GT
	}
	return 0, writeAttr
}
