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
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/internal/lua"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// FakeTransport is an in-memory Transport used by the tests. It keeps the
// records in a map, evaluates the subset of filter expressions and path
// operations the tests use, and runs UDFs through the Lua runner.
type FakeTransport struct {
	mutex sync.Mutex

	nodes   []string
	records map[string]*fakeRecord
	udfs    map[string]*lua.Module

	execFailures []Error
	nodeFailures map[string]Error
	verifyErr    Error
	rollErr      Error

	rolls       []bool
	executed    int
	batches     int
	lastCommand *Command
	versions    uint64
	closed      bool
}

type fakeRecord struct {
	bins       map[string]interface{}
	generation uint32
	expiration uint32
	version    uint64
}

var _ Transport = &FakeTransport{}

// NewFakeTransport creates a fake cluster of the named nodes.
func NewFakeTransport(nodes ...string) *FakeTransport {
	if len(nodes) == 0 {
		nodes = []string{"BB9020011AC4202", "BB9030011AC4202"}
	}
	return &FakeTransport{
		nodes:        nodes,
		records:      map[string]*fakeRecord{},
		udfs:         map[string]*lua.Module{},
		nodeFailures: map[string]Error{},
	}
}

// RegisterUDF loads a Lua package the UDF commands can call.
func (ft *FakeTransport) RegisterUDF(name, source string) error {
	m, err := lua.Load(name, source)
	if err != nil {
		return err
	}
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.udfs[name] = m
	return nil
}

// FailNext makes the next single record commands fail with the errors.
func (ft *FakeTransport) FailNext(errs ...*AerospikeError) {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	for _, e := range errs {
		ft.execFailures = append(ft.execFailures, e)
	}
}

// FailNode makes the batches sent to the node fail with the error.
func (ft *FakeTransport) FailNode(node string, err *AerospikeError) {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.nodeFailures[node] = err
}

// FailVerify makes transaction verification fail.
func (ft *FakeTransport) FailVerify(err *AerospikeError) {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.verifyErr = err
}

// FailRoll makes transaction rolls fail with the error.
func (ft *FakeTransport) FailRoll(err *AerospikeError) {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.rollErr = err
}

// Rolls returns the commit flag of every transaction roll, in order.
func (ft *FakeTransport) Rolls() []bool {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	return append([]bool(nil), ft.rolls...)
}

// Executed returns the number of single record commands received.
func (ft *FakeTransport) Executed() int {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	return ft.executed
}

// Batches returns the number of batch requests received.
func (ft *FakeTransport) Batches() int {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	return ft.batches
}

// LastCommand returns the last single record command received.
func (ft *FakeTransport) LastCommand() *Command {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	return ft.lastCommand
}

func storeKey(key *Key) string {
	return key.Namespace() + ":" + string(key.Digest())
}

func (ft *FakeTransport) NodeFor(key *Key, isWrite bool) (string, Error) {
	if len(ft.nodes) == 0 {
		return "", newError(types.INVALID_NODE_ERROR, "no nodes")
	}
	d := key.Digest()
	return ft.nodes[int(d[0])%len(ft.nodes)], nil
}

func (ft *FakeTransport) Nodes() []string {
	return append([]string(nil), ft.nodes...)
}

func (ft *FakeTransport) Execute(ctx context.Context, cmd *Command) (*Record, Error) {
	if err := ctx.Err(); err != nil {
		return nil, newErrorAndWrap(err, types.TIMEOUT)
	}

	ft.mutex.Lock()
	defer ft.mutex.Unlock()

	ft.executed++
	ft.lastCommand = cmd
	if len(ft.execFailures) > 0 {
		err := ft.execFailures[0]
		ft.execFailures = ft.execFailures[1:]
		return nil, cloneError(err)
	}
	return ft.execute(cmd.Node, cmd)
}

func (ft *FakeTransport) BatchExecute(ctx context.Context, node string, cmds []*BatchCommand) Error {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()

	ft.batches++
	if err, ok := ft.nodeFailures[node]; ok {
		for _, bc := range cmds {
			bc.MarkSent()
		}
		return cloneError(err)
	}

	for _, bc := range cmds {
		bc.MarkSent()
		cmd := &Command{
			Key:          bc.Key,
			ReadAttr:     bc.ReadAttr,
			WriteAttr:    bc.WriteAttr,
			InfoAttr:     bc.InfoAttr,
			Generation:   bc.Generation,
			Expiration:   bc.Expiration,
			Filter:       bc.Filter,
			BinNames:     bc.BinNames,
			Ops:          bc.Ops,
			PackageName:  bc.PackageName,
			FunctionName: bc.FunctionName,
			Args:         bc.Args,
		}
		switch bc.Kind {
		case BatchCommandRead:
			switch {
			case len(bc.Ops) > 0:
				cmd.Kind = CommandOperate
			case bc.ReadAttr&_INFO1_NOBINDATA != 0:
				cmd.Kind = CommandReadHeader
			default:
				cmd.Kind = CommandRead
			}
		case BatchCommandWrite:
			cmd.Kind = CommandOperate
		case BatchCommandDelete:
			cmd.Kind = CommandDelete
		case BatchCommandUDF:
			cmd.Kind = CommandUDF
		}

		rec, err := ft.execute(node, cmd)
		switch {
		case err != nil:
			bc.SetResult(err.resultCode(), false)
		case rec != nil && rec.Bins["FAILURE"] != nil:
			bc.SetResult(types.UDF_BAD_RESPONSE, false)
		default:
			bc.SetRecord(rec)
		}
	}
	return nil
}

func (ft *FakeTransport) Scan(ctx context.Context, cmd *ScanCommand) ([]*Record, Error) {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()

	if err, ok := ft.nodeFailures[cmd.Node]; ok {
		return nil, cloneError(err)
	}

	var res []*Record
	for sk, rec := range ft.records {
		if !strings.HasPrefix(sk, cmd.Namespace+":") {
			continue
		}
		key, _ := NewKeyByDigest(cmd.Namespace, cmd.SetName, []byte(sk[len(cmd.Namespace)+1:]))
		if node, _ := ft.NodeFor(key, false); node != cmd.Node {
			continue
		}
		if cmd.Filter != nil {
			ok, err := evalFilter(cmd.Filter, rec.bins)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		res = append(res, ft.result(cmd.Node, key, rec, cmd.BinNames, false))
	}
	return res, nil
}

func (ft *FakeTransport) Info(ctx context.Context, node string, commands ...string) (map[string]string, Error) {
	res := make(map[string]string, len(commands))
	for _, c := range commands {
		switch c {
		case "node":
			res[c] = node
		case "build":
			res[c] = "8.1.0.0"
		default:
			res[c] = ""
		}
	}
	return res, nil
}

func (ft *FakeTransport) TxnVerify(ctx context.Context, policy *TxnVerifyPolicy, txn *Txn) Error {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	if ft.verifyErr != nil {
		return cloneError(ft.verifyErr)
	}
	for digest, version := range txn.Reads() {
		rec := ft.records[txn.Namespace()+":"+string(digest[:])]
		if rec == nil || rec.version != version {
			return newError(types.TXN_FAILED, "record version changed")
		}
	}
	return nil
}

func (ft *FakeTransport) TxnRoll(ctx context.Context, policy *TxnRollPolicy, txn *Txn, commit bool) Error {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.rolls = append(ft.rolls, commit)
	if ft.rollErr != nil {
		return cloneError(ft.rollErr)
	}
	return nil
}

func (ft *FakeTransport) Close() Error {
	ft.mutex.Lock()
	defer ft.mutex.Unlock()
	ft.closed = true
	for _, m := range ft.udfs {
		m.Close()
	}
	return nil
}

//-------------------------------------------------------
// Command evaluation
//-------------------------------------------------------

func (ft *FakeTransport) execute(node string, cmd *Command) (*Record, Error) {
	sk := storeKey(cmd.Key)
	rec := ft.records[sk]

	if cmd.Filter != nil && rec != nil {
		ok, err := evalFilter(cmd.Filter, rec.bins)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(types.FILTERED_OUT)
		}
	}

	switch cmd.Kind {
	case CommandRead, CommandReadHeader, CommandExists:
		if rec == nil {
			return nil, newError(types.KEY_NOT_FOUND_ERROR)
		}
		return ft.result(node, cmd.Key, rec, cmd.BinNames, cmd.Kind != CommandRead), nil

	case CommandWrite:
		w, err := ft.prepareWrite(cmd, rec)
		if err != nil {
			return nil, err
		}
		for _, bin := range cmd.Bins {
			if err := applyBin(w.bins, cmd.OpType, bin.Name, bin.Value); err != nil {
				return nil, err
			}
		}
		ft.commit(sk, w, cmd.Expiration, rec)
		return ft.result(node, cmd.Key, ft.records[sk], nil, true), nil

	case CommandDelete:
		if rec == nil {
			return nil, newError(types.KEY_NOT_FOUND_ERROR)
		}
		delete(ft.records, sk)
		return newRecord(node, cmd.Key, nil, rec.generation, rec.expiration), nil

	case CommandTouch:
		if rec == nil {
			return nil, newError(types.KEY_NOT_FOUND_ERROR)
		}
		w := &fakeRecord{bins: rec.bins, generation: rec.generation}
		ft.commit(sk, w, cmd.Expiration, rec)
		return ft.result(node, cmd.Key, ft.records[sk], nil, true), nil

	case CommandOperate:
		return ft.operate(node, sk, cmd, rec)

	case CommandUDF:
		return ft.udf(node, sk, cmd, rec)
	}
	return nil, newErrorf(types.PARAMETER_ERROR, "unsupported command %s", cmd.Kind)
}

func (ft *FakeTransport) prepareWrite(cmd *Command, rec *fakeRecord) (*fakeRecord, Error) {
	if rec == nil && cmd.InfoAttr&(_INFO3_UPDATE_ONLY|_INFO3_REPLACE_ONLY) != 0 {
		return nil, newError(types.KEY_NOT_FOUND_ERROR)
	}
	if rec != nil && cmd.WriteAttr&_INFO2_CREATE_ONLY != 0 {
		return nil, newError(types.KEY_EXISTS_ERROR)
	}
	if rec != nil && cmd.WriteAttr&_INFO2_GENERATION != 0 && rec.generation != cmd.Generation {
		return nil, newError(types.GENERATION_ERROR)
	}
	if rec != nil && cmd.WriteAttr&_INFO2_GENERATION_GT != 0 && cmd.Generation <= rec.generation {
		return nil, newError(types.GENERATION_ERROR)
	}

	w := &fakeRecord{bins: map[string]interface{}{}}
	if rec != nil {
		w.generation = rec.generation
		if cmd.InfoAttr&(_INFO3_CREATE_OR_REPLACE|_INFO3_REPLACE_ONLY) == 0 {
			for k, v := range rec.bins {
				w.bins[k] = v
			}
		}
	}
	return w, nil
}

func (ft *FakeTransport) commit(sk string, w *fakeRecord, expiration uint32, old *fakeRecord) {
	w.generation++
	ft.versions++
	w.version = ft.versions

	switch {
	case expiration == TTLDontUpdate && old != nil:
		w.expiration = old.expiration
	default:
		w.expiration = ttlToVoidTime(expiration, time.Now())
	}

	if len(w.bins) == 0 {
		delete(ft.records, sk)
		return
	}
	ft.records[sk] = w
}

func (ft *FakeTransport) result(node string, key *Key, rec *fakeRecord, binNames []string, headerOnly bool) *Record {
	bins := BinMap{}
	if !headerOnly {
		for k, v := range rec.bins {
			if len(binNames) == 0 || containsString(binNames, k) {
				bins[k] = v
			}
		}
	}
	res := newRecord(node, key, bins, rec.generation, rec.expiration)
	res.Version = rec.version
	return res
}

func containsString(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func (ft *FakeTransport) operate(node, sk string, cmd *Command, rec *fakeRecord) (*Record, Error) {
	w := &fakeRecord{bins: map[string]interface{}{}}
	if cmd.IsWrite() {
		var err Error
		if w, err = ft.prepareWrite(cmd, rec); err != nil {
			return nil, err
		}
	} else if rec == nil {
		return nil, newError(types.KEY_NOT_FOUND_ERROR)
	} else {
		w.generation = rec.generation
		for k, v := range rec.bins {
			w.bins[k] = v
		}
	}

	bins := BinMap{}
	var results []interface{}
	deleted := false
	for _, op := range cmd.Ops {
		res, hasResult, err := applyOp(w, op)
		if err != nil {
			return nil, err
		}
		if op.opType == _DELETE {
			deleted = true
		}
		results = append(results, res)
		if hasResult {
			if op.binName == "" {
				for k, v := range w.bins {
					bins[k] = v
				}
			} else {
				bins[op.binName] = res
			}
		}
	}

	if cmd.IsWrite() {
		if deleted && len(w.bins) == 0 {
			delete(ft.records, sk)
		} else {
			ft.commit(sk, w, cmd.Expiration, rec)
		}
	}

	res := newRecord(node, cmd.Key, bins, w.generation, w.expiration)
	res.OpResults = results
	if stored := ft.records[sk]; stored != nil {
		res.Generation = stored.generation
		res.Expiration = stored.expiration
		res.Version = stored.version
	}
	return res, nil
}

func (ft *FakeTransport) udf(node, sk string, cmd *Command, rec *fakeRecord) (*Record, Error) {
	m := ft.udfs[cmd.PackageName]
	if m == nil {
		return newRecord(node, cmd.Key, BinMap{"FAILURE": "UDF package not found: " + cmd.PackageName}, 0, 0), nil
	}

	bins := map[string]interface{}{}
	if rec != nil {
		for k, v := range rec.bins {
			bins[k] = v
		}
	}
	args := make([]interface{}, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = a.GetObject()
	}

	ret, out, err := m.Call(cmd.FunctionName, bins, args...)
	if err != nil {
		return newRecord(node, cmd.Key, BinMap{"FAILURE": err.Error()}, 0, 0), nil
	}

	if cmd.IsWrite() {
		w := &fakeRecord{bins: map[string]interface{}{}}
		if rec != nil {
			w.generation = rec.generation
		}
		for k, v := range out {
			w.bins[k] = normalize(NewValue(v))
		}
		ft.commit(sk, w, cmd.Expiration, rec)
	}
	return newRecord(node, cmd.Key, BinMap{"SUCCESS": ret}, 0, 0), nil
}

// normalize converts a value to the form the server returns it in.
func normalize(v Value) interface{} {
	p := newPacker()
	if err := v.pack(p); err != nil {
		p.Bytes()
		return v.GetObject()
	}
	obj, err := newUnpacker(p.Bytes()).unpackObject()
	if err != nil {
		return v.GetObject()
	}
	return obj
}

func applyBin(bins map[string]interface{}, opType OperationType, name string, value Value) Error {
	if iv, ok := value.(invalidValue); ok {
		return iv.err
	}
	v := normalize(value)
	cur, exists := bins[name]

	switch opType {
	case _WRITE:
		if v == nil {
			delete(bins, name)
			return nil
		}
		bins[name] = v
	case _ADD:
		if !exists {
			bins[name] = v
			return nil
		}
		sum, ok := arith(expOpAdd, cur, v)
		if !ok {
			return newError(types.BIN_TYPE_ERROR)
		}
		bins[name] = sum
	case _APPEND, _PREPEND:
		s, ok := v.(string)
		c, ok2 := cur.(string)
		if !ok || (exists && !ok2) {
			return newError(types.BIN_TYPE_ERROR)
		}
		if opType == _APPEND {
			bins[name] = c + s
		} else {
			bins[name] = s + c
		}
	default:
		return newErrorf(types.PARAMETER_ERROR, "unsupported bin operation %s", opType)
	}
	return nil
}

func applyOp(rec *fakeRecord, op *Operation) (interface{}, bool, Error) {
	if op.err != nil {
		return nil, false, op.err
	}

	switch op.opType {
	case _READ, _READ_HEADER:
		if op.headerOnly {
			return nil, false, nil
		}
		if op.binName == "" {
			return nil, true, nil
		}
		return rec.bins[op.binName], true, nil
	case _WRITE, _ADD, _APPEND, _PREPEND:
		return nil, false, applyBin(rec.bins, op.opType, op.binName, op.binValue)
	case _TOUCH:
		return nil, false, nil
	case _DELETE:
		for k := range rec.bins {
			delete(rec.bins, k)
		}
		return nil, false, nil
	case _CDT_READ, _CDT_MODIFY:
		if op.cdtOp == _CDT_SELECT {
			res, hasResult, err := applyPathOp(rec, op)
			if err == errUnknown {
				err = cloneError(errUnknown)
			}
			return res, hasResult, err
		}
	}
	return nil, false, newErrorf(types.PARAMETER_ERROR, "operation %s is not supported by the fake transport", op.opType)
}

//-------------------------------------------------------
// Wire decoding
//-------------------------------------------------------

// wireStr keeps a string as sent: bin names are raw, values carry a
// particle type prefix.
type wireStr []byte

func (s wireStr) raw() string {
	return string(s)
}

func (s wireStr) value() interface{} {
	if len(s) == 0 {
		return ""
	}
	if int(s[0]) == ParticleType.STRING {
		return string(s[1:])
	}
	return []byte(s[1:])
}

func decodeWire(b []byte) (interface{}, Error) {
	return decodeWireObject(newUnpacker(b))
}

func decodeWireObject(upckr *unpacker) (interface{}, Error) {
	if err := upckr.need(1); err != nil {
		return nil, err
	}
	t := upckr.buffer[upckr.offset]

	switch {
	case t&0xe0 == 0xa0, t == 0xd9, t == 0xda, t == 0xdb, t == 0xc4, t == 0xc5, t == 0xc6:
		upckr.offset++
		n, err := upckr.strLen(t)
		if err != nil {
			return nil, err
		}
		b, err := upckr.readN(n)
		return wireStr(append([]byte(nil), b...)), err

	case t&0xf0 == 0x90, t == 0xdc, t == 0xdd:
		n, err := upckr.arrayLen()
		if err != nil {
			return nil, err
		}
		res := make([]interface{}, 0, n)
		for i := 0; i < n; i++ {
			obj, err := decodeWireObject(upckr)
			if err != nil {
				return nil, err
			}
			res = append(res, obj)
		}
		return res, nil
	}
	return upckr.unpackObject()
}

// plain converts decoded wire strings back to values.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case wireStr:
		return v.value()
	case []interface{}:
		res := make([]interface{}, len(v))
		for i := range v {
			res[i] = plain(v[i])
		}
		return res
	}
	return v
}

//-------------------------------------------------------
// Expression evaluation
//-------------------------------------------------------

type removeResult struct{}

type loopVars struct {
	key   interface{}
	value interface{}
	index int
}

type evalEnv struct {
	bins map[string]interface{}
	loop *loopVars
}

// errUnknown is returned when an expression evaluates to unknown.
var errUnknown = newError(types.OP_NOT_APPLICABLE)

func evalFilter(filter []byte, bins map[string]interface{}) (bool, Error) {
	exp, err := decodeWire(filter)
	if err != nil {
		return false, err
	}
	res, err := evalExp(exp, &evalEnv{bins: bins})
	if err == errUnknown {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

func evalExp(node interface{}, env *evalEnv) (interface{}, Error) {
	switch n := node.(type) {
	case wireStr:
		return n.value(), nil
	case []interface{}:
		if len(n) == 0 {
			return nil, newError(types.PARSE_ERROR, "empty expression")
		}
		op, ok := n[0].(int)
		if !ok {
			return nil, newError(types.PARSE_ERROR, "expression without opcode")
		}
		return evalCall(ExpOp(op), n[1:], env)
	}
	return node, nil
}

func evalArgs(args []interface{}, env *evalEnv) ([]interface{}, Error) {
	res := make([]interface{}, len(args))
	for i, a := range args {
		v, err := evalExp(a, env)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func evalCall(op ExpOp, args []interface{}, env *evalEnv) (interface{}, Error) {
	switch op {
	case expOpQUOTED:
		return plain(args[0]), nil

	case expOpBIN:
		name := args[1].(wireStr).raw()
		v, ok := env.bins[name]
		if !ok || !typeMatches(ExpType(args[0].(int)), v) {
			return nil, errUnknown
		}
		return v, nil

	case expOpVarBuiltin:
		if env.loop == nil {
			return nil, errUnknown
		}
		var v interface{}
		switch ExpLoopVarPart(args[1].(int)) {
		case LoopVarPartMapKey:
			v = env.loop.key
		case LoopVarPartValue:
			v = env.loop.value
		case LoopVarPartIndex:
			v = env.loop.index
		}
		if !typeMatches(ExpType(args[0].(int)), v) {
			return nil, errUnknown
		}
		return v, nil

	case expOpRemoveResult:
		return removeResult{}, nil

	case expOpEQ, expOpNE, expOpGT, expOpGE, expOpLT, expOpLE:
		vals, err := evalArgs(args, env)
		if err != nil {
			return nil, err
		}
		c, ok := compare(vals[0], vals[1])
		if !ok {
			return nil, errUnknown
		}
		switch op {
		case expOpEQ:
			return c == 0, nil
		case expOpNE:
			return c != 0, nil
		case expOpGT:
			return c > 0, nil
		case expOpGE:
			return c >= 0, nil
		case expOpLT:
			return c < 0, nil
		}
		return c <= 0, nil

	case expOpAND, expOpOR:
		for _, a := range args {
			v, err := evalExp(a, env)
			if err != nil {
				return nil, err
			}
			b, _ := v.(bool)
			if op == expOpAND && !b {
				return false, nil
			}
			if op == expOpOR && b {
				return true, nil
			}
		}
		return op == expOpAND, nil

	case expOpNOT:
		v, err := evalExp(args[0], env)
		if err != nil {
			return nil, err
		}
		b, _ := v.(bool)
		return !b, nil

	case expOpAdd, expOpSub, expOpMul:
		vals, err := evalArgs(args, env)
		if err != nil {
			return nil, err
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			var ok bool
			if acc, ok = arith(op, acc, v); !ok {
				return nil, errUnknown
			}
		}
		return acc, nil

	case expOpCALL:
		return evalModuleCall(args, env)
	}
	return nil, newErrorf(types.PARAMETER_ERROR, "opcode %s is not supported by the fake transport", op)
}

func evalModuleCall(args []interface{}, env *evalEnv) (interface{}, Error) {
	call, _ := args[2].([]interface{})
	if len(call) > 0 && call[0] == 0xff {
		return nil, newError(types.PARAMETER_ERROR, "nested contexts are not supported by the fake transport")
	}

	bin, err := evalExp(args[3], env)
	if err != nil {
		return nil, err
	}
	callArgs, err := evalArgs(call[1:], env)
	if err != nil {
		return nil, err
	}

	switch call[0] {
	case _CDT_LIST_GET_BY_RANK:
		list, ok := bin.([]interface{})
		if !ok || len(list) == 0 {
			return nil, errUnknown
		}
		sorted := append([]interface{}(nil), list...)
		sort.SliceStable(sorted, func(i, j int) bool {
			c, _ := compare(sorted[i], sorted[j])
			return c < 0
		})
		rank := callArgs[1].(int)
		if rank < 0 {
			rank += len(sorted)
		}
		if rank < 0 || rank >= len(sorted) {
			return nil, errUnknown
		}
		if ListReturnType(callArgs[0].(int)) != ListReturnTypeValue {
			return nil, errUnknown
		}
		return sorted[rank], nil

	case _CDT_MAP_GET_BY_VALUE:
		m, ok := bin.(map[interface{}]interface{})
		if !ok {
			return nil, errUnknown
		}
		var keys, values []interface{}
		for k, v := range m {
			if c, ok := compare(v, callArgs[1]); ok && c == 0 {
				keys = append(keys, k)
				values = append(values, v)
			}
		}
		switch mapReturnType(callArgs[0].(int)) {
		case MapReturnType.COUNT:
			return len(keys), nil
		case MapReturnType.KEY:
			return keys, nil
		case MapReturnType.VALUE:
			return values, nil
		}
	}
	return nil, newErrorf(types.PARAMETER_ERROR, "CDT operation %v is not supported by the fake transport", call[0])
}

func typeMatches(t ExpType, v interface{}) bool {
	switch t {
	case ExpTypeINT:
		_, ok := v.(int)
		return ok
	case ExpTypeFLOAT:
		_, ok := v.(float64)
		return ok
	case ExpTypeSTRING:
		_, ok := v.(string)
		return ok
	case ExpTypeLIST:
		_, ok := v.([]interface{})
		return ok
	case ExpTypeMAP:
		_, ok := v.(map[interface{}]interface{})
		return ok
	case ExpTypeBOOL:
		_, ok := v.(bool)
		return ok
	}
	return true
}

func compare(a, b interface{}) (int, bool) {
	switch x := a.(type) {
	case int:
		switch y := b.(type) {
		case int:
			return cmpOrdered(x, y), true
		case float64:
			return cmpOrdered(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmpOrdered(x, y), true
		case int:
			return cmpOrdered(x, float64(y)), true
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	case bool:
		if y, ok := b.(bool); ok {
			if x == y {
				return 0, true
			}
			return 1, true
		}
	}
	return 0, false
}

func cmpOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func arith(op ExpOp, a, b interface{}) (interface{}, bool) {
	x, xInt := a.(int)
	y, yInt := b.(int)
	if xInt && yInt {
		switch op {
		case expOpAdd:
			return x + y, true
		case expOpSub:
			return x - y, true
		case expOpMul:
			return x * y, true
		}
		return nil, false
	}

	fx, ok1 := a.(float64)
	fy, ok2 := b.(float64)
	if !ok1 || !ok2 {
		return nil, false
	}
	switch op {
	case expOpAdd:
		return fx + fy, true
	case expOpSub:
		return fx - fy, true
	case expOpMul:
		return fx * fy, true
	}
	return nil, false
}

//-------------------------------------------------------
// Path operations
//-------------------------------------------------------

type pathStep struct {
	id     int
	value  interface{}
	filter interface{}
}

func applyPathOp(rec *fakeRecord, op *Operation) (interface{}, bool, Error) {
	payload, err := op.Payload()
	if err != nil {
		return nil, false, err
	}
	decoded, err := decodeWire(payload)
	if err != nil {
		return nil, false, err
	}

	top := decoded.([]interface{})
	flat := top[1].([]interface{})
	call := top[2].([]interface{})
	flags := SelectFlags(call[1].(int))

	steps := make([]pathStep, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		s := pathStep{id: flat[i].(int)}
		if s.id == ctxTypeExp {
			if b, ok := flat[i+1].(bool); !ok || !b {
				s.filter = flat[i+1]
			}
		} else {
			s.value = plain(flat[i+1])
		}
		steps = append(steps, s)
	}

	bin, exists := rec.bins[op.binName]
	if !exists {
		return nil, true, nil
	}

	if flags&SelectApply != 0 {
		res, err := modifyPath(bin, steps, call[2], flags, &loopVars{value: bin})
		if err != nil {
			return nil, false, err
		}
		rec.bins[op.binName] = res
		return res, true, nil
	}

	if flags&selectProjectionMask == SelectMatchingTree {
		res, _, err := selectTree(bin, steps, flags)
		return res, true, err
	}

	var out []interface{}
	if err := selectFlat(bin, steps, flags, &loopVars{value: bin}, &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// children calls fn for each child of a collection addressed by the step.
func pathChildren(node interface{}, step pathStep, flags SelectFlags, fn func(lv *loopVars) Error) Error {
	visit := func(lv *loopVars) Error {
		if step.filter != nil {
			ok, err := evalExp(step.filter, &evalEnv{loop: lv})
			if err == errUnknown && flags&SelectNoFail != 0 {
				return nil
			}
			if err != nil {
				return err
			}
			if b, _ := ok.(bool); !b {
				return nil
			}
		}
		return fn(lv)
	}

	switch n := node.(type) {
	case map[interface{}]interface{}:
		keys := make([]interface{}, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j]) })
		for i, k := range keys {
			if step.id == ctxTypeMapKey {
				if c, ok := compare(k, step.value); !ok || c != 0 {
					continue
				}
			} else if step.id != ctxTypeExp {
				return newError(types.OP_NOT_APPLICABLE)
			}
			if err := visit(&loopVars{key: k, value: n[k], index: i}); err != nil {
				return err
			}
		}
	case []interface{}:
		for i, v := range n {
			if step.id == ctxTypeListIndex {
				if idx, _ := step.value.(int); idx != i {
					continue
				}
			} else if step.id != ctxTypeExp {
				return newError(types.OP_NOT_APPLICABLE)
			}
			if err := visit(&loopVars{value: v, index: i}); err != nil {
				return err
			}
		}
	default:
		return newError(types.OP_NOT_APPLICABLE)
	}
	return nil
}

func selectTree(node interface{}, steps []pathStep, flags SelectFlags) (interface{}, bool, Error) {
	if len(steps) == 0 {
		return node, true, nil
	}

	switch node.(type) {
	case map[interface{}]interface{}:
		out := map[interface{}]interface{}{}
		err := pathChildren(node, steps[0], flags, func(lv *loopVars) Error {
			res, ok, err := selectTree(lv.value, steps[1:], flags)
			if ok {
				out[lv.key] = res
			}
			return err
		})
		return out, true, err
	case []interface{}:
		out := []interface{}{}
		err := pathChildren(node, steps[0], flags, func(lv *loopVars) Error {
			res, ok, err := selectTree(lv.value, steps[1:], flags)
			if ok {
				out = append(out, res)
			}
			return err
		})
		return out, true, err
	}
	return nil, false, nil
}

func selectFlat(node interface{}, steps []pathStep, flags SelectFlags, lv *loopVars, out *[]interface{}) Error {
	if len(steps) == 0 {
		switch flags & selectProjectionMask {
		case SelectValue:
			*out = append(*out, lv.value)
		case SelectMapKey:
			*out = append(*out, lv.key)
		case SelectMapKeyValue:
			*out = append(*out, lv.key, lv.value)
		}
		return nil
	}
	if err := pathChildren(node, steps[0], flags, func(child *loopVars) Error {
		return selectFlat(child.value, steps[1:], flags, child, out)
	}); err != nil && flags&SelectNoFail == 0 {
		return err
	}
	return nil
}

func modifyPath(node interface{}, steps []pathStep, exp interface{}, flags SelectFlags, lv *loopVars) (interface{}, Error) {
	if len(steps) == 0 {
		return evalExp(exp, &evalEnv{loop: lv})
	}

	switch n := node.(type) {
	case map[interface{}]interface{}:
		out := make(map[interface{}]interface{}, len(n))
		for k, v := range n {
			out[k] = v
		}
		err := pathChildren(n, steps[0], flags, func(child *loopVars) Error {
			res, err := modifyPath(child.value, steps[1:], exp, flags, child)
			if err != nil {
				return err
			}
			if _, remove := res.(removeResult); remove {
				delete(out, child.key)
			} else {
				out[child.key] = res
			}
			return nil
		})
		return out, err
	case []interface{}:
		out := append([]interface{}(nil), n...)
		removed := map[int]bool{}
		err := pathChildren(n, steps[0], flags, func(child *loopVars) Error {
			res, err := modifyPath(child.value, steps[1:], exp, flags, child)
			if err != nil {
				return err
			}
			if _, remove := res.(removeResult); remove {
				removed[child.index] = true
			} else {
				out[child.index] = res
			}
			return nil
		})
		if len(removed) > 0 {
			kept := out[:0]
			for i, v := range out {
				if !removed[i] {
					kept = append(kept, v)
				}
			}
			out = kept
		}
		return out, err
	}
	return nil, newError(types.OP_NOT_APPLICABLE)
}
