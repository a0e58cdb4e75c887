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
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// Error is the internal error interface for the Aerospike client's errors.
// All the public API return this error type. This interface is compatible
// with error interface, including errors.Is and errors.As.
type Error interface {
	error

	resultCode() types.ResultCode
	// Matches returns true if the error or any of its wrapped errors contains
	// any of the passed results codes.
	// For convenience, it will return false if the error is nil.
	Matches(rcs ...types.ResultCode) bool
	// IsInDoubt signifies that the write operation may have gone through on the server
	// but the client is not able to confirm that due an error.
	IsInDoubt() bool
	// Unwrap returns the error inside
	Unwrap() error
	// Trace returns a stack trace of where the error originates from
	Trace() string

	setInDoubt(isRead bool, commandWasSent bool) Error
	markInDoubt(bool) Error
	setNode(node string) Error
	iter(int) Error
	wrap(error) Error
}

var _ error = &AerospikeError{}
var _ Error = &AerospikeError{}

// AerospikeError implements error interface for aerospike specific errors.
// All errors returning from the library are of this type.
type AerospikeError struct {
	msg     string
	wrapped error
	trace   []runtime.Frame

	// Node is the name of the node where the error occurred, if any.
	Node string
	// ResultCode determines the type of error
	ResultCode types.ResultCode
	// InDoubt determines if the command was sent to the server, but
	// there is doubt if the server received and executed the command
	// and changed the data. Only applies to commands that change data.
	InDoubt bool
	// Iteration is the number of times the command was attempted.
	Iteration int
}

// newError generates a new AerospikeError instance.
// If no message is provided, the result code will be translated into the default
// error message automatically.
func newError(code types.ResultCode, messages ...string) Error {
	if len(messages) == 0 {
		messages = []string{types.ResultCodeToString(code)}
	}

	return &AerospikeError{
		msg:        strings.Join(messages, " "),
		ResultCode: code,
		trace:      stackTrace(),
	}
}

// newErrorf is a convenience for newError with a formatted message.
func newErrorf(code types.ResultCode, format string, args ...interface{}) Error {
	err := newError(code, fmt.Sprintf(format, args...)).(*AerospikeError)
	err.trace = stackTrace()
	return err
}

// newErrorAndWrap wraps a native go error in an AerospikeError.
func newErrorAndWrap(e error, code types.ResultCode, messages ...string) Error {
	return newError(code, messages...).wrap(e)
}

// newCommonError classifies a native error and wraps it. Errors that
// already are of type Error are returned as is.
func newCommonError(e error, messages ...string) Error {
	if e == nil {
		return nil
	}

	var ae Error
	if errors.As(e, &ae) {
		return ae
	}

	code := types.SERVER_ERROR
	if isTimeout(e) {
		code = types.TIMEOUT
	}
	return newErrorAndWrap(e, code, messages...)
}

func isTimeout(e error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	if errors.As(e, &t) {
		return t.Timeout()
	}
	return errors.Is(e, context.DeadlineExceeded)
}

func stackTrace() []runtime.Frame {
	const depth = 16
	pcs := make([]uintptr, depth)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	res := make([]runtime.Frame, 0, n)
	for {
		f, more := frames.Next()
		if !strings.Contains(f.Function, "runtime.") {
			res = append(res, f)
		}
		if !more {
			break
		}
	}
	return res
}

// cloneError returns a copy of a sentinel error, so that the caller can
// decorate it without changing the shared instance.
func cloneError(e Error) Error {
	ae, ok := e.(*AerospikeError)
	if !ok {
		return e
	}
	res := *ae
	res.trace = stackTrace()
	return &res
}

// chainErrors wraps the inner error in the outer one.
// If either is nil, the other is returned.
func chainErrors(outer, inner Error) Error {
	if inner == nil {
		return outer
	}
	if outer == nil {
		return inner
	}
	return outer.wrap(inner)
}

// Error implements the error interface
func (ase *AerospikeError) Error() string {
	var sb strings.Builder
	sb.WriteString("ResultCode: ")
	sb.WriteString(ase.ResultCode.String())
	if ase.Iteration > 0 {
		fmt.Fprintf(&sb, ", Iteration: %d", ase.Iteration)
	}
	fmt.Fprintf(&sb, ", InDoubt: %t", ase.InDoubt)
	if ase.Node != "" {
		sb.WriteString(", Node: ")
		sb.WriteString(ase.Node)
	}
	if ase.msg != "" && ase.msg != ase.ResultCode.String() {
		sb.WriteString(": ")
		sb.WriteString(ase.msg)
	}
	if ase.wrapped != nil {
		sb.WriteString("\n")
		sb.WriteString(ase.wrapped.Error())
	}
	return sb.String()
}

func (ase *AerospikeError) resultCode() types.ResultCode {
	if ase == nil {
		return types.OK
	}
	return ase.ResultCode
}

// Matches returns true if the error or any of its wrapped errors contains
// any of the passed results codes.
func (ase *AerospikeError) Matches(rcs ...types.ResultCode) bool {
	if ase == nil {
		return false
	}

	for _, rc := range rcs {
		if ase.ResultCode == rc {
			return true
		}
	}

	var inner Error
	if ase.wrapped != nil && errors.As(ase.wrapped, &inner) {
		return inner.Matches(rcs...)
	}
	return false
}

// IsInDoubt signifies that the write operation may have gone through on the server
// but the client is not able to confirm that due an error.
func (ase *AerospikeError) IsInDoubt() bool {
	return ase != nil && ase.InDoubt
}

// Unwrap returns the wrapped error.
func (ase *AerospikeError) Unwrap() error {
	return ase.wrapped
}

// Trace returns a stack trace of where the error originates from.
func (ase *AerospikeError) Trace() string {
	var sb strings.Builder
	for _, f := range ase.trace {
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	if inner := new(AerospikeError); ase.wrapped != nil && errors.As(ase.wrapped, &inner) {
		sb.WriteString("Caused by:\n")
		sb.WriteString(inner.Trace())
	}
	return sb.String()
}

// Is compares an error with the AerospikeError.
// If the target is an AerospikeError, the result codes must match. An error
// in doubt matches targets both in and out of doubt, while a target in doubt
// only matches errors in doubt.
func (ase *AerospikeError) Is(e error) bool {
	target, ok := e.(*AerospikeError)
	if !ok || target == nil {
		return false
	}

	if ase.ResultCode != target.ResultCode {
		return false
	}
	return !target.InDoubt || ase.InDoubt
}

// setInDoubt marks the error in doubt if the command was a write which
// was sent to the server, and the failure does not prove the server
// rejected it.
func (ase *AerospikeError) setInDoubt(isRead bool, commandWasSent bool) Error {
	if !isRead && commandWasSent && (ase.ResultCode <= 0 || ase.ResultCode == types.TIMEOUT || ase.ResultCode == types.UDF_BAD_RESPONSE) {
		ase.InDoubt = true
	}
	return ase
}

func (ase *AerospikeError) markInDoubt(v bool) Error {
	ase.InDoubt = v
	return ase
}

func (ase *AerospikeError) setNode(node string) Error {
	ase.Node = node
	return ase
}

func (ase *AerospikeError) iter(i int) Error {
	ase.Iteration = i
	return ase
}

func (ase *AerospikeError) wrap(e error) Error {
	if e == nil {
		return ase
	}
	if ase.wrapped == nil {
		ase.wrapped = e
		return ase
	}

	// keep the existing chain and push the new error to its tail
	var inner Error
	if errors.As(ase.wrapped, &inner) {
		inner.wrap(e)
		return ase
	}
	ase.wrapped = fmt.Errorf("%w: %v", ase.wrapped, e)
	return ase
}

//revive:disable

var (
	ErrKeyNotFound               = newError(types.KEY_NOT_FOUND_ERROR)
	ErrFilteredOut               = newError(types.FILTERED_OUT)
	ErrTimeout                   = newError(types.TIMEOUT, "command execution timed out on client: See `Policy.TotalTimeout`")
	ErrUDFBadResponse            = newError(types.UDF_BAD_RESPONSE, "Invalid UDF return value")
	ErrNoOperationsSpecified     = newError(types.PARAMETER_ERROR, "No operations were passed")
	ErrRollAlreadyAttempted      = newError(types.ROLL_ALREADY_ATTEMPTED)
	ErrServerNotAvailable        = newError(types.SERVER_NOT_AVAILABLE)
	ErrMaxRetriesExceeded        = newError(types.MAX_RETRIES_EXCEEDED)
	ErrNoTransport               = newError(types.PARAMETER_ERROR, "No transport was configured for the client")
	ErrInvalidContextPath        = newError(types.PARAMETER_ERROR, "CDT context path cannot be empty")
	ErrInvalidPolicyDictionary   = newError(types.PARAMETER_ERROR, "Invalid policy configuration")
	ErrClientClosed              = newError(types.COMMAND_REJECTED, "Client is closed")
	ErrTxnCapacityBothOrNeither  = newError(types.PARAMETER_ERROR, "Transaction read and write capacities must both be positive")
	ErrTxnNamespaceMismatch      = newError(types.PARAMETER_ERROR, "Transaction namespace cannot change")
	ErrWildcardNotAllowedAsValue = newError(types.PARAMETER_ERROR, "Wildcard and Infinity values are only allowed as range bounds")
)

//revive:enable
