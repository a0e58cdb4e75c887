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

package types

import "fmt"

// ResultCode signifies the database operation error codes.
// The positive numbers align with the server side file proto.h.
// Negative numbers are generated on the client side.
type ResultCode int

const (
	// Transaction commit or abort was already attempted and cannot be retried.
	ROLL_ALREADY_ATTEMPTED ResultCode = -21

	// Transaction was already committed.
	TXN_ALREADY_COMMITTED ResultCode = -20

	// Transaction was already aborted.
	TXN_ALREADY_ABORTED ResultCode = -19

	// Transaction verification failed. The transaction was aborted.
	TXN_FAILED ResultCode = -18

	// One or more keys in the batch failed.
	BATCH_FAILED ResultCode = -16

	// No response was received from the server.
	NO_RESPONSE ResultCode = -15

	// Max retries limit reached.
	MAX_RETRIES_EXCEEDED ResultCode = -12

	// Max errors limit reached.
	MAX_ERROR_RATE ResultCode = -11

	// Generic client error, such as a local file I/O failure.
	COMMON_ERROR ResultCode = -10

	// No node could be resolved to serve the command.
	SERVER_NOT_AVAILABLE ResultCode = -8

	// Requested value type does not match the expected type.
	TYPE_NOT_SUPPORTED ResultCode = -7

	// The command was rejected by the client.
	COMMAND_REJECTED ResultCode = -6

	// Query was terminated by user.
	QUERY_TERMINATED ResultCode = -5

	// Scan was terminated by user.
	SCAN_TERMINATED ResultCode = -4

	// Chosen node is not currently active.
	INVALID_NODE_ERROR ResultCode = -3

	// Client parse error.
	PARSE_ERROR ResultCode = -2

	// Client serialization error.
	SERIALIZE_ERROR ResultCode = -1

	// Operation was successful.
	OK ResultCode = 0

	// Unknown server failure.
	SERVER_ERROR ResultCode = 1

	// On retrieving, touching or replacing a record that doesn't exist.
	KEY_NOT_FOUND_ERROR ResultCode = 2

	// On modifying a record with unexpected generation.
	GENERATION_ERROR ResultCode = 3

	// Bad parameter(s) were passed in database operation call.
	PARAMETER_ERROR ResultCode = 4

	// On create-only (write unique) operations on a record that already
	// exists.
	KEY_EXISTS_ERROR ResultCode = 5

	// Bin already exists on a create-only operation.
	BIN_EXISTS_ERROR ResultCode = 6

	// Expected cluster was not received.
	CLUSTER_KEY_MISMATCH ResultCode = 7

	// Server has run out of memory.
	SERVER_MEM_ERROR ResultCode = 8

	// Client or server has timed out.
	TIMEOUT ResultCode = 9

	// Operation not allowed in current configuration.
	ALWAYS_FORBIDDEN ResultCode = 10

	// Partition is unavailable.
	PARTITION_UNAVAILABLE ResultCode = 11

	// Operation is not supported with configured bin type (single-bin or
	// multi-bin).
	BIN_TYPE_ERROR ResultCode = 12

	// Record size exceeds limit.
	RECORD_TOO_BIG ResultCode = 13

	// Too many concurrent operations on the same record.
	KEY_BUSY ResultCode = 14

	// Scan aborted by server.
	SCAN_ABORT ResultCode = 15

	// Unsupported Server Feature (e.g. Scan + UDF)
	UNSUPPORTED_FEATURE ResultCode = 16

	// Bin not found on update-only operation.
	BIN_NOT_FOUND ResultCode = 17

	// Device not keeping up with writes.
	DEVICE_OVERLOAD ResultCode = 18

	// Key type mismatch.
	KEY_MISMATCH ResultCode = 19

	// Invalid namespace.
	INVALID_NAMESPACE ResultCode = 20

	// Bin name length greater than 15 characters or maximum bins exceeded.
	BIN_NAME_TOO_LONG ResultCode = 21

	// Operation not allowed at this time.
	FAIL_FORBIDDEN ResultCode = 22

	// Map element not found in UPDATE_ONLY write mode.
	FAIL_ELEMENT_NOT_FOUND ResultCode = 23

	// Map element exists in CREATE_ONLY write mode.
	FAIL_ELEMENT_EXISTS ResultCode = 24

	// Attempt to use an Enterprise feature on a Community server or a server
	// without the applicable feature key.
	ENTERPRISE_ONLY ResultCode = 25

	// The operation cannot be applied to the current bin value on the server.
	OP_NOT_APPLICABLE ResultCode = 26

	// The transaction was not performed because the filter expression was false.
	FILTERED_OUT ResultCode = 27

	// Write command loses conflict to XDR.
	LOST_CONFLICT ResultCode = 28

	// Write can't complete until XDR finishes shipping.
	XDR_KEY_BUSY ResultCode = 32

	// The transaction is not recognized by the server.
	TXN_NOT_FOUND ResultCode = 120

	// Transaction version check failed on a read.
	MRT_VERSION_MISMATCH ResultCode = 121

	// There are no more records left for query.
	QUERY_END ResultCode = 50

	// Security functionality not supported by connected server.
	SECURITY_NOT_SUPPORTED ResultCode = 51

	// Security functionality not enabled by connected server.
	SECURITY_NOT_ENABLED ResultCode = 52

	// Invalid user name.
	INVALID_USER ResultCode = 60

	// Not authenticated.
	NOT_AUTHENTICATED ResultCode = 80

	// Role or user does not have the required privilege.
	ROLE_VIOLATION ResultCode = 81

	// A user defined function returned an error code.
	UDF_BAD_RESPONSE ResultCode = 100

	// Batch functionality has been disabled.
	BATCH_DISABLED ResultCode = 150

	// Batch max requests have been exceeded.
	BATCH_MAX_REQUESTS_EXCEEDED ResultCode = 151

	// All batch queues are full.
	BATCH_QUEUES_FULL ResultCode = 152

	// Invalid/Unsupported GeoJSON
	GEO_INVALID_GEOJSON ResultCode = 160

	// Secondary index already exists.
	INDEX_FOUND ResultCode = 200

	// Requested secondary index does not exist.
	INDEX_NOTFOUND ResultCode = 201

	// Secondary index query aborted.
	QUERY_ABORTED ResultCode = 210

	// Generic query error.
	QUERY_GENERIC ResultCode = 213

	// UDF file could not be found on the server.
	UDF_NOT_FOUND ResultCode = 1301

	// UDF file could not be read on the server.
	LUA_FILE_NOT_FOUND ResultCode = 1302
)

var resultCodeStrings = map[ResultCode]string{
	ROLL_ALREADY_ATTEMPTED:      "Transaction commit or abort already attempted",
	TXN_ALREADY_COMMITTED:       "Transaction already committed",
	TXN_ALREADY_ABORTED:         "Transaction already aborted",
	TXN_FAILED:                  "Transaction failed",
	BATCH_FAILED:                "one or more keys failed in a batch",
	NO_RESPONSE:                 "No response received from server",
	MAX_RETRIES_EXCEEDED:        "Max retries exceeded",
	MAX_ERROR_RATE:              "Max errors limit reached",
	COMMON_ERROR:                "Common Error",
	TYPE_NOT_SUPPORTED:          "Type cannot be converted to Value Type.",
	COMMAND_REJECTED:            "Command rejected",
	QUERY_TERMINATED:            "Query terminated",
	SCAN_TERMINATED:             "Scan terminated",
	INVALID_NODE_ERROR:          "Invalid node",
	PARSE_ERROR:                 "Parse error",
	SERIALIZE_ERROR:             "Serialize error",
	SERVER_NOT_AVAILABLE:        "Server is not accepting requests",
	OK:                          "ok",
	SERVER_ERROR:                "Server error",
	KEY_NOT_FOUND_ERROR:         "Key not found",
	GENERATION_ERROR:            "Generation error",
	PARAMETER_ERROR:             "Parameter error",
	KEY_EXISTS_ERROR:            "Key already exists",
	BIN_EXISTS_ERROR:            "Bin already exists",
	CLUSTER_KEY_MISMATCH:        "Cluster key mismatch",
	SERVER_MEM_ERROR:            "Server memory error",
	TIMEOUT:                     "Timeout",
	ALWAYS_FORBIDDEN:            "Operation not allowed in current configuration.",
	PARTITION_UNAVAILABLE:       "Partition not available",
	BIN_TYPE_ERROR:              "Bin type error",
	RECORD_TOO_BIG:              "Record too big",
	KEY_BUSY:                    "Hot key",
	SCAN_ABORT:                  "Scan aborted",
	UNSUPPORTED_FEATURE:         "Unsupported Server Feature",
	BIN_NOT_FOUND:               "Bin not found",
	DEVICE_OVERLOAD:             "Device overload",
	KEY_MISMATCH:                "Key mismatch",
	INVALID_NAMESPACE:           "Namespace not found",
	BIN_NAME_TOO_LONG:           "Bin name length greater than 15 characters or maximum bins exceeded",
	FAIL_FORBIDDEN:              "Operation not allowed at this time",
	FAIL_ELEMENT_NOT_FOUND:      "Element not found",
	FAIL_ELEMENT_EXISTS:         "Element exists",
	ENTERPRISE_ONLY:             "Enterprise only",
	OP_NOT_APPLICABLE:           "Operation not applicable",
	FILTERED_OUT:                "Transaction filtered out",
	LOST_CONFLICT:               "Transaction failed due to conflict with XDR",
	XDR_KEY_BUSY:                "Write can't complete until XDR finishes shipping",
	TXN_NOT_FOUND:               "Transaction not found",
	MRT_VERSION_MISMATCH:        "Transaction record version mismatch",
	QUERY_END:                   "Query end",
	SECURITY_NOT_SUPPORTED:      "Security not supported",
	SECURITY_NOT_ENABLED:        "Security not enabled",
	INVALID_USER:                "Invalid user",
	NOT_AUTHENTICATED:           "Not authenticated",
	ROLE_VIOLATION:              "Role violation",
	UDF_BAD_RESPONSE:            "UDF returned error",
	BATCH_DISABLED:              "Batch functionality has been disabled",
	BATCH_MAX_REQUESTS_EXCEEDED: "Batch max requests have been exceeded",
	BATCH_QUEUES_FULL:           "All batch queues are full",
	GEO_INVALID_GEOJSON:         "Invalid GeoJSON on insert/update",
	INDEX_FOUND:                 "Index already exists",
	INDEX_NOTFOUND:              "Index not found",
	QUERY_ABORTED:               "Query aborted",
	QUERY_GENERIC:               "Query error",
	UDF_NOT_FOUND:               "UDF does not exist.",
	LUA_FILE_NOT_FOUND:          "LUA package/file does not exist.",
}

// ResultCodeToString returns a human readable errors message based on the result code.
func ResultCodeToString(resultCode ResultCode) string {
	if msg, ok := resultCodeStrings[resultCode]; ok {
		return msg
	}
	return fmt.Sprintf("Error code (%d) not available yet - please file an issue on github.", resultCode)
}

// String implements the fmt.Stringer interface.
func (rc ResultCode) String() string {
	return ResultCodeToString(rc)
}

// IsBenignBatchResult returns true if the result code does not fail a batch.
// A record that was filtered out or did not exist is a valid outcome for a
// batch sub-request.
func (rc ResultCode) IsBenignBatchResult() bool {
	switch rc {
	case OK, FILTERED_OUT, KEY_NOT_FOUND_ERROR:
		return true
	}
	return false
}

// IsRetryable returns true if a command failing with the result code may be
// retried against the same or another node.
func (rc ResultCode) IsRetryable() bool {
	switch rc {
	case TIMEOUT, KEY_BUSY, DEVICE_OVERLOAD, PARTITION_UNAVAILABLE, SERVER_NOT_AVAILABLE, NO_RESPONSE, INVALID_NODE_ERROR:
		return true
	}
	return false
}
