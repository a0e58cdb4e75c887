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

// newBatchNodeList splits the records by the node their key belongs to.
// Records whose node cannot be resolved get the error as their result and
// are left out of the list.
func newBatchNodeList(transport Transport, records []BatchRecordIfc) ([]*batchNode, Error) {
	nodes := transport.Nodes()

	if len(nodes) == 0 {
		return nil, newError(types.INVALID_NODE_ERROR, "Cluster is empty")
	}

	// Create initial key capacity for each node as average + 50%.
	keysPerNode := len(records) / len(nodes)
	keysPerNode += keysPerNode / 2

	// The minimum key capacity is 10.
	if keysPerNode < 10 {
		keysPerNode = 10
	}

	// Split keys by server node.
	batchNodes := make([]*batchNode, 0, len(nodes))

	for i, rec := range records {
		node, err := transport.NodeFor(rec.key(), rec.isWrite())
		if err != nil {
			rec.setError("", err.resultCode(), false)
			rec.chainError(err)
			continue
		}

		if batchNode := findBatchNode(batchNodes, node); batchNode == nil {
			batchNodes = append(batchNodes, newBatchNode(node, keysPerNode, i))
		} else {
			batchNode.AddKey(i)
		}
	}

	return batchNodes, nil
}

func findBatchNode(nodes []*batchNode, node string) *batchNode {
	for i := range nodes {
		if nodes[i].Node == node {
			return nodes[i]
		}
	}
	return nil
}
