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
	"time"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// ClientPolicy encapsulates parameters for client policy command. These are
// the settings a Transport reads when it connects to the cluster.
type ClientPolicy struct {
	// ClusterName sets the expected cluster name. It is reported in metrics
	// snapshots, and a transport may use it to verify the seed nodes.
	ClusterName string

	// AppId identifies the application in the server logs.
	AppId string

	// User authentication to cluster. Leave empty for clusters running without restricted access.
	User string

	// Password authentication to cluster. The password will be stored by the client and sent to server
	// in hashed format. Leave empty for clusters running without restricted access.
	Password string

	// Initial host connection timeout. The timeout when opening a connection
	// to the server host for the first time.
	Timeout time.Duration //= 1 second

	// IdleTimeout is the maximum time a connection is kept in the pool
	// without being used.
	IdleTimeout time.Duration //= 55 seconds

	// Size of the Connection Queue cache.
	ConnectionQueueSize int //= 100

	// MinConnectionsPerNode is the number of connections kept open to each
	// node.
	MinConnectionsPerNode int

	// Throw exception if host connection fails during addHost().
	FailIfNotConnected bool //= true

	// TendInterval determines interval for checking for cluster state changes.
	// Minimum possible interval is 10 Miliseconds.
	TendInterval time.Duration //= 1 second

	// RackAware directs reads to the nodes of RackIds when
	// ReplicaPolicy is PREFER_RACK.
	RackAware bool

	// RackIds is the list of preferred racks, in order of preference.
	RackIds []int
}

// NewClientPolicy generates a new ClientPolicy with default values.
func NewClientPolicy() *ClientPolicy {
	return &ClientPolicy{
		Timeout:             time.Second,
		IdleTimeout:         55 * time.Second,
		ConnectionQueueSize: 100,
		FailIfNotConnected:  true,
		TendInterval:        time.Second,
	}
}

// RequiresAuthentication returns true if a User or Password is set for ClientPolicy.
func (cp *ClientPolicy) RequiresAuthentication() bool {
	return (cp.User != "") || (cp.Password != "")
}

func (cp *ClientPolicy) validate() Error {
	if cp.Timeout < 0 || cp.IdleTimeout < 0 {
		return newError(types.PARAMETER_ERROR, "Client timeouts cannot be negative")
	}
	if cp.ConnectionQueueSize <= 0 {
		return newErrorf(types.PARAMETER_ERROR, "Invalid connection queue size %d", cp.ConnectionQueueSize)
	}
	if cp.MinConnectionsPerNode < 0 || cp.MinConnectionsPerNode > cp.ConnectionQueueSize {
		return newErrorf(types.PARAMETER_ERROR, "Invalid minimum connections per node %d: must be between 0 and %d",
			cp.MinConnectionsPerNode, cp.ConnectionQueueSize)
	}
	if cp.TendInterval < 10*time.Millisecond {
		return newErrorf(types.PARAMETER_ERROR, "Tend interval %s is below the 10ms minimum", cp.TendInterval)
	}
	if cp.RackAware && len(cp.RackIds) == 0 {
		return newError(types.PARAMETER_ERROR, "Rack aware clients need at least one rack id")
	}
	return nil
}
