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
	"sort"
	"sync"
	"time"

	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// clientMetrics holds the per node counters while metrics are enabled.
type clientMetrics struct {
	policy   *MetricsPolicy
	listener MetricsListener

	mutex sync.Mutex
	nodes map[string]*NodeMetrics

	stop chan struct{}
	done chan struct{}
}

func newClientMetrics(policy *MetricsPolicy, nodes []string) *clientMetrics {
	listener := policy.Listener
	if listener == nil {
		listener = NewMetricsWriter(policy.ReportDir)
	}

	m := &clientMetrics{
		policy:   policy,
		listener: listener,
		nodes:    make(map[string]*NodeMetrics, len(nodes)),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, name := range nodes {
		m.nodes[name] = newNodeMetrics(name, policy)
	}
	return m
}

func (m *clientMetrics) node(name string) *NodeMetrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	nm, ok := m.nodes[name]
	if !ok {
		nm = newNodeMetrics(name, m.policy)
		m.nodes[name] = nm
	}
	return nm
}

func (m *clientMetrics) removeNode(name string) *NodeMetrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	nm := m.nodes[name]
	delete(m.nodes, name)
	return nm
}

func (m *clientMetrics) record(node string, latencyType LatencyType, elapsed time.Duration, err Error) {
	if node == "" {
		return
	}

	nm := m.node(node)
	nm.addLatency(latencyType, elapsed)
	if err != nil && !err.Matches(types.KEY_NOT_FOUND_ERROR, types.FILTERED_OUT) {
		nm.errors.IncrementAndGet()
		if err.Matches(types.TIMEOUT) {
			nm.timeouts.IncrementAndGet()
		}
	}
}

func (m *clientMetrics) run(snapshot func() *MetricsSnapshot) {
	defer close(m.done)

	ticker := time.NewTicker(m.policy.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if err := m.listener.OnSnapshot(snapshot()); err != nil {
				logger.Logger.Error("Failed to write metrics snapshot: %s", err.Error())
			}
		}
	}
}

func (m *clientMetrics) shutdown() {
	close(m.stop)
	<-m.done
}

func (m *clientMetrics) nodeList() []*NodeMetrics {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	res := make([]*NodeMetrics, 0, len(m.nodes))
	for _, nm := range m.nodes {
		res = append(res, nm)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].name < res[j].name })
	return res
}

//-------------------------------------------------------
// Metrics
//-------------------------------------------------------

// EnableMetrics starts collecting latency histograms and counters, and
// reports them to the listener of the policy every policy.Interval. If
// metrics are already enabled, they are restarted with the new policy.
func (clnt *Client) EnableMetrics(policy *MetricsPolicy) Error {
	if policy == nil {
		policy = clnt.DefaultMetricsPolicy
	}
	if policy == nil {
		policy = NewMetricsPolicy()
	}
	if err := policy.validate(); err != nil {
		return err
	}

	clnt.metricsMutex.Lock()
	defer clnt.metricsMutex.Unlock()

	if clnt.metrics != nil {
		clnt.disableMetrics()
	}

	m := newClientMetrics(policy, clnt.transport.Nodes())
	if err := m.listener.OnEnable(policy, clnt.snapshot(m)); err != nil {
		return err
	}

	go m.run(func() *MetricsSnapshot { return clnt.snapshot(m) })
	clnt.metrics = m
	logger.Logger.Info("Metrics enabled, reporting every %s", policy.Interval)
	return nil
}

// DisableMetrics stops collecting metrics and sends a final snapshot to
// the listener.
func (clnt *Client) DisableMetrics() Error {
	clnt.metricsMutex.Lock()
	defer clnt.metricsMutex.Unlock()

	if clnt.metrics == nil {
		return nil
	}
	return clnt.disableMetrics()
}

func (clnt *Client) disableMetrics() Error {
	m := clnt.metrics
	clnt.metrics = nil
	m.shutdown()
	return m.listener.OnDisable(clnt.snapshot(m))
}

// OnNodeEvent is called by the transport when a node joins or leaves the
// cluster.
func (clnt *Client) OnNodeEvent(event NodeEvent) {
	if event.Added {
		logger.Logger.Info("Node %s added to the cluster", event.Node)
	} else {
		logger.Logger.Info("Node %s removed from the cluster", event.Node)
	}

	m := clnt.currentMetrics()
	if m == nil {
		return
	}

	if event.Added {
		m.node(event.Node)
		return
	}

	if nm := m.removeNode(event.Node); nm != nil {
		if err := m.listener.OnNodeClose(nm); err != nil {
			logger.Logger.Error("Failed to write metrics for closed node %s: %s", event.Node, err.Error())
		}
	}
}

func (clnt *Client) currentMetrics() *clientMetrics {
	clnt.metricsMutex.Lock()
	defer clnt.metricsMutex.Unlock()
	return clnt.metrics
}

func (clnt *Client) recordLatency(node string, latencyType LatencyType, elapsed time.Duration, err Error) {
	if m := clnt.currentMetrics(); m != nil {
		m.record(node, latencyType, elapsed, err)
	}
}

func (clnt *Client) snapshot(m *clientMetrics) *MetricsSnapshot {
	return &MetricsSnapshot{
		ClusterName:  clnt.policy.ClusterName,
		CommandCount: clnt.commandCount.Get(),
		RetryCount:   clnt.retryCount.Get(),
		Nodes:        m.nodeList(),
	}
}
