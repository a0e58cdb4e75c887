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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	"github.com/aerospike/aerospike-expressions-go/types"
)

type recordingListener struct {
	mutex     sync.Mutex
	enabled   int
	snapshots int
	closed    []string
	last      *MetricsSnapshot
}

func (l *recordingListener) OnEnable(policy *MetricsPolicy, snapshot *MetricsSnapshot) Error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.enabled++
	l.last = snapshot
	return nil
}

func (l *recordingListener) OnSnapshot(snapshot *MetricsSnapshot) Error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.snapshots++
	l.last = snapshot
	return nil
}

func (l *recordingListener) OnNodeClose(node *NodeMetrics) Error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.closed = append(l.closed, node.Name())
	return nil
}

func (l *recordingListener) OnDisable(snapshot *MetricsSnapshot) Error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.last = snapshot
	return nil
}

func (l *recordingListener) snapshotCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.snapshots
}

func tempDir() string {
	dir, err := os.MkdirTemp("", "metrics")
	gm.ExpectWithOffset(1, err).ToNot(gm.HaveOccurred())
	gg.DeferCleanup(os.RemoveAll, dir)
	return dir
}

func readLines(path string) []string {
	b, err := os.ReadFile(path)
	gm.ExpectWithOffset(1, err).ToNot(gm.HaveOccurred())
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

var _ = gg.Describe("Metrics", func() {

	gg.Context("LatencyBuckets", func() {

		gg.It("should place latencies in exponential buckets", func() {
			lb := NewLatencyBuckets(7, 1)
			gm.Expect(lb.getIndex(0)).To(gm.Equal(0))
			gm.Expect(lb.getIndex(time.Millisecond)).To(gm.Equal(0))
			gm.Expect(lb.getIndex(2 * time.Millisecond)).To(gm.Equal(1))
			gm.Expect(lb.getIndex(3 * time.Millisecond)).To(gm.Equal(2))
			gm.Expect(lb.getIndex(32 * time.Millisecond)).To(gm.Equal(5))
			gm.Expect(lb.getIndex(time.Second)).To(gm.Equal(6))

			lb = NewLatencyBuckets(5, 3)
			gm.Expect(lb.getIndex(8 * time.Millisecond)).To(gm.Equal(1))
			gm.Expect(lb.getIndex(9 * time.Millisecond)).To(gm.Equal(2))
		})

		gg.It("should render a bracketed list", func() {
			lb := NewLatencyBuckets(4, 1)
			lb.Add(0)
			lb.Add(0)
			lb.Add(time.Hour)

			var sb strings.Builder
			lb.writeTo(&sb)
			gm.Expect(sb.String()).To(gm.Equal("[2,0,0,1]"))
			gm.Expect(lb.Columns()).To(gm.Equal(4))
			gm.Expect(lb.Get(3)).To(gm.Equal(1))
		})
	})

	gg.Context("MetricsWriter", func() {

		var dir string
		var policy *MetricsPolicy

		gg.BeforeEach(func() {
			dir = tempDir()
			policy = NewMetricsPolicy()
			policy.ReportDir = dir
		})

		snapshot := func() *MetricsSnapshot {
			nm := newNodeMetrics("A", policy)
			nm.addLatency(LatencyWrite, 0)
			nm.errors.IncrementAndGet()
			return &MetricsSnapshot{ClusterName: "test", CommandCount: 3, RetryCount: 1, Nodes: []*NodeMetrics{nm}}
		}

		gg.It("should write the header and the snapshots", func() {
			mw := NewMetricsWriter("")
			gm.Expect(mw.OnEnable(policy, snapshot())).To(gm.Succeed())

			name := mw.FileName()
			gm.Expect(filepath.Dir(name)).To(gm.Equal(dir))
			gm.Expect(filepath.Base(name)).To(gm.MatchRegexp(`^metrics-\d{14}\.log$`))

			gm.Expect(mw.OnSnapshot(snapshot())).To(gm.Succeed())
			gm.Expect(mw.OnDisable(snapshot())).To(gm.Succeed())
			gm.Expect(mw.FileName()).To(gm.BeEmpty())

			lines := readLines(name)
			gm.Expect(lines).To(gm.HaveLen(3))
			gm.Expect(lines[0]).To(gm.HaveSuffix(" header(1) cluster[name,cpu,mem,commandCount,retryCount,node[]] node[name,errors,timeouts,latency[]] latency(7,1)[type[l1,l2,l3...]]"))
			gm.Expect(lines[1]).To(gm.ContainSubstring(" cluster[test,"))
			gm.Expect(lines[1]).To(gm.ContainSubstring(",3,1,[[A,1,0,[conn[0,0,0,0,0,0,0],write[1,0,0,0,0,0,0],read[0,0,0,0,0,0,0],batch[0,0,0,0,0,0,0],query[0,0,0,0,0,0,0]]]]]"))
		})

		gg.It("should ignore events while disabled", func() {
			mw := NewMetricsWriter(dir)
			gm.Expect(mw.OnSnapshot(snapshot())).To(gm.Succeed())
			gm.Expect(mw.OnNodeClose(newNodeMetrics("A", policy))).To(gm.Succeed())
			gm.Expect(mw.OnDisable(snapshot())).To(gm.Succeed())

			entries, err := os.ReadDir(dir)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(entries).To(gm.BeEmpty())
		})

		gg.It("should write closed nodes", func() {
			mw := NewMetricsWriter(dir)
			gm.Expect(mw.OnEnable(policy, snapshot())).To(gm.Succeed())
			name := mw.FileName()
			gm.Expect(mw.OnNodeClose(newNodeMetrics("B", policy))).To(gm.Succeed())
			gm.Expect(mw.OnDisable(snapshot())).To(gm.Succeed())

			lines := readLines(name)
			gm.Expect(lines[1]).To(gm.ContainSubstring(" node[B,0,0,[conn["))
		})

		gg.It("should fail when the report directory cannot be created", func() {
			blocker := filepath.Join(dir, "file")
			gm.Expect(os.WriteFile(blocker, []byte("x"), 0o644)).To(gm.Succeed())
			policy.ReportDir = filepath.Join(blocker, "metrics")

			mw := NewMetricsWriter("")
			err := mw.OnEnable(policy, snapshot())
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(types.COMMON_ERROR)).To(gm.BeTrue())
			gm.Expect(mw.FileName()).To(gm.BeEmpty())
		})

		gg.It("should rotate files past the size limit", func() {
			policy.ReportSizeLimit = 1
			mw := NewMetricsWriter(dir)
			gm.Expect(mw.OnEnable(policy, snapshot())).To(gm.Succeed())
			first := mw.FileName()

			gm.Expect(mw.OnSnapshot(snapshot())).To(gm.Succeed())
			second := mw.FileName()
			gm.Expect(second).ToNot(gm.Equal(first))
			gm.Expect(mw.OnDisable(snapshot())).To(gm.Succeed())

			gm.Expect(readLines(first)).To(gm.HaveLen(2))
			lines := readLines(second)
			gm.Expect(lines[0]).To(gm.ContainSubstring(" header(1) "))
			gm.Expect(lines[0]).To(gm.HaveSuffix("latency(7,1)[type[l1,l2,l3...]]"))
		})
	})

	gg.Context("Client", func() {

		var ctx context.Context
		var clnt *Client

		gg.BeforeEach(func() {
			ctx = context.Background()
			var err Error
			clnt, err = NewClient(NewFakeTransport("A"))
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gg.DeferCleanup(func() { clnt.Close() })
		})

		gg.It("should reject invalid policies", func() {
			policy := NewMetricsPolicy()
			policy.LatencyShift = 0
			err := clnt.EnableMetrics(policy)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(types.PARAMETER_ERROR)).To(gm.BeTrue())

			policy = NewMetricsPolicy()
			policy.Interval = 0
			gm.Expect(clnt.EnableMetrics(policy)).ToNot(gm.Succeed())
		})

		gg.It("should report commands to the listener", func() {
			listener := &recordingListener{}
			policy := NewMetricsPolicy()
			policy.Listener = listener
			policy.Interval = 10 * time.Millisecond
			gm.Expect(clnt.EnableMetrics(policy)).To(gm.Succeed())

			key, err := NewKey("test", "metrics", 1)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(clnt.Put(ctx, nil, key, BinMap{"a": 1})).To(gm.Succeed())
			_, err = clnt.Get(ctx, nil, key)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			_, err = clnt.Get(ctx, nil, newKeyOrFail("missing"))
			gm.Expect(err.Matches(types.KEY_NOT_FOUND_ERROR)).To(gm.BeTrue())

			gm.Eventually(listener.snapshotCount).Should(gm.BeNumerically(">", 0))
			gm.Expect(clnt.DisableMetrics()).To(gm.Succeed())

			gm.Expect(listener.enabled).To(gm.Equal(1))
			snap := listener.last
			gm.Expect(snap.CommandCount).To(gm.Equal(3))
			gm.Expect(snap.Nodes).To(gm.HaveLen(1))

			node := snap.Nodes[0]
			gm.Expect(node.Name()).To(gm.Equal("A"))
			gm.Expect(node.ErrorCount()).To(gm.Equal(0))
			gm.Expect(node.Latency(LatencyWrite).Get(0)).To(gm.Equal(1))
			gm.Expect(node.Latency(LatencyRead).Get(0)).To(gm.Equal(2))
		})

		gg.It("should count errors and timeouts", func() {
			listener := &recordingListener{}
			policy := NewMetricsPolicy()
			policy.Listener = listener
			gm.Expect(clnt.EnableMetrics(policy)).To(gm.Succeed())

			transport := clnt.transport.(*FakeTransport)
			transport.FailNext(&AerospikeError{ResultCode: types.TIMEOUT}, &AerospikeError{ResultCode: types.PARAMETER_ERROR})

			rp := NewPolicy()
			rp.SleepBetweenRetries = 0
			_, err := clnt.Get(ctx, rp, newKeyOrFail("k"))
			gm.Expect(err.Matches(types.PARAMETER_ERROR)).To(gm.BeTrue())

			gm.Expect(clnt.DisableMetrics()).To(gm.Succeed())
			node := listener.last.Nodes[0]
			gm.Expect(node.ErrorCount()).To(gm.Equal(2))
			gm.Expect(node.TimeoutCount()).To(gm.Equal(1))
			gm.Expect(listener.last.RetryCount).To(gm.Equal(1))
		})

		gg.It("should report removed nodes", func() {
			listener := &recordingListener{}
			policy := NewMetricsPolicy()
			policy.Listener = listener
			gm.Expect(clnt.EnableMetrics(policy)).To(gm.Succeed())

			clnt.OnNodeEvent(NodeEvent{Node: "B", Added: true})
			clnt.OnNodeEvent(NodeEvent{Node: "A", Added: false})
			gm.Expect(clnt.DisableMetrics()).To(gm.Succeed())

			gm.Expect(listener.closed).To(gm.Equal([]string{"A"}))
			gm.Expect(listener.last.Nodes).To(gm.HaveLen(1))
			gm.Expect(listener.last.Nodes[0].Name()).To(gm.Equal("B"))
		})

		gg.It("should write files with the default writer", func() {
			dir := tempDir()
			policy := NewMetricsPolicy()
			policy.ReportDir = dir
			gm.Expect(clnt.EnableMetrics(policy)).To(gm.Succeed())
			gm.Expect(clnt.DisableMetrics()).To(gm.Succeed())
			gm.Expect(clnt.DisableMetrics()).To(gm.Succeed())

			files, err := filepath.Glob(filepath.Join(dir, "metrics-*.log"))
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(files).To(gm.HaveLen(1))
			gm.Expect(readLines(files[0])).To(gm.HaveLen(2))
		})
	})
})

func newKeyOrFail(key interface{}) *Key {
	k, err := NewKey("test", "metrics", key)
	gm.ExpectWithOffset(1, err).ToNot(gm.HaveOccurred())
	return k
}
