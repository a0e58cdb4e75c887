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
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

const (
	metricsTimestampFormat = "2006-01-02 15:04:05.000"
	metricsFileTimeFormat  = "20060102150405"
)

// MetricsWriter is the default MetricsListener. It writes one line per
// snapshot to files named metrics-<timestamp>.log, and starts a new file
// once the current one grows past MetricsPolicy.ReportSizeLimit.
type MetricsWriter struct {
	mutex     sync.Mutex
	dir       string
	sizeLimit int64
	size      int64
	columns   int
	shift     int
	enabled   bool
	sb        strings.Builder
	file      *os.File
	proc      *process.Process
}

var _ MetricsListener = &MetricsWriter{}

// NewMetricsWriter creates a writer which writes its files to dir.
func NewMetricsWriter(dir string) *MetricsWriter {
	return &MetricsWriter{
		dir: dir,
	}
}

// FileName returns the path of the file currently written to.
func (mw *MetricsWriter) FileName() string {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()
	if mw.file == nil {
		return ""
	}
	return mw.file.Name()
}

// OnEnable implements MetricsListener.
func (mw *MetricsWriter) OnEnable(policy *MetricsPolicy, snapshot *MetricsSnapshot) Error {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()

	if policy.ReportDir != "" {
		mw.dir = policy.ReportDir
	}
	mw.sizeLimit = policy.ReportSizeLimit
	mw.columns = policy.LatencyColumns
	mw.shift = policy.LatencyShift

	if err := os.MkdirAll(mw.dir, 0o755); err != nil {
		return newErrorAndWrap(err, types.COMMON_ERROR, "Failed to create metrics directory")
	}

	if err := mw.open(policy); err != nil {
		return err
	}
	mw.enabled = true
	return nil
}

// OnSnapshot implements MetricsListener.
func (mw *MetricsWriter) OnSnapshot(snapshot *MetricsSnapshot) Error {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()

	if !mw.enabled {
		return nil
	}
	return mw.writeCluster(snapshot)
}

// OnNodeClose implements MetricsListener.
func (mw *MetricsWriter) OnNodeClose(node *NodeMetrics) Error {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()

	if !mw.enabled {
		return nil
	}

	mw.sb.Reset()
	mw.sb.WriteString(time.Now().Format(metricsTimestampFormat))
	mw.sb.WriteString(" node")
	mw.writeNode(node)
	return mw.writeLine()
}

// OnDisable implements MetricsListener.
func (mw *MetricsWriter) OnDisable(snapshot *MetricsSnapshot) Error {
	mw.mutex.Lock()
	defer mw.mutex.Unlock()

	if !mw.enabled {
		return nil
	}
	mw.enabled = false

	err := mw.writeCluster(snapshot)
	if cerr := mw.file.Close(); cerr != nil && err == nil {
		err = newErrorAndWrap(cerr, types.COMMON_ERROR, "Failed to close metrics file")
	}
	mw.file = nil
	return err
}

func (mw *MetricsWriter) open(policy *MetricsPolicy) Error {
	now := time.Now()
	base := filepath.Join(mw.dir, "metrics-"+now.Format(metricsFileTimeFormat))

	// rotation may happen more than once per second
	path := base + ".log"
	var (
		file *os.File
		err  error
	)
	for i := 1; ; i++ {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if !os.IsExist(err) {
			break
		}
		path = base + "-" + strconv.Itoa(i) + ".log"
	}
	if err != nil {
		return newErrorAndWrap(err, types.COMMON_ERROR, "Failed to create metrics file")
	}

	mw.file = file
	mw.size = 0

	mw.sb.Reset()
	mw.sb.WriteString(now.Format(metricsTimestampFormat))
	mw.sb.WriteString(" header(1)")
	mw.sb.WriteString(" cluster[name,cpu,mem,commandCount,retryCount,node[]]")
	mw.sb.WriteString(" node[name,errors,timeouts,latency[]]")
	fmt.Fprintf(&mw.sb, " latency(%d,%d)", policy.LatencyColumns, policy.LatencyShift)
	mw.sb.WriteString("[type[l1,l2,l3...]]")
	return mw.write()
}

// write appends the buffered line to the current file.
func (mw *MetricsWriter) write() Error {
	mw.sb.WriteByte('\n')
	n, err := mw.file.WriteString(mw.sb.String())
	mw.size += int64(n)
	if err != nil {
		return newErrorAndWrap(err, types.COMMON_ERROR, "Failed to write metrics")
	}
	return nil
}

// writeLine writes the buffered line and rotates the file once it reaches
// the size limit.
func (mw *MetricsWriter) writeLine() Error {
	if err := mw.write(); err != nil {
		return err
	}

	if mw.enabled && mw.sizeLimit > 0 && mw.size >= mw.sizeLimit {
		if err := mw.file.Close(); err != nil {
			logger.Logger.Warn("Failed to close metrics file %s: %s", mw.file.Name(), err.Error())
		}
		return mw.rotate()
	}
	return nil
}

// rotate starts a new file with the same header layout.
func (mw *MetricsWriter) rotate() Error {
	return mw.open(&MetricsPolicy{LatencyColumns: mw.columns, LatencyShift: mw.shift})
}

func (mw *MetricsWriter) writeCluster(snapshot *MetricsSnapshot) Error {
	cpu, mem := mw.processUsage()

	mw.sb.Reset()
	mw.sb.WriteString(time.Now().Format(metricsTimestampFormat))
	mw.sb.WriteString(" cluster[")
	mw.sb.WriteString(snapshot.ClusterName)
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.Itoa(int(cpu)))
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.FormatUint(mem, 10))
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.Itoa(snapshot.CommandCount))
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.Itoa(snapshot.RetryCount))
	mw.sb.WriteString(",[")
	for i, node := range snapshot.Nodes {
		if i > 0 {
			mw.sb.WriteByte(',')
		}
		mw.writeNode(node)
	}
	mw.sb.WriteString("]]")
	return mw.writeLine()
}

func (mw *MetricsWriter) writeNode(node *NodeMetrics) {
	mw.sb.WriteByte('[')
	mw.sb.WriteString(node.name)
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.Itoa(node.ErrorCount()))
	mw.sb.WriteByte(',')
	mw.sb.WriteString(strconv.Itoa(node.TimeoutCount()))
	mw.sb.WriteString(",[")
	for i, buckets := range node.latency {
		if i > 0 {
			mw.sb.WriteByte(',')
		}
		mw.sb.WriteString(LatencyType(i).String())
		buckets.writeTo(&mw.sb)
	}
	mw.sb.WriteString("]]")
}

// processUsage returns the CPU percentage and resident memory of the
// process. Failures are logged and reported as zero.
func (mw *MetricsWriter) processUsage() (float64, uint64) {
	if mw.proc == nil {
		pid := os.Getpid()
		if pid > math.MaxInt32 {
			logger.Logger.Warn("The PID of the application must be a 32-bit integer. Its value is %d", pid)
			return 0, 0
		}

		proc, err := process.NewProcess(int32(pid))
		if err != nil {
			logger.Logger.Warn("Failed to read process information: %s", err.Error())
			return 0, 0
		}
		mw.proc = proc
	}

	cpu, err := mw.proc.CPUPercent()
	if err != nil {
		logger.Logger.Warn("Failed to read process CPU usage: %s", err.Error())
	}

	var mem uint64
	if info, err := mw.proc.MemoryInfo(); err != nil {
		logger.Logger.Warn("Failed to read process memory usage: %s", err.Error())
	} else {
		mem = info.RSS
	}
	return cpu, mem
}
