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
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// scanNodes runs the scan or query on every node of the transport.
// Up to MaxConcurrentNodes nodes are read in parallel; zero means all of them.
func (clnt *Client) scanNodes(ctx context.Context, tmpl *ScanCommand) ([]*Record, Error) {
	if clnt.closed.Get() {
		return nil, cloneError(ErrClientClosed)
	}
	if tmpl.Namespace == "" {
		return nil, newError(types.PARAMETER_ERROR, "Namespace is required")
	}
	if tmpl.Policy.FilterExpression != nil {
		filter, err := tmpl.Policy.FilterExpression.Pack()
		if err != nil {
			return nil, err
		}
		tmpl.Filter = filter
	}
	tmpl.Txn = tmpl.Policy.Txn

	nodes := clnt.transport.Nodes()
	if len(nodes) == 0 {
		return nil, newError(types.INVALID_NODE_ERROR, "Cluster is empty")
	}

	if tmpl.Policy.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tmpl.Policy.TotalTimeout)
		defer cancel()
	}

	maxConcurrentNodes := tmpl.Policy.MaxConcurrentNodes
	if maxConcurrentNodes <= 0 {
		maxConcurrentNodes = len(nodes)
	}
	sem := semaphore.NewWeighted(int64(maxConcurrentNodes))

	results := make([][]*Record, len(nodes))
	errs := make([]Error, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		if err := sem.Acquire(gctx, 1); err != nil {
			logger.Logger.Debug("Constraint semaphore failed for scan: %s", err.Error())
			break
		}

		i := i
		cmd := *tmpl
		cmd.Node = node
		g.Go(func() error {
			defer sem.Release(1)
			recs, err := clnt.scanNode(gctx, &cmd)
			if err != nil {
				logger.Logger.Debug("Error while executing scan for node %s: %s", cmd.Node, err.Error())
				errs[i] = err
				return err
			}
			results[i] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, newCommonError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, newCommonError(err)
	}

	var res []*Record
	for _, recs := range results {
		res = append(res, recs...)
	}
	if max := tmpl.Policy.MaxRecords; max > 0 && int64(len(res)) > max {
		res = res[:max]
	}
	return res, nil
}

// scanNode reads the records of one node and records its latency.
func (clnt *Client) scanNode(ctx context.Context, cmd *ScanCommand) ([]*Record, Error) {
	clnt.commandCount.IncrementAndGet()
	begin := time.Now()
	recs, err := clnt.transport.Scan(ctx, cmd)
	clnt.recordLatency(cmd.Node, LatencyQuery, time.Since(begin), err)
	if err != nil {
		return nil, err.setNode(cmd.Node)
	}
	return recs, nil
}
