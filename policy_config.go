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
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// ConfigFormat is the encoding of a policy configuration document.
type ConfigFormat int

const (
	// ConfigYAML decodes YAML documents.
	ConfigYAML ConfigFormat = iota
	// ConfigTOML decodes TOML documents.
	ConfigTOML
)

// Timeouts and sleeps are in milliseconds, TTLs in seconds using the signed
// notation (-1 never expire, -2 do not update, -3 client default).
type basePolicyConfig struct {
	TotalTimeout        *int64   `yaml:"total_timeout" toml:"total_timeout"`
	SocketTimeout       *int64   `yaml:"socket_timeout" toml:"socket_timeout"`
	MaxRetries          *int     `yaml:"max_retries" toml:"max_retries"`
	SleepBetweenRetries *int64   `yaml:"sleep_between_retries" toml:"sleep_between_retries"`
	SleepMultiplier     *float64 `yaml:"sleep_multiplier" toml:"sleep_multiplier"`
	SendKey             *bool    `yaml:"send_key" toml:"send_key"`
	Compress            *bool    `yaml:"compress" toml:"compress"`
	ReadModeAP          *string  `yaml:"read_mode_ap" toml:"read_mode_ap"`
	ReadModeSC          *string  `yaml:"read_mode_sc" toml:"read_mode_sc"`
	Replica             *string  `yaml:"replica" toml:"replica"`
	ReadTouchTTLPercent *int32   `yaml:"read_touch_ttl_percent" toml:"read_touch_ttl_percent"`
}

type writePolicyConfig struct {
	basePolicyConfig `yaml:",inline"`

	Exists        *string `yaml:"exists" toml:"exists"`
	Gen           *string `yaml:"gen" toml:"gen"`
	Generation    *uint32 `yaml:"generation" toml:"generation"`
	CommitLevel   *string `yaml:"commit_level" toml:"commit_level"`
	TTL           *int64  `yaml:"ttl" toml:"ttl"`
	DurableDelete *bool   `yaml:"durable_delete" toml:"durable_delete"`
	RespondAllOps *bool   `yaml:"respond_all_ops" toml:"respond_all_ops"`
}

type batchPolicyConfig struct {
	basePolicyConfig `yaml:",inline"`

	ConcurrentNodes *int  `yaml:"concurrent_nodes" toml:"concurrent_nodes"`
	AllowInline     *bool `yaml:"allow_inline" toml:"allow_inline"`
	AllowInlineSSD  *bool `yaml:"allow_inline_ssd" toml:"allow_inline_ssd"`
	RespondAllKeys  *bool `yaml:"respond_all_keys" toml:"respond_all_keys"`
}

type batchReadPolicyConfig struct {
	ReadModeAP          *string `yaml:"read_mode_ap" toml:"read_mode_ap"`
	ReadModeSC          *string `yaml:"read_mode_sc" toml:"read_mode_sc"`
	ReadTouchTTLPercent *int32  `yaml:"read_touch_ttl_percent" toml:"read_touch_ttl_percent"`
}

type batchWritePolicyConfig struct {
	Exists        *string `yaml:"exists" toml:"exists"`
	Gen           *string `yaml:"gen" toml:"gen"`
	Generation    *uint32 `yaml:"generation" toml:"generation"`
	CommitLevel   *string `yaml:"commit_level" toml:"commit_level"`
	TTL           *int64  `yaml:"ttl" toml:"ttl"`
	DurableDelete *bool   `yaml:"durable_delete" toml:"durable_delete"`
	SendKey       *bool   `yaml:"send_key" toml:"send_key"`
}

type multiPolicyConfig struct {
	basePolicyConfig `yaml:",inline"`

	MaxConcurrentNodes *int   `yaml:"max_concurrent_nodes" toml:"max_concurrent_nodes"`
	MaxRecords         *int64 `yaml:"max_records" toml:"max_records"`
	RecordsPerSecond   *int   `yaml:"records_per_second" toml:"records_per_second"`
	IncludeBinData     *bool  `yaml:"include_bin_data" toml:"include_bin_data"`
}

type scanPolicyConfig struct {
	multiPolicyConfig `yaml:",inline"`

	ScanPercent *int `yaml:"scan_percent" toml:"scan_percent"`
}

type queryPolicyConfig struct {
	multiPolicyConfig `yaml:",inline"`

	ShortQuery *bool `yaml:"short_query" toml:"short_query"`
}

type infoPolicyConfig struct {
	Timeout *int64 `yaml:"timeout" toml:"timeout"`
}

type metricsPolicyConfig struct {
	Interval        *int64  `yaml:"interval" toml:"interval"` // seconds
	LatencyColumns  *int    `yaml:"latency_columns" toml:"latency_columns"`
	LatencyShift    *int    `yaml:"latency_shift" toml:"latency_shift"`
	ReportDir       *string `yaml:"report_dir" toml:"report_dir"`
	ReportSizeLimit *int64  `yaml:"report_size_limit" toml:"report_size_limit"`
}

// PolicyConfig is a decoded policy configuration document. Each section
// overrides the defaults of one policy; absent sections and keys keep them.
type PolicyConfig struct {
	ReadSection        *basePolicyConfig       `yaml:"read" toml:"read"`
	WriteSection       *writePolicyConfig      `yaml:"write" toml:"write"`
	BatchSection       *batchPolicyConfig      `yaml:"batch" toml:"batch"`
	BatchReadSection   *batchReadPolicyConfig  `yaml:"batch_read" toml:"batch_read"`
	BatchWriteSection  *batchWritePolicyConfig `yaml:"batch_write" toml:"batch_write"`
	BatchRemoveSection *batchWritePolicyConfig `yaml:"batch_remove" toml:"batch_remove"`
	BatchApplySection  *batchWritePolicyConfig `yaml:"batch_apply" toml:"batch_apply"`
	ScanSection        *scanPolicyConfig       `yaml:"scan" toml:"scan"`
	QuerySection       *queryPolicyConfig      `yaml:"query" toml:"query"`
	InfoSection        *infoPolicyConfig       `yaml:"info" toml:"info"`
	MetricsSection     *metricsPolicyConfig    `yaml:"metrics" toml:"metrics"`
	TxnVerifySection   *batchPolicyConfig      `yaml:"txn_verify" toml:"txn_verify"`
	TxnRollSection     *batchPolicyConfig      `yaml:"txn_roll" toml:"txn_roll"`
}

// LoadPolicyConfig decodes a policy configuration document. Unknown keys,
// unknown enum names and out of range values are rejected with a
// PARAMETER_ERROR.
func LoadPolicyConfig(r io.Reader, format ConfigFormat) (*PolicyConfig, Error) {
	cfg := &PolicyConfig{}

	switch format {
	case ConfigYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalidPolicyConfig(err)
		}
	case ConfigTOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return nil, invalidPolicyConfig(err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i := range undecoded {
				keys[i] = undecoded[i].String()
			}
			sort.Strings(keys)
			return nil, newErrorf(types.PARAMETER_ERROR, "Unknown policy keys: %s", strings.Join(keys, ", ")).
				wrap(cloneError(ErrInvalidPolicyDictionary))
		}
	default:
		return nil, newErrorf(types.PARAMETER_ERROR, "Unknown policy config format %d", format)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger.Logger.Info("Loaded policy configuration")
	return cfg, nil
}

func invalidPolicyConfig(err error) Error {
	return cloneError(ErrInvalidPolicyDictionary).wrap(err)
}

func (c *PolicyConfig) validate() Error {
	steps := []func() Error{
		func() Error { p, err := c.read(); return validated(err, p.validate) },
		func() Error { p, err := c.write(); return validated(err, p.validate) },
		func() Error { p, err := c.batch(c.BatchSection, NewBatchPolicy()); return validated(err, p.validate) },
		func() Error { p, err := c.batchRead(); return validated(err, p.validate) },
		func() Error { p, err := c.batchWrite(); return validated(err, p.validate) },
		func() Error { p, err := c.batchDelete(); return validated(err, p.validate) },
		func() Error { p, err := c.batchUDF(); return validated(err, p.validate) },
		func() Error { p, err := c.scan(); return validated(err, p.validate) },
		func() Error { p, err := c.query(); return validated(err, p.MultiPolicy.validate) },
		func() Error { p, err := c.info(); return validated(err, p.validate) },
		func() Error { p, err := c.metrics(); return validated(err, p.validate) },
		func() Error {
			p, err := c.batch(c.TxnVerifySection, &NewTxnVerifyPolicy().BatchPolicy)
			return validated(err, p.validate)
		},
		func() Error {
			p, err := c.batch(c.TxnRollSection, &NewTxnRollPolicy().BatchPolicy)
			return validated(err, p.validate)
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func validated(err Error, validate func() Error) Error {
	if err != nil {
		return err
	}
	return validate()
}

// Read returns the default read policy with the overrides of the document.
func (c *PolicyConfig) Read() *BasePolicy {
	p, _ := c.read()
	return p
}

// Write returns the default write policy with the overrides of the document.
func (c *PolicyConfig) Write() *WritePolicy {
	p, _ := c.write()
	return p
}

// Batch returns the default batch policy with the overrides of the document.
func (c *PolicyConfig) Batch() *BatchPolicy {
	p, _ := c.batch(c.BatchSection, NewBatchPolicy())
	return p
}

// BatchRead returns the default batch read policy with the overrides of the document.
func (c *PolicyConfig) BatchRead() *BatchReadPolicy {
	p, _ := c.batchRead()
	return p
}

// BatchWrite returns the default batch write policy with the overrides of the document.
func (c *PolicyConfig) BatchWrite() *BatchWritePolicy {
	p, _ := c.batchWrite()
	return p
}

// BatchDelete returns the default batch delete policy with the overrides of the document.
func (c *PolicyConfig) BatchDelete() *BatchDeletePolicy {
	p, _ := c.batchDelete()
	return p
}

// BatchUDF returns the default batch UDF policy with the overrides of the document.
func (c *PolicyConfig) BatchUDF() *BatchUDFPolicy {
	p, _ := c.batchUDF()
	return p
}

// Scan returns the default scan policy with the overrides of the document.
func (c *PolicyConfig) Scan() *ScanPolicy {
	p, _ := c.scan()
	return p
}

// Query returns the default query policy with the overrides of the document.
func (c *PolicyConfig) Query() *QueryPolicy {
	p, _ := c.query()
	return p
}

// Info returns the default info policy with the overrides of the document.
func (c *PolicyConfig) Info() *InfoPolicy {
	p, _ := c.info()
	return p
}

// Metrics returns the default metrics policy with the overrides of the document.
func (c *PolicyConfig) Metrics() *MetricsPolicy {
	p, _ := c.metrics()
	return p
}

// TxnVerify returns the default transaction verify policy with the overrides of the document.
func (c *PolicyConfig) TxnVerify() *TxnVerifyPolicy {
	p, _ := c.batch(c.TxnVerifySection, &NewTxnVerifyPolicy().BatchPolicy)
	return &TxnVerifyPolicy{BatchPolicy: *p}
}

// TxnRoll returns the default transaction roll policy with the overrides of the document.
func (c *PolicyConfig) TxnRoll() *TxnRollPolicy {
	p, _ := c.batch(c.TxnRollSection, &NewTxnRollPolicy().BatchPolicy)
	return &TxnRollPolicy{BatchPolicy: *p}
}

// Apply installs the policies of the document as the defaults of the client.
func (c *PolicyConfig) Apply(clnt *Client) {
	clnt.DefaultPolicy = c.Read()
	clnt.DefaultWritePolicy = c.Write()
	clnt.DefaultBatchPolicy = c.Batch()
	clnt.DefaultBatchReadPolicy = c.BatchRead()
	clnt.DefaultBatchWritePolicy = c.BatchWrite()
	clnt.DefaultBatchDeletePolicy = c.BatchDelete()
	clnt.DefaultBatchUDFPolicy = c.BatchUDF()
	clnt.DefaultScanPolicy = c.Scan()
	clnt.DefaultQueryPolicy = c.Query()
	clnt.DefaultInfoPolicy = c.Info()
	clnt.DefaultTxnVerifyPolicy = c.TxnVerify()
	clnt.DefaultTxnRollPolicy = c.TxnRoll()
	if c.MetricsSection != nil {
		clnt.DefaultMetricsPolicy = c.Metrics()
	}
}

func (c *PolicyConfig) read() (*BasePolicy, Error) {
	p := NewPolicy()
	return p, c.ReadSection.apply(p)
}

func (c *PolicyConfig) write() (*WritePolicy, Error) {
	p := NewWritePolicy(0, 0)
	s := c.WriteSection
	if s == nil {
		return p, nil
	}
	if err := s.basePolicyConfig.apply(&p.BasePolicy); err != nil {
		return p, err
	}

	var err Error
	if err = parseEnum(s.Exists, recordExistsActionByName, &p.RecordExistsAction, "exists"); err != nil {
		return p, err
	}
	if err = parseEnum(s.Gen, generationPolicyByName, &p.GenerationPolicy, "gen"); err != nil {
		return p, err
	}
	if err = parseEnum(s.CommitLevel, commitLevelByName, &p.CommitLevel, "commit_level"); err != nil {
		return p, err
	}
	if err = setTTL(s.TTL, &p.Expiration); err != nil {
		return p, err
	}
	setIf(s.Generation, &p.Generation)
	setIf(s.DurableDelete, &p.DurableDelete)
	setIf(s.RespondAllOps, &p.RespondPerEachOp)
	return p, nil
}

func (c *PolicyConfig) batch(s *batchPolicyConfig, p *BatchPolicy) (*BatchPolicy, Error) {
	if s == nil {
		return p, nil
	}
	if err := s.basePolicyConfig.apply(&p.BasePolicy); err != nil {
		return p, err
	}
	setIf(s.ConcurrentNodes, &p.ConcurrentNodes)
	setIf(s.AllowInline, &p.AllowInline)
	setIf(s.AllowInlineSSD, &p.AllowInlineSSD)
	setIf(s.RespondAllKeys, &p.RespondAllKeys)
	return p, nil
}

func (c *PolicyConfig) batchRead() (*BatchReadPolicy, Error) {
	p := NewBatchReadPolicy()
	s := c.BatchReadSection
	if s == nil {
		return p, nil
	}
	if err := parseEnum(s.ReadModeAP, readModeAPByName, &p.ReadModeAP, "read_mode_ap"); err != nil {
		return p, err
	}
	if err := parseEnum(s.ReadModeSC, readModeSCByName, &p.ReadModeSC, "read_mode_sc"); err != nil {
		return p, err
	}
	setIf(s.ReadTouchTTLPercent, &p.ReadTouchTTLPercent)
	return p, nil
}

func (c *PolicyConfig) batchWrite() (*BatchWritePolicy, Error) {
	p := NewBatchWritePolicy()
	s := c.BatchWriteSection
	if s == nil {
		return p, nil
	}
	if err := parseEnum(s.Exists, recordExistsActionByName, &p.RecordExistsAction, "exists"); err != nil {
		return p, err
	}
	if err := parseEnum(s.Gen, generationPolicyByName, &p.GenerationPolicy, "gen"); err != nil {
		return p, err
	}
	if err := parseEnum(s.CommitLevel, commitLevelByName, &p.CommitLevel, "commit_level"); err != nil {
		return p, err
	}
	if err := setTTL(s.TTL, &p.Expiration); err != nil {
		return p, err
	}
	setIf(s.Generation, &p.Generation)
	setIf(s.DurableDelete, &p.DurableDelete)
	setIf(s.SendKey, &p.SendKey)
	return p, nil
}

func (c *PolicyConfig) batchDelete() (*BatchDeletePolicy, Error) {
	p := NewBatchDeletePolicy()
	s := c.BatchRemoveSection
	if s == nil {
		return p, nil
	}
	if s.Exists != nil || s.TTL != nil {
		return p, newError(types.PARAMETER_ERROR, "batch_remove does not accept exists or ttl").wrap(cloneError(ErrInvalidPolicyDictionary))
	}
	if err := parseEnum(s.Gen, generationPolicyByName, &p.GenerationPolicy, "gen"); err != nil {
		return p, err
	}
	if err := parseEnum(s.CommitLevel, commitLevelByName, &p.CommitLevel, "commit_level"); err != nil {
		return p, err
	}
	setIf(s.Generation, &p.Generation)
	setIf(s.DurableDelete, &p.DurableDelete)
	setIf(s.SendKey, &p.SendKey)
	return p, nil
}

func (c *PolicyConfig) batchUDF() (*BatchUDFPolicy, Error) {
	p := NewBatchUDFPolicy()
	s := c.BatchApplySection
	if s == nil {
		return p, nil
	}
	if s.Exists != nil || s.Gen != nil || s.Generation != nil {
		return p, newError(types.PARAMETER_ERROR, "batch_apply does not accept exists or generation").wrap(cloneError(ErrInvalidPolicyDictionary))
	}
	if err := parseEnum(s.CommitLevel, commitLevelByName, &p.CommitLevel, "commit_level"); err != nil {
		return p, err
	}
	if err := setTTL(s.TTL, &p.Expiration); err != nil {
		return p, err
	}
	setIf(s.DurableDelete, &p.DurableDelete)
	setIf(s.SendKey, &p.SendKey)
	return p, nil
}

func (s *multiPolicyConfig) apply(p *MultiPolicy) Error {
	if err := s.basePolicyConfig.apply(&p.BasePolicy); err != nil {
		return err
	}
	setIf(s.MaxConcurrentNodes, &p.MaxConcurrentNodes)
	setIf(s.MaxRecords, &p.MaxRecords)
	setIf(s.RecordsPerSecond, &p.RecordsPerSecond)
	setIf(s.IncludeBinData, &p.IncludeBinData)
	return nil
}

func (c *PolicyConfig) scan() (*ScanPolicy, Error) {
	p := NewScanPolicy()
	s := c.ScanSection
	if s == nil {
		return p, nil
	}
	if err := s.multiPolicyConfig.apply(&p.MultiPolicy); err != nil {
		return p, err
	}
	setIf(s.ScanPercent, &p.ScanPercent)
	return p, nil
}

func (c *PolicyConfig) query() (*QueryPolicy, Error) {
	p := NewQueryPolicy()
	s := c.QuerySection
	if s == nil {
		return p, nil
	}
	if err := s.multiPolicyConfig.apply(&p.MultiPolicy); err != nil {
		return p, err
	}
	setIf(s.ShortQuery, &p.ShortQuery)
	return p, nil
}

func (c *PolicyConfig) info() (*InfoPolicy, Error) {
	p := NewInfoPolicy()
	if s := c.InfoSection; s != nil {
		setMillis(s.Timeout, &p.Timeout)
	}
	return p, nil
}

func (c *PolicyConfig) metrics() (*MetricsPolicy, Error) {
	p := NewMetricsPolicy()
	s := c.MetricsSection
	if s == nil {
		return p, nil
	}
	if s.Interval != nil {
		p.Interval = time.Duration(*s.Interval) * time.Second
	}
	setIf(s.LatencyColumns, &p.LatencyColumns)
	setIf(s.LatencyShift, &p.LatencyShift)
	setIf(s.ReportDir, &p.ReportDir)
	setIf(s.ReportSizeLimit, &p.ReportSizeLimit)
	return p, nil
}

func (s *basePolicyConfig) apply(p *BasePolicy) Error {
	if s == nil {
		return nil
	}

	setMillis(s.TotalTimeout, &p.TotalTimeout)
	setMillis(s.SocketTimeout, &p.SocketTimeout)
	setMillis(s.SleepBetweenRetries, &p.SleepBetweenRetries)
	setIf(s.MaxRetries, &p.MaxRetries)
	setIf(s.SleepMultiplier, &p.SleepMultiplier)
	setIf(s.SendKey, &p.SendKey)
	setIf(s.Compress, &p.UseCompression)
	setIf(s.ReadTouchTTLPercent, &p.ReadTouchTTLPercent)

	if err := parseEnum(s.ReadModeAP, readModeAPByName, &p.ReadModeAP, "read_mode_ap"); err != nil {
		return err
	}
	if err := parseEnum(s.ReadModeSC, readModeSCByName, &p.ReadModeSC, "read_mode_sc"); err != nil {
		return err
	}
	return parseEnum(s.Replica, replicaPolicyByName, &p.ReplicaPolicy, "replica")
}

func setIf[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}

func setMillis(src *int64, dst *time.Duration) {
	if src != nil {
		*dst = time.Duration(*src) * time.Millisecond
	}
}

func setTTL(src *int64, dst *uint32) Error {
	if src == nil {
		return nil
	}
	v, err := expirationFromSigned(*src)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseEnum[T any](src *string, names map[string]T, dst *T, key string) Error {
	if src == nil {
		return nil
	}
	v, ok := names[strings.ToLower(*src)]
	if !ok {
		return newErrorf(types.PARAMETER_ERROR, "Invalid value %q for %s", *src, key).wrap(cloneError(ErrInvalidPolicyDictionary))
	}
	*dst = v
	return nil
}

var (
	readModeAPByName = map[string]ReadModeAP{
		"one": ReadModeAPOne,
		"all": ReadModeAPAll,
	}

	readModeSCByName = map[string]ReadModeSC{
		"session":           ReadModeSCSession,
		"linearize":         ReadModeSCLinearize,
		"allow_replica":     ReadModeSCAllowReplica,
		"allow_unavailable": ReadModeSCAllowUnavailable,
	}

	replicaPolicyByName = map[string]ReplicaPolicy{
		"master":        MASTER,
		"master_proles": MASTER_PROLES,
		"random":        RANDOM,
		"sequence":      SEQUENCE,
		"prefer_rack":   PREFER_RACK,
	}

	recordExistsActionByName = map[string]RecordExistsAction{
		"update":       UPDATE,
		"update_only":  UPDATE_ONLY,
		"replace":      REPLACE,
		"replace_only": REPLACE_ONLY,
		"create_only":  CREATE_ONLY,
	}

	generationPolicyByName = map[string]GenerationPolicy{
		"none":      NONE,
		"eq":        EXPECT_GEN_EQUAL,
		"gt":        EXPECT_GEN_GT,
		"expect_eq": EXPECT_GEN_EQUAL,
		"expect_gt": EXPECT_GEN_GT,
	}

	commitLevelByName = map[string]CommitLevel{
		"all":    COMMIT_ALL,
		"master": COMMIT_MASTER,
	}
)
