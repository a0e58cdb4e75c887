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

// batchAttr holds the header attributes of one record of a batch.
type batchAttr struct {
	filterExp  *Expression
	readAttr   int
	writeAttr  int
	infoAttr   int
	expiration uint32
	generation uint32
	hasWrite   bool
	sendKey    bool
}

// batchDefaults are the policies used for the records of a batch which do
// not carry a policy of their own.
type batchDefaults struct {
	read   *BatchReadPolicy
	write  *BatchWritePolicy
	delete *BatchDeletePolicy
	udf    *BatchUDFPolicy

	// expirations governing TTLClientDefault
	writeExpiration uint32
	udfExpiration   uint32
}

func (ba *batchAttr) setBatchRead(rp *BatchReadPolicy) {
	ba.filterExp = rp.FilterExpression
	ba.readAttr = _INFO1_READ | readModeAttr(rp.ReadModeAP)
	ba.writeAttr = 0
	ba.infoAttr = readModeSCAttr(rp.ReadModeSC)
	ba.expiration = 0
	ba.generation = 0
	ba.hasWrite = false
	ba.sendKey = false
}

func isReadOp(op *Operation) bool {
	switch op.opType {
	case _BIT_READ, _EXP_READ, _HLL_READ, _MAP_READ, _CDT_READ, _READ, _READ_HEADER:
		return true
	}
	return false
}

func (ba *batchAttr) adjustRead(ops []*Operation) {
	readAllBins := false
	readHeader := false

	for _, op := range ops {
		if !isReadOp(op) {
			continue
		}
		// Read all bins if no bin is specified.
		if op.binName == "" && !op.headerOnly {
			readAllBins = true
		}
		if op.headerOnly {
			readHeader = true
		}
	}

	if readAllBins {
		ba.readAttr |= _INFO1_GET_ALL
	} else if readHeader {
		ba.readAttr |= _INFO1_NOBINDATA
	}
}

func (ba *batchAttr) adjustReadForAllBins(readAllBins bool) {
	if readAllBins {
		ba.readAttr |= _INFO1_GET_ALL
	} else {
		ba.readAttr |= _INFO1_NOBINDATA
	}
}

func (ba *batchAttr) setBatchWrite(wp *BatchWritePolicy, defaultExpiration uint32) {
	ba.filterExp = wp.FilterExpression
	ba.readAttr = 0
	ba.writeAttr = _INFO2_WRITE | _INFO2_RESPOND_ALL_OPS
	ba.infoAttr = 0
	ba.expiration = resolveExpiration(wp.Expiration, defaultExpiration)
	ba.hasWrite = true
	ba.sendKey = wp.SendKey

	ba.generation, ba.writeAttr = generationAttr(wp.GenerationPolicy, wp.Generation, ba.writeAttr)

	switch wp.RecordExistsAction {
	case UPDATE:
	case UPDATE_ONLY:
		ba.infoAttr |= _INFO3_UPDATE_ONLY
	case REPLACE:
		ba.infoAttr |= _INFO3_CREATE_OR_REPLACE
	case REPLACE_ONLY:
		ba.infoAttr |= _INFO3_REPLACE_ONLY
	case CREATE_ONLY:
		ba.writeAttr |= _INFO2_CREATE_ONLY
	}

	if wp.DurableDelete {
		ba.writeAttr |= _INFO2_DURABLE_DELETE
	}

	if wp.CommitLevel == COMMIT_MASTER {
		ba.infoAttr |= _INFO3_COMMIT_MASTER
	}
}

func (ba *batchAttr) adjustWrite(ops []*Operation) {
	readAllBins := false
	readHeader := false
	hasRead := false

	for _, op := range ops {
		if !isReadOp(op) {
			continue
		}
		hasRead = true
		// Read all bins if no bin is specified.
		if op.binName == "" && !op.headerOnly {
			readAllBins = true
		}
		if op.headerOnly {
			readHeader = true
		}
	}

	if hasRead {
		ba.readAttr |= _INFO1_READ

		if readAllBins {
			ba.readAttr |= _INFO1_GET_ALL
		} else if readHeader {
			ba.readAttr |= _INFO1_NOBINDATA
		}
	}
}

func (ba *batchAttr) setBatchUDF(up *BatchUDFPolicy, defaultExpiration uint32) {
	ba.filterExp = up.FilterExpression
	ba.readAttr = 0
	ba.writeAttr = _INFO2_WRITE
	ba.infoAttr = 0
	ba.expiration = resolveExpiration(up.Expiration, defaultExpiration)
	ba.generation = 0
	ba.hasWrite = true
	ba.sendKey = up.SendKey

	if up.DurableDelete {
		ba.writeAttr |= _INFO2_DURABLE_DELETE
	}

	if up.CommitLevel == COMMIT_MASTER {
		ba.infoAttr |= _INFO3_COMMIT_MASTER
	}
}

func (ba *batchAttr) setBatchDelete(dp *BatchDeletePolicy) {
	ba.filterExp = dp.FilterExpression
	ba.readAttr = 0
	ba.writeAttr = _INFO2_WRITE | _INFO2_RESPOND_ALL_OPS | _INFO2_DELETE
	ba.infoAttr = 0
	ba.expiration = 0
	ba.hasWrite = true
	ba.sendKey = dp.SendKey

	ba.generation, ba.writeAttr = generationAttr(dp.GenerationPolicy, dp.Generation, ba.writeAttr)

	if dp.DurableDelete {
		ba.writeAttr |= _INFO2_DURABLE_DELETE
	}

	if dp.CommitLevel == COMMIT_MASTER {
		ba.infoAttr |= _INFO3_COMMIT_MASTER
	}
}
