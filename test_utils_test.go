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

package aerospike_test

import (
	"math/rand"

	gm "github.com/onsi/gomega"

	as "github.com/aerospike/aerospike-expressions-go"
)

// generates a random string of specified length
func randString(size int) string {
	const random_alpha_num = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const l = 62
	buf := make([]byte, size)
	for i := 0; i < size; i++ {
		buf[i] = random_alpha_num[rand.Intn(l)]
	}
	return string(buf)
}

func newTestClient() (*as.Client, *as.FakeTransport) {
	transport := as.NewFakeTransport()
	client, err := as.NewClient(transport)
	gm.Expect(err).ToNot(gm.HaveOccurred())
	return client, transport
}

func newKey(set string, key interface{}) *as.Key {
	k, err := as.NewKey(*namespace, set, key)
	gm.Expect(err).ToNot(gm.HaveOccurred())
	return k
}
