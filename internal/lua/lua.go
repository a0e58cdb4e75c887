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

// Package lua runs record UDF modules written in Lua. A record UDF receives
// the record as its first argument and may change its bins.
//
// The client itself never evaluates UDFs; the server does. This package only
// backs the UDF apply path of the in-memory transport the client's tests run
// against, so its sole importer is that transport.
package lua

import (
	"fmt"
	"math"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Module is a loaded UDF package. A Module is safe for concurrent use;
// calls are serialized on its Lua state.
type Module struct {
	name string

	mutex sync.Mutex
	state *lua.LState
}

// Load compiles and runs the source of a UDF package. The functions the
// source defines become callable through Call.
func Load(name, source string) (*Module, error) {
	L := lua.NewState()
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to load UDF package %s: %w", name, err)
	}
	return &Module{name: name, state: L}, nil
}

// Name returns the package name of the module.
func (m *Module) Name() string {
	return m.name
}

// Close releases the Lua state.
func (m *Module) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.state.Close()
}

// Call runs the function with the record bins and arguments. It returns the
// value the function returned and the bins of the record after the call.
func (m *Module) Call(function string, bins map[string]interface{}, args ...interface{}) (interface{}, map[string]interface{}, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	L := m.state
	fn := L.GetGlobal(function)
	if fn.Type() != lua.LTFunction {
		return nil, nil, fmt.Errorf("function %s not found in UDF package %s", function, m.name)
	}

	rec := L.NewTable()
	for _, name := range sortedKeys(bins) {
		rec.RawSetString(name, toLua(L, bins[name]))
	}

	largs := make([]lua.LValue, 0, len(args)+1)
	largs = append(largs, rec)
	for _, arg := range args {
		largs = append(largs, toLua(L, arg))
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
		return nil, nil, fmt.Errorf("UDF %s.%s failed: %w", m.name, function, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	out := make(map[string]interface{}, len(bins))
	rec.ForEach(func(k, v lua.LValue) {
		if name, ok := k.(lua.LString); ok {
			out[string(name)] = fromLua(v)
		}
	})
	return fromLua(ret), out, nil
}

func sortedKeys(m map[string]interface{}) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func toLua(L *lua.LState, v interface{}) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case int32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case []byte:
		return lua.LString(v)
	case []interface{}:
		t := L.NewTable()
		for _, e := range v {
			t.Append(toLua(L, e))
		}
		return t
	case map[string]interface{}:
		t := L.NewTable()
		for k, e := range v {
			t.RawSetString(k, toLua(L, e))
		}
		return t
	case map[interface{}]interface{}:
		t := L.NewTable()
		for k, e := range v {
			t.RawSet(toLua(L, k), toLua(L, e))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func fromLua(v lua.LValue) interface{} {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if n := v.Len(); n > 0 {
			res := make([]interface{}, 0, n)
			for i := 1; i <= n; i++ {
				res = append(res, fromLua(v.RawGetInt(i)))
			}
			return res
		}
		res := map[interface{}]interface{}{}
		v.ForEach(func(k, e lua.LValue) {
			res[fromLua(k)] = fromLua(e)
		})
		return res
	default:
		return v.String()
	}
}
