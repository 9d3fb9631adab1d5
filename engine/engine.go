// Package engine runs user supplied Starlark filter scripts against gallery
// item metadata.
package engine

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ComputeInputHash creates a hash of a script and its inputs for use as a
// cache key.
func ComputeInputHash(script string, inputs map[string]interface{}) string {
	data := map[string]interface{}{
		"script": script,
		"inputs": inputs,
	}
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

// ExecuteStarlark executes a script with provided inputs and returns a map of
// the resulting globals as native Go values.
func ExecuteStarlark(threadName string, script string, inputs map[string]interface{}) (map[string]interface{}, error) {
	thread := newThread(threadName)

	resultGlobals, err := starlark.ExecFile(thread, threadName, script, toGlobals(inputs))
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for k, v := range resultGlobals {
		out[k] = FromStarlarkValue(v)
	}
	return out, nil
}

// Predicate is a compiled-once filter script. A script either assigns the
// global `match` or is a single boolean expression, e.g.
//
//	status == "attention" and "crack" in tags
//
// Results are cached per input hash.
type Predicate struct {
	name   string
	script string
	cache  map[string]bool
}

// NewPredicate checks that script parses and returns a Predicate for it.
func NewPredicate(name, script string) (*Predicate, error) {
	if _, err := starlark.ExecFile(newThread(name), name, script, toGlobals(nil)); err != nil {
		// Undefined names are expected here since no item fields are bound;
		// only syntax errors are fatal.
		if isSyntaxError(err) {
			return nil, fmt.Errorf("parse filter %s: %w", name, err)
		}
	}
	return &Predicate{name: name, script: script, cache: make(map[string]bool)}, nil
}

// Match evaluates the predicate against fields.
func (p *Predicate) Match(fields map[string]interface{}) (bool, error) {
	key := ComputeInputHash(p.script, fields)
	if v, ok := p.cache[key]; ok {
		return v, nil
	}

	globals, err := ExecuteStarlark(p.name, p.script, fields)
	if err != nil {
		return false, fmt.Errorf("filter %s: %w", p.name, err)
	}

	var match bool
	if v, ok := globals["match"]; ok {
		match = truthy(v)
	} else {
		v, err := starlark.Eval(newThread(p.name), p.name, p.script, toGlobals(fields))
		if err != nil {
			return false, fmt.Errorf("filter %s: %w", p.name, err)
		}
		match = bool(v.Truth())
	}
	p.cache[key] = match
	return match, nil
}

// truthy applies Starlark truthiness to a value converted by
// FromStarlarkValue. Unconvertible values are false.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case float64:
		return val != 0
	case []interface{}:
		return len(val) > 0
	}
	return false
}

func newThread(name string) *starlark.Thread {
	return &starlark.Thread{Name: name, Print: func(_ *starlark.Thread, msg string) { log.Printf("[%s] %s", name, msg) }}
}

func toGlobals(inputs map[string]interface{}) starlark.StringDict {
	globals := starlark.StringDict{}
	for k, v := range inputs {
		if val, err := toStarlarkValue(v); err == nil {
			globals[k] = val
		}
	}
	return globals
}

func isSyntaxError(err error) bool {
	var serr syntax.Error
	return errors.As(err, &serr)
}

// Helpers for type conversion
func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case time.Time:
		return starlark.String(val.Format(time.RFC3339)), nil
	case []string:
		elems := make([]starlark.Value, len(val))
		for i, s := range val {
			elems[i] = starlark.String(s)
		}
		return starlark.NewList(elems), nil
	case []interface{}:
		elems := make([]starlark.Value, 0, len(val))
		for _, e := range val {
			sv, err := toStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, sv)
		}
		return starlark.NewList(elems), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := starlark.NewDict(len(val))
		for _, k := range keys {
			sv, err := toStarlarkValue(val[k])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case *starlark.List:
		out := make([]interface{}, val.Len())
		for i := 0; i < val.Len(); i++ {
			out[i] = FromStarlarkValue(val.Index(i))
		}
		return out
	}
	return nil
}
