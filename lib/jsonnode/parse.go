// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonnode

import (
	"bytes"
	"encoding/json"

	"github.com/buger/jsonparser"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// Parse parses one JSON document. Comments and trailing commas are
// stripped first. Syntax errors are MalformedInput errors carrying the
// byte offset reported by encoding/json.
func Parse(data []byte) (*Node, error) {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil, msgerr.Malformed("empty JSON document")
	}
	if !json.Valid(clean) {
		var raw json.RawMessage
		if err := json.Unmarshal(clean, &raw); err != nil {
			return nil, msgerr.Malformed("invalid JSON: %v", err)
		}
		return nil, msgerr.Malformed("invalid JSON")
	}

	value, dataType, _, err := jsonparser.Get(clean)
	if err != nil {
		return nil, msgerr.Malformed("invalid JSON: %v", err)
	}
	return build(value, dataType)
}

// build converts one jsonparser value into a node. For strings, value
// is the raw contents between the quotes.
func build(value []byte, dataType jsonparser.ValueType) (*Node, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		parsed, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, msgerr.Malformed("invalid boolean %q", value)
		}
		return Bool(parsed), nil
	case jsonparser.Number:
		return Number(string(value)), nil
	case jsonparser.String:
		parsed, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, msgerr.Malformed("invalid string: %v", err)
		}
		return String(parsed), nil
	case jsonparser.Array:
		array := Array()
		var buildErr error
		_, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, err error) {
			if buildErr != nil {
				return
			}
			if err != nil {
				buildErr = msgerr.Malformed("invalid array element: %v", err)
				return
			}
			node, err := build(item, itemType)
			if err != nil {
				buildErr = err
				return
			}
			array.Items = append(array.Items, node)
		})
		if buildErr != nil {
			return nil, buildErr
		}
		if err != nil {
			return nil, msgerr.Malformed("invalid array: %v", err)
		}
		return array, nil
	case jsonparser.Object:
		object := Object()
		err := jsonparser.ObjectEach(value, func(key, member []byte, memberType jsonparser.ValueType, _ int) error {
			node, err := build(member, memberType)
			if err != nil {
				return err
			}
			object.Set(string(key), node)
			return nil
		})
		if err != nil {
			if msgerr.KindOf(err) != msgerr.Unknown {
				return nil, err
			}
			return nil, msgerr.Malformed("invalid object: %v", err)
		}
		return object, nil
	default:
		return nil, msgerr.Malformed("unexpected JSON value %q", value)
	}
}
