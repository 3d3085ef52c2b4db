// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/base64"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same record always produces
// identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder for documents. Maps decode with string
// keys; anything else is not a document.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Integers past 64 bits arrive as bignums and are range-checked
		// against the field like any other number.
		BigIntDec: cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// marshalCBOR encodes a document tree. Numbers become CBOR integers
// when their literal is integral and fits 64 bits, bignums when it is
// integral and does not, and floats otherwise. Object key order is
// not preserved: maps are written in deterministic order.
func marshalCBOR(node *jsonnode.Node) ([]byte, error) {
	value, err := cborValue(node)
	if err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(value)
	if err != nil {
		return nil, msgerr.Mismatch("encoding CBOR: %v", err)
	}
	return data, nil
}

func cborValue(node *jsonnode.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case jsonnode.KindNull:
		return nil, nil
	case jsonnode.KindBool:
		return node.Bool, nil
	case jsonnode.KindNumber:
		return cborNumber(node.Text)
	case jsonnode.KindString:
		return node.Text, nil
	case jsonnode.KindArray:
		items := make([]any, len(node.Items))
		for index, item := range node.Items {
			value, err := cborValue(item)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			items[index] = value
		}
		return items, nil
	case jsonnode.KindObject:
		members := make(map[string]any, len(node.Members))
		for _, member := range node.Members {
			value, err := cborValue(member.Value)
			if err != nil {
				return nil, msgerr.At(err, member.Key)
			}
			members[member.Key] = value
		}
		return members, nil
	default:
		return nil, msgerr.Mismatch("unsupported document value %s", node.Kind)
	}
}

func cborNumber(literal string) (any, error) {
	if !strings.ContainsAny(literal, ".eE") {
		if value, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return value, nil
		}
		if value, err := strconv.ParseUint(literal, 10, 64); err == nil {
			return value, nil
		}
		if value, ok := new(big.Int).SetString(literal, 10); ok {
			return value, nil
		}
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil && !math.IsInf(value, 0) {
		return nil, msgerr.Mismatch("invalid number %q", literal)
	}
	return value, nil
}

// unmarshalCBOR decodes one CBOR data item into a document tree. Byte
// strings become base64 text, so they read back into byte-array
// fields. Map members are ordered by key.
func unmarshalCBOR(data []byte) (*jsonnode.Node, error) {
	if len(data) == 0 {
		return nil, msgerr.Malformed("empty CBOR document")
	}
	var value any
	if err := decMode.Unmarshal(data, &value); err != nil {
		return nil, msgerr.Malformed("invalid CBOR: %v", err)
	}
	return nodeFromCBOR(value)
}

func nodeFromCBOR(value any) (*jsonnode.Node, error) {
	switch v := value.(type) {
	case nil:
		return jsonnode.Null(), nil
	case bool:
		return jsonnode.Bool(v), nil
	case uint64:
		return unsignedNode(v), nil
	case int64:
		return signedNode(v), nil
	case *big.Int:
		return jsonnode.Number(v.String()), nil
	case big.Int:
		return jsonnode.Number(v.String()), nil
	case float32:
		return floatNode(float64(v), 32), nil
	case float64:
		return floatNode(v, 64), nil
	case string:
		return jsonnode.String(v), nil
	case []byte:
		return jsonnode.String(base64.StdEncoding.EncodeToString(v)), nil
	case time.Time:
		return jsonnode.String(v.UTC().Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]*jsonnode.Node, len(v))
		for index, item := range v {
			node, err := nodeFromCBOR(item)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			items[index] = node
		}
		return jsonnode.Array(items...), nil
	case map[string]any:
		object := jsonnode.Object()
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			node, err := nodeFromCBOR(v[key])
			if err != nil {
				return nil, msgerr.At(err, key)
			}
			object.Set(key, node)
		}
		return object, nil
	case cbor.Tag:
		return nil, msgerr.Malformed("unsupported CBOR tag %d", v.Number)
	default:
		return nil, msgerr.Malformed("unsupported CBOR value of type %T", value)
	}
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	text, err := cbor.Diagnose(data)
	if err != nil {
		return "", msgerr.Malformed("invalid CBOR: %v", err)
	}
	return text, nil
}
