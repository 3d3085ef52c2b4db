// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsonnode is a JSON value tree that keeps what a record
// conversion needs and encoding/json discards: object key order, and
// numbers as their literal text so 64-bit integers never pass through
// float64.
//
// A [Node] is a tagged variant. Exactly one group of its fields is
// meaningful, selected by Kind:
//
//	KindNull
//	KindBool    Bool
//	KindNumber  Text (a JSON number literal)
//	KindString  Text
//	KindArray   Items
//	KindObject  Members (in document order)
//
// [Parse] builds a tree from JSON text, tolerating comments and
// trailing commas. [Marshal] prints one.
package jsonnode

import "fmt"

// Kind identifies which JSON value a node holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is one JSON value.
type Node struct {
	Kind    Kind
	Bool    bool
	Text    string
	Items   []*Node
	Members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Node
}

// Null returns a null node.
func Null() *Node { return &Node{Kind: KindNull} }

// Bool returns a boolean node.
func Bool(value bool) *Node { return &Node{Kind: KindBool, Bool: value} }

// Number returns a number node holding literal, which must be valid
// JSON number syntax.
func Number(literal string) *Node { return &Node{Kind: KindNumber, Text: literal} }

// String returns a string node.
func String(value string) *Node { return &Node{Kind: KindString, Text: value} }

// Array returns an array node of items. The result is never a nil
// slice, so it prints as [] when empty.
func Array(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{Kind: KindArray, Items: items}
}

// Object returns an empty object node.
func Object() *Node { return &Node{Kind: KindObject, Members: []Member{}} }

// Set appends a member to an object node. Keys are not deduplicated;
// [Node.Get] returns the last value for a repeated key.
func (n *Node) Set(key string, value *Node) *Node {
	n.Members = append(n.Members, Member{Key: key, Value: value})
	return n
}

// Get returns the value of key in an object node. When a key repeats,
// the last occurrence wins, as in encoding/json.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}
	for index := len(n.Members) - 1; index >= 0; index-- {
		if n.Members[index].Key == key {
			return n.Members[index].Value, true
		}
	}
	return nil, false
}

// Keys returns an object node's keys in document order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.Members))
	for index, member := range n.Members {
		keys[index] = member.Key
	}
	return keys
}

// Equal reports whether two trees are identical, including object key
// order and number spelling.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber, KindString:
		return a.Text == b.Text
	case KindArray:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for index := range a.Items {
			if !Equal(a.Items[index], b.Items[index]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for index := range a.Members {
			if a.Members[index].Key != b.Members[index].Key ||
				!Equal(a.Members[index].Value, b.Members[index].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
