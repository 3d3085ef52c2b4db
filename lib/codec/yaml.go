// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

// YAML core schema tags.
const (
	tagNull   = "!!null"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagString = "!!str"
	tagBinary = "!!binary"
)

// marshalYAML prints a document tree as block YAML, keeping object key
// order. Strings that would otherwise read back as another type are
// quoted.
func marshalYAML(node *jsonnode.Node, indent int) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	if indent < 2 {
		indent = 2
	}
	encoder.SetIndent(indent)
	if err := encoder.Encode(yamlNode(node)); err != nil {
		return nil, msgerr.Mismatch("encoding YAML: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, msgerr.Mismatch("encoding YAML: %v", err)
	}
	return buffer.Bytes(), nil
}

func yamlNode(node *jsonnode.Node) *yaml.Node {
	if node == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	}
	switch node.Kind {
	case jsonnode.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(node.Bool)}
	case jsonnode.KindNumber:
		tag := tagInt
		if strings.ContainsAny(node.Text, ".eE") {
			tag = tagFloat
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: node.Text}
	case jsonnode.KindString:
		scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagString, Value: node.Text}
		if needsQuoting(node.Text) {
			scalar.Style = yaml.DoubleQuotedStyle
		}
		return scalar
	case jsonnode.KindArray:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(node.Items) == 0 {
			sequence.Style = yaml.FlowStyle
		}
		for _, item := range node.Items {
			sequence.Content = append(sequence.Content, yamlNode(item))
		}
		return sequence
	case jsonnode.KindObject:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(node.Members) == 0 {
			mapping.Style = yaml.FlowStyle
		}
		for _, member := range node.Members {
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: tagString, Value: member.Key},
				yamlNode(member.Value))
		}
		return mapping
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	}
}

// needsQuoting reports whether a string must be double-quoted to read
// back byte for byte: it holds control characters or has leading or
// trailing whitespace.
func needsQuoting(text string) bool {
	if text != strings.TrimSpace(text) {
		return true
	}
	for index := 0; index < len(text); index++ {
		if character := text[index]; character < 0x20 || character == 0x7f {
			return true
		}
	}
	return false
}

// unmarshalYAML parses the first document of a YAML stream into a
// document tree. Aliases are expanded. Special floats (.nan, .inf)
// become their string spellings, as in JSON documents.
func unmarshalYAML(data []byte) (*jsonnode.Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, msgerr.Malformed("invalid YAML: %v", err)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return nil, msgerr.Malformed("empty YAML document")
	}
	return nodeFromYAML(document.Content[0], 0)
}

// maxAliasDepth bounds alias expansion so a self-referencing document
// cannot recurse forever.
const maxAliasDepth = 64

func nodeFromYAML(node *yaml.Node, aliasDepth int) (*jsonnode.Node, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || node.Alias == nil {
			return nil, msgerr.Malformed("line %d: alias nesting too deep", node.Line)
		}
		return nodeFromYAML(node.Alias, aliasDepth+1)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		items := make([]*jsonnode.Node, len(node.Content))
		for index, item := range node.Content {
			converted, err := nodeFromYAML(item, aliasDepth)
			if err != nil {
				return nil, msgerr.At(err, indexPath(index))
			}
			items[index] = converted
		}
		return jsonnode.Array(items...), nil
	case yaml.MappingNode:
		object := jsonnode.Object()
		for index := 0; index+1 < len(node.Content); index += 2 {
			key := node.Content[index]
			if key.Kind != yaml.ScalarNode {
				return nil, msgerr.Malformed("line %d: mapping keys must be scalars", key.Line)
			}
			value, err := nodeFromYAML(node.Content[index+1], aliasDepth)
			if err != nil {
				return nil, msgerr.At(err, key.Value)
			}
			object.Set(key.Value, value)
		}
		return object, nil
	default:
		return nil, msgerr.Malformed("line %d: unsupported YAML node", node.Line)
	}
}

func scalarFromYAML(node *yaml.Node) (*jsonnode.Node, error) {
	switch node.ShortTag() {
	case tagNull:
		return jsonnode.Null(), nil
	case tagBool:
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, msgerr.Malformed("line %d: invalid boolean %q", node.Line, node.Value)
		}
		return jsonnode.Bool(value), nil
	case tagInt:
		return integerFromYAML(node)
	case tagFloat:
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, msgerr.Malformed("line %d: invalid float %q", node.Line, node.Value)
		}
		return floatNode(value, 64), nil
	case tagBinary:
		return jsonnode.String(strings.Join(strings.Fields(node.Value), "")), nil
	default:
		return jsonnode.String(node.Value), nil
	}
}

// integerFromYAML normalizes YAML integer spellings (0x1f, 0o17,
// 1_000) to a decimal literal of arbitrary size.
func integerFromYAML(node *yaml.Node) (*jsonnode.Node, error) {
	text := strings.ReplaceAll(node.Value, "_", "")
	negative := strings.HasPrefix(text, "-")
	digits := strings.TrimPrefix(strings.TrimPrefix(text, "-"), "+")
	value, ok := new(big.Int).SetString(digits, 0)
	if !ok {
		return nil, msgerr.Malformed("line %d: invalid integer %q", node.Line, node.Value)
	}
	if negative {
		value.Neg(value)
	}
	return jsonnode.Number(value.String()), nil
}
