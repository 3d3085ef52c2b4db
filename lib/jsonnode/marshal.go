// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsonnode

import "unicode/utf8"

// Marshal prints a tree as JSON. With indent > 0, every array element
// and object member goes on its own line, indented by indent spaces per
// level, and the document ends with a newline. With indent 0 the
// output is compact. Empty arrays and objects print as [] and {}.
func Marshal(node *Node, indent int) []byte {
	printer := &printer{indent: indent}
	printer.value(node, 0)
	if indent > 0 {
		printer.buffer = append(printer.buffer, '\n')
	}
	return printer.buffer
}

type printer struct {
	buffer []byte
	indent int
}

func (p *printer) newline(depth int) {
	if p.indent <= 0 {
		return
	}
	p.buffer = append(p.buffer, '\n')
	for range depth * p.indent {
		p.buffer = append(p.buffer, ' ')
	}
}

func (p *printer) value(node *Node, depth int) {
	if node == nil {
		p.buffer = append(p.buffer, "null"...)
		return
	}
	switch node.Kind {
	case KindBool:
		if node.Bool {
			p.buffer = append(p.buffer, "true"...)
		} else {
			p.buffer = append(p.buffer, "false"...)
		}
	case KindNumber:
		p.buffer = append(p.buffer, node.Text...)
	case KindString:
		p.buffer = AppendQuoted(p.buffer, node.Text)
	case KindArray:
		if len(node.Items) == 0 {
			p.buffer = append(p.buffer, "[]"...)
			return
		}
		p.buffer = append(p.buffer, '[')
		for index, item := range node.Items {
			if index > 0 {
				p.buffer = append(p.buffer, ',')
			}
			p.newline(depth + 1)
			p.value(item, depth+1)
		}
		p.newline(depth)
		p.buffer = append(p.buffer, ']')
	case KindObject:
		if len(node.Members) == 0 {
			p.buffer = append(p.buffer, "{}"...)
			return
		}
		p.buffer = append(p.buffer, '{')
		for index, member := range node.Members {
			if index > 0 {
				p.buffer = append(p.buffer, ',')
			}
			p.newline(depth + 1)
			p.buffer = AppendQuoted(p.buffer, member.Key)
			p.buffer = append(p.buffer, ':')
			if p.indent > 0 {
				p.buffer = append(p.buffer, ' ')
			}
			p.value(member.Value, depth+1)
		}
		p.newline(depth)
		p.buffer = append(p.buffer, '}')
	default:
		p.buffer = append(p.buffer, "null"...)
	}
}

const hexDigits = "0123456789abcdef"

// AppendQuoted appends text as a JSON string literal. Control
// characters are escaped; other characters, including non-ASCII, are
// written as UTF-8. Invalid UTF-8 is replaced with U+FFFD, as
// encoding/json does.
func AppendQuoted(buffer []byte, text string) []byte {
	buffer = append(buffer, '"')
	for index := 0; index < len(text); {
		character := text[index]
		if character < utf8.RuneSelf {
			switch {
			case character == '"' || character == '\\':
				buffer = append(buffer, '\\', character)
			case character == '\n':
				buffer = append(buffer, '\\', 'n')
			case character == '\r':
				buffer = append(buffer, '\\', 'r')
			case character == '\t':
				buffer = append(buffer, '\\', 't')
			case character < 0x20 || character == 0x7f:
				buffer = append(buffer, '\\', 'u', '0', '0', hexDigits[character>>4], hexDigits[character&0xF])
			default:
				buffer = append(buffer, character)
			}
			index++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[index:])
		switch {
		case r == utf8.RuneError && size == 1:
			buffer = append(buffer, "\ufffd"...)
		case r == '\u2028' || r == '\u2029':
			buffer = append(buffer, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
		default:
			buffer = append(buffer, text[index:index+size]...)
		}
		index += size
	}
	return append(buffer, '"')
}

// Quote returns text as a JSON string literal.
func Quote(text string) string {
	return string(AppendQuoted(nil, text))
}
