// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying a type's wire
// layout.
type Fingerprint [32]byte

// String returns the lowercase hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, for display.
func (f Fingerprint) Short() string {
	return f.String()[:12]
}

// fingerprintDomainKey is the BLAKE3 key for schema fingerprints: the
// ASCII domain name, zero-padded to 32 bytes. Changing it changes every
// fingerprint.
var fingerprintDomainKey = [32]byte{
	'm', 's', 'g', 'c', 'o', 'n', 'v', '.', 's', 'c', 'h', 'e', 'm', 'a', 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes the canonical text of t with every nested message
// type replaced by its own fingerprint. Two types with the same
// fingerprint encode identically; renaming a nested type's package
// does not change the fingerprint, while changing any field type,
// order, name, or constant does.
func (t *Type) Fingerprint() Fingerprint {
	return t.fingerprint(make(map[*Type]Fingerprint))
}

func (t *Type) fingerprint(memo map[*Type]Fingerprint) Fingerprint {
	if cached, ok := memo[t]; ok {
		return cached
	}

	var builder strings.Builder
	for _, constant := range t.Constants {
		builder.WriteString(constant.Kind.String())
		builder.WriteByte(' ')
		builder.WriteString(constant.Name)
		builder.WriteByte('=')
		builder.WriteString(constant.Value)
		builder.WriteByte('\n')
	}
	for _, field := range t.Fields {
		builder.WriteString(fingerprintTypeText(field.Type, memo))
		builder.WriteByte(' ')
		builder.WriteString(field.Name)
		builder.WriteByte('\n')
	}

	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		// NewKeyed only fails on a wrong-length key.
		panic("schema: blake3 keyed hasher: " + err.Error())
	}
	hasher.Write([]byte(builder.String()))

	var result Fingerprint
	copy(result[:], hasher.Sum(nil))
	memo[t] = result
	return result
}

func fingerprintTypeText(ft FieldType, memo map[*Type]Fingerprint) string {
	switch {
	case ft.Kind == KindMessage && ft.Message != nil:
		return ft.Message.fingerprint(memo).String()
	case ft.Kind == KindArray && ft.Elem != nil && ft.Elem.Kind == KindMessage && ft.Elem.Message != nil:
		return ft.Elem.Message.fingerprint(memo).String() + arraySuffix(ft.Length)
	default:
		return ft.String()
	}
}
