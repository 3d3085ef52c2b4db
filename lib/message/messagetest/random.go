// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messagetest generates records for property tests.
package messagetest

import (
	"math"
	"math/rand/v2"

	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// MaxArrayLength bounds the length of generated variable-length
// arrays, strings, and byte arrays.
const MaxArrayLength = 4

// Random returns a record of type t with every field set to a random
// value of its kind. Floats are finite. Strings are ASCII. The same
// seed always produces the same record.
func Random(rng *rand.Rand, t *schema.Type) *message.Record {
	return generator{rng: rng}.record(t)
}

// RandomRaw is Random with strings made of arbitrary bytes, each one
// non-empty and never valid UTF-8. The wire format carries such strings
// unchanged; JSON documents cannot.
func RandomRaw(rng *rand.Rand, t *schema.Type) *message.Record {
	return generator{rng: rng, rawStrings: true}.record(t)
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type generator struct {
	rng        *rand.Rand
	rawStrings bool
}

func (g generator) record(t *schema.Type) *message.Record {
	record := &message.Record{Type: t, Fields: make(map[string]any, len(t.Fields))}
	for _, field := range t.Fields {
		record.Fields[field.Name] = g.value(field.Type)
	}
	return record
}

func (g generator) value(ft schema.FieldType) any {
	rng := g.rng
	switch ft.Kind {
	case schema.KindBool:
		return rng.IntN(2) == 1
	case schema.KindInt8:
		return int8(rng.Uint32())
	case schema.KindInt16:
		return int16(rng.Uint32())
	case schema.KindInt32:
		return int32(rng.Uint32())
	case schema.KindInt64:
		return int64(rng.Uint64())
	case schema.KindUint8:
		return uint8(rng.Uint32())
	case schema.KindUint16:
		return uint16(rng.Uint32())
	case schema.KindUint32:
		return rng.Uint32()
	case schema.KindUint64:
		return rng.Uint64()
	case schema.KindFloat32:
		return randomFloat32(rng)
	case schema.KindFloat64:
		return randomFloat64(rng)
	case schema.KindString:
		if g.rawStrings {
			return rawString(rng)
		}
		return randomString(rng)
	case schema.KindBytes:
		length := ft.Length
		if length == 0 {
			length = rng.IntN(MaxArrayLength + 1)
		}
		data := make([]byte, length)
		for index := range data {
			data[index] = byte(rng.Uint32())
		}
		return data
	case schema.KindTime:
		return message.Time{Sec: rng.Uint32(), Nsec: rng.Uint32N(1_000_000_000)}
	case schema.KindDuration:
		return message.Duration{Sec: int32(rng.Uint32()), Nsec: int32(rng.Uint32N(1_000_000_000))}
	case schema.KindMessage:
		return g.record(ft.Message)
	case schema.KindArray:
		length := ft.Length
		if length == 0 {
			length = rng.IntN(MaxArrayLength + 1)
		}
		elements := make([]any, length)
		for index := range elements {
			elements[index] = g.value(*ft.Elem)
		}
		return elements
	default:
		return nil
	}
}

// randomFloat32 mixes plain values with extremes so formatting and
// parsing are exercised at the edges of the type.
func randomFloat32(rng *rand.Rand) float32 {
	switch rng.IntN(6) {
	case 0:
		return 0
	case 1:
		return math.MaxFloat32
	case 2:
		return math.SmallestNonzeroFloat32
	case 3:
		return -float32(rng.IntN(1 << 20))
	default:
		for {
			value := math.Float32frombits(rng.Uint32())
			if !math.IsNaN(float64(value)) && !math.IsInf(float64(value), 0) {
				return value
			}
		}
	}
}

func randomFloat64(rng *rand.Rand) float64 {
	switch rng.IntN(6) {
	case 0:
		return 0
	case 1:
		return -math.MaxFloat64
	case 2:
		return math.SmallestNonzeroFloat64
	case 3:
		return float64(rng.IntN(1<<30)) / 8
	default:
		for {
			value := math.Float64frombits(rng.Uint64())
			if !math.IsNaN(value) && !math.IsInf(value, 0) {
				return value
			}
		}
	}
}

const stringAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 _-/\"\\\n\t"

func randomString(rng *rand.Rand) string {
	length := rng.IntN(MaxArrayLength*3 + 1)
	text := make([]byte, length)
	for index := range text {
		text[index] = stringAlphabet[rng.IntN(len(stringAlphabet))]
	}
	return string(text)
}

// rawString returns one to MaxArrayLength*3 random bytes with at least
// one byte that cannot start or continue a UTF-8 sequence.
func rawString(rng *rand.Rand) string {
	text := make([]byte, 1+rng.IntN(MaxArrayLength*3))
	for index := range text {
		text[index] = byte(rng.Uint32())
	}
	text[rng.IntN(len(text))] = 0xff
	return string(text)
}
