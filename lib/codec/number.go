// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/schema"
)

// Spellings of the non-finite floats in documents. JSON has no literal
// for them, so they travel as strings.
const (
	textNaN              = "NaN"
	textPositiveInfinity = "Infinity"
	textNegativeInfinity = "-Infinity"
)

// formatFloat returns the document spelling of a float of the given
// bit width: the shortest literal that parses back to the same value,
// in plain notation for moderate magnitudes and exponent notation
// otherwise, always containing a '.' or an exponent so it reads as a
// float. Non-finite values return finite=false with their string
// spelling.
func formatFloat(value float64, bits int) (text string, finite bool) {
	switch {
	case math.IsNaN(value):
		return textNaN, false
	case math.IsInf(value, 1):
		return textPositiveInfinity, false
	case math.IsInf(value, -1):
		return textNegativeInfinity, false
	}

	format := byte('f')
	if magnitude := math.Abs(value); magnitude != 0 {
		if bits == 32 {
			magnitude = float64(float32(magnitude))
		}
		if magnitude < 1e-6 || magnitude >= 1e21 {
			format = 'e'
		}
	}
	text = strconv.FormatFloat(value, format, -1, bits)
	if format == 'e' {
		// 1e-07 -> 1e-7, as JavaScript and encoding/json print it.
		if length := len(text); length >= 4 && text[length-4] == 'e' && text[length-3] == '-' && text[length-2] == '0' {
			text = text[:length-2] + text[length-1:]
		}
		return text, true
	}
	if !strings.ContainsRune(text, '.') {
		text += ".0"
	}
	return text, true
}

// parseSpecialFloat recognizes the string spellings of non-finite
// floats.
func parseSpecialFloat(text string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "nan":
		return math.NaN(), true
	case "infinity", "+infinity", "inf", "+inf":
		return math.Inf(1), true
	case "-infinity", "-inf":
		return math.Inf(-1), true
	}
	return 0, false
}

// parseFloat parses a number literal for a float field of the given
// kind. A literal whose magnitude exceeds the kind's range is a
// ValueOutOfRange error.
func parseFloat(literal string, kind schema.Kind) (float64, error) {
	value, err := strconv.ParseFloat(literal, kind.Bits())
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, strconv.ErrRange) && math.IsInf(value, 0):
		return 0, msgerr.OutOfRange("value %s out of range for %s", literal, kind)
	case errors.Is(err, strconv.ErrRange):
		// Underflow rounds to zero.
		return value, nil
	default:
		return 0, msgerr.Mismatch("invalid number %q for %s", literal, kind)
	}
}

// Integer bounds by bit width.
var (
	signedMin   = map[int]*big.Int{}
	signedMax   = map[int]*big.Int{}
	unsignedMax = map[int]*big.Int{}
)

func init() {
	one := big.NewInt(1)
	for _, bits := range []int{8, 16, 32, 64} {
		limit := new(big.Int).Lsh(one, uint(bits-1))
		signedMin[bits] = new(big.Int).Neg(limit)
		signedMax[bits] = new(big.Int).Sub(limit, one)
		unsignedMax[bits] = new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits)), one)
	}
}

// parseInteger parses a number literal for an integer field of the
// given kind and returns it as an int64 (signed kinds) or uint64
// (unsigned kinds). Integral literals in float syntax ("4.0", "1e3")
// are accepted; fractional ones are a SchemaMismatch. Values outside
// the kind's range are a ValueOutOfRange error.
func parseInteger(literal string, kind schema.Kind) (signed int64, unsigned uint64, err error) {
	bits := kind.Bits()

	// Fast path: plain decimal integers.
	if kind.IsSigned() {
		if value, parseErr := strconv.ParseInt(literal, 10, bits); parseErr == nil {
			return value, 0, nil
		}
	} else if value, parseErr := strconv.ParseUint(literal, 10, bits); parseErr == nil {
		return 0, value, nil
	}

	if !isDecimalLiteral(literal) {
		return 0, 0, msgerr.Mismatch("invalid number %q for %s", literal, kind)
	}
	exact, ok := new(big.Rat).SetString(literal)
	if !ok {
		return hugeExponent(literal, kind)
	}
	if !exact.IsInt() {
		return 0, 0, msgerr.Mismatch("fractional value %s for %s", literal, kind)
	}
	integer := exact.Num()

	if kind.IsSigned() {
		if integer.Cmp(signedMin[bits]) < 0 || integer.Cmp(signedMax[bits]) > 0 {
			return 0, 0, msgerr.OutOfRange("value %s out of range for %s", literal, kind)
		}
		return integer.Int64(), 0, nil
	}
	if integer.Sign() < 0 || integer.Cmp(unsignedMax[bits]) > 0 {
		return 0, 0, msgerr.OutOfRange("value %s out of range for %s", literal, kind)
	}
	return 0, integer.Uint64(), nil
}

// hugeExponent classifies a decimal literal that big.Rat rejects, which
// happens when its exponent is too large to expand. A float parse still
// tells the magnitude apart: it overflows to infinity for huge values
// and underflows for tiny ones.
func hugeExponent(literal string, kind schema.Kind) (int64, uint64, error) {
	value, err := strconv.ParseFloat(literal, 64)
	switch {
	case math.IsInf(value, 0):
		return 0, 0, msgerr.OutOfRange("value %s out of range for %s", literal, kind)
	case err == nil && value == 0:
		return 0, 0, nil
	case errors.Is(err, strconv.ErrRange):
		return 0, 0, msgerr.Mismatch("fractional value %s for %s", literal, kind)
	default:
		return 0, 0, msgerr.Mismatch("invalid number %q for %s", literal, kind)
	}
}

// isDecimalLiteral reports whether literal is made of the characters of
// a JSON number and starts like one. It keeps the rational ("1/2") and
// hexadecimal forms big.Rat and strconv accept out of integer fields.
func isDecimalLiteral(literal string) bool {
	if literal == "" || (literal[0] != '-' && (literal[0] < '0' || literal[0] > '9')) {
		return false
	}
	for index := 0; index < len(literal); index++ {
		if !strings.ContainsRune("0123456789+-.eE", rune(literal[index])) {
			return false
		}
	}
	return true
}

// integerValue converts a parsed integer to its record shape.
func integerValue(kind schema.Kind, signed int64, unsigned uint64) any {
	switch kind {
	case schema.KindInt8:
		return int8(signed)
	case schema.KindInt16:
		return int16(signed)
	case schema.KindInt32:
		return int32(signed)
	case schema.KindInt64:
		return signed
	case schema.KindUint8:
		return uint8(unsigned)
	case schema.KindUint16:
		return uint16(unsigned)
	case schema.KindUint32:
		return uint32(unsigned)
	default:
		return unsigned
	}
}
