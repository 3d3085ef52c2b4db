// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
)

func TestMarshalCBORDeterministic(t *testing.T) {
	first := jsonnode.Object().
		Set("seq", jsonnode.Number("42")).
		Set("frame_id", jsonnode.String("map")).
		Set("stamp", jsonnode.Object().Set("secs", jsonnode.Number("1")).Set("nsecs", jsonnode.Number("2")))
	second := jsonnode.Object().
		Set("stamp", jsonnode.Object().Set("nsecs", jsonnode.Number("2")).Set("secs", jsonnode.Number("1"))).
		Set("frame_id", jsonnode.String("map")).
		Set("seq", jsonnode.Number("42"))

	firstData, err := marshalCBOR(first)
	if err != nil {
		t.Fatal(err)
	}
	secondData, err := marshalCBOR(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstData, secondData) {
		t.Errorf("member order changed the encoding: %x != %x", firstData, secondData)
	}
}

func TestCBORNumbers(t *testing.T) {
	document := jsonnode.Object().
		Set("small", jsonnode.Number("7")).
		Set("negative", jsonnode.Number("-9223372036854775808")).
		Set("large", jsonnode.Number("18446744073709551615")).
		Set("huge", jsonnode.Number("18446744073709551616")).
		Set("fraction", jsonnode.Number("0.5")).
		Set("integral", jsonnode.Number("2.0"))

	data, err := marshalCBOR(document)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := unmarshalCBOR(data)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"small":    "7",
		"negative": "-9223372036854775808",
		"large":    "18446744073709551615",
		"huge":     "18446744073709551616",
		"fraction": "0.5",
		"integral": "2.0",
	}
	for key, literal := range want {
		value, ok := decoded.Get(key)
		if !ok || value.Kind != jsonnode.KindNumber || value.Text != literal {
			t.Errorf("%s = %+v, want number %s", key, value, literal)
		}
	}
	if got := strings.Join(decoded.Keys(), ","); got != "fraction,huge,integral,large,negative,small" {
		t.Errorf("keys = %s, want sorted by key", got)
	}
}

func TestCBORByteStringReadsAsBase64(t *testing.T) {
	data, err := encMode.Marshal(map[string]any{"data": []byte{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := unmarshalCBOR(data)
	if err != nil {
		t.Fatal(err)
	}
	value, _ := decoded.Get("data")
	if value.Kind != jsonnode.KindString || value.Text != "AQID" {
		t.Errorf("data = %+v, want string AQID", value)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0xff},
		{0xa1, 0x61},
		{0x82, 0x01},
	} {
		if _, err := unmarshalCBOR(data); !msgerr.Is(err, msgerr.MalformedInput) {
			t.Errorf("unmarshalCBOR(%x) err = %v, want malformed input", data, err)
		}
	}
}

func TestDiagnose(t *testing.T) {
	data, err := marshalCBOR(jsonnode.Object().Set("seq", jsonnode.Number("42")).Set("frame_id", jsonnode.String("map")))
	if err != nil {
		t.Fatal(err)
	}
	text, err := Diagnose(data)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"seq"`, "42", `"frame_id"`, `"map"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Diagnose = %s, missing %s", text, want)
		}
	}
	if strings.Index(text, `"seq"`) > strings.Index(text, `"frame_id"`) {
		t.Errorf("Diagnose = %s, want deterministic key order (shorter keys first)", text)
	}

	if _, err := Diagnose([]byte{0xff}); !msgerr.Is(err, msgerr.MalformedInput) {
		t.Errorf("Diagnose(invalid) err = %v", err)
	}
}
