// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/msgconv/lib/jsonnode"
	"github.com/bureau-foundation/msgconv/lib/message"
	"github.com/bureau-foundation/msgconv/lib/message/messagetest"
	"github.com/bureau-foundation/msgconv/lib/msgerr"
	"github.com/bureau-foundation/msgconv/lib/registry"
	"github.com/bureau-foundation/msgconv/lib/schema"
	"github.com/bureau-foundation/msgconv/lib/wire"
)

func resolve(t *testing.T, reg *registry.Registry, fullName string) *schema.Type {
	t.Helper()
	pkg, name := schema.SplitName(fullName)
	resolved, err := reg.Resolve(pkg, name)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", fullName, err)
	}
	return resolved
}

func parse(t *testing.T, text string) *jsonnode.Node {
	t.Helper()
	node, err := jsonnode.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse(%s): %v", text, err)
	}
	return node
}

func TestHeaderScenario(t *testing.T) {
	reg := registry.New()
	if err := reg.RegisterText("test_msgs", "Header", "uint32 seq\nstring frame_id\n"); err != nil {
		t.Fatal(err)
	}
	header := resolve(t, reg, "test_msgs/Header")

	record, err := FromJSON(parse(t, `{"seq": 42, "frame_id": "map"}`), header)
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := wire.Encode(record)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{42, 0, 0, 0, 3, 0, 0, 0, 'm', 'a', 'p'}; !bytes.Equal(encoded, want) {
		t.Errorf("encoded = %v, want %v", encoded, want)
	}

	decoded, err := wire.Decode(encoded, header)
	if err != nil {
		t.Fatal(err)
	}
	node, err := ToJSON(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(jsonnode.Marshal(node, 0)), `{"seq":42,"frame_id":"map"}`; got != want {
		t.Errorf("ToJSON = %s, want %s", got, want)
	}
}

const sampleDefinition = `
uint8 small
int32 medium
uint64 big
float32 ratio
string name
uint8[] data
uint8[4] fixed_data
time stamp
duration span
int16[3] triple
geometry_msgs/Point[] points
`

const sampleDocument = `{
	"small": 255,
	"medium": -4.0,
	"big": 18446744073709551615,
	"ratio": "NaN",
	"name": "n",
	"data": "AQID",
	"fixed_data": [1, 2, 3, 4],
	"stamp": {"secs": 1, "nsecs": 2},
	"span": {"secs": -1, "nsecs": -2},
	"triple": [1, 2e0, 3],
	"points": [{"x": 1, "y": 2, "z": 3}],
	"extra": true
}`

func sampleType(t *testing.T) *schema.Type {
	t.Helper()
	reg := registry.Builtin()
	if err := reg.RegisterText("test_msgs", "Sample", sampleDefinition); err != nil {
		t.Fatal(err)
	}
	return resolve(t, reg, "test_msgs/Sample")
}

func TestFromJSONSample(t *testing.T) {
	sample := sampleType(t)
	record, err := FromJSON(parse(t, sampleDocument), sample)
	if err != nil {
		t.Fatal(err)
	}

	ratio, _ := record.Get("ratio")
	if value, ok := ratio.(float32); !ok || !math.IsNaN(float64(value)) {
		t.Errorf("ratio = %#v, want float32 NaN", ratio)
	}
	delete(record.Fields, "ratio")

	points, _ := record.Get("points")
	delete(record.Fields, "points")
	want := map[string]any{
		"small":      uint8(255),
		"medium":     int32(-4),
		"big":        uint64(math.MaxUint64),
		"name":       "n",
		"data":       []byte{1, 2, 3},
		"fixed_data": []byte{1, 2, 3, 4},
		"stamp":      message.Time{Sec: 1, Nsec: 2},
		"span":       message.Duration{Sec: -1, Nsec: -2},
		"triple":     []any{int16(1), int16(2), int16(3)},
	}
	if diff := cmp.Diff(want, record.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	elements, ok := points.([]any)
	if !ok || len(elements) != 1 {
		t.Fatalf("points = %#v", points)
	}
	point := elements[0].(*message.Record)
	if point.Type.FullName() != "geometry_msgs/Point" {
		t.Errorf("point type = %s", point.Type.FullName())
	}
	if diff := cmp.Diff(map[string]any{"x": 1.0, "y": 2.0, "z": 3.0}, point.Fields); diff != "" {
		t.Errorf("point mismatch (-want +got):\n%s", diff)
	}
}

func TestToJSONSample(t *testing.T) {
	sample := sampleType(t)
	record, err := FromJSON(parse(t, sampleDocument), sample)
	if err != nil {
		t.Fatal(err)
	}
	node, err := ToJSON(record)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"small":255,"medium":-4,"big":18446744073709551615,"ratio":"NaN","name":"n",` +
		`"data":"AQID","fixed_data":"AQIDBA==","stamp":{"secs":1,"nsecs":2},` +
		`"span":{"secs":-1,"nsecs":-2},"triple":[1,2,3],"points":[{"x":1.0,"y":2.0,"z":3.0}]}`
	if got := string(jsonnode.Marshal(node, 0)); got != want {
		t.Errorf("ToJSON =\n%s\nwant\n%s", got, want)
	}
}

// withMember returns the sample document with key set to the JSON
// value text. Repeated keys resolve to the last occurrence.
func withMember(t *testing.T, key, value string) *jsonnode.Node {
	t.Helper()
	return parse(t, sampleDocument).Set(key, parse(t, value))
}

func withoutMember(t *testing.T, key string) *jsonnode.Node {
	t.Helper()
	document := parse(t, sampleDocument)
	kept := document.Members[:0]
	for _, member := range document.Members {
		if member.Key != key {
			kept = append(kept, member)
		}
	}
	document.Members = kept
	return document
}

func TestFromJSONErrors(t *testing.T) {
	sample := sampleType(t)
	tests := []struct {
		name     string
		document *jsonnode.Node
		kind     msgerr.Kind
		path     string
	}{
		{"uint8 overflow", withMember(t, "small", "300"), msgerr.ValueOutOfRange, "small"},
		{"negative unsigned", withMember(t, "small", "-1"), msgerr.ValueOutOfRange, "small"},
		{"fractional integer", withMember(t, "small", "1.5"), msgerr.SchemaMismatch, "small"},
		{"string for integer", withMember(t, "small", `"1"`), msgerr.SchemaMismatch, "small"},
		{"uint64 overflow", withMember(t, "big", "18446744073709551616"), msgerr.ValueOutOfRange, "big"},
		{"float32 overflow", withMember(t, "ratio", "1e39"), msgerr.ValueOutOfRange, "ratio"},
		{"bad float string", withMember(t, "ratio", `"fast"`), msgerr.SchemaMismatch, "ratio"},
		{"number for string", withMember(t, "name", "5"), msgerr.SchemaMismatch, "name"},
		{"invalid base64", withMember(t, "data", `"!!!"`), msgerr.MalformedInput, "data"},
		{"byte out of range", withMember(t, "data", "[1, 256]"), msgerr.ValueOutOfRange, "data[1]"},
		{"fixed bytes length", withMember(t, "fixed_data", `"AAAA"`), msgerr.SchemaMismatch, "fixed_data"},
		{"time missing nsecs", withMember(t, "stamp", `{"secs": 1}`), msgerr.SchemaMismatch, "stamp.nsecs"},
		{"negative time", withMember(t, "stamp", `{"secs": -1, "nsecs": 0}`), msgerr.ValueOutOfRange, "stamp.secs"},
		{"duration overflow", withMember(t, "span", `{"secs": 0, "nsecs": 5000000000}`), msgerr.ValueOutOfRange, "span.nsecs"},
		{"fixed array length", withMember(t, "triple", "[1, 2]"), msgerr.SchemaMismatch, "triple"},
		{"nested missing field", withMember(t, "points", `[{"x": 1, "y": 2}]`), msgerr.SchemaMismatch, "points[0].z"},
		{"array for object", withMember(t, "points", `[[]]`), msgerr.SchemaMismatch, "points[0]"},
		{"missing field", withoutMember(t, "name"), msgerr.SchemaMismatch, "name"},
		{"top-level array", parse(t, "[]"), msgerr.SchemaMismatch, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromJSON(test.document, sample)
			if err == nil {
				t.Fatal("FromJSON succeeded")
			}
			if kind := msgerr.KindOf(err); kind != test.kind {
				t.Errorf("kind = %s, want %s (%v)", kind, test.kind, err)
			}
			if test.path != "" && !strings.HasPrefix(err.Error(), test.path+": ") {
				t.Errorf("error %q does not start with %q", err, test.path+": ")
			}
		})
	}
}

func TestFromJSONSpecialFloats(t *testing.T) {
	reg := registry.New()
	if err := reg.RegisterText("test_msgs", "Float", "float64 value\n"); err != nil {
		t.Fatal(err)
	}
	floatType := resolve(t, reg, "test_msgs/Float")

	tests := map[string]float64{
		`"Infinity"`:  math.Inf(1),
		`"-Infinity"`: math.Inf(-1),
		`"-inf"`:      math.Inf(-1),
		`"nan"`:       math.NaN(),
		`1e-400`:      0,
	}
	for literal, want := range tests {
		record, err := FromJSON(parse(t, `{"value": `+literal+`}`), floatType)
		if err != nil {
			t.Errorf("%s: %v", literal, err)
			continue
		}
		got := record.Fields["value"].(float64)
		if math.IsNaN(want) != math.IsNaN(got) || (!math.IsNaN(want) && got != want) {
			t.Errorf("%s = %v, want %v", literal, got, want)
		}
	}
}

func TestToJSONErrors(t *testing.T) {
	sample := sampleType(t)
	record, err := FromJSON(parse(t, sampleDocument), sample)
	if err != nil {
		t.Fatal(err)
	}

	record.Set("medium", int64(4))
	_, err = ToJSON(record)
	if !msgerr.Is(err, msgerr.SchemaMismatch) || !strings.HasPrefix(err.Error(), "medium: ") {
		t.Errorf("wrong shape: err = %v", err)
	}

	record.Set("medium", int32(4))
	delete(record.Fields, "stamp")
	_, err = ToJSON(record)
	if !msgerr.Is(err, msgerr.SchemaMismatch) || !strings.HasPrefix(err.Error(), "stamp: ") {
		t.Errorf("missing field: err = %v", err)
	}

	if _, err := ToJSON(&message.Record{}); !msgerr.Is(err, msgerr.SchemaMismatch) {
		t.Errorf("untyped record: err = %v", err)
	}
}

// TestRoundTripBuiltins converts random records of every built-in type
// through each document format and back, and checks that the binary
// path agrees with the direct encoding.
func TestRoundTripBuiltins(t *testing.T) {
	reg := registry.Builtin()
	rng := messagetest.NewRand(7)
	for _, name := range reg.Names() {
		recordType := resolve(t, reg, name)
		for trial := range 3 {
			original := messagetest.Random(rng, recordType)
			direct, err := wire.Encode(original)
			if err != nil {
				t.Fatalf("%s: Encode: %v", name, err)
			}
			node, err := ToJSON(original)
			if err != nil {
				t.Fatalf("%s: ToJSON: %v", name, err)
			}
			for _, format := range Formats {
				document, err := MarshalDocument(node, format, 2)
				if err != nil {
					t.Fatalf("%s/%s: MarshalDocument: %v", name, format, err)
				}
				parsed, err := UnmarshalDocument(document, format)
				if err != nil {
					t.Fatalf("%s/%s trial %d: UnmarshalDocument: %v\n%s", name, format, trial, err, document)
				}
				decoded, err := FromJSON(parsed, recordType)
				if err != nil {
					t.Fatalf("%s/%s trial %d: FromJSON: %v\n%s", name, format, trial, err, document)
				}
				if !message.Equal(original, decoded) {
					t.Errorf("%s/%s trial %d: round trip changed the record\nbefore: %v\nafter:  %v",
						name, format, trial, original, decoded)
				}
				encoded, err := wire.Encode(decoded)
				if err != nil {
					t.Fatalf("%s/%s: Encode: %v", name, format, err)
				}
				if !bytes.Equal(direct, encoded) {
					t.Errorf("%s/%s trial %d: binary differs after document round trip", name, format, trial)
				}
			}
		}
	}
}

func TestToJSONRejectsInvalidUTF8(t *testing.T) {
	reg := registry.Builtin()

	text := message.New(resolve(t, reg, "std_msgs/String"))
	text.Set("data", "\xff\xfe")
	_, err := ToJSON(text)
	if !msgerr.Is(err, msgerr.MalformedInput) || err.Error() != "data: string is not valid UTF-8" {
		t.Errorf("string field: err = %v", err)
	}

	joints := messagetest.Random(messagetest.NewRand(5), resolve(t, reg, "sensor_msgs/JointState"))
	joints.Set("name", []any{"shoulder", "elbow\xc3"})
	_, err = ToJSON(joints)
	if !msgerr.Is(err, msgerr.MalformedInput) || !strings.HasPrefix(err.Error(), "name[1]: ") {
		t.Errorf("string array element: err = %v", err)
	}
}

// TestRoundTripRawStrings feeds records whose strings hold arbitrary
// bytes through the JSON path. Every type with a populated string
// field must fail loudly; every other type must still round trip.
func TestRoundTripRawStrings(t *testing.T) {
	reg := registry.Builtin()
	rng := messagetest.NewRand(11)
	var rejected, converted int
	for _, name := range reg.Names() {
		recordType := resolve(t, reg, name)
		original := messagetest.RandomRaw(rng, recordType)
		direct, err := wire.Encode(original)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		node, err := ToJSON(original)
		if err != nil {
			if !msgerr.Is(err, msgerr.MalformedInput) || !strings.Contains(err.Error(), "not valid UTF-8") {
				t.Errorf("%s: ToJSON err = %v, want invalid UTF-8 error", name, err)
			}
			rejected++
			continue
		}
		decoded, err := FromJSON(parse(t, string(jsonnode.Marshal(node, 0))), recordType)
		if err != nil {
			t.Fatalf("%s: FromJSON: %v", name, err)
		}
		encoded, err := wire.Encode(decoded)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		if !bytes.Equal(direct, encoded) {
			t.Errorf("%s: binary changed through JSON without an error", name)
		}
		converted++
	}
	// Header carries frame_id and Bool carries no string at all.
	if rejected == 0 || converted == 0 {
		t.Errorf("rejected %d types, converted %d; want both non-zero", rejected, converted)
	}
}

func TestFromJSONHugeExponent(t *testing.T) {
	int32Type := resolve(t, registry.Builtin(), "std_msgs/Int32")
	for _, literal := range []string{"1e100000", "1e10000000", "-1e10000000"} {
		_, err := FromJSON(parse(t, `{"data": `+literal+`}`), int32Type)
		if !msgerr.Is(err, msgerr.ValueOutOfRange) || !strings.HasPrefix(err.Error(), "data: ") {
			t.Errorf("%s: err = %v, want data out of range", literal, err)
		}
	}
}
