package encode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/signadot/space/format"
	"github.com/signadot/space/gomap"
	"github.com/signadot/space/ir"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
)

func person() *ir.Node {
	kv := ir.FromKeyVals
	return kv("name", "John", "age", "20", "admin", "true",
		"tags", kv("0", "a", "1", "b"),
		"bio", "line one\nline \"two\"",
		"address", kv("city", "Boston", "zip", "02134"))
}

func encodeString(t *testing.T, node *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncodeGolden(t *testing.T) {
	kv := ir.FromKeyVals
	doc := kv("doc", kv("id", "1", "children", kv(
		"item", kv("name", "a"),
		"item", kv("children", kv("0", "text & more")),
		"0", "tail")))
	rows := kv("0", kv("name", "Joe", "age", "20"),
		"1", kv("name", "Mary", "note", `says "hi", ok`))
	tests := []struct {
		name string
		node *ir.Node
		opts []EncodeOption
	}{
		{"space", person(), nil},
		{"json_pretty_guess", person(), []EncodeOption{
			EncodeFormat(format.JSONFormat), EncodePretty(true), EncodeGuessTypes(true)}},
		{"json_compact", person(), []EncodeOption{EncodeFormat(format.JSONFormat)}},
		{"xml_plain_pretty", person(), []EncodeOption{
			EncodeFormat(format.XMLFormat), EncodePretty(true)}},
		{"xml_attributes_pretty", doc, []EncodeOption{
			EncodeFormat(format.XMLFormat), EncodePretty(true), EncodeXMLAttributes(true)}},
		{"csv", rows, []EncodeOption{EncodeFormat(format.CSVFormat)}},
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(encodeString(t, tt.node, tt.opts...)))
		})
	}
}

func TestEncodeSpaceDepth(t *testing.T) {
	got := encodeString(t, ir.FromKeyVals("a", "x\ny", "b", ir.New()), Depth(1))
	if want := " a x\n  y\n b\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeLeafAndNil(t *testing.T) {
	if got := MustString(ir.FromString("plain\ntext")); got != "plain\ntext" {
		t.Errorf("got %q", got)
	}
	if got := MustString(nil); got != "" {
		t.Errorf("got %q", got)
	}
	if got := MustString(ir.New()); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeColors(t *testing.T) {
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.LeafType, Attr: FieldColor}: func(s string, _ ...any) string { return "<" + s + ">" },
			{Type: ir.TreeType, Attr: FieldColor}: func(s string, _ ...any) string { return "[" + s + "]" },
			{Type: ir.LeafType, Attr: ValueColor}: func(s string, _ ...any) string { return "(" + s + ")" },
		},
	}
	got := MustString(ir.FromKeyVals("a", "1", "t", ir.FromKeyVals("b", "2")), EncodeColors(c))
	if want := "<a> (1)\n[t]\n <b> (2)\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if NewColors().Get(ir.LeafType, ValueColor) == nil {
		t.Error("no leaf value color")
	}
}

func TestEncodeJSONDuplicates(t *testing.T) {
	node := ir.FromKeyVals("a", "1", "b", "2", "a", "3")
	got := encodeString(t, node, EncodeFormat(format.JSONFormat))
	if want := `{"a":"3","b":"2"}` + "\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(encodeString(t, person(), EncodeFormat(format.JSONFormat), EncodeGuessTypes(true))), &v); err != nil {
		t.Fatal(err)
	}
	if v["age"] != float64(20) {
		t.Errorf("got %v", v["age"])
	}
}

func TestEncodeYAML(t *testing.T) {
	decode := func(d string) *ir.Node {
		var v any
		if err := yaml.UnmarshalWithOptions([]byte(d), &v, yaml.UseOrderedMap()); err != nil {
			t.Fatal(err)
		}
		node, err := gomap.FromAny(v)
		if err != nil {
			t.Fatal(err)
		}
		return node
	}
	want := person()
	got := decode(encodeString(t, want, EncodeFormat(format.YAMLFormat)))
	if !ir.Equal(want, got) {
		t.Errorf("got\n%s\nwant\n%s", MustString(got), MustString(want))
	}
	got = decode(encodeString(t, want, EncodeFormat(format.YAMLFormat), EncodeGuessTypes(true)))
	want.SetString("address zip", "2134")
	if !ir.Equal(want, got) {
		t.Errorf("got\n%s\nwant\n%s", MustString(got), MustString(want))
	}
}

func TestEncodeXMLCompact(t *testing.T) {
	kv := ir.FromKeyVals
	doc := kv("doc", kv("id", "1", "children", kv(
		"item", kv("name", "a"),
		"item", kv("children", kv("0", "text")))))
	got := encodeString(t, doc, EncodeFormat(format.XMLFormat), EncodeXMLAttributes(true))
	if want := `<doc id="1"><item name="a"/><item>text</item></doc>`; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	got = encodeString(t, kv("a", "1", "b", kv("c", "<")), EncodeFormat(format.XMLFormat))
	if want := `<a>1</a><b><c>&lt;</c></b>`; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeDelimitedHeader(t *testing.T) {
	kv := ir.FromKeyVals
	rows := kv("0", kv("a", "1", "b", "x y"), "1", kv("b", "2", "c", "3"))
	got := encodeString(t, rows, EncodeFormat(format.SSVFormat), EncodeHeader("b", "a"))
	if want := "b a\n\"x y\" 1\n2 \n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, Columns(rows)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	got = encodeString(t, kv("0", kv("t", kv("x", "1", "y", "2"))), EncodeFormat(format.TSVFormat))
	if want := "t\n\"x 1\ny 2\"\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeQuery(t *testing.T) {
	node := ir.FromKeyVals("a", "1", "b", "hello world", "c", "x&y=z")
	got := encodeString(t, node, EncodeFormat(format.QueryFormat))
	if want := "a=1&b=hello%20world&c=x%26y%3Dz"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := FormatFromOpts(EncodePretty(true), EncodeFormat(format.TSVFormat)); f != format.TSVFormat {
		t.Errorf("got %v", f)
	}
}
