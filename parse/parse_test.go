package parse

import (
	"errors"
	"testing"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
)

type parseTest struct {
	name string
	in   string
	out  *ir.Node
}

func TestParseString(t *testing.T) {
	kv := ir.FromKeyVals
	pts := []parseTest{
		{
			name: "pets",
			in: `name John
age 20
pets
 0
  name Fido
`,
			out: kv("name", "John", "age", "20",
				"pets", kv("0", kv("name", "Fido"))),
		},
		{
			name: "empty",
			in:   "",
			out:  ir.New(),
		},
		{
			name: "empty-leaf",
			in:   "a \nb",
			out:  kv("a", "", "b", ir.New()),
		},
		{
			name: "value-with-spaces",
			in:   "title hello  world ",
			out:  kv("title", "hello  world "),
		},
		{
			name: "multiline",
			in:   "bio first line\n second line\n  indented\nnext 1\n",
			out:  kv("bio", "first line\nsecond line\n indented", "next", "1"),
		},
		{
			name: "multiline-trailing-line-feed",
			in:   "bio x\n \nnext 1\n",
			out:  kv("bio", "x\n", "next", "1"),
		},
		{
			name: "multiline-leading-line-feed",
			in:   "bio \n x\n",
			out:  kv("bio", "\nx"),
		},
		{
			name: "windows",
			in:   "a 1\r\nb\r\n c 2\r\n",
			out:  kv("a", "1", "b", kv("c", "2")),
		},
		{
			name: "blank-lines",
			in:   "\n\n  \na 1\n\n\n\nb 2\n\n",
			out:  kv("a", "1", "b", "2"),
		},
		{
			name: "blank-before-continuation",
			in:   "a 1\n\n b\n",
			out:  kv("a", "1\nb"),
		},
		{
			name: "whitespace-only",
			in:   " \t\r\n\n  ",
			out:  ir.New(),
		},
		{
			name: "over-indented-first-child",
			in:   "a\n   b 1\n c 2\n",
			out:  kv("a", kv("b", "1", "c", "2")),
		},
		{
			name: "over-indented-sibling",
			in:   "a\n b 1\n   c 2\n",
			out:  kv("a", kv("b", "1\n c 2")),
		},
		{
			name: "duplicates",
			in:   "a 1\nb 2\na 3\n",
			out:  kv("a", "1", "b", "2", "a", "3"),
		},
		{
			name: "deep",
			in:   "a\n b\n  c\n   d 1\n e 2\n",
			out:  kv("a", kv("b", kv("c", kv("d", "1")), "e", "2")),
		},
	}
	for _, pt := range pts {
		t.Run(pt.name, func(t *testing.T) {
			got := ParseString(pt.in)
			if !ir.Equal(got, pt.out) {
				t.Errorf("got\n%s\nwant\n%s", encode.MustString(got), encode.MustString(pt.out))
			}
		})
	}
}

func TestParseDuplicateLookup(t *testing.T) {
	y := ParseString("a 1\nb 2\na 3\n")
	if got, _ := y.GetString("a"); got != "3" {
		t.Errorf("got %q want 3", got)
	}
}

func TestRoundTrip(t *testing.T) {
	kv := ir.FromKeyVals
	trees := []*ir.Node{
		ir.New(),
		kv("a", ""),
		kv("a", "1", "a", "2"),
		kv("a", ir.New(), "b", kv("c", ir.New())),
		kv("text", "x\n\ny\n", "b", kv("c", " lead", "d", "\n")),
		kv("x", kv("y", kv("z", "multi\nline\nvalue"))),
	}
	for _, tree := range trees {
		s := encode.MustString(tree)
		got := ParseString(s)
		if !ir.Equal(got, tree) {
			t.Errorf("round trip of\n%s\ngave\n%s", s, encode.MustString(got))
		}
		if s2 := encode.MustString(got); s2 != s {
			t.Errorf("serialization changed:\n%q\n%q", s, s2)
		}
	}
}

func TestHeredoc(t *testing.T) {
	in := "name x\nbody EOF\nline one\n  line two\nEOF\nafter 1\n"
	y, err := Parse([]byte(in), ParseHeredoc("body", "EOF"))
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals("name", "x", "body", "EOF\nline one\n  line two", "after", "1")
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
	y, err = Parse([]byte("body\ntext\n"), ParseHeredoc("body", "EOF"))
	if err != nil {
		t.Fatal(err)
	}
	want = ir.FromKeyVals("body", "\ntext\n")
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
}

func TestParseCSV(t *testing.T) {
	y, err := Parse([]byte("name,age\nJoe,20\nMary,24\n"), ParseFormat(format.CSVFormat))
	if err != nil {
		t.Fatal(err)
	}
	kv := ir.FromKeyVals
	want := kv("0", kv("name", "Joe", "age", "20"), "1", kv("name", "Mary", "age", "24"))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
}

func TestParseDelimited(t *testing.T) {
	kv := ir.FromKeyVals
	y, err := Parse([]byte("first name\tage\nJoe\t\n\"a\tb\"\t3\n"), ParseFormat(format.TSVFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := kv("0", kv("firstname", "Joe"), "1", kv("firstname", "a\tb", "age", "3"))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
	y, err = Parse([]byte("a b\nc d\n"), ParseFormat(format.SSVFormat), ParseHeaders(false))
	if err != nil {
		t.Fatal(err)
	}
	want = kv("0", kv("0", "a", "1", "b"), "1", kv("0", "c", "1", "d"))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
}

func TestParseJSON(t *testing.T) {
	kv := ir.FromKeyVals
	in := `{"b": 1.50, "a": [true, null, "x"], "b": {"c": {}}}`
	y, err := Parse([]byte(in), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	want := kv("b", "1.50",
		"a", kv("0", "true", "1", "null", "2", "x"),
		"b", kv("c", ir.New()))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
	for _, bad := range []string{`"x"`, `{"a":1} 2`, `{"a":`, `[1,]`} {
		if _, err := Parse([]byte(bad), ParseJSON()); !errors.Is(err, ErrParse) {
			t.Errorf("%s: got %v want ErrParse", bad, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	kv := ir.FromKeyVals
	in := "z: 1\na:\n  - x\n  - y: true\n"
	y, err := Parse([]byte(in), ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	want := kv("z", "1", "a", kv("0", "x", "1", kv("y", "true")))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
	if _, err := Parse([]byte("just a string\n"), ParseYAML()); !errors.Is(err, ErrParse) {
		t.Errorf("got %v want ErrParse", err)
	}
}

func TestParseXML(t *testing.T) {
	kv := ir.FromKeyVals
	in := `<doc id="1"><item name="a"/><item>text</item></doc>`
	y, err := Parse([]byte(in), ParseXML())
	if err != nil {
		t.Fatal(err)
	}
	want := kv("doc", kv("id", "1",
		"children", kv(
			"item", kv("name", "a"),
			"item", kv("children", kv("0", "text")))))
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
	if _, err := Parse([]byte("<a><b></a>"), ParseXML()); !errors.Is(err, ErrParse) {
		t.Errorf("got %v want ErrParse", err)
	}
}

func TestParseQuery(t *testing.T) {
	y, err := Parse([]byte("a=1&b=hello%20world&flag"), ParseFormat(format.QueryFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals("a", "1", "b", "hello world", "flag", "")
	if !ir.Equal(y, want) {
		t.Errorf("got\n%s", encode.MustString(y))
	}
}
