package query

import (
	"errors"
	"testing"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/parse"
)

func TestFilter(t *testing.T) {
	people := parse.ParseString(`0
 name Joe
 age 20
1
 name Mary
 age 24
 email mary@example.com
2
 name Ann
 age 31
note none
`)
	tests := []struct {
		src  string
		want string
	}{
		{`tree && num(get("age")) >= 21`, "1\n name Mary\n age 24\n email mary@example.com\n2\n name Ann\n age 31\n"},
		{`has("email")`, "1\n name Mary\n age 24\n email mary@example.com\n"},
		{`!tree`, "note none\n"},
		{`field == "0" || value == "none"`, "0\n name Joe\n age 20\nnote none\n"},
		{`len == 2 && index > 0`, "2\n name Ann\n age 31\n"},
		{`get("name") matches "^A"`, "2\n name Ann\n age 31\n"},
		{`path == "1"`, "1\n name Mary\n age 24\n email mary@example.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := p.Filter(people)
			if err != nil {
				t.Fatal(err)
			}
			if s := encode.MustString(got); s != tt.want {
				t.Errorf("got %q want %q", s, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`field +`, `len + 1`, `nosuch == 1`} {
		if _, err := Compile(src); !errors.Is(err, ErrQuery) {
			t.Errorf("%s: got %v want ErrQuery", src, err)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("SPACE_QUERY_TEST", "Joe")
	p, err := Compile(`get("name") == getenv("SPACE_QUERY_TEST")`)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := p.Match("0", parse.ParseString("name Joe\n"), 0)
	if err != nil || !ok {
		t.Errorf("got %t %v", ok, err)
	}
}
