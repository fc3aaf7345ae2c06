package space

import (
	"testing"
)

type matchTest struct {
	in    string
	match string
	res   bool
}

var matchTests = []matchTest{
	{
		in:    "a b\nc d\n",
		match: "a b\n",
		res:   true,
	},
	{
		in:    "a b\n",
		match: "a b\nc d\n",
		res:   false,
	},
	{
		in:    "a b\n",
		match: "a c\n",
		res:   false,
	},
	{
		in:    "a b\n",
		match: "a \n",
		res:   true,
	},
	{
		in:    "c d\n",
		match: "a \n",
		res:   false,
	},
	{
		in:    "a\n b\n  c 1\n  d 2\n",
		match: "a\n b\n  d 2\n",
		res:   true,
	},
	{
		in:    "a\n b 1\n",
		match: "a\n b\n  c 1\n",
		res:   false,
	},
	{
		in:    "a\n b 1\n",
		match: "a\n",
		res:   true,
	},
	{
		in:    "a 1\n",
		match: "a\n",
		res:   false,
	},
	{
		in:    "a 1\na 2\n",
		match: "a 2\n",
		res:   true,
	},
	{
		in:    "a 1\n",
		match: "",
		res:   true,
	},
}

func TestMatch(t *testing.T) {
	for _, mt := range matchTests {
		got := Match(Parse(mt.in), Parse(mt.match))
		if got != mt.res {
			t.Errorf("match %q against %q: got %t want %t", mt.in, mt.match, got, mt.res)
		}
	}
}

func TestSelect(t *testing.T) {
	docs := Parse("0\n name Joe\n age 20\n1\n name Mary\n age 24\n2\n name Ann\n age 20\n")
	got := Select(docs, Parse("age 20\n"))
	if s := String(got); s != "0\n name Joe\n age 20\n2\n name Ann\n age 20\n" {
		t.Errorf("got %q", s)
	}
	if got.Lookup("0") != docs.Lookup("0") {
		t.Error("selected value is not shared")
	}
}

func TestTrim(t *testing.T) {
	doc := Parse("name John\naddress\n city Boston\n zip 02134\nage 20\n")
	got := Trim(Parse("address\n zip\nname\n"), doc)
	if s := String(got); s != "address\n zip 02134\nname John\n" {
		t.Errorf("got %q", s)
	}
	got = Trim(Parse("age x\naddress\n city any\n"), doc)
	if s := String(got); s != "age 20\naddress\n city Boston\n" {
		t.Errorf("got %q", s)
	}
}
