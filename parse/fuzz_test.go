package parse

import (
	"testing"

	"github.com/signadot/space/encode"
)

func FuzzParseString(f *testing.F) {
	seeds := []string{
		"",
		"a 1\n",
		"name John\nage 20\npets\n 0\n  name Fido\n",
		"bio x\n y\n\n z\r\n",
		"  \n\n a\n   b\n c 1",
		"a\n b\n  c\n d \n",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		y := ParseString(s)
		out := encode.MustString(y)
		again := encode.MustString(ParseString(out))
		if again != out {
			t.Fatalf("serialization not stable for %q:\n%q\n%q", s, out, again)
		}
	})
}
