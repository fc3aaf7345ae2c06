package debug

import (
	"io"
	"os"
	"testing"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
)

func TestLogf(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = stderr }()

	Logf("diff\n%s", encode.MustString(ir.FromKeyVals("a", "1", "b", ir.FromKeyVals("c", "2"))))
	w.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if want := "diff\na 1\nb\n c 2\n"; string(got) != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("SPACE_DEBUG_TEST", "true")
	if !boolEnv("SPACE_DEBUG_TEST") {
		t.Error("expected true")
	}
	t.Setenv("SPACE_DEBUG_TEST", "nope")
	if boolEnv("SPACE_DEBUG_TEST") {
		t.Error("expected false")
	}
}
