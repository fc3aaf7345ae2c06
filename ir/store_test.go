package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func leafs(kvs ...string) *Node {
	res := New()
	for i := 0; i+1 < len(kvs); i += 2 {
		res.SetPair(kvs[i], FromString(kvs[i+1]), -1, false)
	}
	return res
}

func values(y *Node) []string {
	res := make([]string, 0, y.Len())
	for _, v := range y.Values {
		res = append(res, v.String)
	}
	return res
}

func TestAppendDuplicates(t *testing.T) {
	y := New()
	y.Append("a", FromString("1"))
	y.Append("a", FromString("2"))
	if y.Len() != 2 {
		t.Fatalf("got len %d want 2", y.Len())
	}
	if got := y.Get("a").String; got != "2" {
		t.Errorf("got %q want %q", got, "2")
	}
	if got := y.IndexOf("a"); got != 0 {
		t.Errorf("IndexOf got %d want 0", got)
	}
	if got := y.LastIndexOf("a"); got != 1 {
		t.Errorf("LastIndexOf got %d want 1", got)
	}
}

func TestLastIndexOfFirstPosition(t *testing.T) {
	y := leafs("a", "1", "b", "2")
	if got := y.LastIndexOf("a"); got != 0 {
		t.Errorf("got %d want 0", got)
	}
	if got := y.LastIndexOf("c"); got != -1 {
		t.Errorf("got %d want -1", got)
	}
}

func TestSetOverwritesInPlace(t *testing.T) {
	y := leafs("a", "1", "b", "2", "c", "3")
	y.Set("b", FromString("x"))
	if diff := cmp.Diff([]string{"a", "b", "c"}, y.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "x", "3"}, values(y)); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	y.Set("d", FromString("4"))
	if got, _ := y.LastField(); got != "d" {
		t.Errorf("got %q want d appended", got)
	}
}

func TestSetOverwritesCachedDuplicate(t *testing.T) {
	y := leafs("a", "1", "b", "2", "a", "3")
	y.Set("a", FromString("x"))
	if diff := cmp.Diff([]string{"1", "2", "x"}, values(y)); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestInsertReindexes(t *testing.T) {
	y := leafs("a", "1", "b", "2")
	y.Insert("c", FromString("3"), 1)
	if diff := cmp.Diff([]string{"a", "c", "b"}, y.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	for _, f := range y.Fields {
		i, _ := y.cachedIndex(f)
		if y.Fields[i] != f {
			t.Errorf("stale cache for %q: %d", f, i)
		}
	}
	if got := y.Get("b").String; got != "2" {
		t.Errorf("got %q want 2", got)
	}
}

func TestDeleteAll(t *testing.T) {
	y := leafs("a", "1", "b", "2", "a", "3", "c", "4", "a", "5")
	if got := y.Delete("a"); got != 3 {
		t.Errorf("got %d deleted want 3", got)
	}
	if y.Has("a") {
		t.Errorf("a still present")
	}
	if diff := cmp.Diff([]string{"b", "c"}, y.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if got := y.Get("c").String; got != "4" {
		t.Errorf("got %q want 4", got)
	}
	if got := y.Delete("missing"); got != 0 {
		t.Errorf("got %d want 0", got)
	}
}

func TestDeleteAtKeepsDuplicateReachable(t *testing.T) {
	y := leafs("a", "1", "b", "2", "a", "3")
	y.DeleteAt(2)
	if got := y.Get("a"); got == nil || got.String != "1" {
		t.Errorf("got %v want the remaining a", got)
	}
	if y.DeleteAt(10) != 0 {
		t.Errorf("out of range delete removed something")
	}
}

func TestUpdateRename(t *testing.T) {
	y := leafs("a", "1", "b", "2")
	y.Update(0, "z", FromString("9"))
	if y.Has("a") {
		t.Errorf("a still cached after update")
	}
	if got := y.Get("z").String; got != "9" {
		t.Errorf("got %q want 9", got)
	}
	y.Rename("b", "c")
	if diff := cmp.Diff([]string{"z", "c"}, y.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestPushPopShift(t *testing.T) {
	y := New()
	y.Push(FromString("a"))
	y.Push(FromString("b"))
	if diff := cmp.Diff([]string{"0", "1"}, y.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	last := y.Pop()
	if got := last.Get("1").String; got != "b" {
		t.Errorf("pop got %q want b", got)
	}
	first := y.Shift()
	if got := first.Get("0").String; got != "a" {
		t.Errorf("shift got %q want a", got)
	}
	if y.Pop() != nil {
		t.Errorf("pop on empty not nil")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	y := New()
	y.Put("a b", FromString("1"))
	c := y.Clone()
	c.Put("a b", FromString("2"))
	if got := y.Get("a b").String; got != "1" {
		t.Errorf("original changed: %q", got)
	}
	if !Equal(y, y.Clone()) {
		t.Errorf("clone not equal")
	}
	if c.Parent != nil {
		t.Errorf("clone has parent")
	}
}

func TestNextPrev(t *testing.T) {
	y := leafs("a", "1", "b", "2", "c", "3")
	if got, _ := y.Next("a"); got != "b" {
		t.Errorf("got %q want b", got)
	}
	if got, _ := y.Prev("c"); got != "b" {
		t.Errorf("got %q want b", got)
	}
	if _, ok := y.Prev("a"); ok {
		t.Errorf("prev of first found")
	}
	if got, _ := y.FieldAt(-1); got != "c" {
		t.Errorf("got %q want c", got)
	}
}

func TestLeafBecomesTree(t *testing.T) {
	y := FromString("text")
	y.Append("a", FromString("1"))
	if !y.IsTree() || y.String != "" {
		t.Errorf("got %v", y)
	}
}

func TestEmptyFieldIgnored(t *testing.T) {
	y := New()
	y.SetPair("", FromString("1"), -1, false)
	if y.Len() != 0 {
		t.Errorf("empty field stored")
	}
}

func TestTableOfContents(t *testing.T) {
	y := leafs("a", "1", "b", "2", "a", "3")
	if got := y.TableOfContents(); got != "a b a" {
		t.Errorf("got %q want %q", got, "a b a")
	}
}
