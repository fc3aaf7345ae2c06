// Package debug holds trace switches read from the environment.
//
// Each switch is enabled by setting the matching SPACE_DEBUG_* variable to
// a value accepted by strconv.ParseBool.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Diff  bool
	Patch bool
	Order bool
	Store bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("SPACE_DEBUG_PARSE")
	d.Diff = boolEnv("SPACE_DEBUG_DIFF")
	d.Patch = boolEnv("SPACE_DEBUG_PATCH")
	d.Order = boolEnv("SPACE_DEBUG_ORDER")
	d.Store = boolEnv("SPACE_DEBUG_STORE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Order() bool {
	return d.Order
}
func Store() bool {
	return d.Store
}

// Logf writes a trace line to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
