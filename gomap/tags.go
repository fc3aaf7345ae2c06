package gomap

import (
	"reflect"
	"strings"

	"github.com/signadot/space/ir"
)

// TagName is the struct tag read when converting structs in either
// direction, as in `space:"name,omitempty"`.
const TagName = "space"

type fieldTag struct {
	name      string
	omitEmpty bool
	skip      bool
}

func parseTag(f reflect.StructField) fieldTag {
	tag, ok := f.Tag.Lookup(TagName)
	if !ok {
		return fieldTag{name: f.Name}
	}
	if tag == "-" {
		return fieldTag{skip: true}
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	res := fieldTag{name: name}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			res.omitEmpty = true
		}
	}
	return res
}

func (fr *fromer) fromStruct(v reflect.Value, res *ir.Node) error {
	ty := v.Type()
	for i := range ty.NumField() {
		f := ty.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f)
		if tag.skip {
			continue
		}
		fv := v.Field(i)
		if tag.omitEmpty && fv.IsZero() {
			continue
		}
		if err := fr.add(res, tag.name, fv); err != nil {
			return err
		}
	}
	return nil
}
