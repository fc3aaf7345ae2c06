package ir

import "fmt"

type Type int

const (
	LeafType Type = iota
	TreeType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		LeafType: "Leaf",
		TreeType: "Tree",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Leaf": LeafType,
		"Tree": TreeType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{LeafType, TreeType}
}

func (t Type) IsLeaf() bool {
	return t == LeafType
}
