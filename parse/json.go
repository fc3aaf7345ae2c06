package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/space/ir"
)

// parseJSON decodes a JSON object or array keeping member order and
// duplicate members. Arrays become trees keyed "0", "1", ...; scalars
// become their JSON text, with strings unquoted.
func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrParse, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("%w: json: top level value must be an object or an array", ErrParse)
	}
	res, err := jsonContainer(dec, delim)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json: trailing data", ErrParse)
	}
	return res, nil
}

func jsonContainer(dec *json.Decoder, delim json.Delim) (*ir.Node, error) {
	res := ir.New()
	for i := 0; dec.More(); i++ {
		field := strconv.Itoa(i)
		if delim == '{' {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			field, _ = tok.(string)
		}
		v, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		res.SetPair(field, v, -1, false)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		return jsonContainer(dec, x)
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromString(x.String()), nil
	case bool:
		return ir.FromString(strconv.FormatBool(x)), nil
	case nil:
		return ir.FromString("null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
