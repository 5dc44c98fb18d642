package input

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/euro-diffusion/internal/world"
)

//go:embed cases.schema.json
var casesSchemaJSON string

var casesSchema = jsonschema.MustCompileString("cases.schema.json", casesSchemaJSON)

type jsonDoc struct {
	Cases []struct {
		Countries []jsonCountry `json:"countries"`
	} `json:"cases"`
}

type jsonCountry struct {
	Name string `json:"name"`
	XL   int    `json:"xl"`
	YL   int    `json:"yl"`
	XH   int    `json:"xh"`
	YH   int    `json:"yh"`
}

// ReadJSON parses a document of the form
//
//	{"cases":[{"countries":[{"name":"France","xl":1,"yl":4,"xh":4,"yh":6}]}]}
//
// with 1-based coordinates. The document is checked against the embedded
// schema first; any violation rejects all of it.
func ReadJSON(r io.Reader) ([]Case, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := casesSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	var doc jsonDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cases := make([]Case, 0, len(doc.Cases))
	for i, dc := range doc.Cases {
		c := Case{Number: i + 1}
		for _, jc := range dc.Countries {
			c.Countries = append(c.Countries, Country{
				Name:   jc.Name,
				Bounds: world.NewRect(jc.XL, jc.YL, jc.XH, jc.YH).Shift(toZeroBased),
			})
		}
		cases = append(cases, c)
	}
	return cases, nil
}
