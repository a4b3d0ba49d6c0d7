package cli

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Query runs the jq expression expr over v and collects every result.
//
// v is first normalized through JSON so structs, typed maps and slices
// behave like decoded JSON documents.
//
// Example:
//
//	ids, err := cli.Query(records, ".[] | select(.status == \"failed\") | .id")
func Query(v any, expr string) (any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}

	input, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := q.Run(input)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := out.(error); ok {
			if err, ok := err.(*gojq.HaltError); ok && err.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq %q: %w", expr, err)
		}
		results = append(results, out)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode query input: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode query input: %w", err)
	}
	return out, nil
}
