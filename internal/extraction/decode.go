package extraction

import (
	_ "embed"
	"encoding/json"

	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/schemas"
)

//go:embed schema.json
var tableSchema string

// Decode narrows a raw model reply to its JSON object, checks it against the
// table schema and unmarshals it. Anything the model wrapped around the
// object (markdown fences, prose) is stripped first.
func Decode(raw string) (*Table, error) {
	text := llm.CleanJSONBlock(raw)
	text = llm.ExtractJSONObject(text)
	if text == "" {
		return nil, &MalformedResultError{Message: "reply carries no JSON object", Raw: snippet(raw)}
	}

	if err := schemas.ValidateJSONString(tableSchema, text); err != nil {
		return nil, &MalformedResultError{Message: "reply does not match the table schema", Raw: snippet(text), Cause: err}
	}

	var table Table
	if err := json.Unmarshal([]byte(text), &table); err != nil {
		return nil, &MalformedResultError{Message: "decoding table JSON", Raw: snippet(text), Cause: err}
	}
	return &table, nil
}

// snippet truncates s for error messages.
func snippet(s string) string {
	const max = 500
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
