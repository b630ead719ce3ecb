package problemset

// problemsSchema validates problems.json: {"<set id>": [V1, V2, R1, R2, R3]}.
var problemsSchema = map[string]any{
	"type":          "object",
	"minProperties": 1,
	"propertyNames": map[string]any{
		"pattern": "^[1-9][0-9]*$",
	},
	"additionalProperties": map[string]any{
		"type":     "array",
		"minItems": 5,
		"maxItems": 5,
		"prefixItems": []any{
			map[string]any{"type": "number", "description": "V1 (volts)"},
			map[string]any{"type": "number", "description": "V2 (volts)"},
			map[string]any{"type": "number", "exclusiveMinimum": 0, "description": "R1 (ohms)"},
			map[string]any{"type": "number", "exclusiveMinimum": 0, "description": "R2 (ohms)"},
			map[string]any{"type": "number", "exclusiveMinimum": 0, "description": "R3 (ohms)"},
		},
	},
}

// answersSchema validates answers.json: {"<set id>": [I1, I2, I3]} in mA.
var answersSchema = map[string]any{
	"type": "object",
	"propertyNames": map[string]any{
		"pattern": "^[1-9][0-9]*$",
	},
	"additionalProperties": map[string]any{
		"type":     "array",
		"minItems": 3,
		"maxItems": 3,
		"items":    map[string]any{"type": "number"},
	},
}
