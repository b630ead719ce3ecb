package problemset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/phy132/kirchhoff/internal/circuit"
)

// Load reads problemsPath and, if it exists, answersPath. An empty or
// missing answers file means every set is solved from its parameters.
func Load(problemsPath, answersPath string) (*Bank, error) {
	problems, err := os.ReadFile(problemsPath)
	if err != nil {
		return nil, fmt.Errorf("read problems: %w", err)
	}

	var answers []byte
	if answersPath != "" {
		answers, err = os.ReadFile(answersPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read answers: %w", err)
		}
	}

	return Parse(problems, answers)
}

// Parse builds a Bank from the raw JSON of problems.json and answers.json.
// answers may be nil.
func Parse(problems, answers []byte) (*Bank, error) {
	rawParams, err := decodeTable("problems", problemsSchema, problems)
	if err != nil {
		return nil, err
	}
	params := make(map[int]circuit.Params, len(rawParams))
	for id, v := range rawParams {
		p, err := circuit.FromSlice(v)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", id, err)
		}
		params[id] = p
	}

	var table map[int][3]float64
	if len(answers) > 0 {
		rawAnswers, err := decodeTable("answers", answersSchema, answers)
		if err != nil {
			return nil, err
		}
		table = make(map[int][3]float64, len(rawAnswers))
		for id, v := range rawAnswers {
			table[id] = [3]float64{v[0], v[1], v[2]}
		}
	}

	return New(params, table)
}

// decodeTable validates raw against schema and decodes it into a map keyed
// by set number.
func decodeTable(name string, schema map[string]any, raw []byte) (map[int][]float64, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", name, err)
	}

	compiled, err := compiledSchema(name, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: compile schema: %w", name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%s: schema validation failed: %w", name, err)
	}

	var byKey map[string][]float64
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", name, err)
	}
	out := make(map[int][]float64, len(byKey))
	for k, v := range byKey {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%s: set %q: %w", name, k, err)
		}
		out[id] = v
	}
	return out, nil
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain JSON values ([]any, map[string]any, float64),
	// so round-trip the Go literal through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
