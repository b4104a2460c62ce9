// Package modelparams emits the JSON schema of tunable model
// hyperparameters consumed by the hyperparameter search tooling.
package modelparams

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindEnum  Kind = "enum"
	KindFloat Kind = "float"
)

// Param is one tunable hyperparameter: either a fixed option set or a
// continuous float range.
type Param struct {
	Name    string
	Kind    Kind
	Options []string
	Min     float64
	Max     float64
}

func (p Param) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindEnum:
		return json.Marshal(struct {
			Name    string   `json:"name"`
			Type    string   `json:"type"`
			Size    int      `json:"size"`
			Options []string `json:"options"`
		}{p.Name, string(p.Kind), 1, p.Options})
	case KindFloat:
		return json.Marshal(struct {
			Name string  `json:"name"`
			Type string  `json:"type"`
			Min  float64 `json:"min"`
			Max  float64 `json:"max"`
			Size int     `json:"size"`
		}{p.Name, string(p.Kind), p.Min, p.Max, 1})
	}
	return nil, fmt.Errorf("unknown parameter kind %q", p.Kind)
}

// Schema is the full parameter set, ordered by name.
type Schema []Param

// paramDef is the YAML form of one parameter definition: exactly one of
// an option list or a min/max range.
type paramDef struct {
	Options []string `yaml:"options"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
}

func (d paramDef) toParam(name string) (Param, error) {
	hasOptions := len(d.Options) > 0
	hasRange := d.Min != nil || d.Max != nil
	switch {
	case hasOptions && hasRange:
		return Param{}, fmt.Errorf("parameter %s declares both options and a range", name)
	case hasOptions:
		return Param{Name: name, Kind: KindEnum, Options: d.Options}, nil
	case d.Min != nil && d.Max != nil:
		return Param{Name: name, Kind: KindFloat, Min: *d.Min, Max: *d.Max}, nil
	default:
		return Param{}, fmt.Errorf("parameter %s needs either options or a min/max range", name)
	}
}

// Load reads parameter definitions from a YAML file.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter definitions: %w", err)
	}

	var defs map[string]paramDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	schema := make(Schema, 0, len(defs))
	for name, def := range defs {
		p, err := def.toParam(name)
		if err != nil {
			return nil, err
		}
		schema = append(schema, p)
	}
	sort.Slice(schema, func(i, j int) bool {
		return schema[i].Name < schema[j].Name
	})
	return schema, nil
}

// WriteJSON emits the schema as an indented JSON object keyed by
// parameter name, in name order.
func (s Schema) WriteJSON(w io.Writer) error {
	byName := make(map[string]Param, len(s))
	for _, p := range s {
		byName[p.Name] = p
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(byName)
}
