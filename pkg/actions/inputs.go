package actions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Inputs maps input names to raw values for runs outside a workflow
type Inputs map[string]string

// LoadInputsFile reads a YAML mapping of input names to values.
// Sequence values are joined with newlines so list inputs can be written as
// YAML lists.
func LoadInputsFile(path string) (Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs file: %w", err)
	}

	return ParseInputs(data)
}

// ParseInputs parses YAML input definitions
func ParseInputs(data []byte) (Inputs, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse inputs file: %w", err)
	}

	inputs := make(Inputs, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case nil:
			inputs[name] = ""
		case []any:
			lines := make([]string, 0, len(v))
			for _, item := range v {
				lines = append(lines, fmt.Sprint(item))
			}
			inputs[name] = strings.Join(lines, "\n")
		case map[string]any:
			return nil, fmt.Errorf("input %q must be a scalar or a list", name)
		default:
			inputs[name] = fmt.Sprint(v)
		}
	}
	return inputs, nil
}

// Names returns the input names in sorted order
func (in Inputs) Names() []string {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Getenv returns a lookup function that serves INPUT_* variables from the
// inputs and everything else, including inputs not defined here, from fallback.
func (in Inputs) Getenv(fallback func(string) string) func(string) string {
	if fallback == nil {
		fallback = os.Getenv
	}

	env := make(map[string]string, len(in))
	for name, value := range in {
		env[inputEnvName(name)] = value
	}

	return func(key string) string {
		if value, ok := env[key]; ok {
			return value
		}
		return fallback(key)
	}
}

// inputEnvName follows the runner's naming of input environment variables
func inputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}
