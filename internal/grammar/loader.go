package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultGrammarContent []byte

type grammarFile struct {
	Program string          `yaml:"program"`
	Globals []parameterFile `yaml:"globals"`
	Actions []actionFile    `yaml:"actions"`
}

type actionFile struct {
	Name       string          `yaml:"name"`
	Summary    string          `yaml:"summary"`
	Parameters []parameterFile `yaml:"parameters"`
}

type parameterFile struct {
	Short       string   `yaml:"short"`
	Long        string   `yaml:"long"`
	Kind        string   `yaml:"kind"`
	Choices     []string `yaml:"choices"`
	Description string   `yaml:"description"`
}

// Load parses and validates a YAML grammar.
func Load(r io.Reader) (*Grammar, error) {
	var file grammarFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("grammar is empty")
		}
		return nil, fmt.Errorf("failed to parse grammar: %w", err)
	}

	g, err := file.toGrammar()
	if err != nil {
		return nil, err
	}

	if err := Validate(g); err != nil {
		return nil, fmt.Errorf("invalid grammar: %w", err)
	}
	return g, nil
}

// LoadFile reads a YAML grammar from path.
func LoadFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grammar file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

var defaultGrammar = sync.OnceValue(func() *Grammar {
	g, err := Load(bytes.NewReader(defaultGrammarContent))
	if err != nil {
		panic(fmt.Sprintf("embedded default grammar is invalid: %v", err))
	}
	return g
})

// Default returns the embedded default grammar. It is parsed on first use and
// shared afterwards.
func Default() *Grammar {
	return defaultGrammar()
}

func (f grammarFile) toGrammar() (*Grammar, error) {
	globals, err := toParameters(f.Globals)
	if err != nil {
		return nil, fmt.Errorf("globals: %w", err)
	}

	actions := make([]Action, 0, len(f.Actions))
	for _, af := range f.Actions {
		params, err := toParameters(af.Parameters)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", af.Name, err)
		}
		actions = append(actions, Action{
			Name:       af.Name,
			Summary:    af.Summary,
			Parameters: params,
		})
	}

	return New(f.Program, globals, actions...), nil
}

func toParameters(files []parameterFile) ([]Parameter, error) {
	params := make([]Parameter, 0, len(files))
	for _, pf := range files {
		kind, err := parseKind(pf.Kind, pf.Choices)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pf.Long, err)
		}
		params = append(params, Parameter{
			Short:       pf.Short,
			Long:        pf.Long,
			Kind:        kind,
			Description: pf.Description,
		})
	}
	return params, nil
}

func parseKind(name string, choices []string) (Kind, error) {
	switch name {
	case "", "flag":
		if len(choices) > 0 {
			return nil, fmt.Errorf("choices are only allowed for kind %q", "choice")
		}
		return Flag{}, nil
	case "string":
		if len(choices) > 0 {
			return nil, fmt.Errorf("choices are only allowed for kind %q", "choice")
		}
		return StringValue{}, nil
	case "choice":
		return ChoiceValue{Values: choices}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", name)
	}
}
