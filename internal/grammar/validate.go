package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the well-formedness rules the completion resolver relies on.
// All problems are reported together.
func Validate(g *Grammar) error {
	if g == nil {
		return errors.New("grammar is nil")
	}

	var errs []error
	if g.Program == "" {
		errs = append(errs, errors.New("program name is empty"))
	}

	errs = append(errs, validateScope("globals", g.Globals, nil)...)

	seenActions := make(map[string]bool, len(g.Actions))
	for _, a := range g.Actions {
		if a.Name == "" {
			errs = append(errs, errors.New("action with empty name"))
			continue
		}
		if strings.HasPrefix(a.Name, "-") {
			errs = append(errs, fmt.Errorf("action %q: name must not start with '-'", a.Name))
		}
		if seenActions[a.Name] {
			errs = append(errs, fmt.Errorf("duplicate action %q", a.Name))
		}
		seenActions[a.Name] = true

		errs = append(errs, validateScope("action "+a.Name, a.Parameters, g.Globals)...)
	}

	return errors.Join(errs...)
}

// validateScope checks params together with inherited, which have already
// been validated on their own.
func validateScope(scope string, params []Parameter, inherited []Parameter) []error {
	var errs []error

	seen := make(map[string]bool)
	for _, p := range inherited {
		for _, name := range p.Names() {
			seen[name] = true
		}
	}

	for _, p := range params {
		if !strings.HasPrefix(p.Long, "--") || len(p.Long) < 3 {
			errs = append(errs, fmt.Errorf("%s: long name %q must start with '--'", scope, p.Long))
		}
		if p.Short != "" && (!strings.HasPrefix(p.Short, "-") || strings.HasPrefix(p.Short, "--") || len(p.Short) < 2) {
			errs = append(errs, fmt.Errorf("%s: short name %q must start with a single '-'", scope, p.Short))
		}
		for _, name := range p.Names() {
			if seen[name] {
				errs = append(errs, fmt.Errorf("%s: duplicate parameter name %q", scope, name))
			}
			seen[name] = true
		}

		switch k := p.Kind.(type) {
		case nil:
			errs = append(errs, fmt.Errorf("%s: parameter %q has no kind", scope, p.Long))
		case Flag, StringValue:
		case ChoiceValue:
			if len(k.Values) == 0 {
				errs = append(errs, fmt.Errorf("%s: choice parameter %q has no values", scope, p.Long))
			}
		}
	}

	return errs
}
