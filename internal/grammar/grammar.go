// Package grammar describes the command grammar that tab completion resolves
// against: a program's actions, their parameters, and the global parameters
// that are accepted regardless of the action.
//
// A Grammar is built once (by hand, from a YAML file, or from the embedded
// default) and is treated as read-only afterwards. Nothing in this module
// mutates a Grammar after construction, so a single value can be shared by
// concurrent completion requests.
package grammar

// Kind is the kind of a parameter. It is a closed set: Flag, StringValue and
// ChoiceValue are the only implementations.
type Kind interface {
	kindName() string
}

// Flag is a parameter that takes no value.
type Flag struct{}

// StringValue is a parameter followed by a free-form value.
type StringValue struct{}

// ChoiceValue is a parameter followed by one of an enumerated set of values.
type ChoiceValue struct {
	Values []string
}

func (Flag) kindName() string        { return "flag" }
func (StringValue) kindName() string { return "string" }
func (ChoiceValue) kindName() string { return "choice" }

// KindName returns the name used for k in grammar files.
func KindName(k Kind) string {
	if k == nil {
		return Flag{}.kindName()
	}
	return k.kindName()
}

// Parameter is a named flag or option. Long is required; Short is optional.
type Parameter struct {
	Short       string
	Long        string
	Kind        Kind
	Description string
}

// Names returns the non-empty names of the parameter, short form first.
func (p Parameter) Names() []string {
	names := make([]string, 0, 2)
	if p.Short != "" {
		names = append(names, p.Short)
	}
	if p.Long != "" {
		names = append(names, p.Long)
	}
	return names
}

// Matches reports whether word is exactly one of the parameter's names.
func (p Parameter) Matches(word string) bool {
	if word == "" {
		return false
	}
	return word == p.Short || word == p.Long
}

// TakesValue reports whether the parameter consumes the following word.
func (p Parameter) TakesValue() bool {
	switch p.Kind.(type) {
	case StringValue, ChoiceValue:
		return true
	default:
		return false
	}
}

// Action is a named subcommand with its own parameters.
type Action struct {
	Name       string
	Summary    string
	Parameters []Parameter
}

// Grammar is the full command grammar of a program.
type Grammar struct {
	Program string
	Globals []Parameter
	Actions []Action
}

// New builds a Grammar from its parts.
func New(program string, globals []Parameter, actions ...Action) *Grammar {
	return &Grammar{
		Program: program,
		Globals: globals,
		Actions: actions,
	}
}

// Action returns the action with the given name.
func (g *Grammar) Action(name string) (*Action, bool) {
	for i := range g.Actions {
		if g.Actions[i].Name == name {
			return &g.Actions[i], true
		}
	}
	return nil, false
}

// ActionNames returns the names of all actions in declaration order.
func (g *Grammar) ActionNames() []string {
	names := make([]string, 0, len(g.Actions))
	for _, a := range g.Actions {
		names = append(names, a.Name)
	}
	return names
}

// GlobalNames returns the short and long names of every global parameter.
func (g *Grammar) GlobalNames() []string {
	return parameterNames(g.Globals)
}

// ParameterNames returns the names of the parameters in scope for action:
// the action's own parameters followed by the globals. A nil action yields
// only the globals.
func (g *Grammar) ParameterNames(action *Action) []string {
	if action == nil {
		return g.GlobalNames()
	}
	return append(parameterNames(action.Parameters), g.GlobalNames()...)
}

// Lookup finds the parameter named word in the scope of action. Action
// parameters are searched before globals.
func (g *Grammar) Lookup(action *Action, word string) (Parameter, bool) {
	if action != nil {
		for _, p := range action.Parameters {
			if p.Matches(word) {
				return p, true
			}
		}
	}
	for _, p := range g.Globals {
		if p.Matches(word) {
			return p, true
		}
	}
	return Parameter{}, false
}

func parameterNames(params []Parameter) []string {
	names := make([]string, 0, len(params)*2)
	for _, p := range params {
		names = append(names, p.Names()...)
	}
	return names
}
