package completion

import (
	"github.com/atinylittleshell/tabcomplete/internal/grammar"
	"github.com/samber/lo"
)

// Role is what the word under the caret is expected to be.
type Role int

const (
	// RoleActionOrGlobalFlag is the top level: no action has been chosen yet.
	RoleActionOrGlobalFlag Role = iota
	// RoleParameterName is a parameter name inside a chosen action.
	RoleParameterName
	// RoleParameterValueChoice is the value of a choice parameter.
	RoleParameterValueChoice
	// RoleParameterValueFree is the value of a free-form string parameter.
	RoleParameterValueFree
)

func (r Role) String() string {
	switch r {
	case RoleActionOrGlobalFlag:
		return "action-or-global-flag"
	case RoleParameterName:
		return "parameter-name"
	case RoleParameterValueChoice:
		return "parameter-value-choice"
	case RoleParameterValueFree:
		return "parameter-value-free"
	default:
		return "unknown"
	}
}

// Context is the grammar position of the word under the caret.
type Context struct {
	// Action is the chosen action. It is nil at the top level, and also when
	// the word in the action position does not name an action.
	Action *grammar.Action
	// ActionWord is the word that occupied the action position, if any.
	ActionWord string
	// Parameter is the value-expecting parameter directly before the word
	// under the caret.
	Parameter *grammar.Parameter
	Role      Role
	// Partial is the part of the word typed so far.
	Partial string
	// Pool is every candidate valid at this position, before prefix filtering.
	Pool []string
}

// Resolve maps tokens onto g. The first token is the program name and the
// last token is the word being completed.
//
// Words are scanned left to right. Before an action is chosen only global
// parameters are recognized; the first other word that is not a parameter
// value takes the action position and is never reconsidered. After that,
// the action's parameters and the globals are in scope, and a parameter
// that takes a value claims the next word. Unrecognized words are free text.
func Resolve(tokens []Token, g *grammar.Grammar) Context {
	ctx := Context{Role: RoleActionOrGlobalFlag}

	// Only the program name (or nothing) has been typed: offer the top level
	// without filtering on the program name itself.
	if len(tokens) < 2 {
		ctx.Pool = topLevelPool(g)
		return ctx
	}

	var (
		actionFixed bool
		pending     *grammar.Parameter
	)

	last := len(tokens) - 1
	for _, tok := range tokens[1:last] {
		if pending != nil {
			pending = nil
			continue
		}

		if p, ok := g.Lookup(ctx.Action, tok.Value); ok {
			switch p.Kind.(type) {
			case grammar.StringValue, grammar.ChoiceValue:
				pending = &p
			case grammar.Flag:
			}
			continue
		}

		if !actionFixed {
			actionFixed = true
			ctx.ActionWord = tok.Value
			ctx.Action, _ = g.Action(tok.Value)
		}
	}

	ctx.Partial = tokens[last].Value

	if pending != nil {
		ctx.Parameter = pending
		switch k := pending.Kind.(type) {
		case grammar.ChoiceValue:
			ctx.Role = RoleParameterValueChoice
			ctx.Pool = append([]string(nil), k.Values...)
		case grammar.StringValue:
			ctx.Role = RoleParameterValueFree
			ctx.Pool = []string{}
		}
		return ctx
	}

	if !actionFixed {
		ctx.Pool = topLevelPool(g)
		return ctx
	}

	ctx.Role = RoleParameterName
	ctx.Pool = g.ParameterNames(ctx.Action)
	return ctx
}

func topLevelPool(g *grammar.Grammar) []string {
	return lo.Union(g.ActionNames(), g.GlobalNames())
}
