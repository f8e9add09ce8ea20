package completion

import (
	"testing"

	"github.com/atinylittleshell/tabcomplete/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrammar is a small grammar with one value-expecting global.
func testGrammar() *grammar.Grammar {
	return grammar.New("tool",
		[]grammar.Parameter{
			{Short: "-d", Long: "--debug", Kind: grammar.Flag{}},
			{Long: "--profile", Kind: grammar.ChoiceValue{Values: []string{"dev", "prod"}}},
		},
		grammar.Action{Name: "build", Parameters: []grammar.Parameter{
			{Short: "-t", Long: "--to", Kind: grammar.ChoiceValue{Values: []string{"abc", "def"}}},
			{Short: "-m", Long: "--message", Kind: grammar.StringValue{}},
			{Long: "--verbose", Kind: grammar.Flag{}},
		}},
		grammar.Action{Name: "check"},
	)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "action-or-global-flag", RoleActionOrGlobalFlag.String())
	assert.Equal(t, "parameter-name", RoleParameterName.String())
	assert.Equal(t, "parameter-value-choice", RoleParameterValueChoice.String())
	assert.Equal(t, "parameter-value-free", RoleParameterValueFree.String())
	assert.Equal(t, "unknown", Role(42).String())
}

func TestResolveNoTokens(t *testing.T) {
	ctx := Resolve(nil, testGrammar())

	assert.Equal(t, RoleActionOrGlobalFlag, ctx.Role)
	assert.Nil(t, ctx.Action)
	assert.Empty(t, ctx.Partial)
	assert.ElementsMatch(t, []string{"build", "check", "-d", "--debug", "--profile"}, ctx.Pool)
}

func TestResolveProgramNameOnly(t *testing.T) {
	ctx := Resolve(Tokenize("tool"), testGrammar())

	assert.Equal(t, RoleActionOrGlobalFlag, ctx.Role)
	assert.Empty(t, ctx.Partial, "the program name is not a prefix for actions")
	assert.ElementsMatch(t, []string{"build", "check", "-d", "--debug", "--profile"}, ctx.Pool)
}

func TestResolveRoles(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		role       Role
		action     string
		partial    string
		parameter  string
		wantPool   []string
		actionWord string
	}{
		{
			name:     "action position",
			line:     "tool b",
			role:     RoleActionOrGlobalFlag,
			partial:  "b",
			wantPool: []string{"build", "check", "-d", "--debug", "--profile"},
		},
		{
			name:     "action position after global flag",
			line:     "tool -d ",
			role:     RoleActionOrGlobalFlag,
			wantPool: []string{"build", "check", "-d", "--debug", "--profile"},
		},
		{
			name:      "global choice value before action",
			line:      "tool --profile ",
			role:      RoleParameterValueChoice,
			parameter: "--profile",
			wantPool:  []string{"dev", "prod"},
		},
		{
			name:       "action after global value",
			line:       "tool --profile dev build ",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "parameter name",
			line:       "tool build --v",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			partial:    "--v",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "choice value",
			line:       "tool build -t a",
			role:       RoleParameterValueChoice,
			action:     "build",
			actionWord: "build",
			parameter:  "--to",
			partial:    "a",
			wantPool:   []string{"abc", "def"},
		},
		{
			name:       "free value",
			line:       "tool build --message ",
			role:       RoleParameterValueFree,
			action:     "build",
			actionWord: "build",
			parameter:  "--message",
			wantPool:   []string{},
		},
		{
			name:       "flag does not take a value",
			line:       "tool build --verbose ",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "value is consumed",
			line:       "tool build -t abc ",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "quoted value is consumed",
			line:       `tool build -m "fix the --to thing" -`,
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			partial:    "-",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "value that looks like a parameter is still a value",
			line:       "tool build -m --to ",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "action is never re-resolved",
			line:       "tool check build ",
			role:       RoleParameterName,
			action:     "check",
			actionWord: "check",
			wantPool:   []string{"-d", "--debug", "--profile"},
		},
		{
			name:       "action parameter outside its action is free text",
			line:       "tool check -t ",
			role:       RoleParameterName,
			action:     "check",
			actionWord: "check",
			wantPool:   []string{"-d", "--debug", "--profile"},
		},
		{
			name:       "unknown action falls back to globals",
			line:       "tool deploy ",
			role:       RoleParameterName,
			actionWord: "deploy",
			wantPool:   []string{"-d", "--debug", "--profile"},
		},
		{
			name:       "unknown words are skipped",
			line:       "tool build whatever else -",
			role:       RoleParameterName,
			action:     "build",
			actionWord: "build",
			partial:    "-",
			wantPool:   []string{"-t", "--to", "-m", "--message", "--verbose", "-d", "--debug", "--profile"},
		},
		{
			name:       "unterminated quote is the partial word",
			line:       `tool build -t "ab`,
			role:       RoleParameterValueChoice,
			action:     "build",
			actionWord: "build",
			parameter:  "--to",
			partial:    "ab",
			wantPool:   []string{"abc", "def"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(Tokenize(tt.line), testGrammar())

			assert.Equal(t, tt.role, ctx.Role)
			assert.Equal(t, tt.partial, ctx.Partial)
			assert.Equal(t, tt.actionWord, ctx.ActionWord)
			assert.Equal(t, tt.wantPool, ctx.Pool)

			if tt.action == "" {
				assert.Nil(t, ctx.Action)
			} else {
				require.NotNil(t, ctx.Action)
				assert.Equal(t, tt.action, ctx.Action.Name)
			}

			if tt.parameter == "" {
				assert.Nil(t, ctx.Parameter)
			} else {
				require.NotNil(t, ctx.Parameter)
				assert.Equal(t, tt.parameter, ctx.Parameter.Long)
			}
		})
	}
}

func TestResolveChoicePoolIsACopy(t *testing.T) {
	g := testGrammar()
	ctx := Resolve(Tokenize("tool build -t "), g)
	require.Equal(t, []string{"abc", "def"}, ctx.Pool)

	ctx.Pool[0] = "changed"

	build, _ := g.Action("build")
	assert.Equal(t, []string{"abc", "def"}, build.Parameters[0].Kind.(grammar.ChoiceValue).Values)
}

func TestResolveEmptyChoiceDoesNotPanic(t *testing.T) {
	g := grammar.New("tool", nil, grammar.Action{Name: "build", Parameters: []grammar.Parameter{
		{Long: "--to", Kind: grammar.ChoiceValue{}},
	}})

	ctx := Resolve(Tokenize("tool build --to "), g)
	assert.Equal(t, RoleParameterValueChoice, ctx.Role)
	assert.Empty(t, ctx.Pool)
}
