package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFixture = `
commands:
  - name: echo
    usage: "{cpfx}echo MESSAGE"
    description: Repeats the trailing text.
    behaviors: [no_argument_parsing]

  - name: remind
    arg_count: 1
    options:
      at: string
    aliases: [r]
    scope: private

  - name: tag
    flags: [verbose]
    options:
      t: multistring
    behaviors: [rest_as_args, accept_from_bots, allow_preceding_quote]
    scope: channel

  - name: note
    any_flags: true
`

func TestLoadCatalogFromBytes(t *testing.T) {
	entries, err := LoadCatalogFromBytes([]byte(catalogFixture))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	echo := entries[0]
	assert.Equal(t, "echo", echo.Definition.Name)
	assert.Equal(t, "{cpfx}echo MESSAGE", echo.Definition.Usage)
	assert.True(t, echo.Definition.Behaviors.NoArgumentParsing)
	assert.NotNil(t, echo.Definition.Flags, "without any_flags the flag set is closed")
	assert.Equal(t, []Scope{ScopeChannel, ScopePrivate}, echo.Scopes)

	remind := entries[1]
	assert.Equal(t, 1, remind.Definition.ArgCount)
	assert.Equal(t, ValueTypeString, remind.Definition.Options["at"])
	assert.Equal(t, []string{"r"}, remind.Aliases)
	assert.Equal(t, []Scope{ScopePrivate}, remind.Scopes)

	tag := entries[2]
	assert.True(t, tag.Definition.Flags["verbose"])
	assert.Equal(t, ValueTypeMultiString, tag.Definition.Options["t"])
	assert.True(t, tag.Definition.Behaviors.RestAsArgs)
	assert.True(t, tag.Definition.Behaviors.AcceptFromBots)
	assert.True(t, tag.Definition.Behaviors.AllowPrecedingQuote)

	note := entries[3]
	assert.Nil(t, note.Definition.Flags, "any_flags means ad hoc flags are accepted")
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogFixture), 0o644))

	entries, err := LoadCatalogFromFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	_, err = LoadCatalogFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty name":          "commands:\n  - usage: x\n",
		"negative arg count":  "commands:\n  - name: x\n    arg_count: -1\n",
		"unknown value type":  "commands:\n  - name: x\n    options: {n: decimal}\n",
		"unknown behavior":    "commands:\n  - name: x\n    behaviors: [shouty]\n",
		"unknown scope":       "commands:\n  - name: x\n    scope: broadcast\n",
		"flag and option":     "commands:\n  - name: x\n    flags: [n]\n    options: {n: string}\n",
		"any_flags with list": "commands:\n  - name: x\n    any_flags: true\n    flags: [v]\n",
		"duplicate flag":      "commands:\n  - name: x\n    flags: [v, v]\n",
		"not yaml":            "commands: [{",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalogFromBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRegisterCatalog(t *testing.T) {
	entries, err := LoadCatalogFromBytes([]byte(catalogFixture))
	require.NoError(t, err)

	reg := NewRegistry(false)
	require.NoError(t, RegisterCatalog(reg, entries))

	_, ok := reg.Resolve(ScopePrivate, "remind")
	assert.True(t, ok)

	// aliases resolve to an equivalent definition under the alias name
	alias, ok := reg.Resolve(ScopePrivate, "r")
	require.True(t, ok)
	assert.Equal(t, "r", alias.Name)
	assert.Equal(t, ValueTypeString, alias.Options["at"])

	_, ok = reg.Resolve(ScopeChannel, "remind")
	assert.False(t, ok)
}

func TestRegisterCatalog_DuplicateFails(t *testing.T) {
	entries, err := LoadCatalogFromBytes([]byte("commands:\n  - name: x\n  - name: x\n"))
	require.NoError(t, err)

	assert.Error(t, RegisterCatalog(NewRegistry(false), entries))
}
