package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testRecognizer(t *testing.T, caseFold bool, defs ...*Definition) *Recognizer {
	t.Helper()
	cfg := DefaultConfiguration()
	cfg.CaseFoldCommands = caseFold

	reg := NewRegistry(caseFold)
	for _, def := range defs {
		require.NoError(t, reg.Register(def, ScopeChannel, ScopePrivate))
	}
	return NewRecognizer(cfg, reg, zaptest.NewLogger(t))
}

func TestRecognize_SimpleCommand(t *testing.T) {
	rec := testRecognizer(t, false, &Definition{Name: "bloop", ArgCount: 1})

	inst := rec.Recognize(ScopeChannel, "!bloop one two", false)
	require.NotNil(t, inst)
	assert.Equal(t, "bloop", inst.Name)
	assert.Equal(t, []string{"one"}, inst.Args)
	assert.Equal(t, "two", inst.Rest)
	assert.Equal(t, "", inst.PrecedingQuote)
}

func TestRecognize_NotACommand(t *testing.T) {
	rec := testRecognizer(t, false, &Definition{Name: "bloop"})

	assert.Nil(t, rec.Recognize(ScopeChannel, "just chatting", false))
	assert.Nil(t, rec.Recognize(ScopeChannel, "", false))
	assert.Nil(t, rec.Recognize(ScopeChannel, "  !bloop", false), "prefix must open the message")
}

func TestRecognize_UnknownCommand(t *testing.T) {
	rec := testRecognizer(t, false, &Definition{Name: "bloop"})
	assert.Nil(t, rec.Recognize(ScopeChannel, "!blarp", false))
}

func TestRecognize_CaseFolding(t *testing.T) {
	rec := testRecognizer(t, true, &Definition{Name: "bloop"})
	inst := rec.Recognize(ScopeChannel, "!BLOOP", false)
	require.NotNil(t, inst)
	assert.Equal(t, "bloop", inst.Name)

	strict := testRecognizer(t, false, &Definition{Name: "bloop"})
	assert.Nil(t, strict.Recognize(ScopeChannel, "!BLOOP", false))
}

func TestRecognize_BotGating(t *testing.T) {
	rec := testRecognizer(t, false,
		&Definition{Name: "bloop"},
		&Definition{Name: "ping", Behaviors: Behaviors{AcceptFromBots: true}},
	)

	assert.Nil(t, rec.Recognize(ScopeChannel, "!bloop", true))
	assert.NotNil(t, rec.Recognize(ScopeChannel, "!ping", true))
	assert.NotNil(t, rec.Recognize(ScopeChannel, "!bloop", false))
}

func TestRecognize_PrecedingQuote(t *testing.T) {
	quoted := "[ ](https://chat.example.com/channel?msg=abc) !bloop rest"

	rec := testRecognizer(t, false,
		&Definition{Name: "bloop", Behaviors: Behaviors{AllowPrecedingQuote: true}},
		&Definition{Name: "strict"},
	)

	inst := rec.Recognize(ScopeChannel, quoted, false)
	require.NotNil(t, inst)
	assert.Equal(t, "[ ](https://chat.example.com/channel?msg=abc) ", inst.PrecedingQuote)
	assert.Equal(t, "rest", inst.Rest)

	// commands without AllowPrecedingQuote refuse quoted invocations
	assert.Nil(t, rec.Recognize(ScopeChannel, "[ ](https://chat.example.com/c?msg=x) !strict", false))
}

func TestRecognize_QuoteMarkerMidMessageIsNotStripped(t *testing.T) {
	rec := testRecognizer(t, false, &Definition{Name: "bloop"})

	inst := rec.Recognize(ScopeChannel, "!bloop [ ](https://chat.example.com/c?msg=x)", false)
	require.NotNil(t, inst)
	assert.Equal(t, "", inst.PrecedingQuote)
}

func TestRecognize_ParseFailureReturnsNil(t *testing.T) {
	rec := testRecognizer(t, false, &Definition{
		Name:  "bloop",
		Flags: map[string]bool{},
	})

	assert.Nil(t, rec.Recognize(ScopeChannel, "!bloop --unknown", false))
}

func TestStripPrecedingQuote(t *testing.T) {
	raw, quote := StripPrecedingQuote("[ ](https://x.example/m?id=1) hello")
	assert.Equal(t, "hello", raw)
	assert.Equal(t, "[ ](https://x.example/m?id=1) ", quote)

	raw, quote = StripPrecedingQuote("hello [ ](https://x.example/m?id=1)")
	assert.Equal(t, "hello [ ](https://x.example/m?id=1)", raw)
	assert.Equal(t, "", quote)

	raw, quote = StripPrecedingQuote("")
	assert.Equal(t, "", raw)
	assert.Equal(t, "", quote)
}
