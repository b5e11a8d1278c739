package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/bastiangx/kotoba/pkg/config"
	"github.com/bastiangx/kotoba/pkg/library"
	"github.com/bastiangx/kotoba/pkg/query"
	"github.com/bastiangx/kotoba/pkg/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	config string
	db     string
}

func setupEnv(t *testing.T, jmdict bool) testEnv {
	t.Helper()
	dir := t.TempDir()

	heisig, err := filepath.Abs("../../../pkg/dictionary/testdata/heisig_sample.json")
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	cfg.Dict.HeisigPath = heisig
	cfg.Dict.JMdictPath = filepath.Join(dir, "missing.json")
	if jmdict {
		cfg.Dict.JMdictPath, err = filepath.Abs("../../../pkg/dictionary/testdata/jmdict_sample.json")
		require.NoError(t, err)
	}

	env := testEnv{config: filepath.Join(dir, "config.toml"), db: filepath.Join(dir, "kotoba.db")}
	require.NoError(t, config.SaveConfig(cfg, env.config))
	return env
}

// resetFlags clears flag values left over from a previous execution.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (env testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append(args, "--config", env.config, "--db", env.db))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	env := setupEnv(t, false)

	out, err := env.run(t, "classify", "水")
	require.NoError(t, err)
	assert.Equal(t, "kanji\t水\n", out)

	out, err = env.run(t, "classify", "fire , water")
	require.NoError(t, err)
	assert.Equal(t, "keywords\tfire, water\n", out)

	_, err = env.run(t, "classify", ",")
	assert.EqualError(t, err, query.InvalidMessage)
}

func TestWordCommands(t *testing.T) {
	env := setupEnv(t, false)

	out, err := env.run(t, "add-word", "時間", "time", "--readings", "じ,かん")
	require.NoError(t, err)
	assert.Contains(t, out, "saved 時間")

	_, err = env.run(t, "add-word", "時間", "time", "--readings", "じ,かん")
	assert.ErrorIs(t, err, store.ErrExists)

	_, err = env.run(t, "add-word", "学校", "school")
	assert.Error(t, err, "readings are required for every kanji")

	out, err = env.run(t, "words", "tim")
	require.NoError(t, err)
	assert.Contains(t, out, "時間")
	assert.Contains(t, out, "meaning")

	out, err = env.run(t, "words", "qqqq")
	require.NoError(t, err)
	assert.Equal(t, "No results\n", out)

	out, err = env.run(t, "reading", "時間")
	require.NoError(t, err)
	assert.Contains(t, out, "時[じ]間[かん]  じかん  time")

	_, err = env.run(t, "add-kanji", "時", "--readings", "じ,とき")
	require.NoError(t, err)

	out, err = env.run(t, "reading", "時間")
	require.NoError(t, err)
	assert.Contains(t, out, "時間[かん]  じかん  time", "saved kanji lose their furigana")

	out, err = env.run(t, "kanji", "とき")
	require.NoError(t, err)
	assert.Contains(t, out, "時")

	_, err = env.run(t, "reading", "学校")
	assert.Error(t, err)
}

func TestLookupCommands(t *testing.T) {
	env := setupEnv(t, false)

	out, err := env.run(t, "lookup", "みず")
	require.NoError(t, err)
	assert.Contains(t, out, "water")
	assert.Contains(t, out, "水 (みず) water")

	out, err = env.run(t, "lookup", "fountian")
	require.NoError(t, err)
	assert.Contains(t, out, "showing results for fountain")

	out, err = env.run(t, "add-kanji", "水", "--heisig", "--writing", "a waterfall")
	require.NoError(t, err)
	assert.Contains(t, out, "saved 水 [みず、みず-、スイ]")

	_, err = env.run(t, "candidates", "時間")
	assert.ErrorIs(t, err, library.ErrNoDictionary)
}

func TestCandidatesCommand(t *testing.T) {
	env := setupEnv(t, true)

	out, err := env.run(t, "candidates", "食べた")
	require.NoError(t, err)
	assert.Contains(t, out, "食べる (たべる)")
}

func TestConfigCommand(t *testing.T) {
	env := setupEnv(t, false)

	out, err := env.run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, env.config)
	assert.Contains(t, out, env.db)
	assert.Contains(t, out, "heisig_sample.json")
	assert.Contains(t, out, "300ms")
}
