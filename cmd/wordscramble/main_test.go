package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wordscramble/internal/words"
)

// runCLI parses args and runs the selected command, returning its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cli := CLI{Globals: Globals{Stdout: &stdout, Stderr: &stderr}}

	parser, err := kong.New(&cli, append(parserOptions(),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(int) { t.Fatalf("unexpected exit: %s", stderr.String()) }),
	)...)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&cli.Globals)
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.hcl")

	t.Run("all accepted", func(t *testing.T) {
		out, err := runCLI(t, "--config", missing, "check", "--root", "balloon", "Ball", "loan")
		require.NoError(t, err)
		assert.Equal(t, "ball\taccepted\nloan\taccepted\n", out)
	})

	t.Run("rejections fail the command", func(t *testing.T) {
		out, err := runCLI(t, "--config", missing, "check", "--root", "balloon", "ball", "ball", "bell", "balloon")
		require.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "3 of 4")

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "ball\taccepted", lines[0])
		assert.Equal(t, "ball\talready_used\tWord used already: Be more original.", lines[1])
		assert.Equal(t, "bell\tnot_possible\tWord not possible: You can't spell that word from 'balloon'.", lines[2])
		assert.Equal(t, "balloon\tsame_as_root\tWord is the root word: Find words hidden inside it instead.", lines[3])
	})

	t.Run("blank input is ignored", func(t *testing.T) {
		out, err := runCLI(t, "--config", missing, "check", "--root", "balloon", "  ")
		require.NoError(t, err)
		assert.Equal(t, "\"\"\tignored\n", out)
	})
}

func TestCheckCommandLanguage(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "tr.txt", "IRMAK\nKIR\n")
	cfg := writeFile(t, dir, "tr.hcl", `
game {
  language   = "tr-TR"
  dictionary = "`+dict+`"
}
`)

	out, err := runCLI(t, "--config", cfg, "check", "--root", "IRMAKLAR", "IRMAK", "kır")
	require.NoError(t, err)
	assert.Equal(t, "ırmak\taccepted\nkır\taccepted\n", out)
}

func TestPickCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("configured word list", func(t *testing.T) {
		list := writeFile(t, dir, "roots.txt", "Scramble\n")
		cfg := writeFile(t, dir, "list.hcl", `
game {
  word_list = "`+list+`"
  seed      = 7
}
`)
		out, err := runCLI(t, "--config", cfg, "pick")
		require.NoError(t, err)
		assert.Equal(t, "scramble\n", out)
	})

	t.Run("missing list halts by default", func(t *testing.T) {
		cfg := writeFile(t, dir, "halt.hcl", `
game {
  word_list = "`+filepath.Join(dir, "nope.txt")+`"
}
`)
		_, err := runCLI(t, "--config", cfg, "pick")
		assert.ErrorIs(t, err, words.ErrStartupResourceMissing)
	})

	t.Run("missing list with fallback policy", func(t *testing.T) {
		cfg := writeFile(t, dir, "fallback.hcl", `
game {
  word_list            = "`+filepath.Join(dir, "nope.txt")+`"
  on_missing_word_list = "fallback"
}
`)
		out, err := runCLI(t, "--config", cfg, "pick")
		require.NoError(t, err)
		assert.Equal(t, "grapefruit\n", out)
	})

	t.Run("config path from environment", func(t *testing.T) {
		list := writeFile(t, dir, "env-roots.txt", "listen\n")
		cfg := writeFile(t, dir, "env.hcl", `
game {
  word_list = "`+list+`"
}
`)
		t.Setenv("WORDSCRAMBLE_CONFIG", cfg)
		out, err := runCLI(t, "pick")
		require.NoError(t, err)
		assert.Equal(t, "listen\n", out)
	})
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "bad.hcl", `
ui {
  log_level = "loud"
}
`)
	_, err := runCLI(t, "--config", cfg, "pick")
	assert.Error(t, err)

	_, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "none.hcl"), "--log-level", "loud", "pick")
	assert.Error(t, err)
}
