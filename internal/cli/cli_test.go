package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/drafty/internal/cli"
	"github.com/yaklabco/drafty/pkg/drafty"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// runCLI executes drafty with an isolated config file and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "drafty.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("color: never\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(testInfo)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "drafty", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{
		"parse", "render", "preview", "reply", "forward", "quote",
		"markdown", "import", "tree", "init", "version",
	} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"debug", "config", "color", "output", "input", "width", "out-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "*hi* @alice\n", "parse")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ST")
	assert.Contains(t, stdout, "MN  val=@alice")
	assert.Contains(t, stdout, "9 chars, 2 styles, 1 entity (MN)")
}

func TestParse_PlainText(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "hello", "parse")
	require.NoError(t, err)
	assert.Equal(t, "5 chars, plain text\n", stdout)
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "*bold*\n", "parse", "-o", "json")
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "bold", doc.Txt)
	require.Len(t, doc.Fmt, 1)
	assert.Equal(t, drafty.TagStrong, doc.Fmt[0].Tp)
}

func TestParse_CBOR(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "_hey_ there", "parse", "--output", "cbor")
	require.NoError(t, err)

	doc, err := drafty.DecodeCBOR([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "hey there", doc.Txt)
	require.Len(t, doc.Fmt, 1)
	assert.Equal(t, drafty.TagEmphasized, doc.Fmt[0].Tp)
}

func TestParse_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("~gone~"), 0o644))

	stdout, _, err := runCLI(t, "", "parse", "-o", "json", path)
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "gone", doc.Txt)
}

func TestParse_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "bad \xff input", "parse")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidInput)
	assert.Equal(t, cli.ExitInvalidInput, cli.ExitCode(err))
}

func TestRender(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "*bold* text", "render")
	require.NoError(t, err)
	assert.Equal(t, "bold text\n", stdout)
}

func TestRender_JSONInputWithComments(t *testing.T) {
	t.Parallel()

	input := `{
  // greeting
  "txt": "hi there",
  "fmt": [{"at": 0, "len": 2, "tp": "EM"}]
}`
	stdout, _, err := runCLI(t, input, "render", "-i", "json")
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", stdout)
}

func TestRender_JSONInputFallsBackToPlainText(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCLI(t, "*not json*", "render", "--input", "json")
	require.NoError(t, err)
	assert.Equal(t, "*not json*\n", stdout, "markup is not parsed when falling back")
	assert.Contains(t, stderr, "plain text")
}

func TestRender_Width(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "one two three four five", "render", "--width", "10")
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSuffix(stdout, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 10, "line %q", line)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "hello world, this message is long", "preview", "--length", "10")
	require.NoError(t, err)

	assert.Contains(t, stdout, "…")
	assert.NotContains(t, stdout, "long")
	assert.True(t, strings.HasPrefix(stdout, "hello"))
}

func TestPreview_TooShort(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "hello", "preview", "--length", "1")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestPreview_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "*bold* words here", "preview", "-l", "4", "-o", "json")
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "bold", doc.Txt)
}

func TestReply_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "line one\nline two", "reply", "-o", "json")
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "line one line two", doc.Txt)
	for _, st := range doc.Fmt {
		assert.NotEqual(t, drafty.TagLineBreak, st.Tp)
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "original message", "quote", "--header", "alice", "--uid", "usr1", "-o", "json")
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Txt, "alice"))
	assert.Contains(t, doc.Txt, "original message")
	assert.True(t, doc.HasEntities(drafty.TagMention))
}

func TestQuote_RequiresHeader(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "text", "quote")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "see www.tinode.co", "markdown")
	require.NoError(t, err)
	assert.Equal(t, "see [www.tinode.co](http://www.tinode.co)\n", stdout)

	stdout, _, err = runCLI(t, "see www.tinode.co", "markdown", "--plain-links")
	require.NoError(t, err)
	assert.Equal(t, "see www.tinode.co\n", stdout)
}

func TestTree(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "*bold*", "tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ST")
	assert.Contains(t, stdout, "bold")
	assert.NotContains(t, stdout, "parent")
}

func TestImport(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "**strong** text", "import", "-o", "json")
	require.NoError(t, err)

	doc, err := drafty.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "strong text", doc.Txt)
	require.Len(t, doc.Fmt, 1)
	assert.Equal(t, drafty.TagStrong, doc.Fmt[0].Tp)
}

func TestImport_InvalidFlavor(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "text", "import", "--flavor", "rst")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestInvalidConfigFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("color: purple\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetIn(strings.NewReader("x"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "parse"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrConfig)
	assert.Contains(t, err.Error(), "color")
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf", ".drafty.yml")

	_, _, err := runCLI(t, "", "init", "--file", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "preview_length")

	_, _, err = runCLI(t, "", "init", "--file", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = runCLI(t, "", "init", "--file", path, "--force", "--full")
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, string(content), string(backup))

	full, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(full), "# Environment overrides:")
	assert.Contains(t, string(full), "DRAFTY_PREVIEW_LENGTH")
}

func TestOutFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.json")
	stdout, _, err := runCLI(t, "*bold*", "parse", "-o", "json", "--out-file", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := drafty.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "bold", doc.Txt)
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "", "init", "--format", "toml", "--file", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "drafty")
	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "preview")
	assert.Contains(t, stdout, "--color")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitSuccess},
		{errors.New("boom"), cli.ExitFailure},
		{fmt.Errorf("wrap: %w", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{fmt.Errorf("wrap: %w", cli.ErrInvalidInput), cli.ExitInvalidInput},
		{errors.Join(cli.ErrConfig, errors.New("bad")), cli.ExitConfigError},
		{fmt.Errorf("read: %w", fs.ErrPermission), cli.ExitIOError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), "%v", tt.err)
	}
}
