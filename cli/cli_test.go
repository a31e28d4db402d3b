package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uriopen/uri"
)

// execute runs the root command with fresh flag values and an empty home
// directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	verbosity, logFile, configFile = 0, "", ""
	resolveFile, resolveLine, resolveCol, resolveDocument = "", 1, 1, ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "uriopen version test-version-1.0.0\n", out)
}

func TestResolveCmd_Use(t *testing.T) {
	assert.Equal(t, "resolve [token]", resolveCmd.Use)
	assert.NotNil(t, resolveCmd.Flags().Lookup("file"))
	assert.NotNil(t, resolveCmd.Flags().Lookup("document"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestResolveCmd_Token(t *testing.T) {
	out, err := execute(t, "resolve", "http://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a\tscheme\n", out)

	out, err = execute(t, "resolve", "www.example.org")
	require.NoError(t, err)
	assert.Equal(t, "http://www.example.org\twww\n", out)
}

func TestResolveCmd_Rejected(t *testing.T) {
	_, err := execute(t, "resolve", "gopher://example.com")
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, uri.SchemeNotAccepted, rejected.Outcome)
	assert.Equal(t, "gopher://example.com", rejected.Token)
}

func TestResolveCmd_DocumentFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0644))

	out, err := execute(t, "resolve", "other.txt", "--document", "file://"+filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.Join(dir, "other.txt")+"\tdocument\n", out)

	out, err = execute(t, "resolve", "img/logo.png", "--document", "https://example.com/site/index.html")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/site/img/logo.png\tremote-document\n", out)
}

func TestResolveCmd_FromFile(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("first line\nsee (other.txt) and ftp://host/x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0644))

	out, err := execute(t, "resolve", "--file", notes, "--line", "2", "--col", "8")
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.Join(dir, "other.txt")+"\tdocument\n", out)

	out, err = execute(t, "resolve", "-f", notes, "-l", "2", "-c", "25")
	require.NoError(t, err)
	assert.Equal(t, "ftp://host/x\tscheme\n", out)

	_, err = execute(t, "resolve", "--file", notes, "--line", "2", "--col", "4")
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, uri.NoToken, rejected.Outcome)
}

func TestResolveCmd_ConfigNarrowsSchemes(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("accepted_schemes = [\"https\"]\n"), 0644))

	_, err := execute(t, "resolve", "http://example.com", "--config", cfgPath)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, uri.SchemeNotAccepted, rejected.Outcome)

	out, err := execute(t, "resolve", "https://example.com", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com\tscheme\n", out)
}

func TestResolveCmd_ArgumentErrors(t *testing.T) {
	_, err := execute(t, "resolve")
	assert.Error(t, err)

	_, err = execute(t, "resolve", "a", "b")
	assert.Error(t, err)

	notes := filepath.Join(t.TempDir(), "n.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0644))
	_, err = execute(t, "resolve", "tok", "--file", notes)
	assert.Error(t, err)
	_, err = execute(t, "resolve", "--file", notes, "--line", "0")
	assert.Error(t, err)
	_, err = execute(t, "resolve", "--file", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configFile = ""
	cfg, path, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "monokai", cfg.Theme)
	assert.Equal(t, "settings.json", filepath.Base(path))

	bad := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	configFile = bad
	defer func() { configFile = "" }()
	_, _, err = loadConfig()
	assert.Error(t, err)
}
