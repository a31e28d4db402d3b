package uri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFS struct {
	files map[string]bool
	home  string
	stats []string
}

func newFakeFS(files ...string) *fakeFS {
	f := &fakeFS{files: make(map[string]bool), home: "/home/u"}
	for _, p := range files {
		f.files[p] = true
	}
	return f
}

func (f *fakeFS) IsFile(path string) bool {
	f.stats = append(f.stats, path)
	return f.files[path]
}

func (f *fakeFS) ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return f.home + path[1:]
	}
	return path
}

func testContext(fs *fakeFS) Context {
	return Context{Schemes: DefaultSchemeSet(), FS: fs}
}

func TestValidate_AcceptedSchemePassesThrough(t *testing.T) {
	res := Validate("ftp://host/path", testContext(newFakeFS()))

	require.True(t, res.OK())
	assert.Equal(t, "ftp://host/path", res.URI)
	assert.Equal(t, ByScheme, res.Method)
}

func TestValidate_UnsupportedSchemeRejectedWithoutFallback(t *testing.T) {
	fs := newFakeFS()
	ctx := testContext(fs)
	ctx.Document = "sftp://remote/dir/doc.txt"

	res := Validate("gopher://host/path", ctx)

	assert.False(t, res.OK())
	assert.Equal(t, SchemeNotAccepted, res.Outcome)
	assert.Empty(t, res.URI)
	assert.Empty(t, fs.stats, "an explicit scheme must not reach the filesystem")
}

func TestValidate_SchemeIsCaseSensitive(t *testing.T) {
	res := Validate("HTTP://example.com", testContext(newFakeFS()))
	assert.Equal(t, SchemeNotAccepted, res.Outcome)
}

func TestValidate_FullHTTPURL(t *testing.T) {
	token := "http://www.gnome.org/~home/index.php3?test=param&another=one#final_anchor"
	res := Validate(token, testContext(newFakeFS()))

	require.True(t, res.OK())
	assert.Equal(t, token, res.URI)
}

func TestValidate_WWWInference(t *testing.T) {
	res := Validate("www.example.com/path", testContext(newFakeFS()))

	require.True(t, res.OK())
	assert.Equal(t, "http://www.example.com/path", res.URI)
	assert.Equal(t, ByWWW, res.Method)
}

func TestValidate_RootOnlyRejected(t *testing.T) {
	res := Validate("/", testContext(newFakeFS("/")))
	assert.Equal(t, EmptyComponent, res.Outcome)
}

func TestValidate_FragmentOnlyRejected(t *testing.T) {
	res := Validate("#section", testContext(newFakeFS()))
	assert.Equal(t, EmptyComponent, res.Outcome)
}

func TestValidate_EmptyComponentCheckedBeforeScheme(t *testing.T) {
	res := Validate("gopher:/", testContext(newFakeFS()))
	assert.Equal(t, EmptyComponent, res.Outcome)
}

func TestValidate_EmptyTokenIsNoToken(t *testing.T) {
	res := Validate("", testContext(newFakeFS()))
	assert.Equal(t, NoToken, res.Outcome)
}

func TestValidate_AbsoluteLocalFile(t *testing.T) {
	res := Validate("/etc/hosts", testContext(newFakeFS("/etc/hosts")))

	require.True(t, res.OK())
	assert.Equal(t, "file:///etc/hosts", res.URI)
	assert.Equal(t, ByAbsolutePath, res.Method)
}

func TestValidate_HomeDirectoryExpanded(t *testing.T) {
	res := Validate("~/.bashrc", testContext(newFakeFS("/home/u/.bashrc")))

	require.True(t, res.OK())
	assert.Equal(t, "file:///home/u/.bashrc", res.URI)
}

func TestValidate_RelativeToDocument(t *testing.T) {
	ctx := testContext(newFakeFS("/home/u/notes.txt"))
	ctx.Document = "file:///home/u/doc.txt"

	res := Validate("notes.txt", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///home/u/notes.txt", res.URI)
	assert.Equal(t, ByDocument, res.Method)
}

func TestValidate_RelativeToDocumentWithParentSegments(t *testing.T) {
	ctx := testContext(newFakeFS("/home/u/src/../plugins/x.plugin"))
	ctx.Document = "file:///home/u/src/main.c"

	res := Validate("../plugins/x.plugin", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///home/u/src/../plugins/x.plugin", res.URI)
}

func TestValidate_RemoteDocumentJoinsWithoutExistenceCheck(t *testing.T) {
	fs := newFakeFS()
	ctx := testContext(fs)
	ctx.Document = "sftp://host/srv/www/index.html"

	res := Validate("style.css", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "sftp://host/srv/www/style.css", res.URI)
	assert.Equal(t, ByRemoteDocument, res.Method)
}

func TestValidate_MissingDocumentFileFallsThroughToSearchPath(t *testing.T) {
	ctx := testContext(newFakeFS("/usr/include/linux/smb.h"))
	ctx.Document = "file:///home/u/doc.c"
	ctx.SearchPath = []string{"/usr/bin"}

	res := Validate("linux/smb.h", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///usr/include/linux/smb.h", res.URI)
	assert.Equal(t, ByInclude, res.Method)
}

func TestValidate_SearchPathInclude(t *testing.T) {
	ctx := testContext(newFakeFS("/usr/include/linux/smb.h"))
	ctx.SearchPath = []string{"/usr/bin"}

	res := Validate("linux/smb.h", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///usr/include/linux/smb.h", res.URI)
}

func TestValidate_SearchPathFirstMatchWins(t *testing.T) {
	fs := newFakeFS("/usr/local/include/a.h", "/usr/include/a.h")
	ctx := testContext(fs)
	ctx.SearchPath = []string{"", "/opt/bin", "/usr/local/bin", "/usr/bin"}

	res := Validate("a.h", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///usr/local/include/a.h", res.URI)
	assert.NotContains(t, fs.stats, "include/a.h", "empty entries are skipped")
}

func TestValidate_CustomIncludeDir(t *testing.T) {
	ctx := testContext(newFakeFS("/usr/headers/a.h"))
	ctx.SearchPath = []string{"/usr/bin"}
	ctx.IncludeDir = "headers"

	res := Validate("a.h", ctx)

	require.True(t, res.OK())
	assert.Equal(t, "file:///usr/headers/a.h", res.URI)
}

func TestValidate_UnresolvedRelative(t *testing.T) {
	ctx := testContext(newFakeFS())
	ctx.SearchPath = []string{"/usr/bin"}

	res := Validate("hello", ctx)

	assert.Equal(t, UnresolvedRelative, res.Outcome)
	assert.Empty(t, res.URI)
}

func TestValidate_RelativeExistingFileIsNotAbsolute(t *testing.T) {
	res := Validate("notes.txt", testContext(newFakeFS("notes.txt")))
	assert.Equal(t, UnresolvedRelative, res.Outcome)
}

func TestValidate_MatchIsLeftmostPrefix(t *testing.T) {
	res := Validate(`http://example.com\path`, testContext(newFakeFS()))

	require.True(t, res.OK())
	assert.Equal(t, "http://example.com", res.URI)
}

func TestValidate_FragmentCharacters(t *testing.T) {
	ctx := testContext(newFakeFS())

	res := Validate("http://x/a#b-c", ctx)
	require.True(t, res.OK())
	assert.Equal(t, "http://x/a#b", res.URI)

	res = Validate(`http://x/a#b\c]^_d`, ctx)
	require.True(t, res.OK())
	assert.Equal(t, `http://x/a#b\c]^_d`, res.URI)
}

func TestValidate_BareSchemeTokens(t *testing.T) {
	ctx := testContext(newFakeFS())

	// "http:/" has a root-only path; "ftp:" has no path after the scheme,
	// so the whole token is read as a relative path.
	assert.Equal(t, EmptyComponent, Validate("http:/", ctx).Outcome)
	assert.Equal(t, UnresolvedRelative, Validate("ftp:", ctx).Outcome)
}

func TestValidate_DocumentAtFilesystemRoot(t *testing.T) {
	ctx := testContext(newFakeFS("/notes.txt"))
	ctx.Document = "file:///doc.txt"

	res := Validate("notes.txt", ctx)
	require.True(t, res.OK())
	assert.Equal(t, "file:///notes.txt", res.URI)
	assert.Equal(t, ByDocument, res.Method)
}

func TestValidate_LeadingBackslashRejected(t *testing.T) {
	res := Validate(`\windows\path`, testContext(newFakeFS()))
	assert.Equal(t, EmptyComponent, res.Outcome)
}

func TestValidate_Idempotent(t *testing.T) {
	ctx := testContext(newFakeFS("/home/u/notes.txt"))
	ctx.Document = "file:///home/u/doc.txt"

	for _, token := range []string{"notes.txt", "gopher://x/y", "www.a.b", "#frag", "nothing"} {
		first := Validate(token, ctx)
		second := Validate(token, ctx)
		assert.Equal(t, first, second, token)
	}
}

func TestValidate_NilFileSystemUsesDisk(t *testing.T) {
	res := Validate("www.example.org", Context{Schemes: DefaultSchemeSet()})
	assert.True(t, res.OK())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "scheme not accepted", SchemeNotAccepted.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
