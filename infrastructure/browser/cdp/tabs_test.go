package cdp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscribe-api/core/interfaces"
)

var _ interfaces.TabSource = (*TabSource)(nil)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Field Notes</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Field Notes</h1>
<p>The first paragraph of the article explains what the notes are about and why they were kept over such a long stretch of time, with enough words to look like real content.</p>
<p>The second paragraph continues the story with more detail, describing the weather, the birds, and the long walks along the river that filled most afternoons that summer.</p>
<p>A third paragraph closes the piece, noting that the notebook is now kept on a shelf near the window where the light is best in the morning hours.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestReadableText(t *testing.T) {
	text, err := ReadableText(articleHTML, "https://example.com/notes")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Field Notes"))
	assert.Contains(t, text, "The second paragraph continues")
	assert.NotContains(t, text, "Copyright")
}

func TestReadableText_BadURL(t *testing.T) {
	_, err := ReadableText(articleHTML, "://bad")
	assert.Error(t, err)
}

// Needs Chrome: ROD_TEST=1, optionally ROD_BROWSER_BIN
func TestTabSource_Integration(t *testing.T) {
	if os.Getenv("ROD_TEST") != "1" {
		t.Skip("Skipping browser integration test - set ROD_TEST=1 to run")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	source, err := Connect(Options{Bin: os.Getenv("ROD_BROWSER_BIN")})
	require.NoError(t, err)
	defer source.Close()

	page := source.browser.MustPage(server.URL).MustWaitLoad()
	ctx := context.Background()

	tabs, err := source.ListTabs(ctx)
	require.NoError(t, err)

	var found bool
	for _, tab := range tabs {
		if tab.ID == string(page.TargetID) {
			found = true
			assert.Equal(t, "Field Notes", tab.Title)
		}
	}
	require.True(t, found)

	require.NoError(t, source.Activate(ctx, string(page.TargetID)))

	text, err := source.ExtractText(ctx, string(page.TargetID))
	require.NoError(t, err)
	assert.Contains(t, text, "The first paragraph")

	_, err = source.ExtractText(ctx, "no-such-target")
	assert.Error(t, err)
}
