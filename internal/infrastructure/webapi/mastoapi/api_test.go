package mastoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mastoemoji2tg/internal/mastodon"
)

const emojiList = `[
	{"shortcode":"blobcat","url":"https://x/blobcat.png","static_url":"https://x/blobcat_static.png","visible_in_picker":true,"category":"blob"},
	{"shortcode":"party","url":"https://x/party.gif","static_url":"https://x/party_static.png","visible_in_picker":false}
]`

func newTestAPI(t *testing.T, handler http.Handler) (*API, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := New(t.TempDir(), 0)
	api.scheme = "http"

	return api, srv
}

func TestGetCustomEmojis(t *testing.T) {
	api, srv := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, customEmojisPath, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(emojiList))
	}))

	emojis, err := api.GetCustomEmojis(context.Background(), srv.Listener.Addr().String())
	require.NoError(t, err)
	require.Len(t, emojis, 2)

	assert.Equal(t, "blobcat", emojis[0].Shortcode())
	assert.False(t, emojis[1].VisibleInPicker())
}

func TestGetCustomEmojisBadStatus(t *testing.T) {
	api, srv := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))

	_, err := api.GetCustomEmojis(context.Background(), srv.Listener.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGetCustomEmojisDecodeError(t *testing.T) {
	api, srv := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"shortcode":"blobcat"}]`))
	}))

	_, err := api.GetCustomEmojis(context.Background(), srv.Listener.Addr().String())
	assert.ErrorIs(t, err, mastodon.ErrMissingField)
}

func TestDownloadStatic(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	api, srv := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blobcat_static.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
		case "/huge.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte(strings.Repeat("a", maxDownloadSize+10)))
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}
	}))

	emoji := func(static string) *mastodon.CustomEmoji {
		e, err := mastodon.ParseCustomEmojiJSON([]byte(`{"shortcode":"blobcat","url":"u","static_url":"` + srv.URL + static + `"}`))
		require.NoError(t, err)

		return e
	}

	outPath, err := api.DownloadStatic(context.Background(), emoji("/blobcat_static.png"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, png, data)

	_, err = api.DownloadStatic(context.Background(), emoji("/page"))
	assert.ErrorContains(t, err, "invalid content type")

	_, err = api.DownloadStatic(context.Background(), emoji("/huge.png"))
	assert.ErrorContains(t, err, "too large")

	entries, err := os.ReadDir(api.saveDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNormalizeInstance(t *testing.T) {
	tests := map[string]string{
		"mastodon.social":              "mastodon.social",
		"https://Mastodon.Social/":     "mastodon.social",
		"http://example.org/about":     "example.org",
		"@gargron@mastodon.social":     "mastodon.social",
		"  fosstodon.org ":             "fosstodon.org",
		"https://example.org/@someone": "example.org",
		"localhost:3000":               "localhost:3000",
	}

	for input, want := range tests {
		got, err := NormalizeInstance(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "   ", "https://", "bad host"} {
		_, err := NormalizeInstance(input)
		assert.Error(t, err, input)
	}
}

func TestImageExtension(t *testing.T) {
	ext, err := imageExtension("image/gif", "https://x/emoji/static")
	require.NoError(t, err)
	assert.Equal(t, ".gif", ext)

	ext, err = imageExtension("image/png; charset=binary", "https://x/a.PNG")
	require.NoError(t, err)
	assert.Equal(t, ".PNG", ext)

	_, err = imageExtension("", "https://x/a.png")
	assert.Error(t, err)
}
