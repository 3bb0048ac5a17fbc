package mastoapi

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"mastoemoji2tg/internal/mastodon"
)

const (
	maxListSize     = 5 << 20
	maxDownloadSize = 1 << 20
	defaultTimeout  = time.Second * 10

	customEmojisPath = "/api/v1/custom_emojis"
)

func New(saveDir string, timeout time.Duration) *API {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}

	return &API{
		saveDir: saveDir,
		client:  client,
		scheme:  "https",
	}
}

type API struct {
	saveDir string
	client  *http.Client
	scheme  string
}

func (a *API) GetCustomEmojis(ctx context.Context, instance string) ([]*mastodon.CustomEmoji, error) {
	const errMsg = "MastodonAPI.GetCustomEmojis"

	host, err := NormalizeInstance(instance)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	endpoint := url.URL{Scheme: a.scheme, Host: host, Path: customEmojisPath}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.New("response status code " + resp.Status)

		return nil, errors.Wrap(err, errMsg)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListSize+1))
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	if len(body) > maxListSize {
		err = fmt.Errorf("response too large (>%dMB)", maxListSize>>20)

		return nil, errors.Wrap(err, errMsg)
	}

	emojis, err := mastodon.ParseCustomEmojiList(body)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	return emojis, nil
}

func (a *API) DownloadStatic(ctx context.Context, emoji *mastodon.CustomEmoji) (string, error) {
	const errMsg = "MastodonAPI.DownloadStatic"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, emoji.StaticURL(), nil)
	if err != nil {
		return "", errors.Wrap(err, errMsg)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.New("response status code " + resp.Status)

		return "", errors.Wrap(err, errMsg)
	}

	ext, err := imageExtension(resp.Header.Get("Content-Type"), emoji.StaticURL())
	if err != nil {
		return "", errors.Wrap(err, errMsg)
	}

	limitedReader := io.LimitReader(resp.Body, maxDownloadSize+1)

	outPath := filepath.Join(a.saveDir, uuid.NewString()+ext)

	outFile, err := os.Create(outPath)
	if err != nil {
		return "", errors.Wrap(err, errMsg)
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, limitedReader)
	if err != nil {
		_ = os.Remove(outPath)

		return "", errors.Wrap(err, errMsg)
	}

	if written > maxDownloadSize {
		_ = os.Remove(outPath)
		err = fmt.Errorf("image too large (>%dMB)", maxDownloadSize>>20)

		return "", errors.Wrap(err, errMsg)
	}

	return outPath, nil
}

// NormalizeInstance reduces user input such as "https://mastodon.social/"
// or "@user@mastodon.social" to a bare host.
func NormalizeInstance(instance string) (string, error) {
	const errMsg = "NormalizeInstance"

	s := strings.TrimSpace(strings.ToLower(instance))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	s, _, _ = strings.Cut(s, "/")

	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}

	if s == "" || strings.ContainsAny(s, " \t?#") {
		return "", errors.Wrap(errors.New("invalid instance "+instance), errMsg)
	}

	return s, nil
}

func imageExtension(contentType, rawURL string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", errors.New("invalid content type")
	}

	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext, nil
		}
	}

	return "." + strings.TrimPrefix(mediaType, "image/"), nil
}
