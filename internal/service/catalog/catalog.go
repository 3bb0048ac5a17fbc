package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"mastoemoji2tg/internal/domain"
	"mastoemoji2tg/internal/infrastructure/webapi/mastoapi"
	"mastoemoji2tg/internal/mastodon"
)

const maxParallelFetches = 4

var ErrEmojiNotFound = errors.New("custom emoji not found")

type emojiFetcher interface {
	GetCustomEmojis(ctx context.Context, instance string) ([]*mastodon.CustomEmoji, error)
}

type Catalog struct {
	fetcher emojiFetcher
	cache   *cache.Cache
	ttl     time.Duration
}

func New(fetcher emojiFetcher, ttl time.Duration) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Emojis returns the custom emojis of instance, served from cache while fresh.
// Cache entries are keyed by the normalized host.
func (c *Catalog) Emojis(ctx context.Context, instance string) ([]*mastodon.CustomEmoji, error) {
	const errMsg = "Catalog.Emojis"

	key, err := mastoapi.NormalizeInstance(instance)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	if cached, hit := c.cache.Get(key); hit {
		return cached.([]*mastodon.CustomEmoji), nil
	}

	emojis, err := c.fetcher.GetCustomEmojis(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	c.cache.Set(key, emojis, c.ttl)

	return emojis, nil
}

func (c *Catalog) Lookup(ctx context.Context, instance, shortcode string) (*mastodon.CustomEmoji, error) {
	const errMsg = "Catalog.Lookup"

	emojis, err := c.Emojis(ctx, instance)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	shortcode = strings.Trim(shortcode, ":")

	for _, e := range emojis {
		if e.Shortcode() == shortcode {
			return e, nil
		}
	}

	return nil, errors.Wrap(ErrEmojiNotFound, shortcode)
}

// Search matches query as a case-insensitive substring of the shortcode.
func (c *Catalog) Search(ctx context.Context, instance, query string) ([]*mastodon.CustomEmoji, error) {
	const errMsg = "Catalog.Search"

	emojis, err := c.Emojis(ctx, instance)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	query = strings.ToLower(strings.Trim(query, ":"))

	var found []*mastodon.CustomEmoji

	for _, e := range emojis {
		if strings.Contains(strings.ToLower(e.Shortcode()), query) {
			found = append(found, e)
		}
	}

	return found, nil
}

// Preload warms the cache for every instance. The first failure cancels
// the remaining fetches.
func (c *Catalog) Preload(ctx context.Context, instances []string) error {
	const errMsg = "Catalog.Preload"

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	for _, instance := range instances {
		instance := instance
		g.Go(func() error {
			_, err := c.Emojis(ctx, instance)

			return err
		})
	}

	return errors.Wrap(g.Wait(), errMsg)
}

// Invalidate drops the cached list of instance and returns the host it
// was cached under.
func (c *Catalog) Invalidate(instance string) (string, error) {
	key, err := mastoapi.NormalizeInstance(instance)
	if err != nil {
		return "", errors.Wrap(err, "Catalog.Invalidate")
	}

	c.cache.Delete(key)

	return key, nil
}

// Categories groups picker-visible emojis by category. Uncategorised
// emojis land in the group with an empty name, which sorts first.
func Categories(emojis []*mastodon.CustomEmoji) []domain.CategoryGroup {
	byName := make(map[string][]string)

	for _, e := range emojis {
		if !e.VisibleInPicker() {
			continue
		}

		name, _ := e.Category()
		byName[name] = append(byName[name], e.Shortcode())
	}

	groups := make([]domain.CategoryGroup, 0, len(byName))

	for name, shortcodes := range byName {
		sort.Strings(shortcodes)
		groups = append(groups, domain.CategoryGroup{Name: name, Shortcodes: shortcodes})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups
}
