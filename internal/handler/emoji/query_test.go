package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mastoemoji2tg/internal/domain"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Query
	}{
		{"mastodon.social", domain.Query{Kind: domain.QueryOverview, Instance: "mastodon.social"}},
		{"https://Fosstodon.org/", domain.Query{Kind: domain.QueryOverview, Instance: "fosstodon.org"}},
		{":blobcat:", domain.Query{Kind: domain.QueryEmoji, Instance: "default.example", Term: "blobcat"}},
		{"?blob", domain.Query{Kind: domain.QuerySearch, Instance: "default.example", Term: "blob"}},
		{"fosstodon.org blobcat", domain.Query{Kind: domain.QueryEmoji, Instance: "fosstodon.org", Term: "blobcat"}},
		{"  fosstodon.org   ?cat ", domain.Query{Kind: domain.QuerySearch, Instance: "fosstodon.org", Term: "cat"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuery(tt.input, "default.example")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "a b c", ":", "mastodon.social ?", "mastodon.social ::"} {
		_, err := ParseQuery(input, "default.example")
		assert.ErrorIs(t, err, ErrInvalidQuery, input)
	}

	_, err := ParseQuery(":blobcat:", "")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
