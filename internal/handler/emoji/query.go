package emoji

import (
	"strings"

	"github.com/pkg/errors"

	"mastoemoji2tg/internal/domain"
	"mastoemoji2tg/internal/infrastructure/webapi/mastoapi"
)

var ErrInvalidQuery = errors.New("invalid query")

// ParseQuery accepts
//
//	<instance>             category overview
//	[<instance>] :code:    the emoji image
//	[<instance>] ?term     shortcode search
//
// defaultInstance is used when the instance is left out.
func ParseQuery(text, defaultInstance string) (domain.Query, error) {
	const errMsg = "ParseQuery"

	fields := strings.Fields(text)

	var instance, term string

	switch len(fields) {
	case 1:
		if strings.HasPrefix(fields[0], ":") || strings.HasPrefix(fields[0], "?") {
			instance, term = defaultInstance, fields[0]
		} else {
			instance = fields[0]
		}
	case 2:
		instance, term = fields[0], fields[1]
	default:
		return domain.Query{}, errors.Wrap(ErrInvalidQuery, errMsg)
	}

	host, err := mastoapi.NormalizeInstance(instance)
	if err != nil {
		return domain.Query{}, errors.Wrap(ErrInvalidQuery, errMsg)
	}

	q := domain.Query{Kind: domain.QueryOverview, Instance: host}

	if term == "" {
		return q, nil
	}

	if strings.HasPrefix(term, "?") {
		q.Kind = domain.QuerySearch
		q.Term = strings.TrimPrefix(term, "?")
	} else {
		q.Kind = domain.QueryEmoji
		q.Term = strings.Trim(term, ":")
	}

	if q.Term == "" {
		return domain.Query{}, errors.Wrap(ErrInvalidQuery, errMsg)
	}

	return q, nil
}
