package domain

type QueryKind int

const (
	QueryOverview QueryKind = iota
	QueryEmoji
	QuerySearch
)

// Query is a parsed chat request against one instance.
type Query struct {
	Kind     QueryKind
	Instance string
	Term     string
}

type UserRequest struct {
	ChatID           int64
	ReplyToMessageID int
	Query            Query
	ErrChan          chan error
}

// CategoryGroup lists picker-visible shortcodes sharing a category.
type CategoryGroup struct {
	Name       string
	Shortcodes []string
}
