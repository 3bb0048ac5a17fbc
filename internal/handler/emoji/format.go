package emoji

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"mastoemoji2tg/internal/domain"
	"mastoemoji2tg/internal/mastodon"
)

// Telegram rejects messages above 4096 characters.
const maxMessageLength = 4000

const uncategorized = "uncategorized"

func formatOverview(instance string, total int, groups []domain.CategoryGroup) string {
	var sb strings.Builder

	visible := 0
	for _, g := range groups {
		visible += len(g.Shortcodes)
	}

	fmt.Fprintf(&sb, "%s has %d custom emojis", instance, visible)

	if hidden := total - visible; hidden > 0 {
		fmt.Fprintf(&sb, " (%d hidden)", hidden)
	}

	sb.WriteByte('\n')

	for _, g := range groups {
		name := g.Name
		if name == "" {
			name = uncategorized
		}

		fmt.Fprintf(&sb, "\n%s (%d): ", name, len(g.Shortcodes))

		for i, code := range g.Shortcodes {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(":" + code + ":")
		}
	}

	return truncate(sb.String())
}

func formatSearch(instance, term string, found []*mastodon.CustomEmoji) string {
	if len(found) == 0 {
		return fmt.Sprintf("No emojis matching %q on %s", term, instance)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%d emojis matching %q on %s\n", len(found), term, instance)

	for _, e := range found {
		sb.WriteString("\n" + e.Tag())

		if category, ok := e.Category(); ok {
			sb.WriteString(" [" + category + "]")
		}

		if !e.VisibleInPicker() {
			sb.WriteString(" (hidden)")
		}
	}

	return truncate(sb.String())
}

func caption(instance string, e *mastodon.CustomEmoji) string {
	return fmt.Sprintf("%s from %s\n%s", e.Tag(), instance, e.URL())
}

func truncate(s string) string {
	if len(s) <= maxMessageLength {
		return s
	}

	cut := strings.LastIndexAny(s[:maxMessageLength], " \n")
	if cut <= 0 {
		cut = maxMessageLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
	}

	return s[:cut] + "\n…"
}
