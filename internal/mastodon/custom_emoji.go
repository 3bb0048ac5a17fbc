package mastodon

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// CustomEmoji is a server-uploaded emoji as returned by the Mastodon API.
//
// See https://docs.joinmastodon.org/entities/CustomEmoji/
type CustomEmoji struct {
	shortcode       string
	url             string
	staticURL       string
	visibleInPicker bool
	category        *string

	raw []byte
}

// ParseCustomEmoji decodes a CustomEmoji from obj.
//
// shortcode, url and static_url are required strings. A missing or null
// visible_in_picker decodes as false. category is optional.
func ParseCustomEmoji(obj Object) (*CustomEmoji, error) {
	shortcode, err := requiredString(obj, "shortcode")
	if err != nil {
		return nil, err
	}

	url, err := requiredString(obj, "url")
	if err != nil {
		return nil, err
	}

	staticURL, err := requiredString(obj, "static_url")
	if err != nil {
		return nil, err
	}

	visible, err := obj.GetBoolean("visible_in_picker")
	if err != nil {
		return nil, err
	}

	e := &CustomEmoji{
		shortcode:       shortcode,
		url:             url,
		staticURL:       staticURL,
		visibleInPicker: visible,
		raw:             obj.raw,
	}

	category, ok, err := obj.GetString("category")
	if err != nil {
		return nil, err
	}
	if ok {
		e.category = &category
	}

	return e, nil
}

// ParseCustomEmojiJSON decodes a single CustomEmoji document.
func ParseCustomEmojiJSON(data []byte) (*CustomEmoji, error) {
	obj, err := NewObject(data)
	if err != nil {
		return nil, err
	}

	return ParseCustomEmoji(obj)
}

// ParseCustomEmojiList decodes a JSON array of CustomEmoji, as served by
// GET /api/v1/custom_emojis.
func ParseCustomEmojiList(data []byte) ([]*CustomEmoji, error) {
	const errMsg = "mastodon.ParseCustomEmojiList"

	if !wellFormed(data) {
		return nil, errors.Wrap(ErrMalformedJSON, errMsg)
	}

	if jsoniter.Get(data).ValueType() != jsoniter.ArrayValue {
		return nil, errors.Wrap(errors.Wrap(ErrTypeMismatch, "expected json array"), errMsg)
	}

	var elements []jsoniter.RawMessage

	err := jsoniter.Unmarshal(data, &elements)
	if err != nil {
		return nil, errors.Wrap(errors.Wrap(ErrMalformedJSON, err.Error()), errMsg)
	}

	emojis := make([]*CustomEmoji, 0, len(elements))

	for i, element := range elements {
		if len(element) == 0 || jsoniter.Get(element).ValueType() == jsoniter.NilValue {
			return nil, errors.Wrap(errors.Wrap(ErrTypeMismatch, "element "+strconv.Itoa(i)+" is null"), errMsg)
		}

		e, err := ParseCustomEmojiJSON(element)
		if err != nil {
			return nil, errors.Wrap(errors.Wrap(err, "element "+strconv.Itoa(i)), errMsg)
		}

		emojis = append(emojis, e)
	}

	return emojis, nil
}

func requiredString(obj Object, key string) (string, error) {
	v, ok, err := obj.GetString(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missingField(key)
	}

	return v, nil
}

// Shortcode is the name of the emoji, without surrounding colons.
func (e *CustomEmoji) Shortcode() string { return e.shortcode }

// URL links to the original, possibly animated, image.
func (e *CustomEmoji) URL() string { return e.url }

// StaticURL links to a static copy of the image.
func (e *CustomEmoji) StaticURL() string { return e.staticURL }

// VisibleInPicker reports whether the emoji is listed in the picker.
func (e *CustomEmoji) VisibleInPicker() bool { return e.visibleInPicker }

// Category is the picker grouping label. Added in Mastodon 3.0.0.
func (e *CustomEmoji) Category() (string, bool) {
	if e.category == nil {
		return "", false
	}

	return *e.category, true
}

// Tag returns the form used to reference the emoji in post content.
func (e *CustomEmoji) Tag() string {
	return ":" + e.shortcode + ":"
}

// Raw returns a copy of the JSON the emoji was decoded from.
func (e *CustomEmoji) Raw() []byte {
	out := make([]byte, len(e.raw))
	copy(out, e.raw)

	return out
}

// Equal compares the decoded fields. The source document is ignored.
func (e *CustomEmoji) Equal(other *CustomEmoji) bool {
	if e == nil || other == nil {
		return e == other
	}

	if e.shortcode != other.shortcode ||
		e.url != other.url ||
		e.staticURL != other.staticURL ||
		e.visibleInPicker != other.visibleInPicker {
		return false
	}

	if e.category == nil || other.category == nil {
		return e.category == other.category
	}

	return *e.category == *other.category
}

type customEmojiJSON struct {
	Shortcode       string  `json:"shortcode"`
	URL             string  `json:"url"`
	StaticURL       string  `json:"static_url"`
	VisibleInPicker bool    `json:"visible_in_picker"`
	Category        *string `json:"category,omitempty"`
}

func (e *CustomEmoji) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(customEmojiJSON{
		Shortcode:       e.shortcode,
		URL:             e.url,
		StaticURL:       e.staticURL,
		VisibleInPicker: e.visibleInPicker,
		Category:        e.category,
	})
}
