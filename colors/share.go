package colors

import (
	"fmt"
	"net/url"
)

// ShareParam is the query parameter that carries a shared color.
const ShareParam = "color"

// ShareURL appends c, without its '#', to base as the color parameter.
// Existing query parameters on base are kept.
func ShareURL(base string, c Color) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share url base %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ShareParam, c.Clean())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseShareParam decodes the color parameter value. It accepts exactly six
// hex characters and no leading '#'.
func ParseShareParam(v string) (Color, error) {
	if len(v) != 6 {
		return Color{}, fmt.Errorf("%w: shared color %q must be 6 hex characters", ErrInvalidFormat, v)
	}
	return ParseHex("#" + v)
}
