package codec

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// QueryParam is the query parameter that carries the token.
const QueryParam = "d"

// PageName is appended when the base URL names a directory.
const PageName = "valentine.html"

// Link attaches token to the valentine page under base. A base naming a
// directory keeps its path and gets PageName appended; a base that already
// names an .html page is used as is. Existing query parameters survive.
func Link(base, token string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("invalid base URL %q: missing scheme", base)
	}

	if !strings.HasSuffix(strings.ToLower(u.Path), ".html") {
		dir := u.Path
		if !strings.HasSuffix(dir, "/") {
			dir += "/"
		}
		u.Path = path.Join(dir, PageName)
		if u.RawPath != "" {
			u.RawPath = ""
		}
	}

	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// TokenFrom extracts the token from a pasted link, or returns input
// unchanged when it already looks like a bare token.
func TokenFrom(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", ErrDecode)
	}
	if !strings.Contains(input, "?") && !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Walk the raw query by hand: url.Values would turn an unescaped '+'
	// in the token into a space.
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != QueryParam {
			continue
		}
		token, err := url.PathUnescape(value)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if token == "" {
			break
		}
		return token, nil
	}
	return "", fmt.Errorf("%w: link has no %q parameter", ErrDecode, QueryParam)
}
