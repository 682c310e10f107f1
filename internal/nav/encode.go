package nav

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way a browser's encodeURIComponent
// does: everything except ASCII letters, digits and -_.!~*'() is escaped,
// byte by byte, with upper-case hex.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// DecodeComponent reverses [EncodeComponent]. A literal "+" stays a plus sign.
func DecodeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// IsURL reports whether text parses as an absolute URL, the test used to
// tell links from search terms. Any scheme is accepted, so "mailto:a@b.com"
// is a link.
func IsURL(text string) bool {
	if strings.TrimSpace(text) != text || text == "" {
		return false
	}
	u, err := url.Parse(text)
	return err == nil && u.Scheme != ""
}

// Hostname returns the host of rawURL for display, or rawURL itself when it
// has none.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
