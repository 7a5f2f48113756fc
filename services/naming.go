package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LuSP19/space-tg/domain"
)

const epicTimestampLayout = "20060102150405"

// DeriveExtension returns the extension (with the dot) of the last segment of
// the URL's decoded path. Query strings and fragments are ignored. A segment
// made only of leading dots before its last dot, like ".jpg", has no extension.
func DeriveExtension(rawURL string) string {
	p := unescapeLenient(urlPath(rawURL))
	name := p[strings.LastIndex(p, "/")+1:]

	dot := strings.LastIndex(name, ".")
	if dot < 0 || strings.Trim(name[:dot], ".") == "" {
		return ""
	}
	return name[dot:]
}

// urlPath cuts the fragment, the query and the scheme://authority prefix
// without validating escapes, so "/100%.jpg" still yields a path.
func urlPath(rawURL string) string {
	s, _, _ := strings.Cut(rawURL, "#")
	s, _, _ = strings.Cut(s, "?")
	if _, rest, ok := strings.Cut(s, "//"); ok {
		if i := strings.Index(rest, "/"); i >= 0 {
			return rest[i:]
		}
		return ""
	}
	return s
}

// unescapeLenient decodes %XX sequences and keeps malformed ones as they are.
func unescapeLenient(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// CheckFilename rejects names that would escape the images directory.
func CheckFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: unsafe image filename %q", domain.ErrUpstream, name)
	}
	return nil
}

func SpaceXFilename(position int, imageURL string) string {
	return fmt.Sprintf("spacex%d%s", position, DeriveExtension(imageURL))
}

func APODFilename(position int, imageURL string) string {
	return fmt.Sprintf("nasa%d%s", position, DeriveExtension(imageURL))
}

func EPICFilename(imageID string) string {
	return imageID + ".png"
}

// EPICDatePath turns "epic_1b_20230115103000" into "2023/01/15".
func EPICDatePath(imageID string) (string, error) {
	parts := strings.Split(imageID, "_")
	stamp := parts[len(parts)-1]

	ts, err := time.Parse(epicTimestampLayout, stamp)
	if err != nil {
		return "", fmt.Errorf("%w: malformed EPIC image id %q: %v", domain.ErrUpstream, imageID, err)
	}
	return ts.Format("2006/01/02"), nil
}
