package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/LuSP19/space-tg/domain"
)

type HTTPRepository struct {
	client *http.Client
}

// NewHTTPRepository returns a repository without a client timeout; callers rely
// on transport defaults.
func NewHTTPRepository() *HTTPRepository {
	return &HTTPRepository{
		client: &http.Client{},
	}
}

func (r *HTTPRepository) GetJSON(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	resp, err := r.get(ctx, rawURL, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response from %s: %v", domain.ErrUpstream, rawURL, err)
	}
	return nil
}

func (r *HTTPRepository) DownloadImage(ctx context.Context, rawURL string, query url.Values) ([]byte, string, error) {
	resp, err := r.get(ctx, rawURL, query)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read image body from %s: %v", domain.ErrUpstream, rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	return data, contentType, nil
}

func (r *HTTPRepository) get(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		u, err = url.Parse(escapeStrayPercents(rawURL))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %s: %v", domain.ErrUpstream, rawURL, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request for %s: %v", domain.ErrUpstream, rawURL, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch URL %s: %v", domain.ErrUpstream, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status for %s: %d", domain.ErrUpstream, rawURL, resp.StatusCode)
	}
	return resp, nil
}

// escapeStrayPercents turns every "%" that does not start a valid escape into
// "%25", so "/100%.jpg" is requested as "/100%25.jpg".
func escapeStrayPercents(rawURL string) string {
	var b strings.Builder
	for i := 0; i < len(rawURL); i++ {
		if rawURL[i] == '%' && !(i+2 < len(rawURL) && isHex(rawURL[i+1]) && isHex(rawURL[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(rawURL[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
