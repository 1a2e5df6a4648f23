package ussd

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/pkg/logger"
)

// SourceVerifier checks a code against trusted online listings
type SourceVerifier interface {
	Verify(ctx context.Context, code string) (bool, string)
}

// HTTPSourceVerifier fetches each configured URL and reports the first one
// whose body mentions the code
type HTTPSourceVerifier struct {
	urls      []string
	userAgent string
	client    *http.Client
}

// NewHTTPSourceVerifier creates a verifier over the configured trusted URLs
func NewHTTPSourceVerifier(urls []string, userAgent string) *HTTPSourceVerifier {
	return &HTTPSourceVerifier{
		urls:      urls,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 8 * time.Second},
	}
}

// Verify returns whether any trusted source lists the code, and which one
func (v *HTTPSourceVerifier) Verify(ctx context.Context, code string) (bool, string) {
	norm := strings.ToLower(Normalize(code))
	for _, url := range v.urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", v.userAgent)

		resp, err := v.client.Do(req)
		if err != nil {
			logger.Warn("Source verification request failed",
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			continue
		}
		if strings.Contains(strings.ToLower(string(body)), norm) {
			return true, url
		}
	}
	return false, ""
}
