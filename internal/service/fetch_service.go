package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"cardwise/pkg/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const fetchUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

// Fetcher retrieves plain text content from a URL. Implementations truncate
// to the requested maximum and may fail or time out.
type Fetcher interface {
	Fetch(ctx context.Context, url string, maxChars int) (string, error)
}

// FetchService implements Fetcher with a retrying HTTP client and HTML text
// extraction. It is only ever invoked with URLs taken verbatim from card
// records, never user-supplied ones; the orchestrator enforces that.
type FetchService struct {
	client *retryablehttp.Client
	logger *zap.Logger
}

func NewFetchService(cfg *config.FetchConfig, logger *zap.Logger) *FetchService {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = 2
	client.HTTPClient.Timeout = cfg.Timeout

	return &FetchService{
		client: client,
		logger: logger,
	}
}

// Fetch downloads the page and reduces it to normalized text, truncated to
// maxChars characters.
func (s *FetchService) Fetch(ctx context.Context, url string, maxChars int) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode)
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse content from %s: %w", url, err)
	}

	if maxChars > 0 {
		runes := []rune(text)
		if len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}

	s.logger.Debug("Fetched page content",
		zap.String("url", url),
		zap.Int("chars", len(text)),
	)

	return text, nil
}

// extractText strips non-content elements and collapses whitespace.
func extractText(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header, aside, noscript").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return sanitizeUTF8(strings.Join(strings.Fields(text), " ")), nil
}
