package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PreviewService fetches a page title for a video URL so the admin can see
// what a freshly added task points at. Best effort: any failure returns "".
type PreviewService struct {
	client *http.Client
}

func NewPreviewService(timeout time.Duration) *PreviewService {
	return &PreviewService{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *PreviewService) Title(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
