package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"wayfarer/pkg/utils"
)

// PexelsImages finds one photo per query. Calls are paced by a shared limiter
// so that concurrent enrichment stays inside the API quota.
type PexelsImages struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	limiter *rate.Limiter
}

func NewPexelsImages(apiKey, baseURL string, timeout time.Duration, perSecond float64) *PexelsImages {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &PexelsImages{
		HTTP:    newHTTPClient(timeout),
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

type pexelsSearchResponse struct {
	Photos []struct {
		Src struct {
			Medium   string `json:"medium"`
			Large    string `json:"large"`
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

func (p *PexelsImages) SearchImage(ctx context.Context, query string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	var resp pexelsSearchResponse
	headers := map[string]string{"Authorization": p.APIKey}
	if err := getJSON(ctx, p.HTTP, p.BaseURL+"/v1/search?"+q.Encode(), headers, &resp); err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}
	if len(resp.Photos) == 0 {
		return "", utils.ErrEmptyPayload
	}

	src := resp.Photos[0].Src
	switch {
	case src.Medium != "":
		return src.Medium, nil
	case src.Large != "":
		return src.Large, nil
	case src.Original != "":
		return src.Original, nil
	}
	return "", utils.ErrEmptyPayload
}
