package external

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/talentrail/internal/domain"
)

// SkillStatsClient fetches market statistics for skills from the
// skill-stats provider, keyed by skill slug.
type SkillStatsClient struct {
	baseURL string
	client  *http.Client
}

// NewSkillStatsClient builds a client for the provider rooted at baseURL,
// e.g. https://apiprovider.cphbusinessapps.dk/api/v1.
func NewSkillStatsClient(baseURL string, client *http.Client) *SkillStatsClient {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &SkillStatsClient{baseURL: trimBase(baseURL), client: client}
}

type skillStatsResponse struct {
	Data []skillStatsEntry `json:"data"`
}

type skillStatsEntry struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	CategoryKey     string `json:"categoryKey"`
	Description     string `json:"description"`
	PopularityScore int    `json:"popularityScore"`
	AverageSalary   int    `json:"averageSalary"`
	UpdatedAt       string `json:"updatedAt"`
}

// FetchStats looks up every slug in one batched request. Slugs the provider
// does not know are simply absent from the result.
func (c *SkillStatsClient) FetchStats(ctx context.Context, slugs []string) ([]domain.SkillStats, error) {
	if len(slugs) == 0 {
		return []domain.SkillStats{}, nil
	}

	endpoint := c.baseURL + "/skills/stats?slugs=" + url.QueryEscape(strings.Join(slugs, ","))

	var body skillStatsResponse
	if err := getJSON(ctx, c.client, endpoint, &body); err != nil {
		return nil, err
	}

	out := make([]domain.SkillStats, 0, len(body.Data))
	for _, e := range body.Data {
		out = append(out, domain.SkillStats{
			Slug:            e.Slug,
			Name:            e.Name,
			CategoryKey:     e.CategoryKey,
			PopularityScore: e.PopularityScore,
			AverageSalary:   e.AverageSalary,
		})
	}
	return out, nil
}
