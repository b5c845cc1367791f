package external

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkordes/talentrail/internal/domain"
)

// PackingClient fetches packing lists from the packing-list provider.
type PackingClient struct {
	baseURL string
	client  *http.Client
}

// NewPackingClient builds a client for the provider rooted at baseURL,
// e.g. https://packingapi.cphbusinessapps.dk.
func NewPackingClient(baseURL string, client *http.Client) *PackingClient {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &PackingClient{baseURL: trimBase(baseURL), client: client}
}

type packingResponse struct {
	Items []packingEntry `json:"items"`
}

type packingEntry struct {
	Name          string         `json:"name"`
	WeightInGrams int            `json:"weightInGrams"`
	Quantity      int            `json:"quantity"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	BuyingOptions []buyingOption `json:"buyingOptions"`
}

type buyingOption struct {
	ShopName string  `json:"shopName"`
	ShopURL  string  `json:"shopUrl"`
	Price    float64 `json:"price"`
}

// FetchByCategory returns the packing list for a lower-case trip category
// key such as "beach".
func (c *PackingClient) FetchByCategory(ctx context.Context, category string) ([]domain.PackingItem, error) {
	endpoint := c.baseURL + "/packinglist/" + url.PathEscape(category)

	var body packingResponse
	if err := getJSON(ctx, c.client, endpoint, &body); err != nil {
		return nil, err
	}

	items := make([]domain.PackingItem, 0, len(body.Items))
	for _, e := range body.Items {
		opts := make([]domain.BuyingOption, 0, len(e.BuyingOptions))
		for _, o := range e.BuyingOptions {
			opts = append(opts, domain.BuyingOption{ShopName: o.ShopName, ShopURL: o.ShopURL, Price: o.Price})
		}
		items = append(items, domain.PackingItem{
			Name:          e.Name,
			WeightInGrams: e.WeightInGrams,
			Quantity:      e.Quantity,
			Description:   e.Description,
			Category:      e.Category,
			BuyingOptions: opts,
		})
	}
	return items, nil
}
