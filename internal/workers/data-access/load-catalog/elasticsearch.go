// internal/workers/data-access/load-catalog/elasticsearch.go
package loadcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchSource reads documents of one shop from the products index
// with a term filter on shop_id.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, size int) *ElasticsearchSource {
	return &ElasticsearchSource{client: client, index: index, size: size}
}

func (s *ElasticsearchSource) Name() string { return "elasticsearch" }

type esDocument struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Rating          float64  `json:"rating"`
	PopularityScore float64  `json:"popularity_score"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Source esDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildShopQuery(shopID string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"shop_id": shopID}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_doc": "asc"},
		},
	}
}

func (s *ElasticsearchSource) Fetch(ctx context.Context, shopID string) ([]models.Product, error) {
	body, err := json.Marshal(buildShopQuery(shopID))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}

	size := s.size
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("%s", res.Status()))
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		doc := hit.Source
		id := doc.ID
		if id == "" {
			id = hit.ID
		}
		products = append(products, models.Product{
			ID:              id,
			Title:           doc.Title,
			Description:     doc.Description,
			Price:           doc.Price,
			Category:        doc.Category,
			Tags:            doc.Tags,
			Rating:          doc.Rating,
			PopularityScore: doc.PopularityScore,
		})
	}
	return products, nil
}
