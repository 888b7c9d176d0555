// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"
	"strings"

	"sales-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// catalogMapping indexes product documents with the same fields as the
// products table. The product id is the document id. Titles and descriptions use the German analyzer.
const catalogMapping = `{
  "mappings": {
    "properties": {
      "shop_id":          {"type": "keyword"},
      "title":            {"type": "text", "analyzer": "german"},
      "description":      {"type": "text", "analyzer": "german"},
      "price":            {"type": "scaled_float", "scaling_factor": 100},
      "category":         {"type": "keyword"},
      "tags":             {"type": "keyword"},
      "rating":           {"type": "float"},
      "popularity_score": {"type": "float"}
    }
  }
}`

// ElasticsearchClient is only created when catalog.source is elasticsearch.
type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	addresses := cfg.Addresses
	if len(addresses) == 0 && cfg.URL != "" {
		addresses = []string{cfg.URL}
	}

	esCfg := elasticsearch.Config{Addresses: addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// EnsureCatalogIndex creates the product index when it does not exist yet.
func (c *ElasticsearchClient) EnsureCatalogIndex(ctx context.Context, index string) error {
	exists, err := c.Client.Indices.Exists([]string{index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := c.Client.Indices.Create(index,
		c.Client.Indices.Create.WithContext(ctx),
		c.Client.Indices.Create.WithBody(strings.NewReader(catalogMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
