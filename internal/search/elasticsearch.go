package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ClientsIndex is the index holding client documents
const ClientsIndex = "clients"

// ErrDisabled is returned when search is not configured
var ErrDisabled = errors.New("search is disabled")

// ElasticClient provides integration with Elasticsearch
type ElasticClient struct {
	client  *elasticsearch.Client
	config  config.ElasticConfig
	enabled bool
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticConfig) (*ElasticClient, error) {
	if !cfg.Enabled {
		return &ElasticClient{config: cfg}, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{
		client:  client,
		config:  cfg,
		enabled: true,
	}, nil
}

// Enabled reports whether requests reach a cluster
func (c *ElasticClient) Enabled() bool {
	return c != nil && c.enabled
}

// ClientDocument builds the indexed representation of a client
func ClientDocument(client *models.Client) map[string]interface{} {
	return map[string]interface{}{
		"id":           client.ID,
		"clientNumber": client.ClientNumber,
		"fullName":     client.FullName(),
		"phone":        client.Phone,
		"secondPhone":  client.SecondPhone,
		"email":        client.Email,
		"branch":       client.Branch,
		"clientType":   client.ClientType,
		"createdAt":    client.CreatedAt,
	}
}

// IndexClient indexes a client in Elasticsearch
func (c *ElasticClient) IndexClient(ctx context.Context, client *models.Client) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	docJSON, err := json.Marshal(ClientDocument(client))
	if err != nil {
		return errors.Wrap(err, "failed to marshal client document")
	}

	req := esapi.IndexRequest{
		Index:      config.FormatIndex(c.config, ClientsIndex),
		DocumentID: client.ID,
		Body:       bytes.NewReader(docJSON),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch index request")
	}
	defer res.Body.Close()

	if err := responseError(res, "index"); err != nil {
		return err
	}

	log.Debug().Str("client_id", client.ID).Msg("client indexed")
	return nil
}

// DeleteClient removes a client document. A missing document is not an error.
func (c *ElasticClient) DeleteClient(ctx context.Context, id string) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	req := esapi.DeleteRequest{
		Index:      config.FormatIndex(c.config, ClientsIndex),
		DocumentID: id,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch delete request")
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil
	}
	return responseError(res, "delete")
}

// SearchClients returns ids of clients matching term on name, phone, email or number
func (c *ElasticClient) SearchClients(ctx context.Context, term string, limit int) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = 20
	}

	query := map[string]interface{}{
		"size":    limit,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  term,
				"type":   "bool_prefix",
				"fields": []string{"fullName", "phone", "secondPhone", "email", "clientNumber"},
			},
		},
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	req := esapi.SearchRequest{
		Index: []string{config.FormatIndex(c.config, ClientsIndex)},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute Elasticsearch search request")
	}
	defer res.Body.Close()

	if err := responseError(res, "search"); err != nil {
		return nil, err
	}

	return decodeIDs(res.Body)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				ID string `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeIDs(body io.Reader) ([]string, error) {
	var result searchResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to parse Elasticsearch search response")
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		if hit.Source.ID != "" {
			ids = append(ids, hit.Source.ID)
		}
	}
	return ids, nil
}

func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	var e map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		return errors.Wrapf(err, "failed to parse Elasticsearch %s error response", op)
	}
	return errors.Errorf("Elasticsearch %s error: %v", op, e)
}
