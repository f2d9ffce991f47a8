package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/timeutil"
)

// maxListSize caps a single List call. Collections here are brochure-site
// content, well below this in practice.
const maxListSize = 1000

// queryRejectionMarkers are the Elasticsearch error types that mean the
// query shape itself was refused, as opposed to a transport or server fault.
var queryRejectionMarkers = []string{
	"search_phase_execution_exception",
	"query_shard_exception",
	"parsing_exception",
	"illegal_argument_exception",
}

// ElasticStore implements Store on top of Elasticsearch indices.
type ElasticStore struct {
	client *es.Client
	log    logger.Logger
}

func NewElasticStore(client *es.Client, log logger.Logger) *ElasticStore {
	return &ElasticStore{
		client: client,
		log:    log,
	}
}

// Ping verifies the backend is reachable. Used by readiness checks.
func (s *ElasticStore) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ping returned error [%s]", res.Status())
	}
	return nil
}

func (s *ElasticStore) List(ctx context.Context, collection string, opts ListOptions) ([]Document, error) {
	body, err := json.Marshal(buildSearchBody(opts))
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(collection),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		// A collection that was never written to has no index yet.
		if res.StatusCode == http.StatusNotFound && strings.Contains(string(raw), "index_not_found_exception") {
			return []Document{}, nil
		}
		if rejection := classifyQueryRejection(res.StatusCode, raw); rejection != nil {
			s.log.Debug("Store rejected query",
				logger.String("collection", collection),
				logger.String("reason", rejection.Reason))
			return nil, rejection
		}
		return nil, fmt.Errorf("search %s returned error [%s]: %s", collection, res.Status(), string(raw))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]Document, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, Document{
			ID:     hit.ID,
			Fields: timeutil.NormalizeFields(hit.Source),
		})
	}
	return docs, nil
}

func (s *ElasticStore) Get(ctx context.Context, collection, id string) (Document, error) {
	res, err := s.client.Get(collection, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
	}
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return Document{}, fmt.Errorf("get %s/%s returned error [%s]: %s", collection, id, res.Status(), string(raw))
	}

	var parsed getResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return Document{}, fmt.Errorf("decode get response: %w", err)
	}

	return Document{
		ID:     parsed.ID,
		Fields: timeutil.NormalizeFields(parsed.Source),
	}, nil
}

func (s *ElasticStore) Add(ctx context.Context, collection string, fields map[string]any) (Document, error) {
	id := uuid.New().String()

	body, err := json.Marshal(fields)
	if err != nil {
		return Document{}, fmt.Errorf("marshal document: %w", err)
	}

	res, err := s.client.Index(
		collection,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return Document{}, fmt.Errorf("index %s: %w", collection, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return Document{}, fmt.Errorf("index %s returned error [%s]: %s", collection, res.Status(), string(raw))
	}

	return Document{ID: id, Fields: fields}, nil
}

func (s *ElasticStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	body, err := json.Marshal(map[string]any{"doc": fields})
	if err != nil {
		return fmt.Errorf("marshal update body: %w", err)
	}

	res, err := s.client.Update(
		collection,
		id,
		bytes.NewReader(body),
		s.client.Update.WithContext(ctx),
		s.client.Update.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
	}
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("update %s/%s returned error [%s]: %s", collection, id, res.Status(), string(raw))
	}

	return nil
}

func (s *ElasticStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.client.Delete(
		collection,
		id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("delete %s/%s: %w", collection, id, ErrNotFound)
	}
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete %s/%s returned error [%s]: %s", collection, id, res.Status(), string(raw))
	}

	return nil
}

// buildSearchBody translates ListOptions into an Elasticsearch search body.
func buildSearchBody(opts ListOptions) map[string]any {
	body := map[string]any{
		"size": maxListSize,
	}

	if len(opts.WhereEquals) > 0 {
		terms := make([]map[string]any, 0, len(opts.WhereEquals))
		for _, cond := range opts.WhereEquals {
			terms = append(terms, map[string]any{
				"term": map[string]any{cond.Field: cond.Value},
			})
		}
		body["query"] = map[string]any{
			"bool": map[string]any{"filter": terms},
		}
	} else {
		body["query"] = map[string]any{"match_all": map[string]any{}}
	}

	if opts.OrderBy != "" {
		body["sort"] = []map[string]any{
			{
				opts.OrderBy: map[string]any{
					"order":         "asc",
					"missing":       0,
					"unmapped_type": "long",
				},
			},
		}
	}

	return body
}

// classifyQueryRejection returns a QueryRejectedError when the response body
// names one of the error types that mean the query shape was refused.
func classifyQueryRejection(status int, body []byte) *QueryRejectedError {
	if status != http.StatusBadRequest {
		return nil
	}
	text := string(body)
	for _, marker := range queryRejectionMarkers {
		if strings.Contains(text, marker) {
			return &QueryRejectedError{Reason: marker}
		}
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type getResponse struct {
	ID     string         `json:"_id"`
	Source map[string]any `json:"_source"`
}
