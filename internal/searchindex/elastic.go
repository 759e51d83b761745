package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/jarrod-lowe/search-sync/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "search-sync-index"

// ResponseError is returned when Elasticsearch answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("elasticsearch returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("elasticsearch returned status %d: %s: %s", e.StatusCode, e.Type, e.Reason)
}

// ElasticClient implements Indexer using the Elasticsearch document APIs.
type ElasticClient struct {
	client esapi.Transport
}

// NewElasticClient creates an ElasticClient authenticated with a Cloud ID and
// API key. transport may be nil to use the client's default. Failed calls
// are not retried.
func NewElasticClient(cfg config.Config, transport http.RoundTripper) (*ElasticClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		CloudID:      cfg.CloudID,
		APIKey:       cfg.APIKey,
		Transport:    transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ElasticClient{client: es}, nil
}

// Upsert creates or replaces the document stored under id.
func (c *ElasticClient) Upsert(ctx context.Context, index, id string, document map[string]any) error {
	ctx, span := startSpan(ctx, "searchindex.Upsert", index, id)
	defer span.End()

	body, err := json.Marshal(document)
	if err != nil {
		err = fmt.Errorf("encode document %s: %w", id, err)
		recordError(span, err)
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}.Do(ctx, c.client)
	if err := checkResponse(res, err); err != nil {
		err = fmt.Errorf("index document %s: %w", id, err)
		recordError(span, err)
		return err
	}
	return nil
}

// Delete removes the document stored under id. Elasticsearch answers 404
// when the document does not exist, which is reported as a ResponseError.
func (c *ElasticClient) Delete(ctx context.Context, index, id string) error {
	ctx, span := startSpan(ctx, "searchindex.Delete", index, id)
	defer span.End()

	res, err := esapi.DeleteRequest{
		Index:      index,
		DocumentID: id,
	}.Do(ctx, c.client)
	if err := checkResponse(res, err); err != nil {
		err = fmt.Errorf("delete document %s: %w", id, err)
		recordError(span, err)
		return err
	}
	return nil
}

func startSpan(ctx context.Context, name, index, id string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(
			attribute.String("index", index),
			attribute.String("document_id", id),
		))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// checkResponse turns a transport failure or error status into an error and
// drains the response body.
func checkResponse(res *esapi.Response, err error) error {
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if !res.IsError() {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	respErr := &ResponseError{StatusCode: res.StatusCode}
	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
		Result string `json:"result"`
	}
	if json.NewDecoder(res.Body).Decode(&payload) == nil {
		respErr.Type = payload.Error.Type
		respErr.Reason = payload.Error.Reason
		if respErr.Type == "" && payload.Result == "not_found" {
			respErr.Type = payload.Result
			respErr.Reason = "document not found"
		}
	}
	return respErr
}

// Factory builds an Indexer for the given configuration.
type Factory func(cfg config.Config) (Indexer, error)

// NewElasticFactory returns a Factory producing ElasticClients that share
// transport.
func NewElasticFactory(transport http.RoundTripper) Factory {
	return func(cfg config.Config) (Indexer, error) {
		return NewElasticClient(cfg, transport)
	}
}
