// Package main implements the search-sync Lambda, which mirrors MongoDB
// change stream events delivered by EventBridge into an Elasticsearch index.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jarrod-lowe/jmap-service-libs/awsinit"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
	"github.com/jarrod-lowe/search-sync/internal/changeevent"
	"github.com/jarrod-lowe/search-sync/internal/config"
	"github.com/jarrod-lowe/search-sync/internal/searchindex"
	"github.com/jarrod-lowe/search-sync/internal/syncresult"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var logger = logging.New()

// handler implements the change event to search index sync.
type handler struct {
	cfg        config.Config
	newIndexer searchindex.Factory
}

// newHandler creates a new handler.
func newHandler(cfg config.Config, newIndexer searchindex.Factory) *handler {
	return &handler{
		cfg:        cfg,
		newIndexer: newIndexer,
	}
}

// handle processes one EventBridge change event. It never returns an error;
// callers inspect the status code of the response.
func (h *handler) handle(ctx context.Context, envelope events.CloudWatchEvent) (events.APIGatewayProxyResponse, error) {
	tracer := tracing.Tracer("search-sync")
	ctx, span := tracer.Start(ctx, "SearchSyncHandler")
	defer span.End()

	result := h.sync(ctx, envelope)
	span.SetAttributes(attribute.Int("status_code", result.StatusCode))
	return result.Response(), nil
}

// sync validates config, decodes the event and applies it to the index.
func (h *handler) sync(ctx context.Context, envelope events.CloudWatchEvent) syncresult.Descriptor {
	if err := h.cfg.Validate(); err != nil {
		logger.WarnContext(ctx, "Search index configuration incomplete",
			slog.String("error", err.Error()),
		)
		return syncresult.MissingConfig()
	}

	event, err := changeevent.Parse(envelope.Detail)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse change event",
			slog.String("event_id", envelope.ID),
			slog.String("error", err.Error()),
		)
		return syncresult.Failed()
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("operation_type", string(event.OperationType)),
		attribute.String("document_id", event.DocumentKey.ID),
		attribute.String("collection", event.Namespace.DB+"."+event.Namespace.Collection),
	)

	indexer, err := h.newIndexer(h.cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create search index client",
			slog.String("error", err.Error()),
		)
		return syncresult.Failed()
	}

	action, err := dispatch(ctx, indexer, h.cfg.Index, event)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update search index",
			slog.String("action", string(action)),
			slog.String("document_id", event.DocumentKey.ID),
			slog.String("error", err.Error()),
		)
		return syncresult.Failed()
	}

	logger.InfoContext(ctx, "Search index updated",
		slog.String("action", string(action)),
		slog.String("operation_type", string(event.OperationType)),
		slog.String("document_id", event.DocumentKey.ID),
		slog.String("index", h.cfg.Index),
	)
	return syncresult.Modified()
}

// dispatch performs the single index call for an event. Deletes remove the
// document; every other operation type, including unrecognised ones, is an
// upsert of the full document, which must be present.
func dispatch(ctx context.Context, indexer searchindex.Indexer, index string, event changeevent.Event) (searchindex.Action, error) {
	id := event.DocumentKey.ID

	if event.IsDelete() {
		if err := indexer.Delete(ctx, index, id); err != nil {
			return searchindex.ActionDelete, fmt.Errorf("delete: %w", err)
		}
		return searchindex.ActionDelete, nil
	}

	// Atlas omits fullDocument on updates when full document lookup is off.
	// Upserting nothing would wipe the indexed copy.
	if event.FullDocument == nil {
		return searchindex.ActionIndex, changeevent.ErrMissingFullDocument
	}

	doc := changeevent.SanitizedDocument(event.FullDocument)
	if err := indexer.Upsert(ctx, index, id, doc); err != nil {
		return searchindex.ActionIndex, fmt.Errorf("upsert: %w", err)
	}
	return searchindex.ActionIndex, nil
}

func main() {
	ctx := context.Background()

	result, err := awsinit.Init(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize", slog.String("error", err.Error()))
		panic(err)
	}

	// Missing settings are reported per invocation rather than at cold start.
	cfg := config.FromEnv(os.Getenv)

	transport := otelhttp.NewTransport(http.DefaultTransport)
	h := newHandler(cfg, searchindex.NewElasticFactory(transport))

	result.Start(h.handle)
}
