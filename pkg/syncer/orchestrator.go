// Package syncer drives a sync run: every configured source is fetched
// over a lookback window and each resulting document is offered to the
// durable store, with per-document failure isolation.
package syncer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/upsc-exam-ai/data-scraper/pkg/db"
	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
	"github.com/upsc-exam-ai/data-scraper/pkg/source"
)

// Ingestor is the write path into the durable store.
type Ingestor interface {
	Insert(ctx context.Context, doc *domain.Document) (db.IngestResult, error)
}

// VectorStore is the optional similarity-search side channel.
type VectorStore interface {
	CheckConnection(ctx context.Context) bool
	EnsureCollection(ctx context.Context) error
	UpsertArticle(ctx context.Context, id, text string, payload map[string]any) error
}

// Summary are the counts of one sync run. It is built up locally inside
// Run and returned by value, so an Orchestrator can be reused across
// runs without carrying state.
type Summary struct {
	Fetched    int
	Inserted   int
	Duplicates int
	Errors     int
}

// Orchestrator sequences sources through assembly and ingestion. The
// store connection is a single shared resource per run and is used
// strictly sequentially.
type Orchestrator struct {
	sources []source.Source
	store   Ingestor
	vectors VectorStore // nil disables vector storage
	log     zerolog.Logger
}

// New wires an orchestrator. vectors may be nil.
func New(store Ingestor, vectors VectorStore, sources ...source.Source) *Orchestrator {
	return &Orchestrator{
		sources: sources,
		store:   store,
		vectors: vectors,
		log:     log.With().Str("component", "syncer").Logger(),
	}
}

// Run syncs every source over the lookback window. Per-document
// failures anywhere in assembly or ingestion are logged, counted and
// skipped; the batch always runs to completion once started. The
// returned Summary reflects everything that happened, including on an
// early context cancellation.
func (o *Orchestrator) Run(ctx context.Context, daysBack int) (Summary, error) {
	var sum Summary
	if o.store == nil {
		return sum, fmt.Errorf("no article store configured")
	}

	vectorsUp := o.probeVectors(ctx)

	for _, src := range o.sources {
		o.log.Info().Str("source", src.Name()).Int("days", daysBack).Msg("syncing source")

		docs, err := src.FetchArticles(ctx, daysBack)
		if err != nil {
			o.log.Error().Err(err).Str("source", src.Name()).Msg("source fetch failed")
			sum.Errors++
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			continue
		}
		sum.Fetched += len(docs)

		for i := range docs {
			o.ingestOne(ctx, &docs[i], vectorsUp, &sum)
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
		}
	}

	o.log.Info().
		Int("fetched", sum.Fetched).
		Int("inserted", sum.Inserted).
		Int("duplicates", sum.Duplicates).
		Int("errors", sum.Errors).
		Msg("sync complete")
	return sum, nil
}

func (o *Orchestrator) ingestOne(ctx context.Context, doc *domain.Document, vectorsUp bool, sum *Summary) {
	res, err := o.store.Insert(ctx, doc)
	if err != nil {
		o.log.Error().Err(err).Str("url", doc.SourceURL).Msg("failed to store article")
		sum.Errors++
		return
	}
	if res == db.DuplicateSkipped {
		sum.Duplicates++
		return
	}
	sum.Inserted++

	if vectorsUp {
		o.upsertVector(ctx, doc)
	}
}

// upsertVector mirrors a freshly inserted article into the vector
// store. Failures are logged and swallowed: vector storage is an
// optional side channel and never fails a document.
func (o *Orchestrator) upsertVector(ctx context.Context, doc *domain.Document) {
	// Deterministic point id so a re-run upserts rather than duplicates.
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(doc.SourceURL)).String()
	payload := map[string]any{
		"source":         doc.Source,
		"title":          doc.Title,
		"url":            doc.SourceURL,
		"published_date": doc.PublishedDate.Format("2006-01-02"),
	}
	if err := o.vectors.UpsertArticle(ctx, id, doc.PlainText(), payload); err != nil {
		o.log.Warn().Err(err).Str("url", doc.SourceURL).Msg("vector upsert failed")
	}
}

// probeVectors checks the vector store and prepares its collection.
// An unreachable vector store downgrades the run to Postgres-only.
func (o *Orchestrator) probeVectors(ctx context.Context) bool {
	if o.vectors == nil {
		return false
	}
	if !o.vectors.CheckConnection(ctx) {
		o.log.Warn().Msg("vector store unavailable, skipping vector storage")
		return false
	}
	if err := o.vectors.EnsureCollection(ctx); err != nil {
		o.log.Warn().Err(err).Msg("vector collection setup failed, skipping vector storage")
		return false
	}
	return true
}

// CheckSources probes each source with a one-day window and reports
// per-source results. Used by the check command.
func (o *Orchestrator) CheckSources(ctx context.Context) map[string]error {
	results := make(map[string]error, len(o.sources))
	for _, src := range o.sources {
		_, err := src.FetchArticles(ctx, 1)
		results[src.Name()] = err
		if err != nil {
			o.log.Error().Err(err).Str("source", src.Name()).Msg("source check failed")
		} else {
			o.log.Info().Str("source", src.Name()).Msg("source check ok")
		}
	}
	return results
}
