// Package pipeline orchestrates document ingestion: resolve, download,
// extract, persist.
package pipeline

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/config"
	"github.com/dgallion1/docslice/internal/extractor"
	"github.com/dgallion1/docslice/internal/section"
	"github.com/dgallion1/docslice/internal/store"
)

// DocumentStore is the metadata and section persistence the pipeline
// needs from Postgres.
type DocumentStore interface {
	GetDocument(ctx context.Context, id int64) (*store.Document, error)
	UpdateDocumentMetadata(ctx context.Context, id int64, meta store.DocumentMetadata) error
	InsertSections(ctx context.Context, rows []store.SectionRow) error
}

// BlobStore resolves caller identities and downloads stored objects.
type BlobStore interface {
	ResolveUser(ctx context.Context, authorization string) (string, error)
	Download(ctx context.Context, path, authorization string) ([]byte, error)
}

// Orchestrator runs the ingestion pipeline. Each invocation is a
// single sequential pass with no queue, no retries, and no shared
// state between invocations; concurrency comes from the HTTP server
// running handlers in parallel.
type Orchestrator struct {
	store DocumentStore
	blobs BlobStore
	runs  *RunStore
	stats *IngestStats
	log   *slog.Logger

	maxSectionLength int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(cfg config.Config, st DocumentStore, blobs BlobStore, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:            st,
		blobs:            blobs,
		runs:             NewRunStore(cfg.RunTTL),
		stats:            NewIngestStats(cfg.StatsWindow),
		log:              log,
		maxSectionLength: cfg.MaxSectionLength,
	}
}

// Start launches the run-store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	janitorCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-janitorCtx.Done():
				return
			case <-ticker.C:
				o.runs.Cleanup()
			}
		}
	}()
}

// Stop shuts the janitor down.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// GetRun returns a run by id.
func (o *Orchestrator) GetRun(id string) *Run {
	return o.runs.Get(id)
}

// StatsSnapshot returns the rolling ingestion stats.
func (o *Orchestrator) StatsSnapshot() StatsSnapshot {
	return o.stats.Snapshot()
}

// Process ingests one document: resolve the caller, look up the
// document, download its bytes, extract sections by detected format,
// then update metadata and insert the section rows. The metadata
// update is committed before the section insert; if the insert then
// fails, metadata stays updated with no section rows present. Callers
// re-running ingestion must delete prior sections first or the rows
// are appended a second time.
func (o *Orchestrator) Process(ctx context.Context, authorization string, documentID int64) error {
	start := time.Now()
	run := NewRun(documentID)
	o.runs.Put(run)
	log := o.log.With("run_id", run.ID, "document_id", documentID)

	fileType := ""
	fail := func(err error) error {
		run.Fail(err)
		o.stats.Record(time.Since(start).Milliseconds(), 0, 0, fileType, true)
		return err
	}

	user, err := o.blobs.ResolveUser(ctx, authorization)
	if err != nil {
		log.Error("authorization failed", "error", err)
		return fail(&AuthorizationError{Err: err})
	}
	run.SetState(StateValidated)

	doc, err := o.store.GetDocument(ctx, documentID)
	if err != nil {
		log.Error("document lookup failed", "error", err)
		return fail(&NotFoundError{DocumentID: documentID})
	}
	if doc == nil || doc.StoragePath == "" {
		log.Error("document has no storage path")
		return fail(&NotFoundError{DocumentID: documentID})
	}

	data, err := o.blobs.Download(ctx, doc.StoragePath, authorization)
	if err != nil {
		log.Error("download failed", "path", doc.StoragePath, "error", err)
		return fail(&DownloadError{Path: doc.StoragePath, Err: err})
	}
	run.SetState(StateDownloaded)

	format, detected := extractor.Detect(doc.Name)
	fileType = detected

	sections, err := extractor.For(format, o.maxSectionLength).Extract(data)
	if err != nil {
		log.Error("extraction failed", "file_type", fileType, "error", err)
		return fail(&ProcessError{DocumentID: documentID, FileType: extractor.Ext(doc.Name), Err: err})
	}
	run.SetState(StateExtracted)

	estTokens := 0
	for _, s := range sections {
		estTokens += chunker.EstimateTokens(s.Content)
	}

	meta := store.DocumentMetadata{
		FileType:      fileType,
		FileSize:      int64(len(data)),
		TotalSections: len(sections),
	}
	if format == extractor.FormatPDF {
		// Matches the recorded behavior: the page count column gets
		// the section count, which exceeds the page count whenever a
		// page was part-split.
		pages := len(sections)
		meta.TotalPages = &pages
	}
	if err := o.store.UpdateDocumentMetadata(ctx, documentID, meta); err != nil {
		// Persisting sections still proceeds; the metadata columns
		// just keep their previous values.
		log.Warn("metadata update failed", "error", err)
	}

	if err := o.store.InsertSections(ctx, sectionRows(documentID, sections)); err != nil {
		log.Error("section insert failed", "sections", len(sections), "error", err)
		return fail(&PersistenceError{Err: err})
	}
	run.SetState(StatePersisted)

	run.SetResult(user, fileType, int64(len(data)), len(sections), estTokens)
	run.SetState(StateDone)
	o.stats.Record(time.Since(start).Milliseconds(), len(sections), estTokens, fileType, false)
	log.Info("document processed",
		"file_type", fileType,
		"file_size", len(data),
		"sections", len(sections),
		"est_tokens", estTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// pageHeadingRe matches only whole headings of the form "Page N".
// Part-split PDF headings ("Page N - Part K") deliberately do not
// match, so those rows persist with no page number even though the
// extractor knew the page; the stored page number is derived from the
// heading text alone.
var pageHeadingRe = regexp.MustCompile(`^Page (\d+)$`)

func sectionRows(documentID int64, sections []section.Section) []store.SectionRow {
	rows := make([]store.SectionRow, 0, len(sections))
	for _, s := range sections {
		row := store.SectionRow{
			DocumentID: documentID,
			Content:    s.Content,
			Heading:    optionalString(s.Heading),
			PageNumber: pageNumberFromHeading(s.Heading),
		}
		if s.Part > 0 && s.Total > 0 {
			part, total := s.Part, s.Total
			row.Part = &part
			row.Total = &total
		}
		rows = append(rows, row)
	}
	return rows
}

func pageNumberFromHeading(heading string) *int {
	m := pageHeadingRe.FindStringSubmatch(heading)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
