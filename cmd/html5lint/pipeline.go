package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/praetorian-inc/html5lint"
	"github.com/praetorian-inc/html5lint/pkg/enum"
	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// pipeline lints every document an enumerator yields and records it in
// the store. Enumerators may call handle concurrently.
type pipeline struct {
	linter *html5lint.Linter
	store  store.Store
	force  bool
	logger *slog.Logger

	mu      sync.Mutex
	results []documentResult
	linted  map[types.BlobID][]types.Message
	skipped int
}

func newPipeline(l *html5lint.Linter, s store.Store, force bool) *pipeline {
	return &pipeline{
		linter: l,
		store:  s,
		force:  force,
		logger: logger,
		linted: make(map[types.BlobID][]types.Message),
	}
}

// run enumerates e to the end and returns the results ordered by path.
func (p *pipeline) run(ctx context.Context, e enum.Enumerator) ([]documentResult, error) {
	if err := e.Enumerate(ctx, p.handle); err != nil {
		return nil, err
	}
	sortResults(p.results)
	return p.results, nil
}

func (p *pipeline) handle(content []byte, id types.BlobID, prov types.Provenance) error {
	messages, err := p.messages(content, id, prov)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.AddProvenance(id, prov); err != nil {
		return fmt.Errorf("storing provenance: %w", err)
	}
	p.results = append(p.results, documentResult{
		Path:     prov.Path(),
		BlobID:   id,
		Messages: messages,
	})
	return nil
}

// messages returns the messages of a document, linting it unless it was
// already linted in this run or, without --force, in an earlier one.
func (p *pipeline) messages(content []byte, id types.BlobID, prov types.Provenance) ([]types.Message, error) {
	p.mu.Lock()
	if msgs, ok := p.linted[id]; ok {
		p.mu.Unlock()
		return msgs, nil
	}
	if !p.force {
		exists, err := p.store.DocumentExists(id)
		if err != nil {
			p.mu.Unlock()
			return nil, fmt.Errorf("checking document: %w", err)
		}
		if exists {
			msgs, err := p.store.GetMessages(id)
			if err == nil {
				p.linted[id] = msgs
				p.skipped++
			}
			p.mu.Unlock()
			if err != nil {
				return nil, fmt.Errorf("loading stored messages: %w", err)
			}
			p.logger.Debug("document already linted", "path", prov.Path(), "blob", id.Short())
			return msgs, nil
		}
	}
	p.mu.Unlock()

	msgs := p.linter.LintBytes(content)
	p.logger.Debug("linted document", "path", prov.Path(), "blob", id.Short(), "messages", len(msgs))

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.AddDocument(id, int64(len(content))); err != nil {
		return nil, fmt.Errorf("storing document: %w", err)
	}
	if err := p.store.AddMessages(id, msgs); err != nil {
		return nil, fmt.Errorf("storing messages: %w", err)
	}
	p.linted[id] = msgs
	return msgs, nil
}
