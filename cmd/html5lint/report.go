package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/explore"
	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/store"
)

var (
	reportStore  string
	reportFormat string
	reportColor  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a stored lint result",
	Long:  "Read the documents and messages of a result store and render them like 'lint' does",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStore, "output", explore.DefaultStoreName, "Result store: a SQLite file, a directory or a postgres:// URL")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, text, json, sarif")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	storePath := reportStore
	if storePath == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}

	if !store.IsPostgresURL(storePath) {
		info, err := os.Stat(storePath)
		if err != nil {
			return fmt.Errorf("result store not found: %s", storePath)
		}
		if info.IsDir() {
			storePath = filepath.Join(storePath, explore.DefaultStoreName)
		}
	}

	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	defer s.Close()

	results, err := loadResults(s)
	if err != nil {
		return err
	}

	checks, err := rule.NewLoader().LoadBuiltinChecks()
	if err != nil {
		return fmt.Errorf("loading checks: %w", err)
	}
	return writeResults(cmd.OutOrStdout(), reportFormat, reportColor, results, checks)
}

// loadResults returns one result per location of every stored document.
// Documents without a recorded location are reported under their blob id.
func loadResults(s store.Store) ([]documentResult, error) {
	docs, err := s.GetDocuments()
	if err != nil {
		return nil, fmt.Errorf("retrieving documents: %w", err)
	}

	var results []documentResult
	for _, doc := range docs {
		messages, err := s.GetMessages(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("retrieving messages: %w", err)
		}
		provs, err := s.GetProvenance(doc.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("retrieving provenance: %w", err)
		}

		if len(provs) == 0 {
			results = append(results, documentResult{Path: doc.ID.Hex(), BlobID: doc.ID, Messages: messages})
			continue
		}
		for _, prov := range provs {
			results = append(results, documentResult{Path: prov.Path(), BlobID: doc.ID, Messages: messages})
		}
	}
	sortResults(results)
	return results, nil
}
