// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/booklet/internal/booklet"
	"github.com/pdiddy/booklet/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the session catalog (store, search, export)",
	Long: `Catalog keeps the normalized booklet sessions in a local SQLite database
so they can be searched and exported without rebuilding the booklet.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Record the sessions from the submissions table in the catalog",
	Long: `Store reads the submissions table the same way build does and records
every session in catalog/booklet.db. Unchanged sessions are left alone and
sessions no longer in the table are removed.`,
	Args: cobra.NoArgs,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	sessions, err := booklet.Sessions(cfg.Build.InputPath)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Store(cmd.Context(), sessions, os.Stdout)
	return err
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored sessions by title, author or abstract",
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Search(cmd.Context(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(os.Stdout, entries, jsonOutput)
}

func formatSearchOutput(w io.Writer, entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []catalog.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-40s  %s\n", "Pos", "Title", "Authors")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		authors := strings.ReplaceAll(e.AuthorBlock, "\n", "; ")
		fmt.Fprintf(w, "%-4d  %-40s  %s\n", e.Position+1, truncate(e.Title, 40), truncate(authors, 44))
	}
	fmt.Fprintf(w, "\n%d results\n", len(entries))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the stored sessions (or those matching --query) to
export.yaml or export.json in the catalog directory.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	return catalog.QueryOptions{Query: queryText, MaxResults: limit}
}

func init() {
	stringFlag(catalogCmd.PersistentFlags(), "dir", "catalog.dir", "catalog directory")
	intFlag(catalogCmd.PersistentFlags(), "max-results", "catalog.max_results", "default maximum number of search results")

	stringFlag(catalogStoreCmd.Flags(), "input", "input", "submissions CSV file")

	catalogSearchCmd.Flags().String("query", "", "text matched against title, authors and abstract")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "text filter for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum sessions to export (0 = all)")

	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
