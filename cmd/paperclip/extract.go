package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Detect title, authors, and abstract for an article page",
	Long: `Extract reads an article page, looks for a DOI or PMID, queries Crossref and
PubMed, and scrapes the page for any field still missing.

By default the page is fetched over HTTP and parsed as static HTML. Use
--browser to load it in a headless Chrome (or the one at browser.remote_url)
so that script-rendered pages are seen as a reader sees them, or
--html-file to read a saved page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("browser", false, "render the page in Chrome before extracting")
	extractCmd.Flags().String("html-file", "", "read the page from a saved HTML file ('-' for stdin)")
	extractCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	useBrowser, _ := cmd.Flags().GetBool("browser")
	htmlFile, _ := cmd.Flags().GetString("html-file")
	format, _ := cmd.Flags().GetString("format")

	var pageURL string
	if len(args) == 1 {
		pageURL = args[0]
	}
	if pageURL == "" && htmlFile == "" {
		return fmt.Errorf("provide a page URL or --html-file")
	}

	ctx := cmd.Context()
	client := newHTTPClient(appConfig)

	acc, closeFn, err := openPage(ctx, pageURL, htmlFile, useBrowser)
	if err != nil {
		return err
	}
	defer closeFn()

	p := newPipeline(appConfig, client, nil)
	res, runErr := p.Run(ctx, acc)

	if err := writeResult(cmd.OutOrStdout(), res, format); err != nil {
		return err
	}
	return runErr
}

// openPage returns the accessor for the requested page source and a
// function releasing it.
func openPage(ctx context.Context, pageURL, htmlFile string, useBrowser bool) (page.Accessor, func(), error) {
	noop := func() {}
	switch {
	case htmlFile != "":
		var r io.Reader = os.Stdin
		if htmlFile != "-" {
			f, err := os.Open(htmlFile)
			if err != nil {
				return nil, noop, fmt.Errorf("opening %s: %w", htmlFile, err)
			}
			defer f.Close()
			r = f
		}
		doc, err := page.FromHTML(r, pageURL)
		return doc, noop, err
	case useBrowser:
		tab, err := page.OpenTab(ctx, appConfig.Browser, pageURL)
		if err != nil {
			return nil, noop, err
		}
		return tab, func() { _ = tab.Close() }, nil
	default:
		doc, err := page.Fetch(ctx, newHTTPClient(appConfig), pageURL, appConfig.HTTP.UserAgent)
		return doc, noop, err
	}
}

func writeResult(w io.Writer, res pipeline.Result, format string) error {
	// Encode a missing author list as [] rather than null, matching the HTTP API.
	if res.Record.Authors == nil {
		res.Record.Authors = []string{}
	}
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		fmt.Fprintln(w, res.Status)
		if res.Identifiers.DOI != "" {
			fmt.Fprintf(w, "DOI:      %s\n", res.Identifiers.DOI)
		}
		if res.Identifiers.PMID != "" {
			fmt.Fprintf(w, "PMID:     %s\n", res.Identifiers.PMID)
		}
		fmt.Fprintf(w, "Title:    %s\n", res.Record.Title)
		fmt.Fprintf(w, "Authors:  %s\n", res.Record.AuthorsDisplay())
		fmt.Fprintf(w, "Abstract: %s\n", res.Record.Abstract)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, yaml, or json)", format)
	}
}
