// Package mdpages turns markdown documents into standalone themed HTML pages.
//
// # Quick Start
//
// Describe a pipeline, create a generator, and run it:
//
//	gen, err := mdpages.NewGenerator(mdpages.WithStdout(os.Stdout))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	report, err := gen.Run(ctx, mdpages.Pipeline{
//	    Name:      "cards",
//	    Converter: mdpages.ConverterCards,
//	    Template:  mdpages.TemplateCards,
//	    DocsDir:   "docs",
//	    OutputDir: "public",
//	    Pages: []mdpages.Page{
//	        {Source: "SUMMARY.md", Output: "summary.html", Title: "Platform Summary"},
//	    },
//	})
//
// # Pipelines
//
// A pipeline is a table of page descriptors plus the converter and template
// that turn each source into a page:
//
//  1. The source is read from DocsDir. Missing sources are skipped with a
//     warning (optional pages are skipped silently).
//  2. A leading YAML front matter block, if any, is stripped and overrides
//     the page's title, hero title and subtitle.
//  3. The converter produces an HTML fragment: "pandoc" runs the external
//     pandoc binary, "cards" uses the built-in line classifier, "goldmark"
//     converts in-process.
//  4. The fragment and display text are substituted into the template
//     ("print" or "cards") and written to OutputDir.
//  5. With WithPDF, the page is also rendered to PDF in headless Chrome.
//
// Conversion failures skip the page and the run continues; write failures
// abort the run. The returned Report lists the outcome of every page.
//
// # Output
//
// Progress lines go to the writer set with WithStdout. Diagnostic logging
// goes to the zap logger set with WithLogger.
package mdpages
