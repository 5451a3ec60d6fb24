// Package ostatki answers warehouse stock questions from a spreadsheet.
//
// A stock table is a grid of text cells whose first row is a header. The
// package locates the columns it needs by their header labels, filters the
// data rows by a query, turns the surviving rows into records and renders
// them as chat messages that fit a transport limit.
//
// # Features
//
//   - Header-driven column lookup, tolerant to case, spacing and Unicode form
//   - Canonical producer names, so variant spellings select the same items
//   - Listing, name search and producer search
//   - Output split into chunks that never cut a record line
//   - CSV, TSV, LTSV, Parquet and Excel (XLSX) files, optionally compressed
//     with gzip, bzip2, xz or zstandard
//   - SQLite and PostgreSQL tables as alternative sources
//
// # Basic Usage
//
//	inv, err := ostatki.Open(ctx, "stock.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunks, err := inv.Ask(ctx, model.ByProducer("карелия"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, chunk := range chunks {
//	    send(chunk)
//	}
//
// # Advanced Usage
//
// The engine can also be driven directly with a table obtained elsewhere:
//
//	engine, err := ostatki.NewEngine(ostatki.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	outcome := engine.Execute(model.ByName("плита"), table)
//	chunks := ostatki.Render(outcome, opts.Header(outcome.Query), opts)
//
// # Column Labels
//
// Header cells are compared after Unicode NFC normalization, trimming and
// lower-casing. Name, quantity, material and dimension columns match their
// labels exactly; the producer column is the first header containing any
// producer keyword. When several headers match, the leftmost one wins.
//
// # Data Freshness
//
// Every query fetches the table again. Nothing is cached between calls.
package ostatki
