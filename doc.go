// Package audiosim ranks audio files by feature similarity.
//
// It consumes a table of per-file feature records (the structured output of
// an external audio feature extractor) and answers "which N files sound most
// like this one?" using a per-column weighted Euclidean distance.
//
// # Quick start
//
// Build a table from analysis documents and query it:
//
//	store := blobstore.NewLocalStore("./analysis")
//	table, err := dataset.NewLoader(store).Load(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng, err := audiosim.New(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matches, err := eng.Similar("kick_01.wav").
//	    N(5).
//	    Weight("stats_spectral_centroid_mean", 2.0).
//	    Weight("stats_bpm", 0.5).
//	    Execute()
//
// Each Match carries the candidate's key and its distance to the query
// record, ascending; the query record itself is never included.
//
// # Weighting
//
// Every column defaults to weight 1.0. Explicit weights scale individual
// columns; a zero weight excludes a column. Under exclusive weighting
// (Exclusive), only explicitly weighted columns participate:
//
//	matches, err := eng.Similar("kick_01.wav").
//	    Weights(map[string]float64{"stats_bpm": 1}).
//	    Exclusive().
//	    Execute()
//
// Weight validation fails fast: negative weights and weights naming columns
// absent from the table's schema are configuration errors, not silent no-ops.
//
// # Determinism
//
// Rankings are pure functions of the table, query key, family, n, and
// weights. Ties are broken by table insertion order (stable sort), so
// identical inputs always produce byte-identical output.
package audiosim
