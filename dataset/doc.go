// Package dataset holds the tabular data model for extracted audio features:
// keyed records of scalar or fixed-length vector columns, assembled into an
// immutable Table that the similarity engine queries.
//
// A Table is built once, either directly from records or by loading the
// analysis documents an audio feature extractor wrote (see Loader), and is
// read-only afterwards. Row insertion order is preserved and is the tie-break
// order for similarity rankings.
package dataset
