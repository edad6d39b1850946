// Package metric provides the distance computation between feature records:
// a closed set of metric families behind a Comparator strategy, plus the
// column-weight resolution rules (defaulting and exclusive weighting).
package metric
