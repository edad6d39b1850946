// Package blobstore abstracts where datasets live: a directory of analysis
// documents on local disk, an in-memory map for tests, or an object store
// (S3, MinIO) holding the same files.
//
// The dataset loader only needs List + Open; Put exists so table snapshots
// can be written back through the same abstraction.
//
// Implement the BlobStore interface to support custom storage backends.
package blobstore
