// Package minio provides a blobstore.BlobStore for MinIO and other
// S3-compatible object stores, for self-hosted dataset storage.
package minio
