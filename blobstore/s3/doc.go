// Package s3 provides a blobstore.BlobStore backed by Amazon S3, for
// datasets whose analysis documents live in a bucket rather than on local
// disk.
package s3
