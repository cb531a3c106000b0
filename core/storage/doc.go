// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so item lists can be kept in an S3-compatible
// bucket instead of the local integration directory. Only the read side is
// exposed.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	obj, err := client.GetObject(ctx, "lists", "id/Go.txt", minio.GetObjectOptions{})
package storage
