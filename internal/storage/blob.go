package storage

import "io"

// BlobStore holds question images. File storage is an external collaborator
// to the quiz engine; only this interface is visible to it.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
