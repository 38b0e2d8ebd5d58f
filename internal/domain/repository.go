package domain

import (
	"context"
	"time"
)

// TransactionManager runs a function inside a single storage transaction.
// Every write issued through the transaction-scoped context lands atomically
// or not at all; this is the coordinator's atomic batch primitive.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentRepository defines persistence for the document → quiz → option tree.
type DocumentRepository interface {
	// SaveDocumentTree writes the document, all its quizzes and all their
	// options. Inside a transaction the writes stage into that transaction.
	SaveDocumentTree(ctx context.Context, doc *Document) error

	// GetDocumentByID retrieves a document record (summary included, tree
	// not hydrated). Returns nil when absent.
	GetDocumentByID(ctx context.Context, courseID, documentID string) (*Document, error)

	// GetQuizzesByDocument retrieves the quizzes of a document with their
	// options, ordered by display order.
	GetQuizzesByDocument(ctx context.Context, documentID string) ([]*Quiz, error)
}

// CourseRepository defines persistence for courses and their counters.
type CourseRepository interface {
	SaveCourse(ctx context.Context, course *Course) error
	GetCourseByID(ctx context.Context, id string) (*Course, error)

	// IncrementDocumentStats bumps the course's document counter by one and
	// stamps the last update time. Issued inside the same transaction as the
	// document tree write.
	IncrementDocumentStats(ctx context.Context, courseID string, at time.Time) error
}

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for caching operations.
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item to the cache, overwriting an existing item if one
	// exists. A zero expiration caches indefinitely.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item from the cache.
	// It should not return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
