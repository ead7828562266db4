package store

import (
	"context"
	"errors"
)

// Collection names shared by every backend.
const (
	CollectionJobSheets       = "jobSheets"
	CollectionCompanyProfiles = "companyProfiles"
	CollectionDocuments       = "documents"
	CollectionParts           = "parts"
	CollectionQuotes          = "quotes"
	CollectionCounters        = "counters"
	CollectionUserProfiles    = "userProfiles"
)

var ErrNotFound = errors.New("document not found")

// Data is the field map of a stored document.
type Data map[string]interface{}

type Doc struct {
	ID   string
	Data Data
}

// Reader is the read half shared by Store and Tx.
type Reader interface {
	Get(ctx context.Context, collection, id string) (*Doc, error)
	GetAll(ctx context.Context, collection string) ([]Doc, error)
	Query(ctx context.Context, collection string, where Data) ([]Doc, error)
}

// Writer is the write half shared by Store and Tx.
type Writer interface {
	Add(ctx context.Context, collection string, data Data) (string, error)
	Set(ctx context.Context, collection, id string, data Data) error
	Update(ctx context.Context, collection, id string, partial Data) error
	Delete(ctx context.Context, collection, id string) error
}

// Tx is a unit of work committed atomically by RunTransaction. Backends
// may require all reads to happen before the first write.
type Tx interface {
	Reader
	Writer
}

// Store is the document database used by every repository. Query and
// GetAll return documents in load order: creation order, ties by id.
// A nil where matches every document.
type Store interface {
	Reader
	Writer
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
