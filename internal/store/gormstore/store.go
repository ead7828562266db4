package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobsheet-service/internal/store"
)

var _ store.Store = (*Store)(nil)

type record struct {
	Collection string    `gorm:"primaryKey;type:varchar(64)"`
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	Seq        int64     `gorm:"not null"`
	Data       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (record) TableName() string {
	return "documents"
}

// Store keeps every collection in the single documents table. Equality
// filters are evaluated on the decoded data so the same code runs on
// postgres and sqlite.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var lastSeq atomic.Int64

// nextSeq is strictly increasing within the process and roughly follows
// wall time across restarts.
func nextSeq() int64 {
	for {
		prev := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastSeq.CompareAndSwap(prev, next) {
			return next
		}
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Doc, error) {
	var rec record
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return toDoc(rec)
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]store.Doc, error) {
	return s.Query(ctx, collection, nil)
}

func (s *Store) Query(ctx context.Context, collection string, where store.Data) ([]store.Doc, error) {
	var recs []record
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq ASC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	docs := make([]store.Doc, 0, len(recs))
	for _, rec := range recs {
		doc, err := toDoc(rec)
		if err != nil {
			return nil, err
		}
		if store.Matches(doc.Data, where) {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collection string, data store.Data) (string, error) {
	id := uuid.New().String()
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	rec := record{
		Collection: collection,
		ID:         id,
		Seq:        nextSeq(),
		Data:       string(raw),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data store.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	rec := record{
		Collection: collection,
		ID:         id,
		Seq:        nextSeq(),
		Data:       string(raw),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *Store) Update(ctx context.Context, collection, id string, partial store.Data) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec record
		err := tx.Where("collection = ? AND id = ?", collection, id).First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		doc, err := toDoc(rec)
		if err != nil {
			return err
		}
		for field, value := range partial {
			doc.Data[field] = value
		}
		raw, err := json.Marshal(doc.Data)
		if err != nil {
			return err
		}

		return tx.Model(&record{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]interface{}{
				"data":       string(raw),
				"updated_at": time.Now(),
			}).Error
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&record{}).Error
}

// maxTxAttempts bounds the retries of a transaction that lost a
// serialization race.
const maxTxAttempts = 5

// RunTransaction runs fn at serializable isolation on postgres, so two
// transactions reading the same counter cannot both commit a successor;
// the loser is retried from the start. fn must be safe to run again.
// sqlite serialises writers with its database lock.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	var opts []*sql.TxOptions
	if s.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, &Store{db: tx})
		}, opts...)
		if !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// retryable reports serialization failures and deadlocks.
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func toDoc(rec record) (*store.Doc, error) {
	data := store.Data{}
	if err := json.Unmarshal([]byte(rec.Data), &data); err != nil {
		return nil, err
	}
	return &store.Doc{ID: rec.ID, Data: data}, nil
}
