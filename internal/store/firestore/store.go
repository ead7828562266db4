package firestore

import (
	"context"
	"errors"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"jobsheet-service/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store maps collections one-to-one onto Firestore collections.
type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client), nil
}

func NewWithClient(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Doc, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return toDoc(snap), nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]store.Doc, error) {
	return collect(s.client.Collection(collection).Documents(ctx))
}

func (s *Store) Query(ctx context.Context, collection string, where store.Data) ([]store.Doc, error) {
	return collect(buildQuery(s.client, collection, where).Documents(ctx))
}

func (s *Store) Add(ctx context.Context, collection string, data store.Data) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]interface{}(data))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data store.Data) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]interface{}(data))
	return err
}

func (s *Store) Update(ctx context.Context, collection, id string, partial store.Data) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, toUpdates(partial))
	return mapError(err)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, &transaction{client: s.client, t: t})
	})
	return mapError(err)
}

// transaction adapts firestore.Transaction; Firestore rejects reads issued
// after the first write.
type transaction struct {
	client *firestore.Client
	t      *firestore.Transaction
}

func (tx *transaction) Get(_ context.Context, collection, id string) (*store.Doc, error) {
	snap, err := tx.t.Get(tx.client.Collection(collection).Doc(id))
	if err != nil {
		return nil, mapError(err)
	}
	return toDoc(snap), nil
}

func (tx *transaction) GetAll(_ context.Context, collection string) ([]store.Doc, error) {
	return collect(tx.t.Documents(tx.client.Collection(collection)))
}

func (tx *transaction) Query(_ context.Context, collection string, where store.Data) ([]store.Doc, error) {
	return collect(tx.t.Documents(buildQuery(tx.client, collection, where)))
}

func (tx *transaction) Add(_ context.Context, collection string, data store.Data) (string, error) {
	ref := tx.client.Collection(collection).NewDoc()
	if err := tx.t.Create(ref, map[string]interface{}(data)); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (tx *transaction) Set(_ context.Context, collection, id string, data store.Data) error {
	return tx.t.Set(tx.client.Collection(collection).Doc(id), map[string]interface{}(data))
}

func (tx *transaction) Update(_ context.Context, collection, id string, partial store.Data) error {
	return tx.t.Update(tx.client.Collection(collection).Doc(id), toUpdates(partial))
}

func (tx *transaction) Delete(_ context.Context, collection, id string) error {
	return tx.t.Delete(tx.client.Collection(collection).Doc(id))
}

func buildQuery(client *firestore.Client, collection string, where store.Data) firestore.Query {
	q := client.Collection(collection).Query
	for field, value := range where {
		q = q.Where(field, "==", store.Normalize(value))
	}
	return q
}

func toUpdates(partial store.Data) []firestore.Update {
	updates := make([]firestore.Update, 0, len(partial))
	for field, value := range partial {
		updates = append(updates, firestore.Update{FieldPath: []string{field}, Value: value})
	}
	return updates
}

// collect drains iter and orders the snapshots by creation time, then id.
func collect(iter *firestore.DocumentIterator) ([]store.Doc, error) {
	defer iter.Stop()

	var snaps []*firestore.DocumentSnapshot
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if !snaps[i].CreateTime.Equal(snaps[j].CreateTime) {
			return snaps[i].CreateTime.Before(snaps[j].CreateTime)
		}
		return snaps[i].Ref.ID < snaps[j].Ref.ID
	})

	docs := make([]store.Doc, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, *toDoc(snap))
	}
	return docs, nil
}

func toDoc(snap *firestore.DocumentSnapshot) *store.Doc {
	return &store.Doc{ID: snap.Ref.ID, Data: store.Data(snap.Data())}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}
