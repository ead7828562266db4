package repository

import (
	"jobsheet-service/internal/store"
)

// Field names used in equality queries.
const (
	fieldJobNumber  = "jobNumber"
	fieldJobSheetID = "jobSheetId"
	fieldStatus     = "status"
	fieldUpdatedAt  = "updatedAt"
)

// encode drops the id key, which lives in the document key instead.
func encode(v interface{}) (store.Data, error) {
	data, err := store.Encode(v)
	if err != nil {
		return nil, err
	}
	delete(data, "id")
	return data, nil
}

func decodeAll[T any](docs []store.Doc, setID func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := store.Decode(doc.Data, &item); err != nil {
			return nil, err
		}
		setID(&item, doc.ID)
		out = append(out, item)
	}
	return out, nil
}
