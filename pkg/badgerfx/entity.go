package badgerfx

import "errors"

var ErrNotFound = errors.New("entity not found")

// Entity is a value stored by Repository.
type Entity interface {
	// StorageKey is the primary key of the entity.
	StorageKey() string
	// StorageIndexes are secondary keys pointing to the primary key.
	StorageIndexes() []string

	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
