package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	quickmath "linearmath.dev/pkg/quick-math"
	"linearmath.dev/pkg/utils"
)

// StoredVector is a serialized Vector2 record. Data holds the record binary
// at Width bits, padding slots included.
type StoredVector struct {
	Id        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Width     int    `db:"width" json:"width"`
	Data      []byte `db:"data" json:"data"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

func NewStoredVector(name string, v quickmath.Vector2, width int) (StoredVector, error) {
	data, err := quickmath.EncodeVector2(v, width)
	if err != nil {
		return StoredVector{}, fmt.Errorf("unable to encode %s: %w", name, err)
	}

	return StoredVector{
		Id:        uuid.NewString(),
		Name:      name,
		Width:     width,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(utils.DateTimeFormatForSQLite),
	}, nil
}

func (s *StoredVector) Vector2() (quickmath.Vector2, error) {
	return quickmath.DecodeVector2(s.Data, s.Width)
}

func (s *StoredVector) String() string {
	v, err := s.Vector2()
	if err != nil {
		return fmt.Sprintf("StoredVector(%s): Name=%s Width=%d corrupt=%s", s.Id, s.Name, s.Width, err)
	}
	return fmt.Sprintf("StoredVector(%s): Name=%s Width=%d %s", s.Id, s.Name, s.Width, v)
}

// Store persists StoredVectors. Names are unique: a Put with a known name
// replaces the old record.
type Store interface {
	Put(vec StoredVector) error
	GetById(id string) *StoredVector
	GetByName(name string) *StoredVector
	GetAll() ([]StoredVector, error)
	Count() int
	Run(ctx context.Context)
}

var _ Store = (*Sqlite)(nil)
var _ Store = (*JSONMemory)(nil)
