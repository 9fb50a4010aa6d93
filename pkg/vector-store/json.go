package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

type JSONMemoryFile struct {
	Vectors []StoredVector `json:"vectors"`
}

// JSONMemory keeps every record in memory and rewrites the whole file on
// each Put. A Put drops every record sharing its id or its name.
type JSONMemory struct {
	file    string
	vectors []StoredVector
	mutex   sync.Mutex
	logger  *slog.Logger
}

func NewJSONMemoryAndClear(path string) (*JSONMemory, error) {
	err := os.WriteFile(path, []byte(`{"vectors": []}`), 0644)
	if err != nil {
		return nil, err
	}
	return &JSONMemory{file: path, logger: slog.Default().With("area", "JSONMemory")}, nil
}

// NewJSONMemory loads path when it exists and starts empty otherwise.
func NewJSONMemory(path string) (*JSONMemory, error) {
	j := &JSONMemory{file: path, logger: slog.Default().With("area", "JSONMemory")}
	err := j.refresh()
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (j *JSONMemory) Put(vec StoredVector) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	kept := j.vectors[:0]
	for _, s := range j.vectors {
		if s.Id != vec.Id && s.Name != vec.Name {
			kept = append(kept, s)
		}
	}
	j.vectors = append(kept, vec)
	return j.flush()
}

// flush expects the mutex held.
func (j *JSONMemory) flush() error {
	bytes, err := json.Marshal(JSONMemoryFile{Vectors: j.vectors})
	if err != nil {
		return err
	}

	err = os.WriteFile(j.file, bytes, 0644)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", j.file, err)
	}
	return nil
}

// Run reloads the file every second so writes from other processes show up.
func (j *JSONMemory) Run(ctx context.Context) {
	timer := time.NewTicker(time.Second)
	defer timer.Stop()
outer:
	for {
		select {
		case <-timer.C:
			if err := j.refresh(); err != nil {
				j.logger.Error("unable to refresh json file", "error", err)
			}

		case <-ctx.Done():
			break outer
		}
	}
}

func (j *JSONMemory) refresh() error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	contents, err := os.ReadFile(j.file)
	if err != nil {
		return err
	}

	var data JSONMemoryFile
	err = json.Unmarshal(contents, &data)
	if err != nil {
		return fmt.Errorf("unable to decode json file: %w", err)
	}

	j.vectors = data.Vectors
	return nil
}

func (j *JSONMemory) Iter() func(yield func(i int, s StoredVector) bool) {
	return func(yield func(i int, s StoredVector) bool) {
		j.mutex.Lock()
		defer j.mutex.Unlock()
		for i, s := range j.vectors {
			if !yield(i, s) {
				return
			}
		}
	}
}

func (j *JSONMemory) GetAll() ([]StoredVector, error) {
	out := []StoredVector{}
	for _, s := range j.Iter() {
		out = append(out, s)
	}
	return out, nil
}

func (j *JSONMemory) Count() int {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return len(j.vectors)
}

func (j *JSONMemory) GetById(id string) *StoredVector {
	for _, s := range j.Iter() {
		if s.Id == id {
			return &s
		}
	}
	return nil
}

func (j *JSONMemory) GetByName(name string) *StoredVector {
	for _, s := range j.Iter() {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
