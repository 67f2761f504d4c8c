// Package catalog stores the fixed product attributes a label render joins
// against. The store is a collaborator of the rendering core, not part of
// it: rendering only ever calls Get.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/label"
)

// Store is the product catalog contract.
type Store interface {
	Get(id string) (label.CatalogEntry, error)
	Put(e label.CatalogEntry) error
	Delete(id string) error
	List() ([]label.CatalogEntry, error)
}

// FileStore keeps the catalog in a single JSON file. Writes are atomic:
// the new content lands in a temp file in the same directory, is fsynced,
// and replaces the catalog by rename, with the previous file kept as
// <path>.bak. A missing file is an empty catalog.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore opens a file-backed catalog at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(id string) (label.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return label.CatalogEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return label.CatalogEntry{}, errors.New(errors.ErrCodeProductNotFound,
		"product %q is not in the catalog", id)
}

func (s *FileStore) Put(e label.CatalogEntry) error {
	if e.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "catalog entry has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return s.save(entries)
}

func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return errors.New(errors.ErrCodeProductNotFound,
			"product %q is not in the catalog", id)
	}
	return s.save(kept)
}

func (s *FileStore) List() ([]label.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads and sorts the catalog. Callers hold the mutex.
func (s *FileStore) load() ([]label.CatalogEntry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogIO, err, "reading catalog %s", s.path)
	}

	var entries []label.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalogIO, err, "parsing catalog %s", s.path)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// save writes the catalog atomically. Callers hold the mutex.
func (s *FileStore) save(entries []label.CatalogEntry) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "encoding catalog")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "creating temp catalog in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "writing temp catalog")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "syncing temp catalog")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "closing temp catalog")
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.path+".bak"); err != nil {
			return errors.Wrap(errors.ErrCodeCatalogIO, err, "keeping catalog backup")
		}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeCatalogIO, err, "replacing catalog %s", s.path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
