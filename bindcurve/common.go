package bindcurve

import (
	"errors"
	"os"
	"path"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"gopkg.in/yaml.v3"
)

// NewFSStorage returns a Storage keeping each curve set in a yaml file under
// root.
func NewFSStorage(root string, storage stg.FileStorage) *FSStorage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &FSStorage{
		root:    root,
		storage: storage,
	}
}

type FSStorage struct {
	root    string
	storage stg.FileStorage
}

func (s *FSStorage) fileNameByKey(key string) string {
	return path.Join(s.root, key)
}

func (s *FSStorage) Save(key string, curves []*Curve) (err error) {
	if s.root != "" {
		_ = os.MkdirAll(s.root, 0700)
	}

	d, err := yaml.Marshal(curves)
	if err != nil {
		return
	}

	err = s.storage.WriteFile(s.fileNameByKey(key), d)

	return
}

func (s *FSStorage) Load(key string) (curves []*Curve, err error) {
	d, err := s.storage.ReadFile(s.fileNameByKey(key))
	if err != nil {
		var pathError *os.PathError

		if errors.As(err, &pathError) {
			err = commerr.ErrNotFound
		}

		return
	}

	err = yaml.Unmarshal(d, &curves)

	return
}
