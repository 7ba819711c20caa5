package filestore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Luismorlan/postmux/utils"
	"github.com/pkg/errors"
)

const (
	TmpFileDirPrefix = "_tmp_file_store_"
)

// LocalFileStore keeps uploads in a local media folder, used in development
// and tests where S3 isn't available.
type LocalFileStore struct {
	bucket     string
	folderName string
}

func NewLocalFileStore(bucket string) (*LocalFileStore, error) {
	folderName, err := CreateFolder(bucket)
	if err != nil {
		return nil, err
	}

	return &LocalFileStore{
		bucket:     bucket,
		folderName: folderName,
	}, nil
}

func CreateFolder(bucket string) (string, error) {
	folderName := TmpFileDirPrefix + bucket
	err := os.MkdirAll(folderName, os.ModePerm)
	if err != nil && strings.Contains(err.Error(), "file exists") {
		return folderName, nil
	}
	return folderName, err
}

func DeleteFolder(folderName string) error {
	return os.RemoveAll(folderName)
}

func (s *LocalFileStore) Store(fileName string, data []byte) (key string, err error) {
	key = utils.BytesToMd5Hash(data)
	if len(key) == 0 {
		return "", errors.New("generate empty file key, invalid")
	}
	key = key + utils.GetFileExtNameWithDot(fileName)

	if err := os.WriteFile(filepath.Join(s.folderName, key), data, 0644); err != nil {
		return "", errors.Wrap(err, "fail to write file "+key)
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return filepath.Join(s.folderName, key)
}

func (s *LocalFileStore) CleanUp() {
	DeleteFolder(s.folderName)
}
