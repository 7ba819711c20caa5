package filestore

type FakeFileStore struct{}

func (*FakeFileStore) Store(fileName string, data []byte) (key string, err error) {
	return fileName, nil
}

func (*FakeFileStore) GetUrlFromKey(key string) string {
	return key
}

func (*FakeFileStore) CleanUp() {}
