package storage

// Store — абстрактное key-value хранилище записей трекера.
// Мобильный клиент хранит те же ключи в локальном AsyncStorage,
// поэтому схема ключей должна совпадать бит-в-бит.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	MultiGet(keys []string) (map[string]string, error)
	MultiRemove(keys []string) error
	ListAllKeys() ([]string, error)
	Close() error
}
