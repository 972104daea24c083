package dto

import "strings"

const StorageKeySeparator = ":"

const DefaultStoragePrefix = "rawg"

// KeyMapper resolves logical cache keys into storage keys by prepending the
// configured prefix, so several services can share one store.
type KeyMapper struct {
	prefix string
}

func NewKeyMapper(prefix string) *KeyMapper {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultStoragePrefix
	}
	return &KeyMapper{prefix: prefix}
}

func (m *KeyMapper) Prefix() string {
	return m.prefix
}

// ToStorageKey maps "detail:42" to "rawg:detail:42".
func (m *KeyMapper) ToStorageKey(key string) string {
	return m.prefix + StorageKeySeparator + key
}

// FromStorageKey strips the prefix; ok is false for foreign keys.
func (m *KeyMapper) FromStorageKey(storageKey string) (key string, ok bool) {
	return strings.CutPrefix(storageKey, m.prefix+StorageKeySeparator)
}
