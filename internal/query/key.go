package query

import (
	"encoding/json"
	"slices"
)

const (
	recipeScope = "recipe"
	listScope   = "list"
)

// Key identifies a cached read. Two keys are equal when their parts are
// equal and in the same order.
type Key []string

// NewKey builds a key from parts.
func NewKey(parts ...string) Key {
	return Key(slices.Clone(parts))
}

// RecipeKey is the key of the summary for url.
func RecipeKey(url string) Key { return Key{recipeScope, url} }

// ListKey is the key of the listing served at path.
func ListKey(path string) Key { return Key{listScope, path} }

// RecipesPrefix matches every summary key.
func RecipesPrefix() Key { return Key{recipeScope} }

// ListsPrefix matches every listing key.
func ListsPrefix() Key { return Key{listScope} }

// Equal reports whether k and other have the same parts.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k, other)
}

// HasPrefix reports whether the leading parts of k equal prefix. The empty
// prefix matches every key.
func (k Key) HasPrefix(prefix Key) bool {
	return len(prefix) <= len(k) && slices.Equal(k[:len(prefix)], prefix)
}

// String returns a canonical encoding of the key. Parts containing
// separators cannot collide because each part is JSON quoted.
func (k Key) String() string {
	if k == nil {
		k = Key{}
	}
	b, _ := json.Marshal([]string(k))
	return string(b)
}
