package restaurant

import "strings"

// NameIndex maps a restaurant id to its lowercase name. It is built
// once per restaurant list so free-text search resolves names in
// constant time instead of scanning the list per offer.
type NameIndex map[int]string

func NewNameIndex(restaurants []Restaurant) NameIndex {
	index := make(NameIndex, len(restaurants))
	for _, r := range restaurants {
		index[r.ID.Int()] = strings.ToLower(r.Name)
	}

	return index
}

// Name returns "" for unknown ids, which never matches a non-empty
// search query.
func (i NameIndex) Name(id int) string {
	return i[id]
}
