package storage

import "context"

// Searcher runs free-text queries over title, source and url.
type Searcher interface {
	Search(ctx context.Context, query string, page, size int) (*Page, error)
}

// Index is a search index that can be both written and queried.
type Index interface {
	Indexer
	Searcher
}
