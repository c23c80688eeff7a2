package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 20

// PageMaxSize is the maximum allowed page size
const PageMaxSize = 100

// MaxOffset bounds (page-1)*size. It matches the Elasticsearch default max_result_window.
const MaxOffset = 10000
