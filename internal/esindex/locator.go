package esindex

import "strings"

// Scheme marks an input or output location that lives in Elasticsearch rather
// than on the distributed filesystem.
const Scheme = "es://"

// Locator names an Elasticsearch index and, optionally, a document type within
// it.
type Locator struct {
	// Index is the name of the index. It is empty only for malformed locations
	// such as "es://".
	Index string

	// Type is the document type. Empty when the location names only an index.
	Type string
}

// IsIndexURI reports whether loc uses the Elasticsearch scheme.
func IsIndexURI(loc string) bool {
	return strings.HasPrefix(loc, Scheme)
}

// ParseLocator parses "es://index[/type]". Anything after the first slash
// following the index is taken as the type, verbatim.
//
// Parsing is permissive: a location without an index yields a Locator with an
// empty Index instead of an error.
func ParseLocator(loc string) Locator {
	rest := strings.TrimPrefix(loc, Scheme)
	index, typ, _ := strings.Cut(rest, "/")
	return Locator{Index: index, Type: typ}
}

// String formats l back into its "es://" form.
func (l Locator) String() string {
	if l.Type == "" {
		return Scheme + l.Index
	}
	return Scheme + l.Index + "/" + l.Type
}
