package model

// QueryKind selects how the engine filters records.
type QueryKind int

const (
	// QueryListAll returns every valid record
	QueryListAll QueryKind = iota
	// QueryByName returns records whose name contains the term
	QueryByName
	// QueryByProducer returns records whose canonical producer equals the term's
	QueryByProducer
)

// String returns the query kind name used in logs and the HTTP API
func (k QueryKind) String() string {
	switch k {
	case QueryListAll:
		return "all"
	case QueryByName:
		return "name"
	case QueryByProducer:
		return "producer"
	default:
		return "unknown"
	}
}

// ParseQueryKind maps an API/CLI kind name back to a QueryKind.
func ParseQueryKind(s string) (QueryKind, bool) {
	switch s {
	case "", "all":
		return QueryListAll, true
	case "name":
		return QueryByName, true
	case "producer":
		return QueryByProducer, true
	default:
		return QueryListAll, false
	}
}

// Query is a resolved user request: a kind plus its raw parameter.
// Term is ignored for QueryListAll.
type Query struct {
	Kind QueryKind
	Term string
}

// ListAll builds a full listing query.
func ListAll() Query {
	return Query{Kind: QueryListAll}
}

// ByName builds a name substring query.
func ByName(term string) Query {
	return Query{Kind: QueryByName, Term: term}
}

// ByProducer builds a producer query.
func ByProducer(name string) Query {
	return Query{Kind: QueryByProducer, Term: name}
}
