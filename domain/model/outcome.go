package model

// OutcomeKind classifies the result of executing a query.
type OutcomeKind int

const (
	// OutcomeResults means the query ran; Records may be empty
	OutcomeResults OutcomeKind = iota
	// OutcomeNoData means the table had fewer than two rows
	OutcomeNoData
	// OutcomeMissingColumns means a required column could not be resolved
	OutcomeMissingColumns
)

// String returns the outcome name used in logs
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResults:
		return "results"
	case OutcomeNoData:
		return "no_data"
	case OutcomeMissingColumns:
		return "missing_columns"
	default:
		return "unknown"
	}
}

// Outcome is the terminal, non-error result of a query.
type Outcome struct {
	Kind  OutcomeKind
	Query Query
	// Records holds matches in input row order (OutcomeResults only).
	Records []Record
	// Missing lists the unresolved required fields (OutcomeMissingColumns only).
	Missing []Field
	// Skipped counts candidate rows dropped because they could not be projected.
	Skipped int
}

// IsEmpty reports whether the query ran and matched nothing.
func (o Outcome) IsEmpty() bool {
	return o.Kind == OutcomeResults && len(o.Records) == 0
}

// NoData builds an OutcomeNoData for q.
func NoData(q Query) Outcome {
	return Outcome{Kind: OutcomeNoData, Query: q}
}

// MissingColumns builds an OutcomeMissingColumns for q.
func MissingColumns(q Query, missing ...Field) Outcome {
	return Outcome{Kind: OutcomeMissingColumns, Query: q, Missing: missing}
}

// Results builds an OutcomeResults for q.
func Results(q Query, records []Record, skipped int) Outcome {
	return Outcome{Kind: OutcomeResults, Query: q, Records: records, Skipped: skipped}
}
