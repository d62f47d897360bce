package models

// MaxSelection is the number of devices that can be compared side by side.
const MaxSelection = 4

// QuerySpec is the active filter and page state of a browse session.
// The zero value (with Page 0 treated as 1) is the empty spec and matches
// every device.
type QuerySpec struct {
	SearchTerm       string
	Brands           []string
	OperatingSystems []string
	MinPrice         *float64
	MaxPrice         *float64
	MinRAM           *float64
	Page             int
}

// Reset returns the empty spec positioned on the first page.
func (q QuerySpec) Reset() QuerySpec {
	return QuerySpec{Page: 1}
}

// IsEmpty reports whether no filter is active. Page is not a filter.
func (q QuerySpec) IsEmpty() bool {
	return q.SearchTerm == "" &&
		len(q.Brands) == 0 &&
		len(q.OperatingSystems) == 0 &&
		q.MinPrice == nil &&
		q.MaxPrice == nil &&
		q.MinRAM == nil
}

// Bound is a helper for building optional numeric fields.
func Bound(v float64) *float64 {
	return &v
}

// SelectionSet is an ordered list of distinct device ids chosen for
// comparison. It never holds more than MaxSelection ids.
type SelectionSet []int

// Contains reports whether id is selected.
func (s SelectionSet) Contains(id int) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
