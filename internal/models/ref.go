package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// Ref is a client-supplied book identifier. Clients may send either the
// numeric primary key or the stable external document id; every lookup goes
// through this one type instead of ad hoc string/number branching.
type Ref string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		*r = Ref(data[1 : len(data)-1])
		return nil
	}
	if _, err := strconv.ParseUint(string(data), 10, 64); err != nil {
		return fmt.Errorf("invalid book reference %s", data)
	}
	*r = Ref(data)
	return nil
}

// NumericID returns the reference as a numeric primary key, if it is one.
func (r Ref) NumericID() (uint, bool) {
	n, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool { return r == "" }

func (r Ref) String() string { return string(r) }

// OrderLine is one requested (book, quantity) pair of an order before the
// book has been resolved and priced.
type OrderLine struct {
	BookRef  Ref `json:"book_id"`
	Quantity int `json:"quantity"`
}
