package router

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
)

// IntParam declares a path variable called name matching one or more ASCII digits.
func IntParam(name string) string { return "{" + name + ":[0-9]+}" }

// IntVar reads the path variable called name as a non-negative integer of any size.
//
// Leading zeros are dropped, so "007" is 7.
func IntVar(r *http.Request, name string) (*big.Int, error) {
	val, ok := mux.Vars(r)[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s not set", ErrNotValid, name)
	}

	n, ok := new(big.Int).SetString(val, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is %q", ErrNotValid, name, val)
	}

	return n, nil
}
