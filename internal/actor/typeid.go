package actor

import (
	"fmt"
	"reflect"
)

// TypeID is an opaque, comparable token that identifies a Go type without
// runtime type switches or a central registry. Two TypeID values compare
// equal if and only if they were minted by the same instantiation of
// typeIDOf.
//
// Every generic instantiation of typeIDOf[T] compiles to its own
// package-level function; reflect.ValueOf(fn).Pointer() gives the entry
// address of that function, which is stable for the life of the process.
// That address is the per-instantiation identity, the Go analogue of the
// C++ "address of a function template instantiation" trick this runtime
// is modeled on. It is not portable across plugin/shared-object
// boundaries, same as the original.
type TypeID struct {
	addr uintptr
	name string
}

func (t TypeID) String() string {
	return t.name
}

func typeIDOf[T any]() TypeID {
	return TypeID{
		addr: reflect.ValueOf(typeIDOf[T]).Pointer(),
		name: fmt.Sprintf("%T", *new(T)),
	}
}
