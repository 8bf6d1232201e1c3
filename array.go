package byteparse

import (
	"fmt"
	"unsafe"
)

// DType describes the element type of a binary array.
type DType int

const (
	Int32 DType = iota
	Int64
	Uint32
	Uint64
	Float32
	Float64
)

// Size is the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Int32, Uint32, Float32:
		return 4
	default:
		return 8
	}
}

func (d DType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	default:
		return "float64"
	}
}

// Array reads count elements of d from the read head and yields them as a
// typed slice ([]float64, []int32, ...). The slice is a view over the
// underlying buffer in native byte order, not a copy: writing through it
// mutates the buffer, which is the intended affordance for
// read-modify-write workflows on mapped files. The read fails when fewer
// than count*d.Size() bytes remain or the data is misaligned for d.
func Array(d DType, count int) Parser {
	return func(c Cursor, aux Stack) (Step, error) {
		if count < 0 {
			return Step{}, failf(c, "negative element count %d", count)
		}
		// compare counts, not byte totals: count*Size can wrap around
		remaining := len(c.data) - c.end
		if count > remaining/d.Size() {
			return Step{}, failf(c, "need %d %s elements, have %d bytes",
				count, d, remaining)
		}
		n := count * d.Size()
		v, err := view(d, c.data[c.end:c.end+n], count)
		if err != nil {
			return Step{}, failf(c, "%v", err)
		}
		return Done(v, c.Advance(n), aux)
	}
}

// BinaryValue parses a single binary value of the given dtype.
func BinaryValue(d DType) Parser {
	return Array(d, 1).Then(func(x any) Parser {
		return Value(firstElement(x))
	})
}

func view(d DType, raw []byte, count int) (any, error) {
	if count == 0 {
		return emptySlice(d), nil
	}
	p := unsafe.Pointer(&raw[0])
	if uintptr(p)%uintptr(d.Size()) != 0 {
		return nil, fmt.Errorf("buffer misaligned for %s elements", d)
	}
	switch d {
	case Int32:
		return unsafe.Slice((*int32)(p), count), nil
	case Int64:
		return unsafe.Slice((*int64)(p), count), nil
	case Uint32:
		return unsafe.Slice((*uint32)(p), count), nil
	case Uint64:
		return unsafe.Slice((*uint64)(p), count), nil
	case Float32:
		return unsafe.Slice((*float32)(p), count), nil
	case Float64:
		return unsafe.Slice((*float64)(p), count), nil
	}
	return nil, fmt.Errorf("unknown dtype %d", int(d))
}

func emptySlice(d DType) any {
	switch d {
	case Int32:
		return []int32{}
	case Int64:
		return []int64{}
	case Uint32:
		return []uint32{}
	case Uint64:
		return []uint64{}
	case Float32:
		return []float32{}
	default:
		return []float64{}
	}
}

func firstElement(x any) any {
	switch v := x.(type) {
	case []int32:
		return v[0]
	case []int64:
		return v[0]
	case []uint32:
		return v[0]
	case []uint64:
		return v[0]
	case []float32:
		return v[0]
	case []float64:
		return v[0]
	}
	return x
}
