// Package types defines the primitive value kinds instances and entities are
// built from, and the pure size/alignment arithmetic the layout engine
// depends on. These rules are shared by ordinary entities and meta-entities
// (entities describing entities), so they must stay pure: no allocation, no
// dependence on any particular instance.
package types

import "fmt"

// Kind is the closed enumeration of primitive value kinds, per spec.md §3.
type Kind int

const (
	// Blob is an opaque fixed-size byte run.
	Blob Kind = iota
	// Bool is a boolean value.
	Bool
	// Int is a signed integer of declared size.
	Int
	// Uint is an unsigned integer of declared size.
	Uint
	// Float is a floating point value of declared size.
	Float
	// String is an inline fixed-size char buffer of declared size.
	String
	// StringPtr is an owned, NUL-terminated heap string; the element itself
	// is a pointer.
	StringPtr
)

// pointerSize is the width of a stringPtr element: on any real platform this
// is the machine word size, but dlite-go's in-memory layout always treats it
// as 8 bytes so that serialized layouts are architecture independent.
const pointerSize = 8

func (k Kind) String() string {
	switch k {
	case Blob:
		return "blob"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	case StringPtr:
		return "stringPtr"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a type name, as it appears in an entity file, to a Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "blob":
		return Blob, true
	case "bool", "boolean":
		return Bool, true
	case "int", "int8", "int16", "int32", "int64":
		return Int, true
	case "uint", "uint8", "uint16", "uint32", "uint64":
		return Uint, true
	case "float", "float32", "float64", "double":
		return Float, true
	case "string":
		return String, true
	case "stringPtr", "string_ptr":
		return StringPtr, true
	default:
		return 0, false
	}
}

// Size returns the in-memory byte size of a single element of kind k, given
// its declared size. Blob and String use the declared size as is; StringPtr
// is always pointerSize; Bool, Int, Uint and Float use the declared size when
// it is positive and their default width otherwise.
func Size(k Kind, declaredSize int) int {
	switch k {
	case Blob, String:
		return declaredSize
	case StringPtr:
		return pointerSize
	default:
		if declaredSize > 0 {
			return declaredSize
		}
		return defaultSize(k)
	}
}

func defaultSize(k Kind) int {
	switch k {
	case Bool:
		return 1
	case Int, Uint:
		return 8
	case Float:
		return 8
	default:
		return 0
	}
}

// Alignment returns the byte alignment required of kind k, given its
// declared size. Dimensional properties are always stored as a void*
// regardless of element kind (spec.md §4.D), so callers computing layout
// for a dimensional property must use Alignment(StringPtr, 0) instead of
// the element kind's own alignment.
func Alignment(k Kind, declaredSize int) int {
	size := Size(k, declaredSize)
	switch k {
	case Blob, String:
		// Fixed-size inline buffers align to the largest power-of-two
		// divisor of their size, capped at the pointer width.
		a := 1
		for a < pointerSize && size%((a)*2) == 0 && size > 0 {
			a *= 2
		}
		if size == 0 {
			a = 1
		}
		return a
	default:
		if size == 0 {
			return 1
		}
		if size > pointerSize {
			return pointerSize
		}
		return size
	}
}

// OffsetOfNext computes the byte offset of the next field, given the byte
// offset and size of the previous field and the kind/size of the next one:
// it advances past the previous field then rounds up to the next field's
// alignment.
func OffsetOfNext(prevOffset, prevSize int, nextKind Kind, nextDeclaredSize int) int {
	next := prevOffset + prevSize
	align := Alignment(nextKind, nextDeclaredSize)
	if align <= 1 {
		return next
	}
	rem := next % align
	if rem == 0 {
		return next
	}
	return next + (align - rem)
}

// PadToAlignment rounds size up to a multiple of align, used to trail-pad an
// instance block to its entity's maximum observed member alignment.
func PadToAlignment(size, align int) int {
	if align <= 1 {
		return size
	}
	rem := size % align
	if rem == 0 {
		return size
	}
	return size + (align - rem)
}
