// Package variant implements a tagged-union runtime value over a closed set
// of kinds, with explicit ownership rules for string payloads.
package variant

import "strings"

// Kind identifies the payload currently held by a Variant.
type Kind uint8

const (
	// KindVoid is the cleared state; the zero Variant is void.
	KindVoid Kind = iota
	// KindPointer holds an opaque pointer-sized address.
	KindPointer
	// KindBool holds a boolean.
	KindBool
	// KindInt32 holds a signed 32-bit integer.
	KindInt32
	// KindUint32 holds an unsigned 32-bit integer.
	KindUint32
	// KindFloat holds a float32.
	KindFloat
	// KindVec2 holds a 2-vector of float32.
	KindVec2
	// KindVec3 holds a 3-vector of float32.
	KindVec3
	// KindString holds either an owned copy or a borrowed reference.
	KindString
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindPointer:
		return "pointer"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Variant is a value that can change its kind at runtime.
//
// String handling is noteworthy: SetString stores an owned, independent copy,
// while SetStringRef stores a reference to caller-owned storage that the
// variant never copies or releases. Exactly one of the two is populated at a
// time. Copy variants with CopyFrom rather than assignment when the payload
// may be an owned string.
type Variant struct {
	kind     Kind
	vec      [3]float32
	i        int32
	u        uint32
	b        bool
	p        uintptr
	owned    string
	borrowed *string
}

// Kind returns the kind currently held.
func (v *Variant) Kind() Kind { return v.kind }

// Clear drops any owned payload and resets the variant to KindVoid. Borrowed
// strings are never touched.
func (v *Variant) Clear() {
	*v = Variant{}
}

func (v *Variant) check(k Kind) {
	if v.kind != k {
		panic("variant: " + k.String() + " accessor on " + v.kind.String() + " variant")
	}
}

// SetPointer stores an opaque address.
func (v *Variant) SetPointer(p uintptr) {
	v.Clear()
	v.kind = KindPointer
	v.p = p
}

// SetBool stores a boolean.
func (v *Variant) SetBool(b bool) {
	v.Clear()
	v.kind = KindBool
	v.b = b
}

// SetInt32 stores a signed 32-bit integer.
func (v *Variant) SetInt32(i int32) {
	v.Clear()
	v.kind = KindInt32
	v.i = i
}

// SetUint32 stores an unsigned 32-bit integer.
func (v *Variant) SetUint32(u uint32) {
	v.Clear()
	v.kind = KindUint32
	v.u = u
}

// SetFloat stores a float32.
func (v *Variant) SetFloat(f float32) {
	v.Clear()
	v.kind = KindFloat
	v.vec[0] = f
}

// SetVec2 stores a 2-vector.
func (v *Variant) SetVec2(val [2]float32) {
	v.Clear()
	v.kind = KindVec2
	v.vec[0], v.vec[1] = val[0], val[1]
}

// SetVec3 stores a 3-vector.
func (v *Variant) SetVec3(val [3]float32) {
	v.Clear()
	v.kind = KindVec3
	v.vec = val
}

// SetString stores an owned copy of s, independent of s and of any buffer s
// aliases.
func (v *Variant) SetString(s string) {
	v.Clear()
	v.kind = KindString
	v.owned = strings.Clone(s)
}

// SetStringRef stores a reference to *p without copying. The caller
// guarantees *p outlives the variant's use of it.
func (v *Variant) SetStringRef(p *string) {
	v.Clear()
	v.kind = KindString
	v.borrowed = p
}

// CopyFrom replaces v's payload with a copy of other's. Owned strings are
// deep-copied into a new buffer; every other payload is copied shallowly.
// v and other must not be the same variant.
func (v *Variant) CopyFrom(other *Variant) {
	if v == other {
		panic("variant: CopyFrom with aliased source and destination")
	}
	v.Clear()
	*v = *other
	if other.kind == KindString && other.borrowed == nil {
		v.owned = strings.Clone(other.owned)
	}
}

// Pointer returns the opaque address. Panics unless the kind is KindPointer.
func (v *Variant) Pointer() uintptr {
	v.check(KindPointer)
	return v.p
}

// Bool returns the boolean. Panics unless the kind is KindBool.
func (v *Variant) Bool() bool {
	v.check(KindBool)
	return v.b
}

// Int32 returns the signed integer. Panics unless the kind is KindInt32.
func (v *Variant) Int32() int32 {
	v.check(KindInt32)
	return v.i
}

// Uint32 returns the unsigned integer. Panics unless the kind is KindUint32.
func (v *Variant) Uint32() uint32 {
	v.check(KindUint32)
	return v.u
}

// Float returns the float32. Panics unless the kind is KindFloat.
func (v *Variant) Float() float32 {
	v.check(KindFloat)
	return v.vec[0]
}

// Vec2 returns the 2-vector. Panics unless the kind is KindVec2.
func (v *Variant) Vec2() [2]float32 {
	v.check(KindVec2)
	return [2]float32{v.vec[0], v.vec[1]}
}

// Vec3 returns the 3-vector. Panics unless the kind is KindVec3.
func (v *Variant) Vec3() [3]float32 {
	v.check(KindVec3)
	return v.vec
}

// StringValue returns the string payload, borrowed or owned. Panics unless
// the kind is KindString.
func (v *Variant) StringValue() string {
	v.check(KindString)
	if v.borrowed != nil {
		return *v.borrowed
	}
	return v.owned
}

// Borrowed reports whether the variant holds a string payload that
// references external storage.
func (v *Variant) Borrowed() bool {
	return v.kind == KindString && v.borrowed != nil
}

// Pointer returns a KindPointer variant.
func Pointer(p uintptr) Variant {
	var v Variant
	v.SetPointer(p)
	return v
}

// Bool returns a KindBool variant.
func Bool(b bool) Variant {
	var v Variant
	v.SetBool(b)
	return v
}

// Int32 returns a KindInt32 variant.
func Int32(i int32) Variant {
	var v Variant
	v.SetInt32(i)
	return v
}

// Uint32 returns a KindUint32 variant.
func Uint32(u uint32) Variant {
	var v Variant
	v.SetUint32(u)
	return v
}

// Float returns a KindFloat variant.
func Float(f float32) Variant {
	var v Variant
	v.SetFloat(f)
	return v
}

// Vec2 returns a KindVec2 variant.
func Vec2(val [2]float32) Variant {
	var v Variant
	v.SetVec2(val)
	return v
}

// Vec3 returns a KindVec3 variant.
func Vec3(val [3]float32) Variant {
	var v Variant
	v.SetVec3(val)
	return v
}

// String returns a KindString variant holding an owned copy of s.
func String(s string) Variant {
	var v Variant
	v.SetString(s)
	return v
}

// StringRef returns a KindString variant borrowing *p.
func StringRef(p *string) Variant {
	var v Variant
	v.SetStringRef(p)
	return v
}
