package archival

// Kind enumerates the closed set of primitive kinds a Backend handles
// directly through Get/Set.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindFloat32
	KindFloat64
	KindString

	// Extended math kinds. Backends without a dedicated representation
	// return false and the dispatcher falls back to components.
	KindIntVector2
	KindIntVector3
	KindVector2
	KindVector3
	KindVector4
	KindQuaternion
	KindColor
	KindMatrix3
	KindMatrix3x4
	KindMatrix4
)

// Null is the primitive standing for an explicit null. Get reports whether the
// stored value is null; Set stores null.
type Null struct{}

// KindOf classifies v, which must be a pointer to a primitive to qualify.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Null:
		return KindNull
	case *bool:
		return KindBool
	case *int8:
		return KindInt8
	case *int16:
		return KindInt16
	case *int32:
		return KindInt32
	case *int64:
		return KindInt64
	case *int:
		return KindInt
	case *uint8:
		return KindUint8
	case *uint16:
		return KindUint16
	case *uint32:
		return KindUint32
	case *uint64:
		return KindUint64
	case *uint:
		return KindUint
	case *float32:
		return KindFloat32
	case *float64:
		return KindFloat64
	case *string:
		return KindString
	case *IntVector2:
		return KindIntVector2
	case *IntVector3:
		return KindIntVector3
	case *Vector2:
		return KindVector2
	case *Vector3:
		return KindVector3
	case *Vector4:
		return KindVector4
	case *Quaternion:
		return KindQuaternion
	case *Color:
		return KindColor
	case *Matrix3:
		return KindMatrix3
	case *Matrix3x4:
		return KindMatrix3x4
	case *Matrix4:
		return KindMatrix4
	}
	return KindInvalid
}

// IsExtended reports whether k is one of the math kinds.
func (k Kind) IsExtended() bool { return k >= KindIntVector2 }

// IsBasic reports whether k is a scalar kind every backend must support.
func (k Kind) IsBasic() bool { return k > KindInvalid && k < KindIntVector2 }

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindNull:       "null",
	KindBool:       "bool",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindInt:        "int",
	KindUint8:      "uint8",
	KindUint16:     "uint16",
	KindUint32:     "uint32",
	KindUint64:     "uint64",
	KindUint:       "uint",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindString:     "string",
	KindIntVector2: "IntVector2",
	KindIntVector3: "IntVector3",
	KindVector2:    "Vector2",
	KindVector3:    "Vector3",
	KindVector4:    "Vector4",
	KindQuaternion: "Quaternion",
	KindColor:      "Color",
	KindMatrix3:    "Matrix3",
	KindMatrix3x4:  "Matrix3x4",
	KindMatrix4:    "Matrix4",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}
