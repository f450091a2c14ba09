package archival

// IntVector2 is a 2D integer vector.
type IntVector2 struct{ X, Y int32 }

// IntVector3 is a 3D integer vector.
type IntVector3 struct{ X, Y, Z int32 }

// Vector2 is a 2D float vector.
type Vector2 struct{ X, Y float32 }

// Vector3 is a 3D float vector.
type Vector3 struct{ X, Y, Z float32 }

// Vector4 is a 4D float vector.
type Vector4 struct{ X, Y, Z, W float32 }

// Quaternion is a rotation stored as W, X, Y, Z.
type Quaternion struct{ W, X, Y, Z float32 }

// IdentityQuaternion has no rotation.
var IdentityQuaternion = Quaternion{W: 1}

// Color is an RGBA color with float channels.
type Color struct{ R, G, B, A float32 }

// Matrix3 is a row-major 3x3 matrix.
type Matrix3 [9]float32

// Matrix3x4 is a row-major 3x4 affine matrix.
type Matrix3x4 [12]float32

// Matrix4 is a row-major 4x4 matrix.
type Matrix4 [16]float32

type component[T any] struct {
	name string
	ptr  *T
}

// archiveComponents stores a vector-like value as a group whose members are
// inline entries where the backend supports them ([1,2,3]) and named fields
// otherwise ({"x":1,"y":2,"z":3}).
func archiveComponents[T any](ar Archive, name string, comps ...component[T]) bool {
	group := ar.CreateGroup(name)
	ok := true
	for _, c := range comps {
		if !archiveComponent(group, group, c.name, c.ptr) {
			ok = false
		}
	}
	return ok
}

func archiveComponent[T any](series, fallback Archive, name string, ptr *T) bool {
	if series.CreateSeriesEntryInline().SerializeInline(ptr).Else(name).Succeeded() {
		return true
	}
	return fallback.Serialize(name, ptr).Succeeded()
}

// archiveMatrix stores a row-major matrix as a series of rows, each a series
// of cells. Cells fall back to the names mRC inside the row or the group.
func archiveMatrix(ar Archive, name string, cells []float32, rows, cols int) bool {
	group := ar.CreateGroup(name)
	ok := true
	for r := 0; r < rows; r++ {
		row := group.CreateSeriesEntryInline()
		for c := 0; c < cols; c++ {
			cell := &cells[r*cols+c]
			cellName := matrixCellName(r, c)
			if row.CreateSeriesEntryInline().SerializeInline(cell).Else(cellName).Succeeded() {
				continue
			}
			if row.Serialize(cellName, cell).Succeeded() {
				continue
			}
			if !group.Serialize(cellName, cell).Succeeded() {
				ok = false
			}
		}
	}
	return ok
}

func matrixCellName(r, c int) string {
	return string([]byte{'m', byte('0' + r), byte('0' + c)})
}

// archiveExtendedComponents is the fallback for extended kinds a backend did
// not handle natively.
func archiveExtendedComponents(ar Archive, name string, v any) bool {
	switch t := v.(type) {
	case *IntVector2:
		return archiveComponents(ar, name, component[int32]{"x", &t.X}, component[int32]{"y", &t.Y})
	case *IntVector3:
		return archiveComponents(ar, name, component[int32]{"x", &t.X}, component[int32]{"y", &t.Y}, component[int32]{"z", &t.Z})
	case *Vector2:
		return archiveComponents(ar, name, component[float32]{"x", &t.X}, component[float32]{"y", &t.Y})
	case *Vector3:
		return archiveComponents(ar, name, component[float32]{"x", &t.X}, component[float32]{"y", &t.Y}, component[float32]{"z", &t.Z})
	case *Vector4:
		return archiveComponents(ar, name,
			component[float32]{"x", &t.X}, component[float32]{"y", &t.Y},
			component[float32]{"z", &t.Z}, component[float32]{"w", &t.W})
	case *Quaternion:
		return archiveComponents(ar, name,
			component[float32]{"w", &t.W}, component[float32]{"x", &t.X},
			component[float32]{"y", &t.Y}, component[float32]{"z", &t.Z})
	case *Color:
		return archiveComponents(ar, name,
			component[float32]{"r", &t.R}, component[float32]{"g", &t.G},
			component[float32]{"b", &t.B}, component[float32]{"a", &t.A})
	case *Matrix3:
		return archiveMatrix(ar, name, t[:], 3, 3)
	case *Matrix3x4:
		return archiveMatrix(ar, name, t[:], 3, 4)
	case *Matrix4:
		return archiveMatrix(ar, name, t[:], 4, 4)
	}
	return false
}
