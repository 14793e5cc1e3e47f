package spe

import "fmt"

// ElemType identifies the in-memory element type of header and pixel data.
type ElemType uint8

const (
	TypeInt8 ElemType = iota
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeFloat32
	TypeFloat64
)

func (t ElemType) String() string {
	switch t {
	case TypeInt8:
		return "i8"
	case TypeUint8:
		return "u8"
	case TypeInt16:
		return "i16"
	case TypeUint16:
		return "u16"
	case TypeInt32:
		return "i32"
	case TypeUint32:
		return "u32"
	case TypeInt64:
		return "i64"
	case TypeUint64:
		return "u64"
	case TypeFloat32:
		return "f32"
	case TypeFloat64:
		return "f64"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Bits returns the width of the element type in bits.
func (t ElemType) Bits() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32, TypeFloat32:
		return 32
	case TypeInt64, TypeUint64, TypeFloat64:
		return 64
	default:
		return 0
	}
}

// PixelType maps an on-disk datatype code from the header to an element
// type. Codes 6, 2, 1 and 5 belong to the pre-3.0 format variant; they are
// accepted so headers of those files still decode, but pixel decoding is
// only guaranteed for files written by a 3.0 writer.
func PixelType(code int) (ElemType, error) {
	switch code {
	case 0:
		return TypeFloat32, nil
	case 1:
		return TypeInt32, nil
	case 2:
		return TypeInt16, nil
	case 3:
		return TypeUint16, nil
	case 5:
		return TypeFloat64, nil
	case 6:
		return TypeUint8, nil
	case 8:
		return TypeUint32, nil
	default:
		return 0, fmt.Errorf("%w: datatype code %d", ErrUnsupportedType, code)
	}
}

// BinaryType maps a binary tag from the header schema ("16u", "32f", ...)
// to an element type.
func BinaryType(tag string) (ElemType, error) {
	switch tag {
	case "8s":
		return TypeInt8, nil
	case "8u":
		return TypeUint8, nil
	case "16s":
		return TypeInt16, nil
	case "16u":
		return TypeUint16, nil
	case "32s":
		return TypeInt32, nil
	case "32u":
		return TypeUint32, nil
	case "64s":
		return TypeInt64, nil
	case "64u":
		return TypeUint64, nil
	case "32f":
		return TypeFloat32, nil
	case "64f":
		return TypeFloat64, nil
	default:
		return 0, fmt.Errorf("%w: binary tag %q", ErrUnsupportedType, tag)
	}
}
