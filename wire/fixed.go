package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// WriteU8 writes x to w as a single byte.
func WriteU8(w io.Writer, x uint8) error {
	if _, err := w.Write([]byte{x}); err != nil {
		return ErrIO(err)
	}
	return nil
}

// ReadU8 reads a single byte from r.
func ReadU8(r io.Reader) (uint8, error) {
	buf, err := takeOrErr(r, 1, ErrEOF)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteI8 writes the two's-complement byte of x to w.
func WriteI8(w io.Writer, x int8) error { return WriteU8(w, uint8(x)) }

// ReadI8 reads a single two's-complement byte from r.
func ReadI8(r io.Reader) (int8, error) {
	u, err := ReadU8(r)
	return int8(u), err
}

// WriteLEU16 writes x to w as 2 little-endian bytes.
func WriteLEU16(w io.Writer, x uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], x)
	if _, err := w.Write(buf[:]); err != nil {
		return ErrIO(err)
	}
	return nil
}

// ReadLEU16 reads 2 little-endian bytes from r as a uint16.
func ReadLEU16(r io.Reader) (uint16, error) {
	buf, err := takeOrErr(r, 2, ErrEOF)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// WriteLEI16 writes the two's-complement little-endian bytes of x to w.
func WriteLEI16(w io.Writer, x int16) error { return WriteLEU16(w, uint16(x)) }

// ReadLEI16 reads a little-endian two's-complement int16 from r.
func ReadLEI16(r io.Reader) (int16, error) {
	u, err := ReadLEU16(r)
	return int16(u), err
}

// WriteLEU32 writes x to w as 4 little-endian bytes.
func WriteLEU32(w io.Writer, x uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], x)
	if _, err := w.Write(buf[:]); err != nil {
		return ErrIO(err)
	}
	return nil
}

// ReadLEU32 reads 4 little-endian bytes from r as a uint32.
func ReadLEU32(r io.Reader) (uint32, error) {
	buf, err := takeOrErr(r, 4, ErrEOF)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// WriteLEI32 writes the two's-complement little-endian bytes of x to w.
func WriteLEI32(w io.Writer, x int32) error { return WriteLEU32(w, uint32(x)) }

// ReadLEI32 reads a little-endian two's-complement int32 from r.
func ReadLEI32(r io.Reader) (int32, error) {
	u, err := ReadLEU32(r)
	return int32(u), err
}

// WriteLEU64 writes x to w as 8 little-endian bytes.
func WriteLEU64(w io.Writer, x uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	if _, err := w.Write(buf[:]); err != nil {
		return ErrIO(err)
	}
	return nil
}

// ReadLEU64 reads 8 little-endian bytes from r as a uint64.
func ReadLEU64(r io.Reader) (uint64, error) {
	buf, err := takeOrErr(r, 8, ErrEOF)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// WriteLEI64 writes the two's-complement little-endian bytes of x to w.
func WriteLEI64(w io.Writer, x int64) error { return WriteLEU64(w, uint64(x)) }

// ReadLEI64 reads a little-endian two's-complement int64 from r.
func ReadLEI64(r io.Reader) (int64, error) {
	u, err := ReadLEU64(r)
	return int64(u), err
}

// WriteLEF32 writes x to w as its IEEE-754 binary32 bit pattern, little
// endian. NaN bit patterns are passed through untouched.
func WriteLEF32(w io.Writer, x float32) error {
	return WriteLEU32(w, math.Float32bits(x))
}

// ReadLEF32 reads a little-endian IEEE-754 binary32 bit pattern from r.
func ReadLEF32(r io.Reader) (float32, error) {
	u, err := ReadLEU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// WriteLEF64 writes x to w as its IEEE-754 binary64 bit pattern, little
// endian. NaN bit patterns are passed through untouched.
func WriteLEF64(w io.Writer, x float64) error {
	return WriteLEU64(w, math.Float64bits(x))
}

// ReadLEF64 reads a little-endian IEEE-754 binary64 bit pattern from r.
func ReadLEF64(r io.Reader) (float64, error) {
	u, err := ReadLEU64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// WriteBool writes x to w as a single byte: 0xFF for true, 0x00 for
// false.
func WriteBool(w io.Writer, x bool) error {
	if x {
		return WriteU8(w, 0xFF)
	}
	return WriteU8(w, 0x00)
}

// ReadBool reads a single boolean byte from r. Any byte other than
// 0x00/0xFF is a BadBool error.
func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadU8(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0xFF:
		return true, nil
	case 0x00:
		return false, nil
	default:
		return false, ErrBadBool(b)
	}
}
