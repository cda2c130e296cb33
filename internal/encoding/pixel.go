package encoding

import (
	"github.com/boljen/go-bitmap"
)

// Split32 splits in into its high & low 16 bits
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 joins a (high) & b (low) into a uint32, see Split32
func Merge16(a, b uint16) uint32 {
	return uint32(a)<<16 | uint32(b)
}

// Split16 splits in into its high & low bytes
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 joins a (high) & b (low) into a uint16, see Split16
func Merge8(a, b uint8) uint16 {
	return uint16(a)<<8 | uint16(b)
}

// FromBitmap packs the first 8 bits of bm into a byte
func FromBitmap(bm bitmap.Bitmap) uint8 {
	data := bm.Data(false)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

// ToBitmap unpacks a byte packed by FromBitmap
func ToBitmap(in uint8) bitmap.Bitmap {
	return bitmap.Bitmap([]byte{in})
}
