package utils

import "hash/crc32"

// CRC32 computes the IEEE 802.3 polynomial CRC32 of data (the same
// polynomial used by zlib), initialised to all-ones and finalised by
// inverting, matching crc32.ChecksumIEEE from the standard library.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
