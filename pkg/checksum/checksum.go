// Package checksum holds the integrity routines small wire formats
// lean on: additive and XOR bytes for sensor frames, and the 16-bit
// ones-complement sum used by IP-family headers.
package checksum

// Sum8 returns the additive checksum of data, truncated to a byte.
func Sum8(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return sum
}

// Xor8 returns the longitudinal parity byte of data.
func Xor8(data []byte) uint8 {
	var x uint8
	for _, b := range data {
		x ^= b
	}
	return x
}

// Internet returns the 16-bit ones-complement sum of data seeded with
// initial, RFC 1071 style: big-endian 16-bit words, an odd trailing
// byte padded on the right, carries folded back in. Calls chain by
// passing the previous result as initial. The caller inverts the
// final sum when placing it in a header.
func Internet(data []byte, initial uint16) uint16 {
	sum := uint32(initial)
	n := len(data)
	if n%2 == 1 {
		n--
		sum += uint32(data[n]) << 8
	}
	for i := 0; i < n; i += 2 {
		sum += uint32(data[i])<<8 | uint32(data[i+1])
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return uint16(sum)
}
