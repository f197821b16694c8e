package checksum_test

import (
	"math/rand"
	"testing"

	"embedkit/pkg/checksum"

	"github.com/google/netstack/tcpip/header"
	"github.com/stretchr/testify/assert"
)

func TestSum8(t *testing.T) {
	assert.Equal(t, uint8(0), checksum.Sum8(nil))
	assert.Equal(t, uint8(6), checksum.Sum8([]byte{1, 2, 3}))
	// wraps mod 256
	assert.Equal(t, uint8(1), checksum.Sum8([]byte{0xff, 2}))
}

func TestXor8(t *testing.T) {
	assert.Equal(t, uint8(0), checksum.Xor8(nil))
	assert.Equal(t, uint8(0), checksum.Xor8([]byte{0xaa, 0xaa}))
	assert.Equal(t, uint8(0xff), checksum.Xor8([]byte{0xf0, 0x0f}))
	// NMEA-style frame parity
	assert.Equal(t, uint8('G'^'P'^'G'^'G'^'A'), checksum.Xor8([]byte("GPGGA")))
}

func TestInternet_KnownVector(t *testing.T) {
	// RFC 1071 worked example: 0x0001 0xf203 0xf4f5 0xf6f7 sums to 0xddf2
	data := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	assert.Equal(t, uint16(0xddf2), checksum.Internet(data, 0))
}

func TestInternet_OddLength(t *testing.T) {
	// trailing byte pads on the right
	assert.Equal(t, uint16(0xab00), checksum.Internet([]byte{0xab}, 0))
}

func TestInternet_MatchesNetstack(t *testing.T) {
	rng := rand.New(rand.NewSource(1071))
	for trial := 0; trial < 200; trial++ {
		data := make([]byte, rng.Intn(128))
		rng.Read(data)
		initial := uint16(rng.Intn(1 << 16))
		assert.Equal(t, header.Checksum(data, initial), checksum.Internet(data, initial),
			"trial %d len %d initial %#x", trial, len(data), initial)
	}
}

func TestInternet_Chaining(t *testing.T) {
	a := []byte{0x12, 0x34, 0x56, 0x78}
	b := []byte{0x9a, 0xbc}
	whole := checksum.Internet(append(append([]byte{}, a...), b...), 0)
	chained := checksum.Internet(b, checksum.Internet(a, 0))
	assert.Equal(t, whole, chained)
}
