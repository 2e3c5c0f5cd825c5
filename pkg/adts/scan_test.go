package adts

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanBuffers(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	random := make([]byte, 64*1024)
	rnd.Read(random)

	buffers := map[string][]byte{
		"empty":  nil,
		"zero":   make([]byte, 4096),
		"ff":     bytes.Repeat([]byte{0xFF}, 4096),
		"magic":  bytes.Repeat([]byte("OggS\x00OpusHeadID3\xFF\xF1"), 256),
		"random": random,
	}

	for name, b := range buffers {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, Scan(b), Scan(b))
		})
	}
}
