package ogg

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// OpusHead page from an ffmpeg stream, stereo, 48000 Hz, pre-skip 312
const opusHeadPage = "4f67675300020000000000000000785634120000000023ecb03e01134f707573486561640102380180bb0000000000"

func page(flags byte, serial, num uint32, sizes ...int) []byte {
	b := make([]byte, HeaderSize)
	copy(b, Magic)
	b[5] = flags
	binary.LittleEndian.PutUint64(b[6:], uint64(num)*960)
	binary.LittleEndian.PutUint32(b[14:], serial)
	binary.LittleEndian.PutUint32(b[18:], num)

	var body []byte
	for i, size := range sizes {
		// negative size is an unfinished run of 255 lacing values
		if size < 0 {
			for n := -size; n > 0; n -= 255 {
				b = append(b, 255)
			}
			body = append(body, make([]byte, -size)...)
			continue
		}
		for n := size; n >= 255; n -= 255 {
			b = append(b, 255)
		}
		b = append(b, byte(size%255))
		for j := 0; j < size; j++ {
			body = append(body, byte(i+1))
		}
	}

	b[26] = byte(len(b) - HeaderSize)
	b = append(b, body...)
	binary.LittleEndian.PutUint32(b[22:], Checksum(b))
	return b
}

func TestIsMagic(t *testing.T) {
	for s, expected := range map[string]bool{
		"2218544009":     false,
		"4f67675300":     true,
		"4f676753001122": true,
		"4f676753":       false,
	} {
		b, _ := hex.DecodeString(s)
		require.Equal(t, expected, IsMagic(b, 0), s)
	}
}

func TestReadPage(t *testing.T) {
	b, err := hex.DecodeString(opusHeadPage)
	require.Nil(t, err)

	p, ok := ReadPage(b, 0)
	require.True(t, ok)
	require.False(t, p.Fresh)
	require.True(t, p.BOS)
	require.False(t, p.EOS)
	require.Equal(t, uint64(0), p.Granule)
	require.Equal(t, uint32(0x12345678), p.Serial)
	require.Equal(t, uint32(0), p.PageNum)
	require.Equal(t, uint32(0x3EB0EC23), p.Checksum)
	require.Equal(t, 1, p.Segments)
	require.Equal(t, []byte{19}, p.SegmentTable)
	require.Equal(t, 47, p.PageSize)
	require.Equal(t, 28, p.DataOffset())
	require.Equal(t, "OpusHead", string(p.Payload(b)[:8]))

	require.Equal(t, uint32(0x3EB0EC23), Checksum(b))
	require.True(t, p.Verify(b))
	require.Equal(t, "opus", Codec(b, p))
}

func TestEmptyPage(t *testing.T) {
	b := page(FlagEOS, 1, 7)

	p, ok := ReadPage(b, 0)
	require.True(t, ok)
	require.Equal(t, HeaderSize, p.PageSize)
	require.True(t, p.EOS)
	require.Nil(t, p.Payload(b))
	require.Nil(t, p.PacketLengths())
	require.True(t, p.Verify(b))

	// segment table outside of buffer
	b[26] = 1
	_, ok = ReadPage(b, 0)
	require.False(t, ok)
}

func TestScan(t *testing.T) {
	var b []byte
	b = append(b, 0xAA, 0xBB)
	b = append(b, page(FlagBOS, 1, 0, 19)...)
	b = append(b, page(0, 1, 1, 300, 20)...)
	b = append(b, page(FlagEOS, 1, 2, 40)...)

	pages := Scan(b)
	require.Len(t, pages, 3)
	require.Equal(t, 2, pages[0].Offset)
	require.Equal(t, 2+HeaderSize+1+19, pages[1].Offset)
	require.Equal(t, []int{300, 20}, pages[1].PacketLengths())
	require.Equal(t, HeaderSize+3+320, pages[1].PageSize)

	// idempotence
	require.Equal(t, pages, Scan(b))

	s := Summarize(b, pages)
	require.Equal(t, 3, s.Pages)
	require.Equal(t, 1, s.BOS)
	require.Equal(t, 1, s.EOS)
	require.Equal(t, 0, s.Fresh)
	require.Equal(t, -1, s.FirstMissingPage)
	require.True(t, s.Increasing)
	require.Equal(t, 1, s.Incomplete)
	require.Equal(t, 0, s.BadCRC)
	require.Equal(t, 0, s.Truncated)
	require.Equal(t, "", s.Codec)

	// corrupt body of the second page
	b[pages[1].DataOffset()+5] ^= 0xFF
	s = Summarize(b, Scan(b))
	require.Equal(t, 1, s.BadCRC)
	require.Contains(t, s.String(), "bad checksum: 1\n")
}

func TestScanTrailingEmptyPage(t *testing.T) {
	pages := Scan(page(FlagEOS, 1, 0))
	require.Len(t, pages, 1)
	require.Equal(t, HeaderSize, pages[0].PageSize)

	b := page(FlagBOS, 1, 0, 19)
	b = append(b, page(FlagEOS, 1, 1)...)

	pages = Scan(b)
	require.Len(t, pages, 2)
	require.Equal(t, len(b)-HeaderSize, pages[1].Offset)
	require.True(t, pages[1].EOS)

	s := Summarize(b, pages)
	require.Equal(t, 1, s.EOS)
	require.Equal(t, 0, s.Incomplete)
	require.Equal(t, 0, s.Truncated)
}

func TestScanTruncated(t *testing.T) {
	b := page(0, 1, 0, 100)
	b = append(b, page(0, 1, 1, 100)...)
	b = b[:len(b)-10]

	pages := Scan(b)
	require.Len(t, pages, 2)
	require.True(t, pages[1].Truncated(b))
	require.Len(t, pages[1].Payload(b), 90)
	require.False(t, pages[1].Verify(b))

	s := Summarize(b, pages)
	require.Equal(t, 1, s.Truncated)
	require.Equal(t, 0, s.BadCRC)
}

func TestScanTermination(t *testing.T) {
	require.Empty(t, Scan(make([]byte, 4096)))
	require.Empty(t, Scan([]byte(Magic)))

	b := make([]byte, 1<<16)
	rand.New(rand.NewSource(1)).Read(b)
	copy(b[100:], Magic)
	copy(b[len(b)-20:], Magic)

	pages := Scan(b)
	for i := 1; i < len(pages); i++ {
		require.GreaterOrEqual(t, pages[i].Offset, pages[i-1].Span().End())
	}
}

func TestPackets(t *testing.T) {
	var b []byte
	b = append(b, page(FlagFresh, 1, 0, 10, 20)...) // continuation without beginning
	b = append(b, page(0, 1, 1, 30, -510)...)
	b = append(b, page(0, 2, 0, 40)...) // other stream
	b = append(b, page(FlagFresh, 1, 2, 5, 0, -255)...)

	pages := Scan(b)
	require.Len(t, pages, 4)

	packets := Packets(b, pages, 1)
	require.Len(t, packets, 4)
	require.Len(t, packets[0], 20)
	require.Len(t, packets[1], 30)
	require.Len(t, packets[2], 515)
	require.Len(t, packets[3], 0)
	require.Equal(t, byte(2), packets[0][0])

	packets = Packets(b, pages, 2)
	require.Len(t, packets, 1)
	require.Len(t, packets[0], 40)

	require.Empty(t, Packets(b, pages, 3))
}

func TestPageNumbers(t *testing.T) {
	pages := []PageHeader{{PageNum: 0}, {PageNum: 1}, {PageNum: 3}, {PageNum: 2}}
	require.Equal(t, 2, FirstMissingPage(pages))
	require.False(t, Increasing(pages))

	require.Equal(t, 0, FirstMissingPage(pages[1:]))
	require.Equal(t, -1, FirstMissingPage(pages[:2]))
	require.True(t, Increasing(pages[:3]))
	require.Equal(t, -1, FirstMissingPage(nil))
}

func TestFormat(t *testing.T) {
	b, _ := hex.DecodeString(opusHeadPage)
	pages := Scan(b)
	require.Len(t, pages, 1)

	s := pages[0].String()
	require.Contains(t, s, "offset:      0\n")
	require.Contains(t, s, "size:        47\n")
	require.Contains(t, s, "bos:         true\n")
	require.Contains(t, s, "serial:      305419896\n")
	require.Contains(t, s, "chsum:       3eb0ec23\n")
	require.Contains(t, s, "segments:    1 [19]\n")

	require.Contains(t, Summarize(b, pages).String(), "Codec: opus\n")
}
