package lens

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexxIT/audiolens/pkg/ogg"
	"github.com/stretchr/testify/require"
)

// two FFmpeg ADTS frames, 16 bytes each, 44100 Hz
const adtsFrames = "fff15080021ffc210049900219002380fff15080021ffc212049900219002380"

const mp3FrameSize = 417

func setConfig(t *testing.T, c Config) {
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func writeTemp(t *testing.T, name string, b []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, b, 0644))
	return path
}

// mp3File has an ID3v2 tag, an Info frame, three audio frames and an ID3v1 trailer
func mp3File() []byte {
	b := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 6, 'T', 'I', 'T', '2', 0, 0}
	for i := 0; i < 4; i++ {
		frame := make([]byte, mp3FrameSize)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		if i == 0 {
			copy(frame[36:], "Info")
		}
		frame[100] = byte(i)
		b = append(b, frame...)
	}
	trailer := make([]byte, 128)
	copy(trailer, "TAG")
	return append(b, trailer...)
}

func oggPage(flags byte, num uint32, packets ...[]byte) []byte {
	b := make([]byte, ogg.HeaderSize)
	copy(b, ogg.Magic)
	b[5] = flags
	binary.LittleEndian.PutUint32(b[14:], 1)
	binary.LittleEndian.PutUint32(b[18:], num)

	var body []byte
	for _, packet := range packets {
		b = append(b, byte(len(packet)))
		body = append(body, packet...)
	}
	b[26] = byte(len(packets))
	b = append(b, body...)
	binary.LittleEndian.PutUint32(b[22:], ogg.Checksum(b))
	return b
}

func opusFile() []byte {
	head, _ := hex.DecodeString("4f707573486561640102380180bb0000000000")
	tags := append([]byte("OpusTags"), 0, 0, 0, 0, 0, 0, 0, 0)

	var b []byte
	b = append(b, oggPage(ogg.FlagBOS, 0, head)...)
	b = append(b, oggPage(0, 1, tags)...)
	b = append(b, oggPage(ogg.FlagEOS, 2, []byte{0xFC, 1, 2, 3}, []byte{0xFC, 4, 5})...)
	return b
}

func TestDetect(t *testing.T) {
	require.Equal(t, FormatADTS, Detect("a.AAC", nil))
	require.Equal(t, FormatMP3, Detect("a.mp3", nil))
	require.Equal(t, FormatOgg, Detect("a.opus", nil))

	require.Equal(t, FormatADTS, Detect("a.bin", []byte{0xFF, 0xF1, 0x50, 0x80}))
	require.Equal(t, FormatMP3, Detect("a.bin", []byte{0xFF, 0xFB, 0x90, 0x00}))
	require.Equal(t, FormatMP3, Detect("a.bin", mp3File()))
	require.Equal(t, FormatOgg, Detect("a.bin", opusFile()))
	require.Equal(t, "", Detect("a.bin", make([]byte, 32)))
}

func TestProcessMP3(t *testing.T) {
	setConfig(t, Config{Format: FormatAuto, LogFile: true, WriteFrames: true, WriteTags: true})

	path := writeTemp(t, "song.mp3", mp3File())
	dir := filepath.Dir(path)

	r, err := Process(path)
	require.Nil(t, err)
	require.Equal(t, FormatMP3, r.Format)
	require.Equal(t, 4, r.Frames())
	require.Equal(t, 16, r.ID3v2.Size)

	report, err := os.ReadFile(filepath.Join(dir, "song_log"))
	require.Nil(t, err)
	require.Contains(t, string(report), "MP3 Frame\n")
	require.Contains(t, string(report), "Frames: 4\n")
	require.Contains(t, string(report), "ID3v1: true\n")
	require.Contains(t, string(report), "Info frame, lame tag: 138 bytes\n")

	frames := filepath.Join(dir, "frames")
	tag, err := os.ReadFile(filepath.Join(frames, "song_tag.mp3"))
	require.Nil(t, err)
	require.Equal(t, "ID3", string(tag[:3]))
	require.Len(t, tag, 16)

	for i := 0; i < 3; i++ {
		name := filepath.Join(frames, fmt.Sprintf("song_%05d.mp3", i))
		b, err := os.ReadFile(name)
		require.Nil(t, err)
		require.Len(t, b, mp3FrameSize)
		require.Equal(t, byte(i+1), b[100])
	}

	_, err = os.Stat(filepath.Join(frames, "song_00003.mp3"))
	require.True(t, errors.Is(err, os.ErrNotExist))

	stream, ok := r.RTP()
	require.True(t, ok)
	require.Len(t, stream.Packets, 3)
}

func TestSplitBlock(t *testing.T) {
	setConfig(t, Config{Format: FormatMP3})

	path := writeTemp(t, "song.mp3", mp3File())
	r, err := Process(path)
	require.Nil(t, err)

	dir := t.TempDir()
	n, err := Split(r, dir, true, false)
	require.Nil(t, err)
	require.Equal(t, 1, n)

	b, err := os.ReadFile(filepath.Join(dir, "song_block.mp3"))
	require.Nil(t, err)
	require.Len(t, b, 3*mp3FrameSize)
}

func TestProcessADTS(t *testing.T) {
	setConfig(t, Config{Format: FormatAuto, LogFile: true, WriteFrames: true})

	b, _ := hex.DecodeString(adtsFrames)
	b = append(b, make([]byte, 20)...)
	path := writeTemp(t, "stream.aac", b)
	dir := filepath.Dir(path)

	r, err := Process(path)
	require.Nil(t, err)
	require.Equal(t, 2, r.Frames())

	report, err := os.ReadFile(filepath.Join(dir, "stream_log"))
	require.Nil(t, err)
	require.Contains(t, string(report), "ADTS Frames\n")
	require.Contains(t, string(report), "Frame headers: 2\n")
	require.Contains(t, string(report), "incomplete frames: 0\n")

	for _, name := range []string{"stream_0", "stream_1"} {
		frame, err := os.ReadFile(filepath.Join(dir, "frames", name))
		require.Nil(t, err)
		require.Len(t, frame, 16)
	}
}

func TestProcessOgg(t *testing.T) {
	setConfig(t, Config{Format: FormatAuto, LogFile: true, WriteFrames: true, Output: t.TempDir()})

	path := writeTemp(t, "voice.opus", opusFile())

	r, err := Process(path)
	require.Nil(t, err)
	require.Equal(t, FormatOgg, r.Format)
	require.Equal(t, 3, r.Frames())
	require.NotNil(t, r.Opus)
	require.Len(t, r.Opus.Packets, 2)

	report, err := os.ReadFile(filepath.Join(cfg.Output, "voice_log"))
	require.Nil(t, err)
	require.Contains(t, string(report), "Codec header:\nOpus\n")
	require.Contains(t, string(report), "Codec: opus\n")
	require.Contains(t, string(report), "Page headers: 3\n")
	require.Contains(t, string(report), "First missing page number: -1\n")
	require.Contains(t, string(report), "Second page is OpusTags: true\n")
	require.Contains(t, string(report), "bad checksum: 0\n")

	for i, name := range []string{"voice_0", "voice_1", "voice_2"} {
		page, err := os.ReadFile(filepath.Join(cfg.Output, "frames", name))
		require.Nil(t, err)
		require.Equal(t, r.Pages[i].PageSize, len(page))
	}

	stream, ok := r.RTP()
	require.True(t, ok)
	require.Len(t, stream.Packets, 2)
}

func TestProcessOpusHeads(t *testing.T) {
	setConfig(t, Config{Format: FormatOpus, LogFile: true, WriteFrames: true})

	path := writeTemp(t, "voice.ogg", opusFile())

	r, err := Process(path)
	require.Nil(t, err)
	require.Len(t, r.Heads, 1)
	require.Equal(t, ogg.HeaderSize+1, r.Heads[0].Offset)
	require.Contains(t, r.Report(), "Opus headers: 1\n")

	_, ok := r.RTP()
	require.False(t, ok)
}

func TestNoHeaders(t *testing.T) {
	setConfig(t, Config{Format: FormatAuto, LogFile: true})

	path := writeTemp(t, "empty.mp3", make([]byte, 1024))

	r, err := Process(path)
	require.ErrorIs(t, err, ErrNoHeaders)
	require.NotNil(t, r)

	report, err := os.ReadFile(filepath.Join(filepath.Dir(path), "empty_log"))
	require.Nil(t, err)
	require.Equal(t, "No headers found\n", string(report))

	_, err = Scan("noise.bin", make([]byte, 1024), FormatAuto)
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Scan("noise.bin", nil, "flac")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRun(t *testing.T) {
	setConfig(t, Config{Format: FormatAuto, Workers: 2})

	b, _ := hex.DecodeString(adtsFrames)
	paths := []string{
		writeTemp(t, "song.mp3", mp3File()),
		filepath.Join(t.TempDir(), "missing.aac"),
		writeTemp(t, "stream.aac", append(b, make([]byte, 20)...)),
	}

	results, err := Run(context.Background(), paths)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Len(t, results, 3)
	require.Equal(t, 4, results[0].Frames())
	require.Nil(t, results[1])
	require.Equal(t, 2, results[2].Frames())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = Run(ctx, paths[:1])
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results[0])
}
