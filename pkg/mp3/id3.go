package mp3

const (
	ID3v2HeaderSize = 10
	ID3v2FooterSize = 10
	ID3v1Size       = 128

	id3v2FlagFooter = 0x10
)

// TagRange is a byte range of an ID3 tag. Offset and Size are -1 if not found.
type TagRange struct {
	Offset int
	Size   int
}

var NoTag = TagRange{Offset: -1, Size: -1}

func (t TagRange) Found() bool {
	return t.Offset >= 0 && t.Size > 0
}

func (t TagRange) End() int {
	return t.Offset + t.Size
}

// IsID3v2 checks "ID3" + 2 version bytes < 0xFF + flags + 4 size bytes < 0x80
func IsID3v2(b []byte, offset int) bool {
	if offset < 0 || offset+ID3v2HeaderSize > len(b) {
		return false
	}
	b = b[offset:]
	if b[0] != 'I' || b[1] != 'D' || b[2] != '3' {
		return false
	}
	if b[3] == 0xFF || b[4] == 0xFF {
		return false
	}
	return b[6] < 0x80 && b[7] < 0x80 && b[8] < 0x80 && b[9] < 0x80
}

// SyncSafe decodes a big-endian integer with 7 significant bits per byte
func SyncSafe(b []byte) (n int) {
	for _, v := range b {
		n = n<<7 | int(v&0x7F)
	}
	return
}

// ReadID3v2 returns the tag at offset including header and optional footer
func ReadID3v2(b []byte, offset int) (TagRange, bool) {
	if !IsID3v2(b, offset) {
		return NoTag, false
	}

	size := ID3v2HeaderSize + SyncSafe(b[offset+6:offset+10])
	if b[offset+5]&id3v2FlagFooter != 0 {
		size += ID3v2FooterSize
	}

	return TagRange{Offset: offset, Size: size}, true
}

// FindID3v2 searches the whole buffer for the first tag
func FindID3v2(b []byte) TagRange {
	for offset := 0; offset+ID3v2HeaderSize <= len(b); offset++ {
		if tag, ok := ReadID3v2(b, offset); ok {
			return tag
		}
	}
	return NoTag
}

// FindID3v1 checks the 128-byte "TAG" trailer at the end of the buffer
func FindID3v1(b []byte) TagRange {
	offset := len(b) - ID3v1Size
	if offset < 0 || string(b[offset:offset+3]) != "TAG" {
		return NoTag
	}
	return TagRange{Offset: offset, Size: ID3v1Size}
}
