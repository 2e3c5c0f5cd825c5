package lens

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlexxIT/audiolens/pkg/adts"
	"github.com/AlexxIT/audiolens/pkg/mp3"
	"github.com/AlexxIT/audiolens/pkg/ogg"
	"github.com/AlexxIT/audiolens/pkg/opus"
	"github.com/AlexxIT/audiolens/pkg/rtpay"
)

const (
	FormatAuto = "auto"
	FormatADTS = "adts"
	FormatMP3  = "mp3"
	FormatOgg  = "ogg"
	FormatOpus = "opus" // OpusHead search without Ogg framing
)

var ErrUnknownFormat = errors.New("lens: unknown format")

// Result of one file scan. Headers are kept only for the scanned format.
type Result struct {
	Path   string
	Format string

	ADTS []adts.Header

	MP3   []mp3.Header
	ID3v2 mp3.TagRange

	Pages []ogg.PageHeader
	Opus  *opus.Stream // Ogg stream with OpusHead in the first page

	Heads []opus.IDHeader

	data []byte
}

// Detect uses the file extension, then the first bytes
func Detect(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aac", ".adts":
		return FormatADTS
	case ".mp3", ".mp2", ".mpa":
		return FormatMP3
	case ".ogg", ".oga", ".opus":
		return FormatOgg
	}

	switch {
	case ogg.IsMagic(data, 0):
		return FormatOgg
	case mp3.IsID3v2(data, 0):
		return FormatMP3
	case adts.IsSync(data, 0):
		// ADTS sync also passes the MP3 sync check
		return FormatADTS
	case mp3.IsSync(data, 0):
		return FormatMP3
	}
	return ""
}

func Scan(path string, data []byte, format string) (*Result, error) {
	if format == "" || format == FormatAuto {
		if format = Detect(path, data); format == "" {
			return nil, ErrUnknownFormat
		}
	}

	r := &Result{Path: path, Format: format, data: data}

	switch format {
	case FormatADTS:
		r.ADTS = adts.Scan(data)
	case FormatMP3:
		r.ID3v2, r.MP3 = mp3.Scan(data)
	case FormatOgg:
		r.Pages = ogg.Scan(data)
		if s, ok := opus.ReadStream(data, r.Pages); ok {
			r.Opus = &s
		}
	case FormatOpus:
		r.Heads = opus.Headers(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if r.Frames() == 0 {
		return r, ErrNoHeaders
	}

	return r, nil
}

func (r *Result) Name() string {
	return baseName(r.Path)
}

// Frames is the number of located frames, pages or headers
func (r *Result) Frames() int {
	switch r.Format {
	case FormatADTS:
		return len(r.ADTS)
	case FormatMP3:
		return len(r.MP3)
	case FormatOgg:
		return len(r.Pages)
	case FormatOpus:
		return len(r.Heads)
	}
	return 0
}

// RTP packetizes the located frames, false if the format has no payload mapping
func (r *Result) RTP() (rtpay.Stream, bool) {
	switch r.Format {
	case FormatADTS:
		return rtpay.ADTS(r.data, r.ADTS), true
	case FormatMP3:
		return rtpay.MP3(r.data, r.MP3), true
	case FormatOgg:
		if r.Opus != nil {
			return rtpay.Opus(*r.Opus), true
		}
	}
	return rtpay.Stream{}, false
}
