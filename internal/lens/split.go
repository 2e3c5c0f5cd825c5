package lens

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexxIT/audiolens/pkg/adts"
	"github.com/AlexxIT/audiolens/pkg/core"
	"github.com/AlexxIT/audiolens/pkg/mp3"
	"github.com/AlexxIT/audiolens/pkg/ogg"
)

// Split writes every located frame or page to its own file in dir and
// returns the number of written files.
//
// MP3 skips a leading Xing/Info frame. With asBlock all audio frames are
// written to one file. With tags the ID3v2 tag is written too.
func Split(r *Result, dir string, asBlock, tags bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("lens: frames dir: %w", err)
	}

	name := r.Name()

	switch r.Format {
	case FormatADTS:
		return writeSpans(r.data, adts.Spans(r.ADTS), dir, name, "_%d", "")
	case FormatOgg:
		return writeSpans(r.data, ogg.Spans(r.Pages), dir, name, "_%d", "")
	case FormatMP3:
		return splitMP3(r, dir, name, asBlock, tags)
	}

	log.Warn().Str("format", r.Format).Msg("[lens] split not supported")
	return 0, nil
}

func splitMP3(r *Result, dir, name string, asBlock, tags bool) (n int, err error) {
	if tags && r.ID3v2.Found() {
		tag := core.Span{Offset: r.ID3v2.Offset, Size: r.ID3v2.Size}
		if err = writeFile(dir, name+"_tag.mp3", core.Slice(r.data, tag)); err != nil {
			return
		}
		n++
	}

	if len(r.MP3) == 0 {
		return
	}

	end := len(r.data)
	if tag := mp3.FindID3v1(r.data); tag.Found() {
		end = tag.Offset
	}

	first := mp3.FirstAudioFrame(r.data, r.MP3)
	if first >= len(r.MP3) {
		return
	}

	if asBlock {
		block := core.Span{Offset: r.MP3[first].Offset, Size: end - r.MP3[first].Offset}
		if err = writeFile(dir, name+"_block.mp3", core.Slice(r.data, block)); err != nil {
			return
		}
		return n + 1, nil
	}

	spans := mp3.Spans(r.MP3, end)[first:]
	m, err := writeSpans(r.data, spans, dir, name, "_%05d", ".mp3")
	return n + m, err
}

func writeSpans(data []byte, spans []core.Span, dir, name, index, ext string) (int, error) {
	for i, span := range spans {
		filename := name + fmt.Sprintf(index, i) + ext
		if err := writeFile(dir, filename, core.Slice(data, span)); err != nil {
			return i, err
		}
	}
	return len(spans), nil
}

func writeFile(dir, name string, b []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), b, 0644); err != nil {
		return fmt.Errorf("lens: write frame: %w", err)
	}
	return nil
}
