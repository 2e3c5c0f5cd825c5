package lens

import (
	"fmt"
	"strings"

	"github.com/AlexxIT/audiolens/pkg/adts"
	"github.com/AlexxIT/audiolens/pkg/mp3"
	"github.com/AlexxIT/audiolens/pkg/ogg"
	"github.com/AlexxIT/audiolens/pkg/opus"
)

const separator = "----------\n"

// Report is the content of the log file: every header and a summary
func (r *Result) Report() string {
	sb := &strings.Builder{}

	switch r.Format {
	case FormatADTS:
		for _, h := range r.ADTS {
			sb.WriteString(separator)
			sb.WriteString(h.String())
		}
	case FormatMP3:
		for _, h := range r.MP3 {
			sb.WriteString(separator)
			sb.WriteString(h.Format(r.MP3[0]))
		}
	case FormatOgg:
		for _, p := range r.Pages {
			sb.WriteString(separator)
			sb.WriteString(p.String())
		}
	case FormatOpus:
		for _, h := range r.Heads {
			sb.WriteString(separator)
			sb.WriteString(h.String())
		}
	}

	sb.WriteString(separator)
	sb.WriteString(r.Summary())
	return sb.String()
}

func (r *Result) Summary() string {
	switch r.Format {
	case FormatADTS:
		return adts.Summarize(r.ADTS).String()
	case FormatMP3:
		return mp3.Summarize(r.data, r.ID3v2, r.MP3).String()
	case FormatOgg:
		return r.oggSummary()
	case FormatOpus:
		return fmt.Sprintf("Opus headers: %d\n", len(r.Heads))
	}
	return ""
}

func (r *Result) oggSummary() string {
	sb := &strings.Builder{}

	if r.Opus != nil {
		sb.WriteString("Codec header:\n")
		sb.WriteString(r.Opus.Head.String())
		sb.WriteString(separator)
	}

	sb.WriteString(ogg.Summarize(r.data, r.Pages).String())

	if len(r.Pages) > 1 {
		tags := opus.IsTags(r.data, r.Pages[1].DataOffset())
		fmt.Fprintf(sb, "Second page is OpusTags: %t\n", tags)
	}

	if r.Opus != nil {
		fmt.Fprintf(sb, "Opus packets: %d\n", len(r.Opus.Packets))
		fmt.Fprintf(sb, "Duration: %s\n", r.Opus.Duration())
	}

	return sb.String()
}
