package ogg

// PacketLengths returns lengths of packets that end on this page. A run of
// 255 lacing values continues until a smaller value. A trailing run that
// does not end on this page is not included.
func (p PageHeader) PacketLengths() (lengths []int) {
	var n int
	for _, lace := range p.SegmentTable {
		n += int(lace)
		if lace < 255 {
			lengths = append(lengths, n)
			n = 0
		}
	}
	return
}

// Packets reassembles packets of the logical stream serial, joining lacing
// runs across pages. A continued packet without its beginning is dropped,
// as is an unfinished packet at the end of the buffer.
func Packets(b []byte, pages []PageHeader, serial uint32) (packets [][]byte) {
	var pending []byte
	var open bool // pending packet continues on the next page

	for _, page := range pages {
		if page.Serial != serial {
			continue
		}

		if !page.Fresh {
			pending, open = nil, false
		}
		skip := page.Fresh && !open

		payload := page.Payload(b)
		var pos int

		for _, lace := range page.SegmentTable {
			end := min(pos+int(lace), len(payload))
			if !skip && pos < end {
				pending = append(pending, payload[pos:end]...)
			}
			pos = end

			if lace < 255 {
				if !skip {
					if pending == nil {
						pending = []byte{}
					}
					packets = append(packets, pending)
				}
				pending, open, skip = nil, false, false
			} else if !skip {
				open = true
			}
		}
	}
	return
}
