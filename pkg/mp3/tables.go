package mp3

// Bitrate returns bits/s for the index, -1 for the forbidden index or an
// invalid version/layer pair. Index 0 is free format (0).
func Bitrate(v Version, l Layer, index int) int {
	if index < 0 || index > 15 {
		return -1
	}

	var table *[16]int

	switch {
	case v == Version1 && l == Layer1:
		table = &bitrateV1L1
	case v == Version1 && l == Layer2:
		table = &bitrateV1L2
	case v == Version1 && l == Layer3:
		table = &bitrateV1L3
	case (v == Version2 || v == Version25) && l == Layer1:
		table = &bitrateV2L1
	case (v == Version2 || v == Version25) && (l == Layer2 || l == Layer3):
		table = &bitrateV2L23
	default:
		return -1
	}

	if kbps := table[index]; kbps >= 0 {
		return kbps * 1000
	}
	return -1
}

// SampleRate returns Hz for the index, -1 if reserved or the version is invalid
func SampleRate(v Version, index int) int {
	if index < 0 || index > 3 {
		return -1
	}

	switch v {
	case Version1:
		return sampleRateV1[index]
	case Version2:
		return sampleRateV2[index]
	case Version25:
		return sampleRateV25[index]
	}
	return -1
}

var (
	sampleRateV1  = [4]int{44100, 48000, 32000, -1}
	sampleRateV2  = [4]int{22050, 24000, 16000, -1}
	sampleRateV25 = [4]int{11025, 12000, 8000, -1}
)

// kbit/s
var (
	bitrateV1L1  = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, -1}
	bitrateV1L2  = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, -1}
	bitrateV1L3  = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, -1}
	bitrateV2L1  = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, -1}
	bitrateV2L23 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, -1}
)
