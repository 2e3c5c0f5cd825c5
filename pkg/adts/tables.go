package adts

func ProfileName(index int) string {
	if index >= 0 && index < len(profileNames) {
		return profileNames[index]
	}
	return "???"
}

// SampleRate returns 0 for reserved indexes and -1 for forbidden or unknown ones
func SampleRate(index int) int {
	if index >= 0 && index < len(sampleRates) {
		return sampleRates[index]
	}
	return -1
}

func ChannelConfig(index int) string {
	if index >= 0 && index < len(channelConfigs) {
		return channelConfigs[index]
	}
	return "???"
}

// ChannelCount returns 0 when channels are defined inband or reserved
func ChannelCount(index int) int {
	if index >= 0 && index < len(channelCounts) {
		return channelCounts[index]
	}
	return 0
}

// https://en.wikipedia.org/wiki/MPEG-4_Part_3#MPEG-4_Audio_Object_Types
var profileNames = [...]string{
	"AAC Main",
	"AAC LC (Low Complexity)",
	"AAC SSR (Scalable Sample Rate)",
	"AAC LTP (Long Term Prediction)",
	"SBR (Spectral Band Replication)",
	"AAC Scalable",
	"TwinVQ",
	"CELP (Code Excited Linear Prediction)",
	"HXVC (Harmonic Vector eXcitation Coding)",
	"Reserved",
	"Reserved",
	"TTSI (Text-To-Speech Interface)",
	"Main Synthesis",
	"Wavetable Synthesis",
	"General MIDI",
	"Algorithmic Synthesis and Audio Effects",
	"ER (Error Resilient) AAC LC",
	"Reserved",
	"ER AAC LTP",
	"ER AAC Scalable",
	"ER TwinVQ",
	"ER BSAC (Bit-Sliced Arithmetic Coding)",
	"ER AAC LD (Low Delay)",
	"ER CELP",
	"ER HVXC",
	"ER HILN (Harmonic and Individual Lines plus Noise)",
	"ER Parametric",
	"SSC (SinuSoidal Coding)",
	"PS (Parametric Stereo)",
	"MPEG Surround",
	"(Escape value)",
	"Layer-1",
	"Layer-2",
	"Layer-3",
	"DST (Direct Stream Transfer)",
	"ALS (Audio Lossless)",
	"SLS (Scalable LosslesS)",
	"SLS non-core",
	"ER AAC ELD (Enhanced Low Delay)",
	"SMR (Symbolic Music Representation) Simple",
	"SMR Main",
	"USAC (Unified Speech and Audio Coding) (no SBR)",
	"SAOC (Spatial Audio Object Coding)",
	"LD MPEG Surround",
	"USAC",
}

var sampleRates = [16]int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350,
	0, 0, // reserved
	-1, // forbidden
}

// fc = front center, fl/fr = front left/right, sl/sr = side, bl/br = back, lfe, r = reserved
var channelConfigs = [16]string{
	"ato", // defined in AOT specific config (inband PCE)
	"fc",
	"fl-fr",
	"fl-fc-fr",
	"fl-fc-fr-bc",
	"fl-fc-fr-bl-br",
	"fl-fc-fr-bl-br-lfe",
	"fl-fc-fr-sl-sr-bl-br-lfe",
	"r", "r", "r", "r", "r", "r", "r", "r",
}

// config 7 is 7.1 surround
var channelCounts = [8]int{0, 1, 2, 3, 4, 5, 6, 8}
