package elevenlabs

import "strings"

// OutputFormats lists the output_format values accepted by the API, in the
// order they are presented to users.
var OutputFormats = []string{
	"mp3_22050_32",
	"mp3_44100_64",
	"mp3_44100_96",
	"mp3_44100_128",
	"mp3_44100_192",
	"pcm_16000",
	"pcm_22050",
	"pcm_24000",
	"pcm_44100",
	"wav_44100",
	"ulaw_8000",
}

// IsOutputFormat reports whether f is one of OutputFormats.
func IsOutputFormat(f string) bool {
	for _, known := range OutputFormats {
		if known == f {
			return true
		}
	}
	return false
}

// FileExtension returns the file extension, with leading dot, for an output
// format. Unknown codecs fall back to ".bin".
func FileExtension(format string) string {
	codec, _, _ := strings.Cut(format, "_")
	switch codec {
	case "mp3":
		return ".mp3"
	case "pcm":
		return ".pcm"
	case "wav":
		return ".wav"
	case "ulaw":
		return ".ulaw"
	case "opus":
		return ".opus"
	default:
		return ".bin"
	}
}
