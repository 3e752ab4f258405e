package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var errEmptySound = errors.New("sound has no samples")

const (
	wavFormatExtensible = 0xFFFE
	// Offset of the sub-format GUID inside a WAVE_FORMAT_EXTENSIBLE fmt chunk
	wavSubFormatOffset = 24
)

// ksDataFormatTail is the fixed part of the KSDATAFORMAT_SUBTYPE GUIDs after
// the leading format tag
var ksDataFormatTail = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// Decode detects the container of data and returns signed 16-bit
// little-endian stereo samples at SampleRate. RIFF/WAVE and MP3 are supported.
func Decode(data []byte) ([]byte, error) {
	var (
		src io.Reader
		err error
	)

	if isWAV(data) {
		src, err = wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(plainWAVHeader(data)))
		if err != nil {
			return nil, fmt.Errorf("decode wav: %w", err)
		}
	} else {
		src, err = mp3.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
	}

	pcm, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	// Drop a trailing partial frame
	pcm = pcm[:len(pcm)-len(pcm)%(ChannelCount*2)]
	if len(pcm) == 0 {
		return nil, errEmptySound
	}
	return pcm, nil
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// plainWAVHeader rewrites a WAVE_FORMAT_EXTENSIBLE format tag to the tag of
// its sub-format so the decoder accepts it. Other files are returned as is.
func plainWAVHeader(data []byte) []byte {
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8

		if id == "fmt " {
			if size < wavSubFormatOffset+16 || body+size > len(data) {
				return data
			}
			if binary.LittleEndian.Uint16(data[body:]) != wavFormatExtensible {
				return data
			}
			guid := data[body+wavSubFormatOffset : body+wavSubFormatOffset+16]
			if !bytes.Equal(guid[2:], ksDataFormatTail) {
				return data
			}

			out := bytes.Clone(data)
			copy(out[body:body+2], guid[0:2])
			return out
		}

		// Chunks are word aligned
		off = body + size + size%2
	}
	return data
}
