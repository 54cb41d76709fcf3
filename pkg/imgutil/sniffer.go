package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies an image type by its leading magic bytes.
type Kind int

const (
	KindUnknown Kind = iota
	KindBMP
	KindPNG
	KindJPEG
	KindTIFF
)

func (k Kind) String() string {
	switch k {
	case KindBMP:
		return "bmp"
	case KindPNG:
		return "png"
	case KindJPEG:
		return "jpeg"
	case KindTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// HeaderSize is how many leading bytes SniffReader inspects.
const HeaderSize = 8

// ErrHeaderTooShort is returned when fewer bytes than a BMP signature are available.
var ErrHeaderTooShort = errors.New("header too short")

var (
	bmpSig    = []byte("BM")
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
)

// DetectHeader inspects the leading bytes of a file for known signatures.
// Two bytes are enough to recognise a bitmap; the longer signatures need
// their full length to match.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < len(bmpSig) {
		return KindUnknown, ErrHeaderTooShort
	}

	switch {
	case hasPrefix(header, bmpSig):
		return KindBMP, nil
	case hasPrefix(header, pngSig):
		return KindPNG, nil
	case hasPrefix(header, jpegSig):
		return KindJPEG, nil
	case hasPrefix(header, tiffSigLE), hasPrefix(header, tiffSigBE):
		return KindTIFF, nil
	}

	return KindUnknown, nil
}

// SniffFile reads the first bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads up to HeaderSize bytes from r and determines its type.
// Short inputs are fine as long as the signature fits.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n])
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
