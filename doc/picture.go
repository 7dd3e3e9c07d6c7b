package doc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	// Registered so Picture.Config can size the formats Word embeds
	// most often alongside the stdlib PNG and JPEG decoders.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "image/jpeg"
	_ "image/png"
)

// PictureType identifies the on-disk encoding of an embedded picture.
type PictureType int

const (
	PictureUnknown PictureType = iota
	PictureEMF
	PictureWMF
	PicturePICT
	PictureJPEG
	PicturePNG
	PictureBMP
	PictureTIFF
)

// MIMEType reports the content type for the picture encoding.
func (t PictureType) MIMEType() string {
	switch t {
	case PictureEMF:
		return "image/x-emf"
	case PictureWMF:
		return "image/x-wmf"
	case PicturePICT:
		return "image/x-pict"
	case PictureJPEG:
		return "image/jpeg"
	case PicturePNG:
		return "image/png"
	case PictureBMP:
		return "image/bmp"
	case PictureTIFF:
		return "image/tiff"
	default:
		return "image/unknown"
	}
}

// Extension reports the conventional file extension, empty when unknown.
func (t PictureType) Extension() string {
	switch t {
	case PictureEMF:
		return "emf"
	case PictureWMF:
		return "wmf"
	case PicturePICT:
		return "pict"
	case PictureJPEG:
		return "jpg"
	case PicturePNG:
		return "png"
	case PictureBMP:
		return "bmp"
	case PictureTIFF:
		return "tiff"
	}
	return ""
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// detectPictureType sniffs the encoding from content signatures.
func detectPictureType(data []byte) PictureType {
	if len(data) < 8 {
		return PictureUnknown
	}
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return PicturePNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return PictureJPEG
	case bytes.HasPrefix(data, []byte("BM")):
		return PictureBMP
	case bytes.HasPrefix(data, []byte{0x49, 0x49, 0x2A, 0x00}),
		bytes.HasPrefix(data, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return PictureTIFF
	case len(data) >= 44 && bytes.Equal(data[40:44], []byte(" EMF")):
		return PictureEMF
	case bytes.HasPrefix(data, []byte{0xD7, 0xCD, 0xC6, 0x9A}),
		bytes.HasPrefix(data, []byte{0x01, 0x00, 0x09, 0x00}):
		return PictureWMF
	}
	return PictureUnknown
}

// PICF header field offsets and the picture block types that carry image
// content. Pasted and Word 2000 variants require the metafile mapping mode
// 0x64 that marks stored bitmaps.
const (
	picfBlockTypeOffset = 0x0E
	picfMmModeOffset    = 0x06
	picfMinHeader       = 0x44

	blockImage          = 0x08
	blockImageWord2000  = 0x00
	blockPasted         = 0x0A
	blockPastedWord2000 = 0x02
)

// zlib stream markers found at offset 32 of compressed picture content.
var (
	zlibBest    = []byte{0xFE, 0x78, 0xDA}
	zlibDefault = []byte{0xFE, 0x78, 0x9C}
)

// Picture is an embedded picture anchor. Only the offset is stored;
// content is extracted on demand from the stream the anchor points into.
type Picture struct {
	// Offset of the PICF block in the picture stream.
	Offset uint32

	stream []byte
}

// picfBlockHasImage reports whether the PICF block at off describes stored
// image content rather than a drawing primitive such as a horizontal rule.
func picfBlockHasImage(stream []byte, off uint32) bool {
	bt := int(off) + picfBlockTypeOffset
	mm := int(off) + picfMmModeOffset
	if bt >= len(stream) || mm >= len(stream) {
		return false
	}
	switch stream[bt] {
	case blockImage, blockPasted:
		return true
	case blockImageWord2000, blockPastedWord2000:
		return stream[mm] == 0x64
	}
	return false
}

// Data extracts the picture content: the bytes after the PICF header,
// inflated when the zlib markers are present, and trimmed to an embedded
// PNG signature when one appears mid-content.
func (p *Picture) Data() ([]byte, error) {
	off := int(p.Offset)
	if off+6 >= len(p.stream) {
		return nil, fmt.Errorf("%w: picture offset 0x%X out of range", ErrCorrupted, p.Offset)
	}
	lcb := int(binary.LittleEndian.Uint32(p.stream[off:]))
	cbHeader := int(binary.LittleEndian.Uint16(p.stream[off+4:]))
	if cbHeader < picfMinHeader || off+lcb > len(p.stream) || cbHeader > lcb {
		return nil, fmt.Errorf("%w: picture block at 0x%X has bad sizes", ErrCorrupted, p.Offset)
	}
	content := p.stream[off+cbHeader : off+lcb]

	if len(content) > 35 &&
		(bytes.Equal(content[32:35], zlibBest) || bytes.Equal(content[32:35], zlibDefault)) {
		r, err := zlib.NewReader(bytes.NewReader(content[33:]))
		if err != nil {
			return nil, fmt.Errorf("%w: picture inflate: %v", ErrCorrupted, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: picture inflate: %v", ErrCorrupted, err)
		}
		return out, nil
	}
	if i := bytes.Index(content, pngSignature); i > 0 {
		content = content[i:]
	}
	return content, nil
}

// Type sniffs the picture encoding from its content.
func (p *Picture) Type() PictureType {
	data, err := p.Data()
	if err != nil {
		return PictureUnknown
	}
	return detectPictureType(data)
}

// Config decodes the picture's dimensions and color model. Metafile
// encodings have no registered decoder and report an error.
func (p *Picture) Config() (image.Config, error) {
	data, err := p.Data()
	if err != nil {
		return image.Config{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, fmt.Errorf("doc: picture config: %w", err)
	}
	return cfg, nil
}

// SuggestedFilename derives a stable name from the anchor offset and the
// sniffed encoding.
func (p *Picture) SuggestedFilename() string {
	if ext := p.Type().Extension(); ext != "" {
		return fmt.Sprintf("%x.%s", p.Offset, ext)
	}
	return fmt.Sprintf("%x", p.Offset)
}
