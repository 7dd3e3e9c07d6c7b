package doc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngBytes encodes a tiny PNG of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// buildPicStream assembles a stream holding one PICF block at off with the
// given content.
func buildPicStream(t *testing.T, off int, content []byte) []byte {
	t.Helper()
	const cbHeader = picfMinHeader
	stream := make([]byte, off+cbHeader+len(content))
	binary.LittleEndian.PutUint32(stream[off:], uint32(cbHeader+len(content)))
	binary.LittleEndian.PutUint16(stream[off+4:], cbHeader)
	stream[off+picfBlockTypeOffset] = blockImage
	copy(stream[off+cbHeader:], content)
	return stream
}

func TestPictureData(t *testing.T) {
	content := pngBytes(t, 3, 2)
	stream := buildPicStream(t, 0x40, content)

	p := &Picture{Offset: 0x40, stream: stream}
	got, err := p.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Data() = %d bytes, want %d", len(got), len(content))
	}
	if p.Type() != PicturePNG {
		t.Errorf("Type() = %v, want PNG", p.Type())
	}

	cfg, err := p.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("Config = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}

func TestPictureDataCompressed(t *testing.T) {
	content := pngBytes(t, 2, 2)
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write(content)
	zw.Close()

	// Compressed content: 32 filler bytes, the 0xFE marker, then the
	// zlib stream (whose first byte 0x78 doubles as the marker tail).
	raw := make([]byte, 33)
	raw[32] = 0xFE
	raw = append(raw, compressed.Bytes()...)

	p := &Picture{Offset: 0, stream: buildPicStream(t, 0, raw)}
	got, err := p.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("inflated content mismatch: %d bytes, want %d", len(got), len(content))
	}
}

func TestPictureDataBadOffset(t *testing.T) {
	p := &Picture{Offset: 0x1000, stream: make([]byte, 16)}
	if _, err := p.Data(); !errors.Is(err, ErrCorrupted) {
		t.Errorf("Data = %v, want ErrCorrupted", err)
	}
}

func TestPictureTypeDetection(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want PictureType
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, PictureJPEG},
		{"bmp", append([]byte("BM"), make([]byte, 8)...), PictureBMP},
		{"tiff le", []byte{0x49, 0x49, 0x2A, 0x00, 0, 0, 0, 0}, PictureTIFF},
		{"tiff be", []byte{0x4D, 0x4D, 0x00, 0x2A, 0, 0, 0, 0}, PictureTIFF},
		{"wmf placeable", []byte{0xD7, 0xCD, 0xC6, 0x9A, 0, 0, 0, 0}, PictureWMF},
		{"wmf standard", []byte{0x01, 0x00, 0x09, 0x00, 0, 0, 0, 0}, PictureWMF},
		{"unknown", []byte{0, 1, 2, 3, 4, 5, 6, 7}, PictureUnknown},
		{"too short", []byte{0xFF}, PictureUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectPictureType(tc.data); got != tc.want {
				t.Errorf("detectPictureType = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPictureTypeEMF(t *testing.T) {
	data := make([]byte, 44)
	copy(data[40:], " EMF")
	if got := detectPictureType(data); got != PictureEMF {
		t.Errorf("detectPictureType = %v, want EMF", got)
	}
}

func TestPicfBlockHasImage(t *testing.T) {
	stream := make([]byte, 32)
	stream[picfBlockTypeOffset] = blockImage
	if !picfBlockHasImage(stream, 0) {
		t.Error("block type image = false, want true")
	}

	stream[picfBlockTypeOffset] = blockImageWord2000
	if picfBlockHasImage(stream, 0) {
		t.Error("Word 2000 block without bitmap mode = true, want false")
	}
	stream[picfMmModeOffset] = 0x64
	if !picfBlockHasImage(stream, 0) {
		t.Error("Word 2000 block with bitmap mode = false, want true")
	}

	if picfBlockHasImage(stream, 0x8000) {
		t.Error("out-of-range offset = true, want false")
	}
}

func TestSuggestedFilename(t *testing.T) {
	content := pngBytes(t, 1, 1)
	p := &Picture{Offset: 0x40, stream: buildPicStream(t, 0x40, content)}
	if got := p.SuggestedFilename(); got != "40.png" {
		t.Errorf("SuggestedFilename() = %q, want 40.png", got)
	}
}
