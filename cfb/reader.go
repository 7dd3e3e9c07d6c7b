// Package cfb reads OLE2 compound file binary (CFB) containers, the
// structured-storage format that wraps legacy Office documents. It exposes
// named streams; interpreting stream contents is left to format packages.
package cfb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Errors returned by the container reader.
var (
	ErrNotCompoundFile = errors.New("cfb: not a compound file")
	ErrStreamNotFound  = errors.New("cfb: stream not found")
	ErrCorrupted       = errors.New("cfb: corrupted container")
)

// Compound file signature, always the first 8 bytes of a valid container.
var signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Special sector identifiers used in FAT/DIFAT chains.
const (
	freeSector   = 0xFFFFFFFF
	endOfChain   = 0xFFFFFFFE
	fatSector    = 0xFFFFFFFD
	difatSector  = 0xFFFFFFFC
	maxRegularID = 0xFFFFFFFA
)

const headerSize = 512

// Reader provides access to the streams of a compound file.
type Reader struct {
	data []byte

	sectorSize     int
	miniSectorSize int
	miniCutoff     uint32

	fat     []uint32
	miniFAT []uint32

	entries    []dirEntry
	root       *dirEntry
	miniStream []byte
}

// Open reads a compound file from disk.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return New(data)
}

// New parses a compound file from an in-memory byte slice. The Reader
// retains the slice; callers must not modify it afterwards.
func New(data []byte) (*Reader, error) {
	if len(data) < headerSize {
		return nil, ErrNotCompoundFile
	}
	for i, b := range signature {
		if data[i] != b {
			return nil, ErrNotCompoundFile
		}
	}

	sectorShift := binary.LittleEndian.Uint16(data[30:32])
	miniShift := binary.LittleEndian.Uint16(data[32:34])
	if sectorShift != 9 && sectorShift != 12 {
		return nil, fmt.Errorf("%w: sector shift %d", ErrCorrupted, sectorShift)
	}
	if miniShift != 6 {
		return nil, fmt.Errorf("%w: mini sector shift %d", ErrCorrupted, miniShift)
	}

	r := &Reader{
		data:           data,
		sectorSize:     1 << sectorShift,
		miniSectorSize: 1 << miniShift,
		miniCutoff:     binary.LittleEndian.Uint32(data[56:60]),
	}

	numFATSectors := binary.LittleEndian.Uint32(data[44:48])
	firstDirSector := binary.LittleEndian.Uint32(data[48:52])
	firstMiniFAT := binary.LittleEndian.Uint32(data[60:64])
	numMiniFAT := binary.LittleEndian.Uint32(data[64:68])
	firstDIFAT := binary.LittleEndian.Uint32(data[68:72])
	numDIFAT := binary.LittleEndian.Uint32(data[72:76])

	if err := r.loadFAT(numFATSectors, firstDIFAT, numDIFAT); err != nil {
		return nil, err
	}
	if err := r.loadMiniFAT(firstMiniFAT, numMiniFAT); err != nil {
		return nil, err
	}
	if err := r.loadDirectory(firstDirSector); err != nil {
		return nil, err
	}
	return r, nil
}

// sector returns the raw bytes of a regular sector.
func (r *Reader) sector(id uint32) ([]byte, error) {
	off := headerSize + int(id)*r.sectorSize
	if id > maxRegularID || off+r.sectorSize > len(r.data) {
		return nil, fmt.Errorf("%w: sector %d out of range", ErrCorrupted, id)
	}
	return r.data[off : off+r.sectorSize], nil
}

// loadFAT reads the DIFAT (109 header slots plus any chained DIFAT
// sectors) and materializes the full file allocation table.
func (r *Reader) loadFAT(numFATSectors, firstDIFAT, numDIFAT uint32) error {
	var fatSectorIDs []uint32
	for i := 0; i < 109; i++ {
		id := binary.LittleEndian.Uint32(r.data[76+i*4 : 80+i*4])
		if id <= maxRegularID {
			fatSectorIDs = append(fatSectorIDs, id)
		}
	}

	// Chained DIFAT sectors; the final uint32 of each points to the next.
	perSector := r.sectorSize/4 - 1
	id := firstDIFAT
	for n := uint32(0); n < numDIFAT && id <= maxRegularID; n++ {
		sec, err := r.sector(id)
		if err != nil {
			return err
		}
		for i := 0; i < perSector; i++ {
			fid := binary.LittleEndian.Uint32(sec[i*4 : i*4+4])
			if fid <= maxRegularID {
				fatSectorIDs = append(fatSectorIDs, fid)
			}
		}
		id = binary.LittleEndian.Uint32(sec[perSector*4:])
	}

	if uint32(len(fatSectorIDs)) < numFATSectors {
		return fmt.Errorf("%w: DIFAT lists %d FAT sectors, header declares %d",
			ErrCorrupted, len(fatSectorIDs), numFATSectors)
	}

	r.fat = make([]uint32, 0, len(fatSectorIDs)*r.sectorSize/4)
	for _, fid := range fatSectorIDs {
		sec, err := r.sector(fid)
		if err != nil {
			return err
		}
		for i := 0; i+4 <= len(sec); i += 4 {
			r.fat = append(r.fat, binary.LittleEndian.Uint32(sec[i:i+4]))
		}
	}
	return nil
}

// loadMiniFAT reads the mini-FAT sector chain, if present.
func (r *Reader) loadMiniFAT(first, count uint32) error {
	if first > maxRegularID || count == 0 {
		return nil
	}
	chain, err := r.chain(first, r.fat)
	if err != nil {
		return err
	}
	for _, id := range chain {
		sec, err := r.sector(id)
		if err != nil {
			return err
		}
		for i := 0; i+4 <= len(sec); i += 4 {
			r.miniFAT = append(r.miniFAT, binary.LittleEndian.Uint32(sec[i:i+4]))
		}
	}
	return nil
}

// chain follows a sector chain from start through the given allocation
// table, guarding against cycles and out-of-range links.
func (r *Reader) chain(start uint32, table []uint32) ([]uint32, error) {
	var ids []uint32
	for id := start; id != endOfChain; {
		if id > maxRegularID || int(id) >= len(table) {
			return nil, fmt.Errorf("%w: chain links to sector %d", ErrCorrupted, id)
		}
		ids = append(ids, id)
		if len(ids) > len(table) {
			return nil, fmt.Errorf("%w: sector chain cycle", ErrCorrupted)
		}
		id = table[id]
	}
	return ids, nil
}

// readChain concatenates a FAT sector chain and truncates to size.
func (r *Reader) readChain(start uint32, size uint64) ([]byte, error) {
	ids, err := r.chain(start, r.fat)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(ids)*r.sectorSize)
	for _, id := range ids {
		sec, err := r.sector(id)
		if err != nil {
			return nil, err
		}
		out = append(out, sec...)
	}
	if uint64(len(out)) < size {
		return nil, fmt.Errorf("%w: stream of %d bytes has only %d in chain",
			ErrCorrupted, size, len(out))
	}
	return out[:size], nil
}

// readMiniChain reads a stream stored in the mini stream via the mini-FAT.
func (r *Reader) readMiniChain(start uint32, size uint64) ([]byte, error) {
	if r.miniStream == nil {
		if r.root == nil {
			return nil, fmt.Errorf("%w: mini stream without root entry", ErrCorrupted)
		}
		ms, err := r.readChain(r.root.startSector, r.root.size)
		if err != nil {
			return nil, err
		}
		r.miniStream = ms
	}
	ids, err := r.chain(start, r.miniFAT)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(ids)*r.miniSectorSize)
	for _, id := range ids {
		off := int(id) * r.miniSectorSize
		if off+r.miniSectorSize > len(r.miniStream) {
			return nil, fmt.Errorf("%w: mini sector %d out of range", ErrCorrupted, id)
		}
		out = append(out, r.miniStream[off:off+r.miniSectorSize]...)
	}
	if uint64(len(out)) < size {
		return nil, fmt.Errorf("%w: mini stream truncated", ErrCorrupted)
	}
	return out[:size], nil
}

// Exists reports whether a stream with the given name is present.
func (r *Reader) Exists(name string) bool {
	return r.findStream(name) != nil
}

// ListStreams returns the names of all streams in the container.
func (r *Reader) ListStreams() []string {
	var names []string
	for i := range r.entries {
		if r.entries[i].entryType == entryTypeStream {
			names = append(names, r.entries[i].name)
		}
	}
	return names
}

// OpenStream returns the full contents of the named stream.
func (r *Reader) OpenStream(name string) ([]byte, error) {
	e := r.findStream(name)
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrStreamNotFound, name)
	}
	if e.size == 0 {
		return nil, nil
	}
	if e.size < uint64(r.miniCutoff) {
		return r.readMiniChain(e.startSector, e.size)
	}
	return r.readChain(e.startSector, e.size)
}

func (r *Reader) findStream(name string) *dirEntry {
	for i := range r.entries {
		if r.entries[i].entryType == entryTypeStream && r.entries[i].name == name {
			return &r.entries[i]
		}
	}
	return nil
}
