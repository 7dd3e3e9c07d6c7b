package cfb

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Directory entry types.
const (
	entryTypeUnused  = 0
	entryTypeStorage = 1
	entryTypeStream  = 2
	entryTypeRoot    = 5
)

const dirEntrySize = 128

// dirEntry is one 128-byte record of the directory stream.
type dirEntry struct {
	name        string
	entryType   byte
	startSector uint32
	size        uint64
}

// loadDirectory walks the directory sector chain and decodes every entry.
func (r *Reader) loadDirectory(first uint32) error {
	raw, err := r.chainBytes(first)
	if err != nil {
		return err
	}
	for off := 0; off+dirEntrySize <= len(raw); off += dirEntrySize {
		rec := raw[off : off+dirEntrySize]
		e, ok := parseDirEntry(rec)
		if !ok {
			continue
		}
		r.entries = append(r.entries, e)
		if e.entryType == entryTypeRoot && r.root == nil {
			r.root = &r.entries[len(r.entries)-1]
		}
	}
	if r.root == nil {
		return fmt.Errorf("%w: no root directory entry", ErrCorrupted)
	}
	return nil
}

// chainBytes concatenates a whole FAT chain without size truncation,
// which is how the directory stream is stored (its length is implicit).
func (r *Reader) chainBytes(start uint32) ([]byte, error) {
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
	return out, nil
}

// parseDirEntry decodes a single directory record. Unused entries and
// entries with malformed names return ok=false.
func parseDirEntry(rec []byte) (dirEntry, bool) {
	entryType := rec[66]
	if entryType == entryTypeUnused {
		return dirEntry{}, false
	}

	nameLen := int(binary.LittleEndian.Uint16(rec[64:66]))
	if nameLen < 2 || nameLen > 64 || nameLen%2 != 0 {
		return dirEntry{}, false
	}
	units := make([]uint16, 0, nameLen/2-1)
	for i := 0; i < nameLen-2; i += 2 { // drop the UTF-16 NUL terminator
		units = append(units, binary.LittleEndian.Uint16(rec[i:i+2]))
	}

	return dirEntry{
		name:        string(utf16.Decode(units)),
		entryType:   entryType,
		startSector: binary.LittleEndian.Uint32(rec[116:120]),
		size:        binary.LittleEndian.Uint64(rec[120:128]),
	}, true
}
