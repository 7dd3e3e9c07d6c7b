package doc

import (
	"encoding/binary"
	"time"
)

// Property-stream names. The leading \x05 marks them as control streams in
// the compound container.
const (
	summaryStreamName    = "\x05SummaryInformation"
	docSummaryStreamName = "\x05DocumentSummaryInformation"
)

// Property value types from the property-set serialization.
const (
	vtI2       = 0x0002
	vtI4       = 0x0003
	vtBool     = 0x000B
	vtUI2      = 0x0012
	vtUI4      = 0x0013
	vtLPSTR    = 0x001E
	vtLPWSTR   = 0x001F
	vtFiletime = 0x0040
)

// SummaryInformation property identifiers.
const (
	pidTitle       = 2
	pidSubject     = 3
	pidAuthor      = 4
	pidKeywords    = 5
	pidComments    = 6
	pidTemplate    = 7
	pidLastAuthor  = 8
	pidRevNumber   = 9
	pidEditTime    = 10
	pidLastPrinted = 11
	pidCreated     = 12
	pidLastSaved   = 13
	pidPageCount   = 14
	pidWordCount   = 15
	pidCharCount   = 16
	pidAppName     = 18
)

// DocumentSummaryInformation property identifiers.
const (
	pidCategory = 2
	pidManager  = 14
	pidCompany  = 15
)

// Metadata holds the standard document properties from the container's
// summary streams. String fields are empty and times zero when the source
// property is absent.
type Metadata struct {
	Title       string
	Subject     string
	Author      string
	Keywords    string
	Comments    string
	Template    string
	LastAuthor  string
	RevNumber   string
	AppName     string
	Category    string
	Manager     string
	Company     string
	Created     time.Time
	LastSaved   time.Time
	LastPrinted time.Time
	EditTime    time.Duration
	PageCount   uint32
	WordCount   uint32
	CharCount   uint32
}

// propValue is one decoded property. Exactly one field is meaningful,
// selected by the property type at decode time.
type propValue struct {
	str string
	u32 uint32
	ft  uint64
}

// parsePropertyStream decodes a property-set stream into id/value pairs.
// Only the first section is read; that is where both summary streams keep
// the standard properties.
func parsePropertyStream(data []byte) map[uint32]propValue {
	if len(data) < 48 {
		return nil
	}
	section := int(binary.LittleEndian.Uint32(data[44:48]))
	if section < 0 || section+8 > len(data) {
		return nil
	}
	count := int(binary.LittleEndian.Uint32(data[section+4 : section+8]))
	if count > 1000 {
		count = 1000
	}
	props := make(map[uint32]propValue, count)
	for i := 0; i < count; i++ {
		rec := section + 8 + i*8
		if rec+8 > len(data) {
			break
		}
		id := binary.LittleEndian.Uint32(data[rec:])
		off := section + int(binary.LittleEndian.Uint32(data[rec+4:]))
		if off < 0 || off+4 > len(data) {
			continue
		}
		typ := binary.LittleEndian.Uint16(data[off:])
		if v, ok := parsePropValue(data, off+4, typ); ok {
			props[id] = v
		}
	}
	return props
}

func parsePropValue(data []byte, off int, typ uint16) (propValue, bool) {
	switch typ {
	case vtI2, vtUI2:
		if off+2 > len(data) {
			return propValue{}, false
		}
		return propValue{u32: uint32(binary.LittleEndian.Uint16(data[off:]))}, true
	case vtI4, vtUI4:
		if off+4 > len(data) {
			return propValue{}, false
		}
		return propValue{u32: binary.LittleEndian.Uint32(data[off:])}, true
	case vtBool:
		if off+2 > len(data) {
			return propValue{}, false
		}
		if binary.LittleEndian.Uint16(data[off:]) != 0 {
			return propValue{u32: 1}, true
		}
		return propValue{}, true
	case vtLPSTR:
		if off+4 > len(data) {
			return propValue{}, false
		}
		n := int(binary.LittleEndian.Uint32(data[off:]))
		if n < 0 || off+4+n > len(data) {
			return propValue{}, false
		}
		s := data[off+4 : off+4+n]
		// NUL terminated, with the terminator included in the count.
		for len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		return propValue{str: charsString(decodeSingleByteChars(s, 0))}, true
	case vtLPWSTR:
		if off+4 > len(data) {
			return propValue{}, false
		}
		n := int(binary.LittleEndian.Uint32(data[off:])) // in UTF-16 units
		if n < 0 || off+4+n*2 > len(data) {
			return propValue{}, false
		}
		s := charsString(decodeUTF16Chars(data[off+4:off+4+n*2], 0))
		for len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		return propValue{str: s}, true
	case vtFiletime:
		if off+8 > len(data) {
			return propValue{}, false
		}
		return propValue{ft: binary.LittleEndian.Uint64(data[off:])}, true
	}
	return propValue{}, false
}

// filetimeEpochDiff is the count of 100ns intervals between the Windows
// epoch (1601-01-01) and the Unix epoch.
const filetimeEpochDiff = 116444736000000000

func filetimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	return time.Unix(0, (int64(ft)-filetimeEpochDiff)*100).UTC()
}

// parseMetadata assembles Metadata from whichever summary streams the
// container carries. Both streams are optional.
func parseMetadata(container Container) Metadata {
	var md Metadata
	if data, err := container.OpenStream(summaryStreamName); err == nil {
		props := parsePropertyStream(data)
		md.Title = props[pidTitle].str
		md.Subject = props[pidSubject].str
		md.Author = props[pidAuthor].str
		md.Keywords = props[pidKeywords].str
		md.Comments = props[pidComments].str
		md.Template = props[pidTemplate].str
		md.LastAuthor = props[pidLastAuthor].str
		md.RevNumber = props[pidRevNumber].str
		md.AppName = props[pidAppName].str
		md.Created = filetimeToTime(props[pidCreated].ft)
		md.LastSaved = filetimeToTime(props[pidLastSaved].ft)
		md.LastPrinted = filetimeToTime(props[pidLastPrinted].ft)
		// Edit time is a duration stored in FILETIME units.
		md.EditTime = time.Duration(props[pidEditTime].ft) * 100 * time.Nanosecond
		md.PageCount = props[pidPageCount].u32
		md.WordCount = props[pidWordCount].u32
		md.CharCount = props[pidCharCount].u32
	}
	if data, err := container.OpenStream(docSummaryStreamName); err == nil {
		props := parsePropertyStream(data)
		md.Category = props[pidCategory].str
		md.Manager = props[pidManager].str
		md.Company = props[pidCompany].str
	}
	return md
}
