package pointcloud

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// LAS public header offsets (ASPRS LAS 1.0-1.4).
const (
	lasMinHeaderSize      = 227
	lasOffsetHeaderSize   = 94
	lasOffsetPointData    = 96
	lasOffsetPointFormat  = 104
	lasOffsetRecordLength = 105
	lasOffsetLegacyCount  = 107
	lasOffsetScale        = 131
	lasOffsetOrigin       = 155
	lasOffsetCount14      = 247
	lasHeaderSize14       = 375
)

// decodeLAS reads X/Y/Z from every point record of an uncompressed LAS file,
// applying the header's scale and offset.
func decodeLAS(data []byte) (*Cloud, error) {
	if len(data) < lasMinHeaderSize || string(data[:4]) != "LASF" {
		return nil, malformedf("missing LASF signature")
	}
	le := binary.LittleEndian

	headerSize := int(le.Uint16(data[lasOffsetHeaderSize:]))
	pointData := int(le.Uint32(data[lasOffsetPointData:]))
	format := data[lasOffsetPointFormat]
	recordLen := int(le.Uint16(data[lasOffsetRecordLength:]))
	count := uint64(le.Uint32(data[lasOffsetLegacyCount:]))
	if count == 0 && headerSize >= lasHeaderSize14 && len(data) >= lasHeaderSize14 {
		count = le.Uint64(data[lasOffsetCount14:])
	}

	if format&0xC0 != 0 {
		return nil, fmt.Errorf("%w: compressed LAS point format %d", ErrUnsupportedFormat, format)
	}
	if recordLen < 12 {
		return nil, malformedf("LAS point record length %d", recordLen)
	}
	if pointData < headerSize || pointData > len(data) {
		return nil, malformedf("LAS point data offset %d outside file of %d bytes", pointData, len(data))
	}
	if count > uint64(len(data)-pointData)/uint64(recordLen) {
		return nil, malformedf("LAS declares %d points but file ends at byte %d", count, len(data))
	}

	var scale, origin [3]float64
	for i := range 3 {
		scale[i] = math.Float64frombits(le.Uint64(data[lasOffsetScale+8*i:]))
		origin[i] = math.Float64frombits(le.Uint64(data[lasOffsetOrigin+8*i:]))
	}

	pts := make([]r3.Vector, 0, count)
	for i := range int(count) {
		rec := data[pointData+i*recordLen:]
		appendFinite(&pts, [3]float64{
			float64(int32(le.Uint32(rec[0:])))*scale[0] + origin[0],
			float64(int32(le.Uint32(rec[4:])))*scale[1] + origin[1],
			float64(int32(le.Uint32(rec[8:])))*scale[2] + origin[2],
		})
	}
	return &Cloud{points: pts}, nil
}
