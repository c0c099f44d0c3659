package pointcloud

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// pcdHeader is the subset of a PCD v0.7 header needed to locate x, y and z.
type pcdHeader struct {
	fields []string
	size   []int
	typ    []string
	count  []int
	width  int
	height int
	points int
	data   string
}

// pcdField locates one scalar field inside a point record.
type pcdField struct {
	column int // ascii column index
	offset int // binary byte offset
	size   int
}

func decodePCD(data []byte) (*Cloud, error) {
	h, body, err := parsePCDHeader(data)
	if err != nil {
		return nil, err
	}

	var xyz [3]pcdField
	for i, name := range []string{"x", "y", "z"} {
		f, err := h.locate(name)
		if err != nil {
			return nil, err
		}
		xyz[i] = f
	}

	switch h.data {
	case "ascii":
		return decodePCDASCII(h, xyz, body)
	case "binary":
		return decodePCDBinary(h, xyz, body)
	case "binary_compressed":
		return nil, fmt.Errorf("%w: PCD DATA binary_compressed", ErrUnsupportedFormat)
	default:
		return nil, malformedf("unknown PCD DATA %q", h.data)
	}
}

func parsePCDHeader(data []byte) (*pcdHeader, []byte, error) {
	h := &pcdHeader{}
	rest := data
	for len(rest) > 0 {
		var line []byte
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, nil
		}
		text := strings.TrimSpace(string(line))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		key, vals := strings.ToUpper(parts[0]), parts[1:]

		var err error
		switch key {
		case "VERSION", "VIEWPOINT":
		case "FIELDS":
			h.fields = vals
		case "SIZE":
			h.size, err = atois(vals)
		case "TYPE":
			h.typ = vals
		case "COUNT":
			h.count, err = atois(vals)
		case "WIDTH":
			h.width, err = atoi1(vals)
		case "HEIGHT":
			h.height, err = atoi1(vals)
		case "POINTS":
			h.points, err = atoi1(vals)
		case "DATA":
			if len(vals) != 1 {
				return nil, nil, malformedf("PCD DATA line %q", text)
			}
			h.data = strings.ToLower(vals[0])
			return h, rest, h.normalize()
		default:
			return nil, nil, malformedf("unexpected PCD header line %q", text)
		}
		if err != nil {
			return nil, nil, malformedf("PCD %s: %v", key, err)
		}
	}
	return nil, nil, malformedf("PCD header has no DATA line")
}

func (h *pcdHeader) normalize() error {
	if len(h.fields) == 0 {
		return malformedf("PCD header has no FIELDS")
	}
	if h.count == nil {
		h.count = make([]int, len(h.fields))
		for i := range h.count {
			h.count[i] = 1
		}
	}
	if h.points < 0 || h.width < 0 || h.height < 0 {
		return malformedf("PCD WIDTH/HEIGHT/POINTS must not be negative")
	}
	if h.points == 0 {
		if h.height > 0 && h.width > math.MaxInt/h.height {
			return malformedf("PCD WIDTH*HEIGHT overflows")
		}
		h.points = h.width * h.height
	}
	if h.data == "binary" && (len(h.size) != len(h.fields) || len(h.typ) != len(h.fields)) {
		return malformedf("PCD SIZE/TYPE do not match FIELDS")
	}
	if len(h.count) != len(h.fields) {
		return malformedf("PCD COUNT does not match FIELDS")
	}
	return nil
}

func (h *pcdHeader) locate(name string) (pcdField, error) {
	column, offset := 0, 0
	for i, f := range h.fields {
		if f == name {
			field := pcdField{column: column, offset: offset}
			if h.data == "binary" {
				if h.typ[i] != "F" || (h.size[i] != 4 && h.size[i] != 8) {
					return pcdField{}, malformedf("PCD field %s must be F4 or F8, got %s%d", name, h.typ[i], h.size[i])
				}
				field.size = h.size[i]
			}
			return field, nil
		}
		column += h.count[i]
		if i < len(h.size) {
			offset += h.size[i] * h.count[i]
		}
	}
	return pcdField{}, malformedf("PCD has no %q field", name)
}

func (h *pcdHeader) recordSize() int {
	n := 0
	for i := range h.fields {
		n += h.size[i] * h.count[i]
	}
	return n
}

func decodePCDASCII(h *pcdHeader, xyz [3]pcdField, body []byte) (*Cloud, error) {
	// every point line takes at least one byte, so body length bounds the count
	pts := make([]r3.Vector, 0, min(h.points, len(body)))
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	read := 0
	for read < h.points && scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}
		read++
		var v [3]float64
		for i, f := range xyz {
			if f.column >= len(cols) {
				return nil, malformedf("PCD point %d has %d columns", read, len(cols))
			}
			x, err := strconv.ParseFloat(cols[f.column], 64)
			if err != nil {
				return nil, malformedf("PCD point %d: %v", read, err)
			}
			v[i] = x
		}
		appendFinite(&pts, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformedf("%v", err)
	}
	if read < h.points {
		return nil, malformedf("PCD declares %d points, found %d", h.points, read)
	}
	return &Cloud{points: pts}, nil
}

func decodePCDBinary(h *pcdHeader, xyz [3]pcdField, body []byte) (*Cloud, error) {
	rec := h.recordSize()
	if rec <= 0 {
		return nil, malformedf("PCD record size %d", rec)
	}
	if h.points > len(body)/rec {
		return nil, malformedf("PCD binary body has %d bytes, need %d records of %d", len(body), h.points, rec)
	}
	pts := make([]r3.Vector, 0, h.points)
	for i := 0; i < h.points; i++ {
		record := body[i*rec : (i+1)*rec]
		var v [3]float64
		for j, f := range xyz {
			b := record[f.offset : f.offset+f.size]
			if f.size == 4 {
				v[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
			} else {
				v[j] = math.Float64frombits(binary.LittleEndian.Uint64(b))
			}
		}
		appendFinite(&pts, v)
	}
	return &Cloud{points: pts}, nil
}

// appendFinite drops points carrying NaN or infinite coordinates.
func appendFinite(pts *[]r3.Vector, v [3]float64) {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return
		}
	}
	*pts = append(*pts, r3.Vector{X: v[0], Y: v[1], Z: v[2]})
}

func atois(vals []string) ([]int, error) {
	out := make([]int, len(vals))
	for i, s := range vals {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func atoi1(vals []string) (int, error) {
	if len(vals) != 1 {
		return 0, fmt.Errorf("want one value, got %d", len(vals))
	}
	return strconv.Atoi(vals[0])
}
