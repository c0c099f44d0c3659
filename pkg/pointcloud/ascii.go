package pointcloud

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// decodeASCII reads one point per line from the first three numeric columns.
// Columns may be separated by whitespace, commas or semicolons. Blank lines,
// '#' comments and lines whose leading columns are not numeric (headers) are
// skipped, as are points with NaN or infinite coordinates.
func decodeASCII(data []byte) (*Cloud, error) {
	var pts []r3.Vector
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		v, ok := parseXYZ(fields)
		if !ok {
			continue
		}
		appendFinite(&pts, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformedf("%v", err)
	}
	return &Cloud{points: pts}, nil
}

func parseXYZ(fields []string) ([3]float64, bool) {
	var xyz [3]float64
	if len(fields) < 3 {
		return xyz, false
	}
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return xyz, false
		}
		xyz[i] = v
	}
	return xyz, true
}
