package pointcloud

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Save writes c to path in the format implied by its extension. Text formats
// and ASCII PCD are supported.
func Save(path string, c *Cloud) error {
	var encode func(io.Writer, *Cloud) error
	switch ext := Extension(path); ext {
	case "xyz", "txt", "pts":
		encode = func(w io.Writer, c *Cloud) error { return encodeASCII(w, c, ' ') }
	case "csv":
		encode = func(w io.Writer, c *Cloud) error { return encodeASCII(w, c, ',') }
	case "pcd":
		encode = encodePCD
	default:
		return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := encode(w, c); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func encodeASCII(w io.Writer, c *Cloud, sep byte) error {
	for i := range c.Len() {
		p := c.At(i)
		line := formatCoord(p.X) + string(sep) + formatCoord(p.Y) + string(sep) + formatCoord(p.Z) + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func encodePCD(w io.Writer, c *Cloud) error {
	n := c.Len()
	header := fmt.Sprintf("# .PCD v0.7 - Point Cloud Data file format\n"+
		"VERSION 0.7\nFIELDS x y z\nSIZE 8 8 8\nTYPE F F F\nCOUNT 1 1 1\n"+
		"WIDTH %d\nHEIGHT 1\nVIEWPOINT 0 0 0 1 0 0 0\nPOINTS %d\nDATA ascii\n", n, n)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	return encodeASCII(w, c, ' ')
}
