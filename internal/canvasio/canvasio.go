// Package canvasio stores escape-count canvases losslessly.
//
// A dump is a zstd stream holding a 24-byte little-endian header followed
// by width·height float32 values in row-major order:
//
//	offset  size  field
//	0       4     magic "Z0MX"
//	4       4     version (1)
//	8       4     width
//	12      4     height
//	16      4     max iterations
//	20      4     reserved (0)
//
// Reading a dump restores the canvas bit for bit, so an image can be
// re-rendered with other colours without recomputing.
package canvasio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/z0matrix"
)

const (
	magic      = "Z0MX"
	version    = 1
	headerSize = 24
)

// ErrBadDump is returned when a stream is not a canvas dump this package
// can read.
var ErrBadDump = errors.New("canvasio: not a z0matrix canvas dump")

// Header describes a dump.
type Header struct {
	Width   int
	Height  int
	MaxIter int
}

var encoderPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		return dec
	},
}

// Write compresses r and maxIter to w.
func Write(w io.Writer, r *z0matrix.Raster, maxIter int) error {
	if r.Width > math.MaxUint32 || r.Height > math.MaxUint32 || maxIter < 0 || maxIter > math.MaxUint32 {
		return fmt.Errorf("canvasio: canvas %dx%d with max_iter %d does not fit the header", r.Width, r.Height, maxIter)
	}

	enc := encoderPool.Get().(*zstd.Encoder)
	enc.Reset(w)
	defer encoderPool.Put(enc)

	hdr := make([]byte, 0, headerSize)
	hdr = append(hdr, magic...)
	hdr = binary.LittleEndian.AppendUint32(hdr, version)
	//nolint:gosec // G115: bounds checked above
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(r.Width))
	//nolint:gosec // G115: bounds checked above
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(r.Height))
	//nolint:gosec // G115: bounds checked above
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(maxIter))
	hdr = binary.LittleEndian.AppendUint32(hdr, 0)

	if _, err := enc.Write(hdr); err != nil {
		_ = enc.Close()
		return fmt.Errorf("canvasio: write header: %w", err)
	}

	row := make([]byte, 0, r.Width*4)
	for y := range r.Height {
		row = row[:0]
		for _, v := range r.Row(y) {
			row = binary.LittleEndian.AppendUint32(row, math.Float32bits(v))
		}
		if _, err := enc.Write(row); err != nil {
			_ = enc.Close()
			return fmt.Errorf("canvasio: write row %d: %w", y, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("canvasio: flush: %w", err)
	}
	return nil
}

// Read decompresses a dump written by Write.
func Read(src io.Reader) (*z0matrix.Raster, int, error) {
	dec := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(dec)
	if err := dec.Reset(src); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBadDump, err)
	}

	h, err := readHeader(dec)
	if err != nil {
		return nil, 0, err
	}

	r := z0matrix.NewRaster(h.Width, h.Height)
	row := make([]byte, h.Width*4)
	for y := range h.Height {
		if _, err := io.ReadFull(dec, row); err != nil {
			return nil, 0, fmt.Errorf("canvasio: read row %d of %d: %w", y, h.Height, truncated(err))
		}
		dst := r.Row(y)
		for x := range dst {
			dst[x] = math.Float32frombits(binary.LittleEndian.Uint32(row[x*4:]))
		}
	}

	return r, h.MaxIter, nil
}

func readHeader(dec io.Reader) (Header, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(dec, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: short header", ErrBadDump)
		}
		if errors.Is(err, zstd.ErrMagicMismatch) {
			return Header{}, fmt.Errorf("%w: %w", ErrBadDump, err)
		}
		return Header{}, fmt.Errorf("canvasio: read header: %w", err)
	}

	if !bytes.Equal(hdr[:4], []byte(magic)) {
		return Header{}, fmt.Errorf("%w: magic %q", ErrBadDump, hdr[:4])
	}
	if v := binary.LittleEndian.Uint32(hdr[4:]); v != version {
		return Header{}, fmt.Errorf("%w: version %d", ErrBadDump, v)
	}

	h := Header{
		Width:   int(binary.LittleEndian.Uint32(hdr[8:])),
		Height:  int(binary.LittleEndian.Uint32(hdr[12:])),
		MaxIter: int(binary.LittleEndian.Uint32(hdr[16:])),
	}
	if h.Width > z0matrix.MaxCanvasSide || h.Height > z0matrix.MaxCanvasSide {
		return Header{}, fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", ErrBadDump, h.Width, h.Height, z0matrix.MaxCanvasSide)
	}
	return h, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// WriteFile writes a dump to path.
func WriteFile(path string, r *z0matrix.Raster, maxIter int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("canvasio: create file: %w", err)
	}

	if err := Write(f, r, maxIter); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a dump from path.
func ReadFile(path string) (*z0matrix.Raster, int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, fmt.Errorf("canvasio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}
