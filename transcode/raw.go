package transcode

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// WriteRaw writes frames back to back as little-endian float32 with no
// header, the feature file layout ALIZE reads. Returns the number of values
// written.
func WriteRaw(w io.Writer, frames [][]float64) (int, error) {
	bw := bufio.NewWriter(w)

	var scratch [4]byte
	written := 0
	for _, frame := range frames {
		for _, value := range frame {
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(float32(value)))
			if _, err := bw.Write(scratch[:]); err != nil {
				return written, fmt.Errorf("failed to write raw value %d: %w", written, err)
			}
			written++
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush raw output: %w", err)
	}
	return written, nil
}

// WriteRawFile writes frames to dir/name, creating dir when needed. An empty
// dir means the working directory. Returns the path written.
func WriteRawFile(dir, name string, frames [][]float64) (string, error) {
	if dir == "" {
		dir = "."
	}

	logger := logging.WithFields(logging.Fields{
		"component": "raw_writer",
		"function":  "WriteRawFile",
		"dir":       dir,
		"name":      name,
	})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error(err, "Failed to create output directory")
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		logger.Error(err, "Failed to create raw file")
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := WriteRaw(file, frames)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		logger.Error(err, "Failed to write raw file")
		return "", err
	}

	logger.Debug("Raw features written", logging.Fields{
		"frames": len(frames),
		"values": n,
		"bytes":  n * 4,
	})
	return path, nil
}

// ReadRaw reads little-endian float32 values back, dim values per frame. A
// trailing partial frame is an error.
func ReadRaw(r io.Reader, dim int) ([][]float64, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid frame dimension %d", dim)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw data: %w", err)
	}
	if len(data)%(4*dim) != 0 {
		return nil, fmt.Errorf("raw data of %d bytes is not a whole number of %d-value frames", len(data), dim)
	}

	frames := make([][]float64, len(data)/(4*dim))
	for i := range frames {
		frame := make([]float64, dim)
		for j := range frame {
			offset := (i*dim + j) * 4
			frame[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[offset:])))
		}
		frames[i] = frame
	}
	return frames, nil
}
