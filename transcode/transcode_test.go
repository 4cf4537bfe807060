package transcode

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-mfcc/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

func sine(freq float64, sampleRate, n int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func writeFixture(t *testing.T, samples []float64, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodeWAV(file, samples, sampleRate))
	require.NoError(t, file.Close())
	return path
}

func TestDecodeFileRoundTrip(t *testing.T) {
	samples := sine(440, 16000, 1600, 0.5)
	path := writeFixture(t, samples, 16000)

	data, err := NewDecoder(nil).DecodeFile(path)
	require.NoError(t, err)

	assert.Equal(t, 16000, data.SampleRate)
	assert.Equal(t, 16000, data.SourceSampleRate)
	assert.Equal(t, 1, data.Channels)
	assert.Equal(t, 16, data.BitDepth)
	assert.False(t, data.Resampled)
	assert.Equal(t, 100*time.Millisecond, data.Duration)
	require.Len(t, data.PCM, len(samples))

	for i := range samples {
		assert.InDelta(t, samples[i], data.PCM[i], 1.0/16384, "sample %d", i)
	}
}

func TestDecodeMaxDuration(t *testing.T) {
	path := writeFixture(t, sine(200, 8000, 8000, 0.3), 8000)

	data, err := NewDecoder(&DecoderConfig{MaxDuration: 250 * time.Millisecond}).DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, data.PCM, 2000)
}

func TestDecodeResamples(t *testing.T) {
	path := writeFixture(t, sine(300, 8000, 8000, 0.5), 8000)

	data, err := NewDecoder(&DecoderConfig{TargetSampleRate: 16000, ResampleQuality: "medium"}).DecodeFile(path)
	require.NoError(t, err)

	assert.True(t, data.Resampled)
	assert.Equal(t, 16000, data.SampleRate)
	assert.Equal(t, 8000, data.SourceSampleRate)
	assert.InDelta(t, 16000, len(data.PCM), 800)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := NewDecoder(nil).DecodeReader(bytes.NewReader([]byte("definitely not a riff header")))
	assert.True(t, errors.Is(err, ErrInvalidWAV))

	_, err = NewDecoder(nil).DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestResample(t *testing.T) {
	in := sine(100, 8000, 800, 0.5)

	same, err := Resample(in, 8000, 8000, "high")
	require.NoError(t, err)
	assert.Equal(t, in, same)
	same[0] = 42
	assert.NotEqual(t, 42.0, in[0], "passthrough must copy")

	down, err := Resample(in, 8000, 4000, "quick")
	require.NoError(t, err)
	assert.InDelta(t, 400, len(down), 40)

	_, err = Resample(in, 0, 8000, "high")
	assert.Error(t, err)

	_, err = Resample(in, 8000, 16000, "ludicrous")
	assert.Error(t, err)
}

func TestWriteRawLayout(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteRaw(&buf, [][]float64{{1, -2}, {0.5}})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, []byte{
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0xc0, // -2.0
		0x00, 0x00, 0x00, 0x3f, // 0.5
	}, buf.Bytes())
}

func TestWriteRawFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	frames := [][]float64{{1, 2, 3}, {4, 5, 6}}

	path, err := WriteRawFile(dir, "speech.mfcc.raw", frames)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "speech.mfcc.raw"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, 24, info.Size())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	back, err := ReadRaw(file, 3)
	require.NoError(t, err)
	assert.Equal(t, frames, back)
}

func TestReadRawPartialFrame(t *testing.T) {
	_, err := ReadRaw(strings.NewReader("abcdef"), 1)
	assert.Error(t, err)

	_, err = ReadRaw(strings.NewReader(""), 0)
	assert.Error(t, err)
}
