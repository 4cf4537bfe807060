package transcode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-mfcc/logging"
)

var (
	// ErrInvalidWAV is returned for input that is not a RIFF/WAVE stream
	ErrInvalidWAV = errors.New("invalid WAV data")

	// ErrEmptyAudio is returned when a file decodes to no samples
	ErrEmptyAudio = errors.New("empty audio data")
)

// AudioData represents decoded mono audio
type AudioData struct {
	PCM              []float64     `json:"-"` // First channel, normalized to [-1, 1]
	SampleRate       int           `json:"sample_rate"`
	SourceSampleRate int           `json:"source_sample_rate"`
	Channels         int           `json:"channels"` // Channels in the source
	BitDepth         int           `json:"bit_depth"`
	Duration         time.Duration `json:"duration"`
	Resampled        bool          `json:"resampled"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	// TargetSampleRate resamples when > 0 and different from the file rate
	TargetSampleRate int `json:"target_sample_rate" mapstructure:"target_sample_rate"`

	// ResampleQuality is "quick", "low", "medium", "high" or "very_high"
	ResampleQuality string `json:"resample_quality" mapstructure:"resample_quality"`

	// MaxDuration truncates long inputs; 0 keeps everything
	MaxDuration time.Duration `json:"max_duration" mapstructure:"max_duration"`
}

// DefaultDecoderConfig returns default decoder configuration: keep the file
// rate, high quality resampling when asked for
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 0,
		ResampleQuality:  "high",
		MaxDuration:      0,
	}
}

// Decoder turns WAV files into normalized mono sample slices
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// Config returns the decoder configuration
func (d *Decoder) Config() DecoderConfig {
	return *d.config
}

// DecodeFile decodes a WAV file from disk
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	logger.Debug("Starting audio file decode")

	file, err := os.Open(filename)
	if err != nil {
		logger.Error(err, "Failed to open audio file")
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	data, err := d.DecodeReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return data, nil
}

// DecodeReader decodes WAV data from a seekable reader. Only the first
// channel is kept.
func (d *Decoder) DecodeReader(reader io.ReadSeeker) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeReader",
	})

	decoder := wav.NewDecoder(reader)
	if !decoder.IsValidFile() {
		logger.Error(ErrInvalidWAV, "Rejected input")
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		logger.Error(err, "Failed to read PCM data")
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	pcm, err := d.toMono(buf)
	if err != nil {
		return nil, err
	}

	audioData := &AudioData{
		PCM:              pcm,
		SampleRate:       buf.Format.SampleRate,
		SourceSampleRate: buf.Format.SampleRate,
		Channels:         buf.Format.NumChannels,
		BitDepth:         buf.SourceBitDepth,
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_sample_rate": audioData.SampleRate,
		"input_channels":    audioData.Channels,
		"input_bit_depth":   audioData.BitDepth,
		"samples":           len(pcm),
	})

	if d.config.MaxDuration > 0 {
		limit := int(d.config.MaxDuration.Seconds() * float64(audioData.SampleRate))
		if limit < len(audioData.PCM) {
			audioData.PCM = audioData.PCM[:limit]
		}
	}

	target := d.config.TargetSampleRate
	if target > 0 && target != audioData.SampleRate {
		resampled, err := Resample(audioData.PCM, audioData.SampleRate, target, d.config.ResampleQuality)
		if err != nil {
			logger.Error(err, "Failed to resample", logging.Fields{
				"from": audioData.SampleRate,
				"to":   target,
			})
			return nil, err
		}
		audioData.PCM = resampled
		audioData.SampleRate = target
		audioData.Resampled = true
	}

	audioData.Duration = time.Duration(len(audioData.PCM)) * time.Second / time.Duration(audioData.SampleRate)
	return audioData, nil
}

// toMono keeps the first channel and scales integer samples by
// 2^(bitDepth-1)
func (d *Decoder) toMono(buf *audio.IntBuffer) ([]float64, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("missing format information: %w", ErrInvalidWAV)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, ErrEmptyAudio
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	pcm := make([]float64, frames)
	for i := range frames {
		pcm[i] = float64(buf.Data[i*channels]) / scale
	}
	return pcm, nil
}

// EncodeWAV writes mono samples in [-1, 1] as 16-bit PCM WAV
func EncodeWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	const bitDepth = 16
	const maxValue = 1<<(bitDepth-1) - 1

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(max(-1, min(1, s)) * maxValue)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	encoder := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}
