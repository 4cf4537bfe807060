package extractor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-mfcc/algorithms/common"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/delta"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/filters"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/framing"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/spectral"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/temporal"
	"github.com/RyanBlaney/sonido-mfcc/algorithms/windowing"
	"github.com/RyanBlaney/sonido-mfcc/logging"
	"github.com/RyanBlaney/sonido-mfcc/transcode"
)

// dcCutoffHz is the corner of the DC blocker, well below the lowest speech
// formant
const dcCutoffHz = 20.0

// Extractor computes per-frame acoustic features from WAV files or sample
// slices. It is safe for concurrent use; every call works on its own
// buffers.
type Extractor struct {
	options    Options
	mfcc       *spectral.MFCC
	fft        *spectral.FFT
	window     windowing.Window
	energy     *temporal.Energy
	normalizer *common.Normalizer
	decoder    *transcode.Decoder
	logger     logging.Logger
}

// New validates the options once and prepares the filter bank, DCT basis
// and analysis window
func New(options Options) (*Extractor, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor options: %w", err)
	}

	mfcc, err := spectral.NewMFCC(options.Mel, options.MFCCSize)
	if err != nil {
		return nil, err
	}

	window, err := windowing.New(options.Window, options.WindowSize())
	if err != nil {
		return nil, err
	}

	normalization, err := common.ParseNormalization(options.Normalization)
	if err != nil {
		return nil, err
	}

	decoderConfig := transcode.DefaultDecoderConfig()
	if options.Resample {
		decoderConfig.TargetSampleRate = options.Mel.SampleRate
	}
	if options.ResampleQuality != "" {
		decoderConfig.ResampleQuality = options.ResampleQuality
	}

	logger := logging.WithFields(logging.Fields{
		"component": "mfcc_extractor",
	})

	if !common.IsPowerOfTwo(options.WindowSize()) {
		logger.Warn("Window size is not a power of two, FFT will be slower", logging.Fields{
			"window_size": options.WindowSize(),
			"suggested":   common.NextPowerOfTwo(options.WindowSize()),
		})
	}

	return &Extractor{
		options:    options,
		mfcc:       mfcc,
		fft:        spectral.NewFFT(),
		window:     window,
		energy:     temporal.NewEnergy(0),
		normalizer: common.NewNormalizer(normalization),
		decoder:    transcode.NewDecoder(decoderConfig),
		logger:     logger,
	}, nil
}

// Options returns the options the extractor was built with
func (e *Extractor) Options() Options {
	return e.options
}

// FilterBank exposes the mel filter bank in use
func (e *Extractor) FilterBank() *spectral.FilterBank {
	return e.mfcc.FilterBank()
}

// ExtractFile decodes a WAV file (first channel) and extracts its features
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Params, error) {
	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function": "ExtractFile",
		"file":     path,
	})

	audio, err := e.decoder.DecodeFile(path)
	if err != nil {
		logger.Error(err, "Failed to decode input")
		return nil, err
	}

	if audio.SampleRate != e.options.Mel.SampleRate {
		logger.Warn("File sample rate differs from the filter bank rate", logging.Fields{
			"file_rate": audio.SampleRate,
			"mel_rate":  e.options.Mel.SampleRate,
		})
	}

	logger.Debug("Decoded input", logging.Fields{
		"samples":   len(audio.PCM),
		"duration":  audio.Duration.String(),
		"resampled": audio.Resampled,
	})

	return e.ExtractSignal(ctx, audio.PCM, audio.SampleRate)
}

// ExtractSignal frames the signal at twice the FFT size and computes every
// feature. Per-frame work runs concurrently; results are indexed by frame
// and do not depend on the worker count.
func (e *Extractor) ExtractSignal(ctx context.Context, signal []float64, sampleRate int) (*Params, error) {
	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function": "ExtractSignal",
	})
	start := time.Now()

	signal, err := e.condition(signal, sampleRate)
	if err != nil {
		return nil, err
	}

	windowSize := e.options.WindowSize()
	step, err := framing.Step(windowSize, e.options.Overlap)
	if err != nil {
		return nil, err
	}

	frames, err := framing.Frame(signal, windowSize, e.options.Overlap)
	if err != nil {
		return nil, err
	}

	params := newParams(len(frames))
	params.SampleRate = sampleRate
	params.FFTSize = e.options.Mel.FFTSize
	params.WindowSize = windowSize
	params.Step = step

	workers := e.options.workerCount(len(frames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, frame := range frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return e.processFrame(params, i, frame)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error(err, "Frame processing failed", logging.Fields{
			"frames": len(frames),
		})
		return nil, fmt.Errorf("failed to extract features: %w", err)
	}

	if params.Flux, err = spectral.SpectralFluxFrames(params.FFT); err != nil {
		return nil, fmt.Errorf("failed to compute spectral flux: %w", err)
	}

	params.EnergyStats = e.energy.Summarize(params.Energy)
	params.EnergyRatio = params.EnergyStats.LowRatio
	params.LogEnergy = e.energy.LogEnergy(params.Energy)

	if params.MFCC, err = e.normalizer.NormalizeColumns(params.MFCC); err != nil {
		return nil, fmt.Errorf("failed to normalize coefficients: %w", err)
	}

	if e.options.Deltas {
		if params.Delta, err = delta.DeltaCustomAllSignal(params.MFCC); err != nil {
			return nil, fmt.Errorf("failed to compute deltas: %w", err)
		}
		if params.DeltaDelta, err = delta.DeltaDeltaCustomAllSignal(params.MFCC); err != nil {
			return nil, fmt.Errorf("failed to compute delta-deltas: %w", err)
		}
	}

	logger.Debug("Extraction complete", logging.Fields{
		"frames":      len(frames),
		"window_size": windowSize,
		"step":        step,
		"workers":     workers,
		"elapsed":     time.Since(start).String(),
	})

	return params, nil
}

// condition applies the optional DC blocker and pre-emphasis. The input is
// never modified; filters are built per call as they carry sample history.
func (e *Extractor) condition(signal []float64, sampleRate int) ([]float64, error) {
	if e.options.RemoveDC {
		signal = filters.NewDCRemovalWithCutoff(sampleRate, dcCutoffHz).ProcessBuffer(signal)
	}

	if e.options.PreEmphasis != 0 {
		pe, err := filters.NewPreEmphasis(e.options.PreEmphasis)
		if err != nil {
			return nil, err
		}
		signal = pe.ProcessBuffer(signal)
	}

	return signal, nil
}

// processFrame fills slot i of params. Only index i is written.
func (e *Extractor) processFrame(params *Params, i int, frame []float64) error {
	params.ZCR[i] = float64(spectral.ZeroCrossingRateClipping(frame, e.options.ZCRThreshold))
	params.Energy[i] = e.energy.FrameEnergy(frame)

	windowed, err := e.window.Apply(frame)
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}

	magnitude := e.fft.Magnitude(windowed)

	coefficients, err := e.mfcc.Compute(magnitude)
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}

	params.MFCC[i] = coefficients
	params.FFT[i] = magnitude
	params.SC[i] = spectral.SpectralCentroid(magnitude)
	params.SCSRF[i] = spectral.SpectralCentroidSRF(magnitude, e.options.Mel.SampleRate)
	params.SRF[i] = spectral.SpectralRollOffPoint(magnitude, e.options.Mel.SampleRate, e.options.Cutoff, false)
	params.Flatness[i] = spectral.SpectralFlatness(magnitude)

	return nil
}
