package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tracker tuning
// parameters. All fields are optional pointers: fields omitted from the
// JSON fall back to the defaults supplied by the Get* methods, so partial
// configs are safe.
type TuningConfig struct {
	// Assignment params
	Solver        *string  `json:"solver,omitempty"` // "hungarian" or "greedy"
	DistThreshold *float64 `json:"dist_threshold,omitempty"`

	// Metric weights (0 disables a metric)
	WeightCenter    *float64 `json:"weight_center,omitempty"`
	WeightSize      *float64 `json:"weight_size,omitempty"`
	WeightOverlap   *float64 `json:"weight_overlap,omitempty"`
	WeightHistogram *float64 `json:"weight_histogram,omitempty"`
	WeightEmbedding *float64 `json:"weight_embedding,omitempty"`

	// Lifecycle params
	MaxSkippedFrames      *int     `json:"max_skipped_frames,omitempty"`
	OutOfFrameRemoval     *bool    `json:"out_of_frame_removal,omitempty"`
	UseAbandonedDetection *bool    `json:"use_abandoned_detection,omitempty"`
	MinStaticTimeSec      *float64 `json:"min_static_time_sec,omitempty"`
	MaxStaticTimeSec      *float64 `json:"max_static_time_sec,omitempty"`
	MaxSpeedForStatic     *float64 `json:"max_speed_for_static,omitempty"`
	MaxTraceLength        *int     `json:"max_trace_length,omitempty"`

	// Search ellipse params
	MinAreaRadiusPix *float64 `json:"min_area_radius_pix,omitempty"`
	MinAreaRadiusK   *float64 `json:"min_area_radius_k,omitempty"`

	// Motion filter params
	UseAcceleration *bool    `json:"use_acceleration,omitempty"`
	DeltaTime       *float64 `json:"delta_time,omitempty"`
	AccelNoiseMag   *float64 `json:"accel_noise_mag,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to its
// default value. The schema matches config/tuning.defaults.json.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		Solver:                ptrString("hungarian"),
		DistThreshold:         ptrFloat64(0.8),
		WeightCenter:          ptrFloat64(0.5),
		WeightSize:            ptrFloat64(0.5),
		WeightOverlap:         ptrFloat64(0),
		WeightHistogram:       ptrFloat64(0),
		WeightEmbedding:       ptrFloat64(0),
		MaxSkippedFrames:      ptrInt(25),
		OutOfFrameRemoval:     ptrBool(false),
		UseAbandonedDetection: ptrBool(false),
		MinStaticTimeSec:      ptrFloat64(5),
		MaxStaticTimeSec:      ptrFloat64(25),
		MaxSpeedForStatic:     ptrFloat64(10),
		MaxTraceLength:        ptrInt(50),
		MinAreaRadiusPix:      ptrFloat64(-1),
		MinAreaRadiusK:        ptrFloat64(0.8),
		UseAcceleration:       ptrBool(false),
		DeltaTime:             ptrFloat64(0.4),
		AccelNoiseMag:         ptrFloat64(0.2),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under
// the max file size. Fields omitted from the JSON file fall back to the
// Get* defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching the current directory and common parent
// directories. Panics if the file cannot be loaded; intended for test
// setup and binaries that have already validated config availability.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are consistent.
func (c *TuningConfig) Validate() error {
	if c.Solver != nil {
		switch *c.Solver {
		case "hungarian", "greedy":
		default:
			return fmt.Errorf("solver must be \"hungarian\" or \"greedy\", got %q", *c.Solver)
		}
	}

	for name, w := range map[string]*float64{
		"weight_center":    c.WeightCenter,
		"weight_size":      c.WeightSize,
		"weight_overlap":   c.WeightOverlap,
		"weight_histogram": c.WeightHistogram,
		"weight_embedding": c.WeightEmbedding,
	} {
		if w != nil && *w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, *w)
		}
	}

	if c.MaxSkippedFrames != nil && *c.MaxSkippedFrames < 0 {
		return fmt.Errorf("max_skipped_frames must be non-negative, got %d", *c.MaxSkippedFrames)
	}
	if c.MaxTraceLength != nil && *c.MaxTraceLength < 1 {
		return fmt.Errorf("max_trace_length must be >= 1, got %d", *c.MaxTraceLength)
	}
	if c.DeltaTime != nil && *c.DeltaTime <= 0 {
		return fmt.Errorf("delta_time must be positive, got %f", *c.DeltaTime)
	}
	if c.MinStaticTimeSec != nil && c.MaxStaticTimeSec != nil &&
		*c.MaxStaticTimeSec < *c.MinStaticTimeSec {
		return fmt.Errorf("max_static_time_sec (%f) must be >= min_static_time_sec (%f)",
			*c.MaxStaticTimeSec, *c.MinStaticTimeSec)
	}

	return nil
}

// GetSolver returns the solver value or the default.
func (c *TuningConfig) GetSolver() string {
	if c.Solver == nil {
		return "hungarian" // default
	}
	return *c.Solver
}

// GetDistThreshold returns the dist_threshold value or the default.
func (c *TuningConfig) GetDistThreshold() float64 {
	if c.DistThreshold == nil {
		return 0.8 // default
	}
	return *c.DistThreshold
}

// GetWeightCenter returns the weight_center value or the default.
func (c *TuningConfig) GetWeightCenter() float64 {
	if c.WeightCenter == nil {
		return 0.5 // default
	}
	return *c.WeightCenter
}

// GetWeightSize returns the weight_size value or the default.
func (c *TuningConfig) GetWeightSize() float64 {
	if c.WeightSize == nil {
		return 0.5 // default
	}
	return *c.WeightSize
}

// GetWeightOverlap returns the weight_overlap value or the default.
func (c *TuningConfig) GetWeightOverlap() float64 {
	if c.WeightOverlap == nil {
		return 0 // default
	}
	return *c.WeightOverlap
}

// GetWeightHistogram returns the weight_histogram value or the default.
func (c *TuningConfig) GetWeightHistogram() float64 {
	if c.WeightHistogram == nil {
		return 0 // default
	}
	return *c.WeightHistogram
}

// GetWeightEmbedding returns the weight_embedding value or the default.
func (c *TuningConfig) GetWeightEmbedding() float64 {
	if c.WeightEmbedding == nil {
		return 0 // default
	}
	return *c.WeightEmbedding
}

// GetMaxSkippedFrames returns the max_skipped_frames value or the default.
func (c *TuningConfig) GetMaxSkippedFrames() int {
	if c.MaxSkippedFrames == nil {
		return 25 // default
	}
	return *c.MaxSkippedFrames
}

// GetOutOfFrameRemoval returns the out_of_frame_removal value or the default.
func (c *TuningConfig) GetOutOfFrameRemoval() bool {
	if c.OutOfFrameRemoval == nil {
		return false // default
	}
	return *c.OutOfFrameRemoval
}

// GetUseAbandonedDetection returns the use_abandoned_detection value or the default.
func (c *TuningConfig) GetUseAbandonedDetection() bool {
	if c.UseAbandonedDetection == nil {
		return false // default
	}
	return *c.UseAbandonedDetection
}

// GetMinStaticTimeSec returns the min_static_time_sec value or the default.
func (c *TuningConfig) GetMinStaticTimeSec() float64 {
	if c.MinStaticTimeSec == nil {
		return 5 // default
	}
	return *c.MinStaticTimeSec
}

// GetMaxStaticTimeSec returns the max_static_time_sec value or the default.
func (c *TuningConfig) GetMaxStaticTimeSec() float64 {
	if c.MaxStaticTimeSec == nil {
		return 25 // default
	}
	return *c.MaxStaticTimeSec
}

// GetMaxSpeedForStatic returns the max_speed_for_static value or the default.
func (c *TuningConfig) GetMaxSpeedForStatic() float64 {
	if c.MaxSpeedForStatic == nil {
		return 10 // default
	}
	return *c.MaxSpeedForStatic
}

// GetMaxTraceLength returns the max_trace_length value or the default.
func (c *TuningConfig) GetMaxTraceLength() int {
	if c.MaxTraceLength == nil {
		return 50 // default
	}
	return *c.MaxTraceLength
}

// GetMinAreaRadiusPix returns the min_area_radius_pix value or the default.
func (c *TuningConfig) GetMinAreaRadiusPix() float64 {
	if c.MinAreaRadiusPix == nil {
		return -1 // default: relative radius policy
	}
	return *c.MinAreaRadiusPix
}

// GetMinAreaRadiusK returns the min_area_radius_k value or the default.
func (c *TuningConfig) GetMinAreaRadiusK() float64 {
	if c.MinAreaRadiusK == nil {
		return 0.8 // default
	}
	return *c.MinAreaRadiusK
}

// GetUseAcceleration returns the use_acceleration value or the default.
func (c *TuningConfig) GetUseAcceleration() bool {
	if c.UseAcceleration == nil {
		return false // default
	}
	return *c.UseAcceleration
}

// GetDeltaTime returns the delta_time value or the default.
func (c *TuningConfig) GetDeltaTime() float64 {
	if c.DeltaTime == nil {
		return 0.4 // default
	}
	return *c.DeltaTime
}

// GetAccelNoiseMag returns the accel_noise_mag value or the default.
func (c *TuningConfig) GetAccelNoiseMag() float64 {
	if c.AccelNoiseMag == nil {
		return 0.2 // default
	}
	return *c.AccelNoiseMag
}
