package mot

import "github.com/banshee-data/trackmatch/internal/config"

// SettingsFromTuning builds Settings from a loaded TuningConfig. Use this
// in production code where the TuningConfig is already loaded; near-type
// declarations and extractor bindings are added afterwards on the result.
func SettingsFromTuning(cfg *config.TuningConfig) Settings {
	s := Settings{
		Solver:                SolverKind(cfg.GetSolver()),
		DistThreshold:         cfg.GetDistThreshold(),
		MaxSkippedFrames:      cfg.GetMaxSkippedFrames(),
		OutOfFrameRemoval:     cfg.GetOutOfFrameRemoval(),
		UseAbandonedDetection: cfg.GetUseAbandonedDetection(),
		MinStaticTimeSec:      cfg.GetMinStaticTimeSec(),
		MaxStaticTimeSec:      cfg.GetMaxStaticTimeSec(),
		MaxSpeedForStatic:     cfg.GetMaxSpeedForStatic(),
		MaxTraceLength:        cfg.GetMaxTraceLength(),
		MinAreaRadiusPix:      cfg.GetMinAreaRadiusPix(),
		MinAreaRadiusK:        cfg.GetMinAreaRadiusK(),
		UseAcceleration:       cfg.GetUseAcceleration(),
		DeltaTime:             cfg.GetDeltaTime(),
		AccelNoiseMag:         cfg.GetAccelNoiseMag(),
	}
	s.MetricWeights[MetricCenter] = cfg.GetWeightCenter()
	s.MetricWeights[MetricSize] = cfg.GetWeightSize()
	s.MetricWeights[MetricOverlap] = cfg.GetWeightOverlap()
	s.MetricWeights[MetricHistogram] = cfg.GetWeightHistogram()
	s.MetricWeights[MetricEmbedding] = cfg.GetWeightEmbedding()
	return s
}
