package dialogue

// ClarityBand classifies a clarity score against the calibrated thresholds.
type ClarityBand string

const (
	ClarityLow    ClarityBand = "low"
	ClarityMedium ClarityBand = "medium"
	ClarityHigh   ClarityBand = "high"
)

// ClarityComponents holds the per-dimension scores that the overall clarity
// value is fused from. Every component is normalized to [0,1].
type ClarityComponents struct {
	Mood        float64 `json:"mood"`
	Intensity   float64 `json:"intensity"`
	Confidence  float64 `json:"confidence"`
	Context     float64 `json:"context"`
	Consistency float64 `json:"consistency"`
}

// ClarityWeights mirrors ClarityComponents; values are configuration and
// must sum to 1.
type ClarityWeights struct {
	Mood        float64 `json:"mood" yaml:"mood"`
	Intensity   float64 `json:"intensity" yaml:"intensity"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	Context     float64 `json:"context" yaml:"context"`
	Consistency float64 `json:"consistency" yaml:"consistency"`
}

func (w ClarityWeights) Sum() float64 {
	return w.Mood + w.Intensity + w.Confidence + w.Context + w.Consistency
}

// ClarityResult is one turn's fused understanding score: the overall value,
// its band, and the breakdown the strategy engine uses to pick the weakest
// dimension. Recomputed every turn, persisted only on the turn row.
type ClarityResult struct {
	Score      float64           `json:"score"`
	Band       ClarityBand       `json:"band"`
	Components ClarityComponents `json:"components"`
	Weights    ClarityWeights    `json:"weights"`
}
