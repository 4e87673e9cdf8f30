package domain

// Algorithm names a selection strategy
type Algorithm string

const (
	// AlgorithmGreedy repeatedly takes the highest-protein food that still fits
	AlgorithmGreedy Algorithm = "greedy"
	// AlgorithmExhaustive enumerates every subset of the candidates
	AlgorithmExhaustive Algorithm = "exhaustive"
)

// SelectionRequest holds the tunable parameters of one selection run.
// Nil fields fall back to configured defaults in the usecase layer.
type SelectionRequest struct {
	MinKcal   *int `json:"minKcal,omitempty"`
	MaxKcal   *int `json:"maxKcal,omitempty"`
	Limit     *int `json:"limit,omitempty"`
	TotalKcal *int `json:"totalKcal,omitempty"`
}

// SelectionParams are the resolved parameters a selection ran with
type SelectionParams struct {
	MinKcal   int `json:"minKcal"`
	MaxKcal   int `json:"maxKcal"`
	Limit     int `json:"limit"`
	TotalKcal int `json:"totalKcal"`
}

// Selection is the outcome of running one algorithm over a candidate set
type Selection struct {
	Algorithm     Algorithm       `json:"algorithm"`
	Params        SelectionParams `json:"params"`
	Candidates    int             `json:"candidates"`
	Foods         []Food          `json:"foods"`
	TotalKcal     int             `json:"totalKcal"`
	TotalProteinG int             `json:"totalProteinG"`
}

// Comparison puts the greedy and exhaustive selections of the same candidates side by side
type Comparison struct {
	Greedy     *Selection `json:"greedy"`
	Exhaustive *Selection `json:"exhaustive"`
	// ProteinGapG is how many grams of protein greedy left on the table
	ProteinGapG int `json:"proteinGapG"`
}
