package models

// Suggestion is one ranked probable-part entry in a diagnosis response.
// Likelihood is a normalized share of the candidate pool, rounded to three
// decimals; entries with the same part name are kept distinct.
type Suggestion struct {
	Part       string  `json:"part"`
	Likelihood float64 `json:"likelihood"`
	Reason     string  `json:"reason"`
}
