package models

// MatchCandidate pairs one transaction with one obligation it might settle,
// with the additive score and the human-readable reasons behind it. It is
// transient decision-support data and is never persisted.
type MatchCandidate struct {
	Transaction Transaction
	Obligation  Obligation
	Score       int
	Reasons     []string
}
