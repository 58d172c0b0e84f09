package model

import (
	"encoding/json"
	"time"
)

// EvaluationKind names which tool produced an evaluation.
type EvaluationKind string

// Evaluation kinds.
const (
	KindNegotiation EvaluationKind = "negotiation"
	KindSupplier    EvaluationKind = "supplier"
)

// Valid reports whether k is a known kind.
func (k EvaluationKind) Valid() bool {
	return k == KindNegotiation || k == KindSupplier
}

// Evaluation is a stored record of one tool invocation. Summary carries the
// negotiation case or supplier grade for listing without decoding Output.
type Evaluation struct {
	ID        string          `json:"id"`
	Kind      EvaluationKind  `json:"kind"`
	Summary   string          `json:"summary"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvaluation marshals in and out into an Evaluation of the given kind.
// ID and CreatedAt are assigned by the store.
func NewEvaluation(kind EvaluationKind, summary string, in, out any) (*Evaluation, error) {
	inJSON, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	outJSON, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Kind:    kind,
		Summary: summary,
		Input:   inJSON,
		Output:  outJSON,
	}, nil
}
