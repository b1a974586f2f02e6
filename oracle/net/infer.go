package net

import (
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/oracle"
)

// Inferer wraps a Dual with a tape machine pinned to single-board
// inference, so the search engine can query it without rebuilding a
// graph per call. It implements oracle.Oracle.
type Inferer struct {
	d     *Dual
	m     G.VM
	input *tensor.Dense
}

var _ oracle.Oracle = &Inferer{}

// NewInferer builds an inference-only Dual (batch size 1) from a trained
// one and wraps it with a tape machine.
func NewInferer(trained *Dual) (*Inferer, error) {
	d, err := trained.Clone(1)
	if err != nil {
		return nil, err
	}
	d.SetTesting()

	retVal := &Inferer{
		d:     d,
		input: tensor.New(tensor.WithShape(d.planes.Shape().Clone()...), tensor.Of(Float)),
		m:     G.NewTapeMachine(d.g),
	}
	return retVal, nil
}

// Evaluate implements oracle.Oracle: it encodes state's history into the
// network's input planes, runs the tape machine, and converts the raw
// policy/value output into ScoredMoves and a side-to-move-perspective
// value in [0,1].
func (inf *Inferer) Evaluate(state board.State) (float32, []oracle.ScoredMove) {
	for _, op := range inf.d.ops {
		op.Reset()
	}

	planes := oracle.HistoryEncoder(state)
	inf.input.Zero()
	data := inf.input.Data().([]float32)
	copy(data, planes)

	inf.m.Reset()
	if err := G.Let(inf.d.planes, inf.input); err != nil {
		panic(err)
	}
	if err := inf.m.RunAll(); err != nil {
		panic(err)
	}

	policyData := inf.d.policyValue.Data().([]float32)
	valueData := inf.d.value.Data().([]float32)

	// Tanh output is in [-1, 1] from the side-to-move's perspective;
	// the Oracle contract wants [0, 1].
	value := (valueData[0] + 1) / 2

	moves := make([]oracle.ScoredMove, len(policyData))
	for i, p := range policyData {
		moves[i] = oracle.ScoredMove{Move: board.Single(i), Prior: p}
	}
	return value, moves
}

// Close releases the tape machine's resources.
func (inf *Inferer) Close() error {
	return inf.m.Close()
}
