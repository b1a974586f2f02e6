package net

import (
	"bytes"
	"encoding/gob"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Float is the network's tensor element type.
var Float = G.Float32

// Dual is a residual-tower policy/value network: a shared convolutional
// stack feeding two heads, a policy distribution over the action space
// and a scalar value in [-1, 1] (squashed by the caller into [0,1]
// before it reaches the search engine, matching the oracle.Oracle
// contract).
type Dual struct {
	Config
	ops []batchNormOp

	g      *G.ExprGraph
	planes *G.Node

	policyOutput *G.Node
	valueOutput  *G.Node

	policyValue G.Value
	value       G.Value
}

// New returns a new, uninitialized Dual. Call Init to build its graph
// before using it.
func New(conf Config) *Dual {
	return &Dual{Config: conf}
}

// Init builds the forward computation graph for a given batch size. It
// is passed explicitly rather than fixed in Config since an Inferer
// built from Dual evaluates one board at a time while batched self-play
// evaluates many.
func (d *Dual) Init(batchSize int) error {
	d.reset()
	d.g = G.NewGraph()
	d.fwd(batchSize, d.ActionSpace)
	return nil
}

func (d *Dual) fwd(batchSize, actionSpace int) {
	boardSize := d.Width * d.Height

	// BCHW: batch, features, height, width.
	d.planes = G.NewTensor(d.g, Float, 4, G.WithShape(batchSize, d.Features, d.Height, d.Width), G.WithName("Planes"))

	var b builder
	initialOut, initialOp := b.res(d.planes, d.K, "Init")
	d.ops = append(d.ops, initialOp)

	sharedOut := initialOut
	for i := 0; i < d.SharedLayers; i++ {
		var op1, op2 batchNormOp
		sharedOut, op1, op2 = b.share(sharedOut, d.K, i)
		d.ops = append(d.ops, op1, op2)
	}

	policy, pop := b.batchnorm(b.conv(sharedOut, 2, 1, "PolicyHead"))
	policy = b.rectify(policy)
	batches := policy.Shape().TotalSize() / (boardSize * 2)
	if batches == 0 {
		batches = 1
	}
	policy = b.reshape(policy, tensor.Shape{batches, boardSize * 2})
	logits := b.linear(policy, actionSpace, "Policy")

	d.policyOutput = b.do(func() (*G.Node, error) { return G.SoftMax(logits) })
	G.Read(d.policyOutput, &d.policyValue)

	value, vop := b.batchnorm(b.conv(sharedOut, 1, 1, "ValueHead"))
	value = b.rectify(value)
	batches = value.Shape().TotalSize() / boardSize
	value = b.reshape(value, tensor.Shape{batches, boardSize})
	value = b.linear(value, d.FC, "Value")
	value = b.rectify(value)

	valueOutput := b.linear(value, 1, "ValueOutput")
	valueOutput = b.reshape(valueOutput, tensor.Shape{valueOutput.Shape().TotalSize()})

	d.valueOutput = b.do(func() (*G.Node, error) { return G.Tanh(valueOutput) })
	G.Read(d.valueOutput, &d.value)

	d.ops = append(d.ops, pop, vop)
}

// Model returns every trainable weight node in the graph.
func (d *Dual) Model() G.Nodes {
	retVal := make(G.Nodes, 0, d.g.Nodes().Len())
	for _, n := range d.g.AllNodes() {
		if n.IsVar() && n != d.planes {
			retVal = append(retVal, n)
		}
	}
	return retVal
}

// SetTesting puts every batch-norm op into inference mode (running
// statistics instead of per-batch statistics).
func (d *Dual) SetTesting() {
	for _, op := range d.ops {
		op.SetTesting()
	}
}

// Clone returns a fresh Dual with the same weights, for building an
// independent Inferer pinned to a different batch size.
func (d *Dual) Clone(batchSize int) (*Dual, error) {
	d2 := New(d.Config)
	if err := d2.Init(batchSize); err != nil {
		return nil, err
	}
	model, model2 := d.Model(), d2.Model()
	for i, n := range model {
		if err := G.Let(model2[i], n.Value()); err != nil {
			return nil, err
		}
	}
	return d2, nil
}

func (d *Dual) reset() {
	d.ops = nil
	d.g = nil
	d.planes = nil
	d.policyOutput = nil
	d.valueOutput = nil
}

func (d *Dual) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, n := range d.Model() {
		v := n.Value()
		if err := enc.Encode(&v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (d *Dual) GobDecode(p []byte) error {
	d.reset()
	if err := d.Init(1); err != nil {
		return err
	}
	buf := bytes.NewBuffer(p)
	dec := gob.NewDecoder(buf)
	for _, n := range d.Model() {
		var v G.Value
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if err := G.Let(n, v); err != nil {
			return err
		}
	}
	return nil
}
