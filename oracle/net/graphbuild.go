package net

import (
	"fmt"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	nnops "gorgonia.org/gorgonia/ops/nn"
	"gorgonia.org/tensor"
)

// builder accumulates graph-construction errors so call sites can chain
// operations without checking err after every step.
type builder struct {
	err error
}

type batchNormOp interface {
	SetTraining()
	SetTesting()
	Reset() error
}

func (b *builder) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if b.err != nil {
		return nil
	}
	if retVal, b.err = f(); b.err != nil {
		b.err = errors.WithStack(b.err)
	}
	return
}

func (b *builder) conv(input *G.Node, filterCount, size int, name string) (retVal *G.Node) {
	if b.err != nil {
		return nil
	}
	featureCount := input.Shape()[1]
	padding := findPadding(input.Shape()[2], input.Shape()[3], size, size)
	filter := G.NewTensor(input.Graph(), Float, 4, G.WithShape(filterCount, featureCount, size, size), G.WithName("Filter"+name), G.WithInit(G.GlorotU(1.0)))

	if retVal, b.err = nnops.Conv2d(input, filter, []int{size, size}, padding, []int{1, 1}, []int{1, 1}); b.err != nil {
		b.err = errors.WithStack(b.err)
	}
	return
}

func (b *builder) batchnorm(input *G.Node) (retVal *G.Node, retOp batchNormOp) {
	if b.err != nil {
		return nil, nil
	}
	if retVal, _, _, retOp, b.err = nnops.BatchNorm(input, nil, nil, 0.997, 1e-5); b.err != nil {
		b.err = errors.WithStack(b.err)
	}
	return
}

func (b *builder) res(input *G.Node, filterCount int, name string) (*G.Node, batchNormOp) {
	convolved := b.conv(input, filterCount, 3, name)
	normalized, op := b.batchnorm(convolved)
	retVal := b.rectify(normalized)
	return retVal, op
}

func (b *builder) share(input *G.Node, filterCount, layer int) (*G.Node, batchNormOp, batchNormOp) {
	layer1, op1 := b.res(input, filterCount, fmt.Sprintf("shared-%d-a", layer))
	layer2, op2 := b.res(layer1, filterCount, fmt.Sprintf("shared-%d-b", layer))
	added := b.do(func() (*G.Node, error) { return G.Add(input, layer2) })
	retVal := b.rectify(added)
	return retVal, op1, op2
}

func (b *builder) linear(input *G.Node, units int, name string) *G.Node {
	if b.err != nil {
		return nil
	}
	w := G.NewTensor(input.Graph(), Float, 2, G.WithShape(input.Shape()[1], units), G.WithInit(G.GlorotN(1.0)), G.WithName(name+"_w"))
	xw := b.do(func() (*G.Node, error) { return G.Mul(input, w) })
	bias := G.NewTensor(xw.Graph(), Float, xw.Shape().Dims(), G.WithShape(xw.Shape().Clone()...), G.WithName(name+"_b"), G.WithInit(G.Zeroes()))
	return b.do(func() (*G.Node, error) { return G.Add(xw, bias) })
}

func (b *builder) rectify(input *G.Node) (retVal *G.Node) {
	if b.err != nil {
		return nil
	}
	if retVal, b.err = nnops.Rectify(input); b.err != nil {
		b.err = errors.WithStack(b.err)
	}
	return
}

func (b *builder) reshape(input *G.Node, to tensor.Shape) (retVal *G.Node) {
	if b.err != nil {
		return nil
	}
	if retVal, b.err = G.Reshape(input, to); b.err != nil {
		b.err = errors.WithStack(b.err)
	}
	return
}

func findPadding(inputX, inputY, kernelX, kernelY int) []int {
	return []int{
		(inputX - 1 - inputX + kernelX) / 2,
		(inputY - 1 - inputY + kernelY) / 2,
	}
}
