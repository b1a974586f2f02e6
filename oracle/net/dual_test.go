package net

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	G "gorgonia.org/gorgonia"
)

func TestSanity(t *testing.T) {
	conf := DefaultConf(9, 9, 9*9)

	d := New(conf)
	if err := d.Init(4); err != nil {
		t.Fatalf("%+v", err)
	}
	t.Logf("number of nodes: %d", len(d.g.AllNodes()))
	if _, _, err := G.Compile(d.g); err != nil {
		t.Fatal(err)
	}
}

func TestInferenceSanity(t *testing.T) {
	boardSize := 5
	conf := DefaultConf(boardSize, boardSize, boardSize*boardSize)
	d := New(conf)
	if err := d.Init(1); err != nil {
		t.Fatalf("%+v", err)
	}

	inferer, err := NewInferer(d)
	if err != nil {
		t.Fatal(err)
	}
	defer inferer.Close()
}

func TestEncodeDecode(t *testing.T) {
	boardSize := 5
	conf := DefaultConf(boardSize, boardSize, boardSize*boardSize)
	d := New(conf)
	if err := d.Init(1); err != nil {
		t.Fatalf("%+v", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(d); err != nil {
		t.Fatalf("encoding failure: %v", err)
	}

	dec := gob.NewDecoder(&buf)
	d2 := New(conf)
	if err := dec.Decode(d2); err != nil {
		t.Fatalf("decoding failure: %v", err)
	}

	dmodel, d2model := d.Model(), d2.Model()
	for i, n := range dmodel {
		assert.Equal(t, n.Value().Data(), d2model[i].Value().Data())
	}
}
