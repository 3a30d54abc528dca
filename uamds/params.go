// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

// Params is the packed (n + n*dHi) x dLo parameter matrix the optimizer
// minimizes stress over: the first n rows are the low-dim translations c_i,
// and the remaining n blocks of dHi rows are the coefficient blocks B_i
// (expressed in the basis of U_i, not necessarily orthogonal).
type Params struct {
	N    int
	DHi  int
	DLo  int
	Data [][]float64
}

// NewParams allocates a zero-filled parameter matrix of the given shape.
func NewParams(n, dHi, dLo int) *Params {
	return &Params{N: n, DHi: dHi, DLo: dLo, Data: matAlloc(n+n*dHi, dLo)}
}

// C returns distribution i's translation row (length dLo). The slice
// aliases Data.
func (p *Params) C(i int) []float64 { return p.Data[i] }

// B returns distribution i's dHi x dLo coefficient block. The rows alias
// Data.
func (p *Params) B(i int) [][]float64 {
	base := p.N + i*p.DHi
	return p.Data[base : base+p.DHi]
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	q := NewParams(p.N, p.DHi, p.DLo)
	for i, row := range p.Data {
		copy(q.Data[i], row)
	}
	return q
}

// flatten returns the parameter matrix as one row-major vector, the form
// the quasi-Newton minimizer operates on.
func (p *Params) flatten() []float64 {
	rows := len(p.Data)
	if rows == 0 {
		return nil
	}
	cols := len(p.Data[0])
	flat := vecAlloc(rows * cols)
	for r, row := range p.Data {
		copy(flat[r*cols:(r+1)*cols], row)
	}
	return flat
}

// unflattenInto copies a row-major vector back into p's Data in place.
func (p *Params) unflattenInto(flat []float64) {
	cols := p.DLo
	for r := range p.Data {
		copy(p.Data[r], flat[r*cols:(r+1)*cols])
	}
}
