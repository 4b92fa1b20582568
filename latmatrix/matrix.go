// Package latmatrix implements dense row-major matrices and vectors of
// ring elements over R_q, including the block composition operators the
// public-parameter construction needs.
package latmatrix

import (
	"fmt"
	"io"

	"lattice-vcs/ringq"
)

// Vector is an ordered sequence of ring elements: committer randomness (len
// k), a message (len l), or a commitment block (len n or n+l).
type Vector []ringq.RingElt

// Matrix is a dense row-major matrix of ring elements, Rows[i][j] holding
// the entry at row i, column j.
type Matrix struct {
	Rows [][]ringq.RingElt
	Ring ringq.Ring
}

// Dims returns (rows, cols).
func (m Matrix) Dims() (int, int) {
	if len(m.Rows) == 0 {
		return 0, 0
	}
	return len(m.Rows), len(m.Rows[0])
}

// Identity returns the (n,n) identity matrix over r.
func Identity(r ringq.Ring, n int) Matrix {
	rows := make([][]ringq.RingElt, n)
	for i := 0; i < n; i++ {
		row := make([]ringq.RingElt, n)
		for j := 0; j < n; j++ {
			if i == j {
				row[j] = ringq.OneRingElt(r)
			} else {
				row[j] = ringq.ZeroRingElt(r)
			}
		}
		rows[i] = row
	}
	return Matrix{Rows: rows, Ring: r}
}

// Zero returns a (rows,cols) matrix of zero ring elements.
func Zero(r ringq.Ring, rows, cols int) Matrix {
	out := make([][]ringq.RingElt, rows)
	for i := 0; i < rows; i++ {
		row := make([]ringq.RingElt, cols)
		for j := 0; j < cols; j++ {
			row[j] = ringq.ZeroRingElt(r)
		}
		out[i] = row
	}
	return Matrix{Rows: out, Ring: r}
}

// SampleUniform draws a (rows,cols) matrix whose cells are each
// independently uniform ring elements over r, reading entropy from rng.
func SampleUniform(r ringq.Ring, rows, cols int, rng io.Reader) (Matrix, error) {
	out := make([][]ringq.RingElt, rows)
	for i := 0; i < rows; i++ {
		row := make([]ringq.RingElt, cols)
		for j := 0; j < cols; j++ {
			e, err := ringq.SampleUniformRingElt(r, rng)
			if err != nil {
				return Matrix{}, fmt.Errorf("latmatrix: sample uniform row %d col %d: %w", i, j, err)
			}
			row[j] = e
		}
		out[i] = row
	}
	return Matrix{Rows: out, Ring: r}, nil
}

// ComposeHorizontal concatenates the columns of m and other; the row counts
// must match.
func (m Matrix) ComposeHorizontal(other Matrix) (Matrix, error) {
	rowsM, _ := m.Dims()
	rowsO, _ := other.Dims()
	if rowsM != rowsO {
		return Matrix{}, fmt.Errorf("latmatrix: compose horizontal row mismatch %d vs %d", rowsM, rowsO)
	}
	out := make([][]ringq.RingElt, rowsM)
	for i := range out {
		row := make([]ringq.RingElt, 0, len(m.Rows[i])+len(other.Rows[i]))
		row = append(row, m.Rows[i]...)
		row = append(row, other.Rows[i]...)
		out[i] = row
	}
	return Matrix{Rows: out, Ring: m.Ring}, nil
}

// ComposeVertical stacks the rows of m on top of other; the column counts
// must match.
func (m Matrix) ComposeVertical(other Matrix) (Matrix, error) {
	_, colsM := m.Dims()
	_, colsO := other.Dims()
	if len(m.Rows) > 0 && len(other.Rows) > 0 && colsM != colsO {
		return Matrix{}, fmt.Errorf("latmatrix: compose vertical col mismatch %d vs %d", colsM, colsO)
	}
	out := make([][]ringq.RingElt, 0, len(m.Rows)+len(other.Rows))
	out = append(out, m.Rows...)
	out = append(out, other.Rows...)
	return Matrix{Rows: out, Ring: m.Ring}, nil
}

// SplitVertical splits m into a top block of h1 rows and a bottom block of
// h2 rows. Requires h1+h2 == rows(m).
func (m Matrix) SplitVertical(h1, h2 int) (Matrix, Matrix, error) {
	rows, _ := m.Dims()
	if h1+h2 != rows {
		return Matrix{}, Matrix{}, fmt.Errorf("latmatrix: split vertical %d+%d != %d", h1, h2, rows)
	}
	top := Matrix{Rows: append([][]ringq.RingElt(nil), m.Rows[:h1]...), Ring: m.Ring}
	bottom := Matrix{Rows: append([][]ringq.RingElt(nil), m.Rows[h1:]...), Ring: m.Ring}
	return top, bottom, nil
}

// MulVector computes the standard (rows,cols)·(cols,) -> (rows,) matrix
// vector product with inner products taken in R_q.
func (m Matrix) MulVector(v Vector) (Vector, error) {
	rows, cols := m.Dims()
	if cols != len(v) {
		return nil, fmt.Errorf("latmatrix: mul vector dimension mismatch cols=%d len(v)=%d", cols, len(v))
	}
	out := make(Vector, rows)
	for i := 0; i < rows; i++ {
		acc := ringq.ZeroRingElt(m.Ring)
		for j := 0; j < cols; j++ {
			acc = acc.Add(m.Rows[i][j].Mul(v[j]))
		}
		out[i] = acc
	}
	return out, nil
}

// Add returns the element-wise sum of two vectors of equal length.
func (v Vector) Add(o Vector) (Vector, error) {
	if len(v) != len(o) {
		return nil, fmt.Errorf("latmatrix: vector add length mismatch %d vs %d", len(v), len(o))
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i].Add(o[i])
	}
	return out, nil
}

// Sub returns the element-wise difference of two vectors of equal length.
func (v Vector) Sub(o Vector) (Vector, error) {
	if len(v) != len(o) {
		return nil, fmt.Errorf("latmatrix: vector sub length mismatch %d vs %d", len(v), len(o))
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i].Sub(o[i])
	}
	return out, nil
}

// ScalarMul multiplies every component of v by s (a ring element).
func (v Vector) ScalarMul(s ringq.RingElt) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i].Mul(s)
	}
	return out
}

// Equal reports whether v and o hold equal ring elements in the same order.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if !v[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Concat concatenates vectors in order, used to build [0_n || x].
func Concat(vs ...Vector) Vector {
	var total int
	for _, v := range vs {
		total += len(v)
	}
	out := make(Vector, 0, total)
	for _, v := range vs {
		out = append(out, v...)
	}
	return out
}

// ZeroVector returns a vector of n zero ring elements over r.
func ZeroVector(r ringq.Ring, n int) Vector {
	out := make(Vector, n)
	for i := range out {
		out[i] = ringq.ZeroRingElt(r)
	}
	return out
}

// ByteLen returns the total serialized size of v: len(v) * per-element byte
// length.
func (v Vector) ByteLen() int {
	if len(v) == 0 {
		return 0
	}
	return len(v) * v[0].ByteLen()
}

// Bytes serializes v as the concatenation of each element's canonical byte
// encoding, in order — the canonical transcript form fed to the challenge
// sampler (spec §4.9 step 1).
func (v Vector) Bytes() []byte {
	out := make([]byte, 0, v.ByteLen())
	for _, e := range v {
		out = append(out, e.Bytes()...)
	}
	return out
}
