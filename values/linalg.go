package values

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var ErrDimensionMismatch = errors.New("dimension mismatch")

// Vector is an immutable real vector.
type Vector struct {
	vec *mat.VecDense
}

var _ Value = Vector{}

func NewVector(data []float64) (Vector, error) {
	if len(data) == 0 {
		return Vector{}, fmt.Errorf("%w: empty vector", ErrDimensionMismatch)
	}
	return Vector{
		vec: mat.NewVecDense(len(data), slices.Clone(data)),
	}, nil
}

func (Vector) Kind() Kind { return KindVector }

func (v Vector) Len() int {
	if v.vec == nil {
		return 0
	}
	return v.vec.Len()
}

func (v Vector) Data() []float64 {
	ret := make([]float64, v.Len())
	for i := range ret {
		ret[i] = v.vec.AtVec(i)
	}
	return ret
}

func (v Vector) Scale(f float64) Vector {
	var out mat.VecDense
	out.ScaleVec(f, v.vec)
	return Vector{vec: &out}
}

func (v Vector) Add(other Vector) (Vector, error) {
	if v.Len() != other.Len() {
		return Vector{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, v.Len(), other.Len())
	}
	var out mat.VecDense
	out.AddVec(v.vec, other.vec)
	return Vector{vec: &out}, nil
}

// MulMatrix computes the row vector product v·m.
func (v Vector) MulMatrix(m Matrix) (Vector, error) {
	rows, _ := m.Dims()
	if v.Len() != rows {
		return Vector{}, fmt.Errorf("%w: vector of %d by matrix of %d rows", ErrDimensionMismatch, v.Len(), rows)
	}
	var out mat.VecDense
	out.MulVec(m.dense.T(), v.vec)
	return Vector{vec: &out}, nil
}

func (v Vector) Equal(other Vector) bool {
	if v.Len() != other.Len() {
		return false
	}
	if v.Len() == 0 {
		return true
	}
	return mat.Equal(v.vec, other.vec)
}

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, f := range v.Data() {
		sb.WriteString(" ")
		sb.WriteString(Real(f).String())
	}
	sb.WriteString(" ] ->V")
	return sb.String()
}

// Matrix is an immutable rectangular real matrix.
type Matrix struct {
	dense *mat.Dense
}

var _ Value = Matrix{}

func NewMatrix(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("%w: empty matrix", ErrDimensionMismatch)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, expecting %d", ErrDimensionMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return Matrix{
		dense: mat.NewDense(len(rows), cols, data),
	}, nil
}

func (Matrix) Kind() Kind { return KindMatrix }

func (m Matrix) Dims() (int, int) {
	if m.dense == nil {
		return 0, 0
	}
	return m.dense.Dims()
}

func (m Matrix) Rows() [][]float64 {
	r, c := m.Dims()
	ret := make([][]float64, r)
	for i := range r {
		ret[i] = make([]float64, c)
		for j := range c {
			ret[i][j] = m.dense.At(i, j)
		}
	}
	return ret
}

func (m Matrix) Mul(other Matrix) (Matrix, error) {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if c1 != r2 {
		return Matrix{}, fmt.Errorf("%w: %dx%d by %dx%d", ErrDimensionMismatch, r1, c1, r2, c2)
	}
	var out mat.Dense
	out.Mul(m.dense, other.dense)
	return Matrix{dense: &out}, nil
}

func (m Matrix) Scale(f float64) Matrix {
	var out mat.Dense
	out.Scale(f, m.dense)
	return Matrix{dense: &out}
}

func (m Matrix) Add(other Matrix) (Matrix, error) {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if r1 != r2 || c1 != c2 {
		return Matrix{}, fmt.Errorf("%w: %dx%d plus %dx%d", ErrDimensionMismatch, r1, c1, r2, c2)
	}
	var out mat.Dense
	out.Add(m.dense, other.dense)
	return Matrix{dense: &out}, nil
}

// MulVector computes the column vector product m·v.
func (m Matrix) MulVector(v Vector) (Vector, error) {
	_, cols := m.Dims()
	if v.Len() != cols {
		return Vector{}, fmt.Errorf("%w: matrix of %d columns by vector of %d", ErrDimensionMismatch, cols, v.Len())
	}
	var out mat.VecDense
	out.MulVec(m.dense, v.vec)
	return Vector{vec: &out}, nil
}

func (m Matrix) Equal(other Matrix) bool {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	if r1 != r2 || c1 != c2 {
		return false
	}
	if r1 == 0 {
		return true
	}
	return mat.Equal(m.dense, other.dense)
}

func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, row := range m.Rows() {
		sb.WriteString(" [")
		for _, f := range row {
			sb.WriteString(" ")
			sb.WriteString(Real(f).String())
		}
		sb.WriteString(" ]")
	}
	sb.WriteString(" ] ->MAT")
	return sb.String()
}
