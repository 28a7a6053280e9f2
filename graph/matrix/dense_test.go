package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/svtassev/crochetlayout/graph/matrix"
)

func TestNewDense_InitializesSentinelsAndDiagonal(t *testing.T) {
	d := matrix.NewDense(3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, d.At(i, i))
		assert.True(t, d.Immediate(i, i))
	}
	assert.True(t, matrix.IsSentinelInf(d.At(0, 1)))
}

func TestSetAndImmediate(t *testing.T) {
	d := matrix.NewDense(2)
	d.Set(0, 1, 5)
	d.Set(1, 0, 5)
	d.SetImmediate(0, 1)

	assert.Equal(t, 5.0, d.At(0, 1))
	assert.True(t, d.Immediate(0, 1))
	assert.True(t, d.Immediate(1, 0))
	assert.True(t, d.Immediate(0, 0))
}

func TestIsSentinelInf_Threshold(t *testing.T) {
	assert.False(t, matrix.IsSentinelInf(1000))
	assert.True(t, matrix.IsSentinelInf(matrix.SentinelInf()))
}
