package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(100), ToMinor(1))
	assert.Equal(t, int64(4000000), ToMinor(40000))
	assert.Equal(t, int64(1099), ToMinor(10.99))
	assert.Equal(t, int64(0), ToMinor(0))
}

func TestToMajor(t *testing.T) {
	assert.Equal(t, 40000.0, ToMajor(4000000))
	assert.Equal(t, 10.99, ToMajor(1099))
}

func TestSplitInstallmentsEven(t *testing.T) {
	assert.Equal(t, int64(1000000), SplitInstallments(4000000, 4))
}

func TestSplitInstallmentsFloors(t *testing.T) {
	per := SplitInstallments(1000, 3)
	assert.Equal(t, int64(333), per)
	// The plan never collects more than the order total.
	assert.LessOrEqual(t, per*3, int64(1000))
}

func TestSplitInstallmentsSinglePayment(t *testing.T) {
	assert.Equal(t, int64(5000), SplitInstallments(5000, 1))
	assert.Equal(t, int64(5000), SplitInstallments(5000, 0))
}
