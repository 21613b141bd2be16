package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamHoldsInitialValue(t *testing.T) {
	p := NewParam(0.5)
	assert.Equal(t, 0.5, p.ValueAt(0))
	assert.Equal(t, 0.5, p.ValueAt(100))
}

func TestParamLinearRamp(t *testing.T) {
	assert := assert.New(t)
	p := NewParam(0)
	p.SetValueAt(0, 1)
	p.LinearRampTo(1, 2)

	assert.Equal(0.0, p.ValueAt(1))
	assert.InDelta(0.25, p.ValueAt(1.25), 1e-9)
	assert.InDelta(0.5, p.ValueAt(1.5), 1e-9)
	assert.Equal(1.0, p.ValueAt(2))
	assert.Equal(1.0, p.ValueAt(3))
}

func TestParamExponentialRamp(t *testing.T) {
	assert := assert.New(t)
	p := NewParam(0)
	p.SetValueAt(1, 0)
	p.ExponentialRampTo(0.01, 1)

	assert.InDelta(0.1, p.ValueAt(0.5), 1e-9)
	assert.InDelta(0.01, p.ValueAt(1), 1e-9)

	// a ramp away from zero holds zero until its end
	z := NewParam(0)
	z.SetValueAt(0, 0)
	z.ExponentialRampTo(1, 1)
	assert.Equal(0.0, z.ValueAt(0.99))
	assert.Equal(1.0, z.ValueAt(1))
}

func TestParamEventsStayOrdered(t *testing.T) {
	p := NewParam(0)
	p.LinearRampTo(1, 2)
	p.SetValueAt(0.5, 1)
	// 0.5 at 1 then linear to 1 at 2
	assert.InDelta(t, 0.75, p.ValueAt(1.5), 1e-9)
}

func TestParamCancelFrom(t *testing.T) {
	assert := assert.New(t)
	p := NewParam(0)
	p.SetValueAt(0.2, 0)
	p.LinearRampTo(0.8, 1)
	p.LinearRampTo(0, 2)

	p.CancelFrom(1)
	assert.Equal(1, p.Len())
	assert.Equal(0.2, p.ValueAt(5))
}

func TestParamPruneKeepsValues(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0.1, 0)
	p.SetValueAt(0.3, 1)
	p.LinearRampTo(0.5, 3)
	p.LinearRampTo(0, 4)

	before := []float64{p.ValueAt(2), p.ValueAt(3.5), p.ValueAt(5)}
	p.Prune(2)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, before, []float64{p.ValueAt(2), p.ValueAt(3.5), p.ValueAt(5)})
}

func TestParamCancelAndHoldKeepsCurve(t *testing.T) {
	assert := assert.New(t)

	lin := NewParam(0)
	lin.SetValueAt(0, 0)
	lin.LinearRampTo(1, 2)
	lin.CancelAndHoldAt(1)
	assert.InDelta(0.25, lin.ValueAt(0.5), 1e-9)
	assert.InDelta(0.5, lin.ValueAt(1), 1e-9)
	assert.InDelta(0.5, lin.ValueAt(5), 1e-9)

	exp := NewParam(0)
	exp.SetValueAt(1, 0)
	exp.ExponentialRampTo(0.01, 2)
	exp.CancelAndHoldAt(1)
	assert.InDelta(math.Pow(0.01, 0.25), exp.ValueAt(0.5), 1e-9)
	assert.InDelta(0.1, exp.ValueAt(3), 1e-9)

	// a ramp scheduled after the hold starts from the held value
	exp.LinearRampTo(0.3, 2)
	assert.InDelta(0.2, exp.ValueAt(1.5), 1e-9)
}

func TestParamCancelAndHoldOnAnEvent(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0.3, 1)
	p.LinearRampTo(0.9, 2)
	p.CancelAndHoldAt(1)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 0.3, p.ValueAt(3))

	// nothing scheduled: the held value just stays
	q := NewParam(0.4)
	q.CancelAndHoldAt(1)
	assert.Equal(t, 0.4, q.ValueAt(0.5))
	assert.Equal(t, 0.4, q.ValueAt(2))
}
