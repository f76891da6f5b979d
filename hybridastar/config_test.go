package hybridastar

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDefaultConfigValidates(t *testing.T) {
	test.That(t, NewDefaultConfig().Validate(), test.ShouldBeNil)
}

func TestValidateRejectsOddNextNodeNum(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.NextNodeNum = 7
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)
}

func TestValidateRejectsNonPositiveStepSize(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.StepSize = 0
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)
}

func TestTurningRadiusMatchesFormula(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.WheelBase = 2.8
	cfg.MaxSteerAngle = 0.5

	got := cfg.TurningRadius()
	test.That(t, got, test.ShouldBeGreaterThan, 0.0)
	test.That(t, got, test.ShouldAlmostEqual, 2.8/math.Tan(0.5/cfg.SteerRatio))
}
