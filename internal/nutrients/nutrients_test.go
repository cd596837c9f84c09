package nutrients

import (
	"math"
	"testing"
)

func TestScaleChickenBreast(t *testing.T) {
	// 165 kcal, 31/3.6/0/0 per 100 g; 150 g serving.
	profile := Profile{Proteins: 31, Fats: 3.6}

	calories, scaled := Scale(profile, 165, 150)

	if calories != 248 {
		t.Errorf("expected 248 kcal (165*1.5=247.5 rounded up), got %d", calories)
	}
	if scaled.Proteins != 46.5 {
		t.Errorf("expected 46.5 g proteins, got %v", scaled.Proteins)
	}
	if scaled.Fats != 5.4 {
		t.Errorf("expected 5.4 g fats, got %v", scaled.Fats)
	}
	if scaled.Carbohydrates != 0 || scaled.Fiber != 0 {
		t.Errorf("expected zero carbs/fiber, got %v/%v", scaled.Carbohydrates, scaled.Fiber)
	}
}

func TestScaleRoundsHalfUp(t *testing.T) {
	// 1 kcal per 100 g, 50 g -> 0.5 -> rounds to 1.
	calories, _ := Scale(Profile{}, 1, 50)
	if calories != 1 {
		t.Errorf("expected half-up rounding to 1, got %d", calories)
	}
}

func TestScaleNutrientsOneDecimal(t *testing.T) {
	_, scaled := Scale(Profile{Proteins: 2.7, Fats: 0.3, Carbohydrates: 28, Fiber: 0.4}, 130, 33)
	want := Profile{Proteins: 0.9, Fats: 0.1, Carbohydrates: 9.2, Fiber: 0.1}
	if scaled != want {
		t.Errorf("expected %+v, got %+v", want, scaled)
	}
}

func TestScaleLinearWithinRounding(t *testing.T) {
	profile := Profile{Proteins: 16.9, Fats: 6.9, Carbohydrates: 66.3, Fiber: 10.6}

	single, _ := Scale(profile, 389, 100)
	double, _ := Scale(profile, 389, 200)

	if math.Abs(float64(double-2*single)) > 1 {
		t.Errorf("scaling not linear within rounding tolerance: 100g=%d, 200g=%d", single, double)
	}
}

func TestScaleZeroAmount(t *testing.T) {
	calories, scaled := Scale(Profile{Proteins: 31, Fats: 3.6}, 165, 0)
	if calories != 0 || scaled != (Profile{}) {
		t.Errorf("expected zero result for zero amount, got %d %+v", calories, scaled)
	}
}

func TestSumEmpty(t *testing.T) {
	if got := Sum(nil); got != (Profile{}) {
		t.Errorf("expected zero profile for empty sum, got %+v", got)
	}
}

func TestSumComponentWise(t *testing.T) {
	got := Sum([]Profile{
		{Proteins: 46.5, Fats: 5.4},
		{Proteins: 2.7, Fats: 0.3, Carbohydrates: 28, Fiber: 0.4},
		{Carbohydrates: 7, Fiber: 2.6},
	})
	want := Profile{Proteins: 49.2, Fats: 5.7, Carbohydrates: 35, Fiber: 3.0}

	const eps = 1e-9
	if math.Abs(got.Proteins-want.Proteins) > eps ||
		math.Abs(got.Fats-want.Fats) > eps ||
		math.Abs(got.Carbohydrates-want.Carbohydrates) > eps ||
		math.Abs(got.Fiber-want.Fiber) > eps {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
