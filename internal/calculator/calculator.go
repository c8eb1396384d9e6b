// Package calculator implements the fitness calculators exposed on the
// site: BMI, body fat, ideal weight, BMR/TDEE (Mifflin-St Jeor), macro
// split, daily water intake, and MET-based exercise calories. All
// functions are pure; inputs use metric units (kg, cm) and results are
// rounded the way the site displays them.
package calculator

import (
	"math"

	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// Gender selects the gender-specific constants in the formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel scales BMR into TDEE and water intake.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal adjusts TDEE for a calorie target.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// tdeeMultipliers are the standard activity factors applied to BMR.
var tdeeMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// waterMultipliers scale the baseline 33 ml/kg daily water intake.
var waterMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.0,
	ActivityLight:      1.2,
	ActivityModerate:   1.4,
	ActivityActive:     1.6,
	ActivityVeryActive: 1.8,
}

// exerciseMETs maps supported exercises to their MET values.
var exerciseMETs = map[string]float64{
	"walking":       3.8,
	"running":       8.3,
	"cycling":       7.5,
	"swimming":      8.0,
	"weightlifting": 3.0,
	"yoga":          2.5,
	"dancing":       4.5,
	"basketball":    8.0,
	"tennis":        7.0,
	"hiking":        6.0,
}

// BMICategory names for the standard WHO ranges.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// BMIResult is the outcome of a BMI calculation.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI computes body mass index from weight in kg and height in cm.
func BMI(weightKg, heightCm float64) (BMIResult, error) {
	if weightKg <= 0 {
		return BMIResult{}, apperrors.InvalidInput("weight must be greater than 0")
	}
	if heightCm <= 0 {
		return BMIResult{}, apperrors.InvalidInput("height must be greater than 0")
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	return BMIResult{
		BMI:      round1(bmi),
		Category: bmiCategory(bmi),
	}, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// BodyFat estimates body fat percentage with the Deurenberg formula
// (1.20 x BMI + 0.23 x age - gender constant), clamped to [0, 50].
func BodyFat(weightKg, heightCm float64, age int, gender Gender) (float64, error) {
	if weightKg <= 0 {
		return 0, apperrors.InvalidInput("weight must be greater than 0")
	}
	if heightCm <= 0 {
		return 0, apperrors.InvalidInput("height must be greater than 0")
	}
	if age <= 0 {
		return 0, apperrors.InvalidInput("age must be greater than 0")
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	var pct float64
	switch gender {
	case GenderMale:
		pct = 1.20*bmi + 0.23*float64(age) - 16.2
	case GenderFemale:
		pct = 1.20*bmi + 0.23*float64(age) - 5.4
	default:
		return 0, apperrors.InvalidInput("gender must be male or female")
	}

	pct = math.Max(0, math.Min(50, pct))
	return round1(pct), nil
}

// IdealWeight returns the ideal body weight in kg based on a target BMI
// of 22 for men and 21 for women.
func IdealWeight(heightCm float64, gender Gender) (float64, error) {
	if heightCm <= 0 {
		return 0, apperrors.InvalidInput("height must be greater than 0")
	}

	var targetBMI float64
	switch gender {
	case GenderMale:
		targetBMI = 22
	case GenderFemale:
		targetBMI = 21
	default:
		return 0, apperrors.InvalidInput("gender must be male or female")
	}

	heightM := heightCm / 100
	return round1(targetBMI * heightM * heightM), nil
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, gender Gender) (float64, error) {
	if weightKg <= 0 {
		return 0, apperrors.InvalidInput("weight must be greater than 0")
	}
	if heightCm <= 0 {
		return 0, apperrors.InvalidInput("height must be greater than 0")
	}
	if age <= 0 {
		return 0, apperrors.InvalidInput("age must be greater than 0")
	}

	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case GenderMale:
		return math.Round(base + 5), nil
	case GenderFemale:
		return math.Round(base - 161), nil
	default:
		return 0, apperrors.InvalidInput("gender must be male or female")
	}
}

// CalorieResult is the outcome of a calorie-needs calculation.
type CalorieResult struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Target   float64 `json:"target"`
	Goal     Goal    `json:"goal"`
	Activity ActivityLevel `json:"activity_level"`
}

// Calories computes BMR, TDEE for the activity level, and the goal-adjusted
// daily calorie target (15% deficit or surplus).
func Calories(weightKg, heightCm float64, age int, gender Gender, activity ActivityLevel, goal Goal) (CalorieResult, error) {
	bmr, err := BMR(weightKg, heightCm, age, gender)
	if err != nil {
		return CalorieResult{}, err
	}

	mult, ok := tdeeMultipliers[activity]
	if !ok {
		return CalorieResult{}, apperrors.InvalidInput("unknown activity level: " + string(activity))
	}
	tdee := math.Round(bmr * mult)

	var target float64
	switch goal {
	case GoalLose:
		target = math.Round(tdee * 0.85)
	case GoalGain:
		target = math.Round(tdee * 1.15)
	case GoalMaintain:
		target = tdee
	default:
		return CalorieResult{}, apperrors.InvalidInput("goal must be lose, maintain, or gain")
	}

	return CalorieResult{
		BMR:      bmr,
		TDEE:     tdee,
		Target:   target,
		Goal:     goal,
		Activity: activity,
	}, nil
}

// MacroResult is a daily macronutrient split in grams.
type MacroResult struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Fat      float64 `json:"fat_g"`
	Carbs    float64 `json:"carbs_g"`
}

// Macros splits a daily calorie target into protein, fat, and carbs.
// Protein is set at 1.2 g per lb of body weight, fat at 25% of calories,
// and carbs take the remainder.
func Macros(weightKg, calories float64) (MacroResult, error) {
	if weightKg <= 0 {
		return MacroResult{}, apperrors.InvalidInput("weight must be greater than 0")
	}
	if calories <= 0 {
		return MacroResult{}, apperrors.InvalidInput("calories must be greater than 0")
	}

	protein := weightKg * 2.2 * 1.2
	fat := calories * 0.25 / 9
	carbs := (calories - protein*4 - fat*9) / 4
	if carbs < 0 {
		carbs = 0
	}

	return MacroResult{
		Calories: math.Round(calories),
		Protein:  math.Round(protein),
		Fat:      math.Round(fat),
		Carbs:    math.Round(carbs),
	}, nil
}

// WaterIntake returns the recommended daily water intake in milliliters:
// 33 ml per kg scaled by activity level.
func WaterIntake(weightKg float64, activity ActivityLevel) (float64, error) {
	if weightKg <= 0 {
		return 0, apperrors.InvalidInput("weight must be greater than 0")
	}

	mult, ok := waterMultipliers[activity]
	if !ok {
		return 0, apperrors.InvalidInput("unknown activity level: " + string(activity))
	}

	return math.Round(weightKg * 0.033 * mult * 1000), nil
}

// Exercises lists the supported exercise names for calorie estimation.
func Exercises() []string {
	names := make([]string, 0, len(exerciseMETs))
	for name := range exerciseMETs {
		names = append(names, name)
	}
	return names
}

// ExerciseCalories estimates calories burned for an exercise using its MET
// value: MET x weight(kg) x duration(h).
func ExerciseCalories(exercise string, weightKg float64, minutes int) (float64, error) {
	if weightKg <= 0 {
		return 0, apperrors.InvalidInput("weight must be greater than 0")
	}
	if minutes <= 0 {
		return 0, apperrors.InvalidInput("duration must be greater than 0")
	}

	met, ok := exerciseMETs[exercise]
	if !ok {
		return 0, apperrors.InvalidInput("unknown exercise: " + exercise)
	}

	return math.Round(met * weightKg * float64(minutes) / 60), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
