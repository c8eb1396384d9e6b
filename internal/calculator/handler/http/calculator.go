package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rindi230/angelsfitnesgym/internal/calculator"
	"github.com/rindi230/angelsfitnesgym/pkg/httputil"
	"github.com/rindi230/angelsfitnesgym/pkg/validator"
)

// CalculatorHandler exposes the fitness calculators over HTTP.
type CalculatorHandler struct {
	logger *slog.Logger
}

// NewCalculatorHandler creates a new calculator HTTP handler.
func NewCalculatorHandler(logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{logger: logger}
}

// Routes registers the calculator endpoints on the given router.
func (h *CalculatorHandler) Routes(r chi.Router) {
	r.Post("/bmi", h.BMI)
	r.Post("/body-fat", h.BodyFat)
	r.Post("/ideal-weight", h.IdealWeight)
	r.Post("/calories", h.Calories)
	r.Post("/macros", h.Macros)
	r.Post("/water", h.Water)
	r.Post("/exercise-calories", h.ExerciseCalories)
	r.Get("/exercises", h.Exercises)
}

// --- Request DTOs ---

// BMIRequest is the JSON request body for the BMI calculator.
type BMIRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
}

// BodyFatRequest is the JSON request body for the body fat calculator.
type BodyFatRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
	Age      int     `json:"age" validate:"required,gt=0"`
	Gender   string  `json:"gender" validate:"required,oneof=male female"`
}

// IdealWeightRequest is the JSON request body for the ideal weight calculator.
type IdealWeightRequest struct {
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
	Gender   string  `json:"gender" validate:"required,oneof=male female"`
}

// CaloriesRequest is the JSON request body for the calorie needs calculator.
type CaloriesRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
	Age      int     `json:"age" validate:"required,gt=0"`
	Gender   string  `json:"gender" validate:"required,oneof=male female"`
	Activity string  `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
	Goal     string  `json:"goal" validate:"required,oneof=lose maintain gain"`
}

// MacrosRequest is the JSON request body for the macro split calculator.
type MacrosRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Calories float64 `json:"calories" validate:"required,gt=0"`
}

// WaterRequest is the JSON request body for the water intake calculator.
type WaterRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Activity string  `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
}

// ExerciseCaloriesRequest is the JSON request body for exercise calorie estimation.
type ExerciseCaloriesRequest struct {
	Exercise string  `json:"exercise" validate:"required"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Minutes  int     `json:"minutes" validate:"required,gt=0"`
}

// --- Handlers ---

// BMI handles POST /api/v1/calculators/bmi
func (h *CalculatorHandler) BMI(w http.ResponseWriter, r *http.Request) {
	var req BMIRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := calculator.BMI(req.WeightKg, req.HeightCm)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}

// BodyFat handles POST /api/v1/calculators/body-fat
func (h *CalculatorHandler) BodyFat(w http.ResponseWriter, r *http.Request) {
	var req BodyFatRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	pct, err := calculator.BodyFat(req.WeightKg, req.HeightCm, req.Age, calculator.Gender(req.Gender))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]float64{"body_fat_pct": pct}})
}

// IdealWeight handles POST /api/v1/calculators/ideal-weight
func (h *CalculatorHandler) IdealWeight(w http.ResponseWriter, r *http.Request) {
	var req IdealWeightRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	kg, err := calculator.IdealWeight(req.HeightCm, calculator.Gender(req.Gender))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]float64{"ideal_weight_kg": kg}})
}

// Calories handles POST /api/v1/calculators/calories
func (h *CalculatorHandler) Calories(w http.ResponseWriter, r *http.Request) {
	var req CaloriesRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := calculator.Calories(
		req.WeightKg, req.HeightCm, req.Age,
		calculator.Gender(req.Gender),
		calculator.ActivityLevel(req.Activity),
		calculator.Goal(req.Goal),
	)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}

// Macros handles POST /api/v1/calculators/macros
func (h *CalculatorHandler) Macros(w http.ResponseWriter, r *http.Request) {
	var req MacrosRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	res, err := calculator.Macros(req.WeightKg, req.Calories)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}

// Water handles POST /api/v1/calculators/water
func (h *CalculatorHandler) Water(w http.ResponseWriter, r *http.Request) {
	var req WaterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ml, err := calculator.WaterIntake(req.WeightKg, calculator.ActivityLevel(req.Activity))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]float64{"water_ml": ml}})
}

// ExerciseCalories handles POST /api/v1/calculators/exercise-calories
func (h *CalculatorHandler) ExerciseCalories(w http.ResponseWriter, r *http.Request) {
	var req ExerciseCaloriesRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	kcal, err := calculator.ExerciseCalories(req.Exercise, req.WeightKg, req.Minutes)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]float64{"calories": kcal}})
}

// Exercises handles GET /api/v1/calculators/exercises
func (h *CalculatorHandler) Exercises(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: calculator.Exercises()})
}
