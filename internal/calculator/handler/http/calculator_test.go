package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rindi230/angelsfitnesgym/internal/calculator"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	h := NewCalculatorHandler(logger)

	r := chi.NewRouter()
	r.Route("/api/v1/calculator", h.Routes)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func post(t *testing.T, router http.Handler, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestBMI(t *testing.T) {
	router := newTestRouter()

	rec, env := post(t, router, "/api/v1/calculator/bmi", map[string]any{
		"weight_kg": 80.0,
		"height_cm": 180.0,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res calculator.BMIResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.InDelta(t, 24.7, res.BMI, 0.01)
	assert.Equal(t, calculator.CategoryNormal, res.Category)
}

func TestBMI_MissingWeight(t *testing.T) {
	router := newTestRouter()

	rec, env := post(t, router, "/api/v1/calculator/bmi", map[string]any{
		"height_cm": 180.0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCalories(t *testing.T) {
	router := newTestRouter()

	rec, env := post(t, router, "/api/v1/calculator/calories", map[string]any{
		"weight_kg":      80.0,
		"height_cm":      180.0,
		"age":            30,
		"gender":         "male",
		"activity_level": "moderate",
		"goal":           "maintain",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res calculator.CalorieResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Greater(t, res.TDEE, res.BMR)
	assert.Equal(t, res.TDEE, res.Target)
}

func TestCalories_UnknownActivity(t *testing.T) {
	router := newTestRouter()

	rec, env := post(t, router, "/api/v1/calculator/calories", map[string]any{
		"weight_kg":      80.0,
		"height_cm":      180.0,
		"age":            30,
		"gender":         "male",
		"activity_level": "heroic",
		"goal":           "maintain",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestExerciseCalories_UnknownExercise(t *testing.T) {
	router := newTestRouter()

	rec, env := post(t, router, "/api/v1/calculator/exercise-calories", map[string]any{
		"exercise":  "underwater basket weaving",
		"weight_kg": 80.0,
		"minutes":   30,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestExercises(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calculator/exercises", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var exercises []string
	require.NoError(t, json.Unmarshal(env.Data, &exercises))
	assert.NotEmpty(t, exercises)
}
