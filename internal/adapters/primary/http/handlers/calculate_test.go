package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/adapters/secondary/memory"
	"nomogram-service/internal/core/domain"
	"nomogram-service/internal/core/services"
	ports "nomogram-service/internal/core/ports/output"
)

const apiBase = "/api/v1/nomogram"

func setupRouter(repo ports.HistoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	horizons := domain.ReferenceHorizons()

	nomogramSvc := services.NewNomogramService(domain.ReferenceCoefficientSet(), horizons, repo, nil)
	var historySvc *services.HistoryService
	if repo != nil {
		historySvc = services.NewHistoryService(repo, horizons)
	}

	h := New(nomogramSvc, historySvc)
	r := gin.New()
	api := r.Group(apiBase)
	h.RegisterRoutes(api)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func referenceBody() map[string]interface{} {
	return map[string]interface{}{
		"age":       50,
		"sex":       "f",
		"bilirubin": 1.0,
		"copper":    50,
		"stage":     2,
		"treatment": 0,
	}
}

func TestCalculate_JSON(t *testing.T) {
	r := setupRouter(memory.NewHistoryRepository(0))

	w := postJSON(r, apiBase+"/calculate", referenceBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2.850808, resp.LinearPredictor, 1e-9)
	assert.InDelta(t, 17.3018, resp.RiskScore, 1e-3)
	assert.Len(t, resp.Survivals, 3)
	assert.Equal(t, "high", resp.RiskCategory)
	assert.Equal(t, domain.RiskHigh.Advice(), resp.Advice)
	assert.Equal(t, domain.ReferenceModelName, resp.Model.Name)
	assert.NotEmpty(t, resp.RecordID)
	assert.Len(t, resp.Contributions, 6)
	assert.True(t, strings.HasSuffix(resp.SurvivalPercent["5y"], "%"))
}

func TestCalculate_WithoutHistory(t *testing.T) {
	r := setupRouter(nil)

	w := postJSON(r, apiBase+"/calculate", referenceBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	_, hasRecord := resp["record_id"]
	assert.False(t, hasRecord)
}

func TestCalculate_MissingFields(t *testing.T) {
	r := setupRouter(nil)

	body := referenceBody()
	delete(body, "copper")
	delete(body, "sex")
	body["age"] = 500 // out of range, but missing fields win

	w := postJSON(r, apiBase+"/calculate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.PreconditionErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"sex", "copper"}, resp.Missing)
}

func TestCalculate_InvalidFields(t *testing.T) {
	r := setupRouter(nil)

	body := referenceBody()
	body["age"] = 121
	body["stage"] = 5
	body["sex"] = "x"

	w := postJSON(r, apiBase+"/calculate", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
	assert.Equal(t, []string{"age", "sex", "stage"}, fields)
}

func TestCalculate_MalformedJSON(t *testing.T) {
	r := setupRouter(nil)

	req, _ := http.NewRequest("POST", apiBase+"/calculate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculate_JSONWrongTypes(t *testing.T) {
	r := setupRouter(nil)

	req, _ := http.NewRequest("POST", apiBase+"/calculate", strings.NewReader(
		`{"age":"fifty","sex":"f","bilirubin":1.0,"copper":50,"stage":2.5,"treatment":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"age", "stage"}, fields)
	assert.NotContains(t, w.Body.String(), "Go struct")
}

func TestCalculate_JSONNotAnObject(t *testing.T) {
	r := setupRouter(nil)

	w := postJSON(r, apiBase+"/calculate", []int{50, 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "Go ")
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", apiBase+"/calculate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculate_Form(t *testing.T) {
	r := setupRouter(nil)

	w := postForm(r, url.Values{
		"age":       {"50"},
		"sex":       {"f"},
		"bilirubin": {"1.0"},
		"copper":    {" 50 "},
		"stage":     {"2"},
		"treatment": {"0"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2.850808, resp.LinearPredictor, 1e-9)
}

func TestCalculate_FormUnparsable(t *testing.T) {
	r := setupRouter(nil)

	w := postForm(r, url.Values{
		"age":       {"fifty"},
		"sex":       {"f"},
		"bilirubin": {"1.0"},
		"copper":    {""},
		"stage":     {"II"},
		"treatment": {"0"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"age", "copper", "stage"}, fields)
}

func TestGetModel(t *testing.T) {
	r := setupRouter(nil)

	req, _ := http.NewRequest("GET", apiBase+"/model", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ModelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ReferenceCoefficients(), resp.Coefficients)
	assert.Equal(t, domain.ReferenceHorizons(), resp.Horizons)
	assert.Equal(t, 2.0, resp.Bilirubin.LowUpper)
	assert.Equal(t, 4.0, resp.Bilirubin.MediumUpper)
}

func TestHistoryRoutes_DisabledWithoutRepository(t *testing.T) {
	r := setupRouter(nil)

	req, _ := http.NewRequest("GET", apiBase+"/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
