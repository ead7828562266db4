package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsheet-service/internal/auth"
	"jobsheet-service/internal/http/middleware"
	"jobsheet-service/internal/lifecycle"
	"jobsheet-service/internal/model"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/service"
	"jobsheet-service/internal/store/storetest"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	parser *auth.Parser
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := storetest.New(t)
	sheetRepo := repository.NewJobSheetRepository(s)
	companyRepo := repository.NewCompanyRepository(s)
	counterRepo := repository.NewCounterRepository(s)
	numbering := service.NewNumberingService(s, counterRepo)

	handler := NewHandler(
		service.NewJobSheetService(s, sheetRepo, companyRepo, numbering, lifecycle.NewPolicy()),
		service.NewDocumentService(sheetRepo, repository.NewDocumentRepository(s)),
		service.NewPartService(sheetRepo, repository.NewPartRepository(s)),
		service.NewCompanyService(companyRepo),
		service.NewQuoteService(s, repository.NewQuoteRepository(s), companyRepo, numbering, model.DefaultQuoteValidity),
		service.NewUserService(repository.NewUserProfileRepository(s)),
		zerolog.Nop(),
	)
	parser := auth.NewParser(testSecret)
	return &testServer{
		router: NewRouter(handler, middleware.Auth(parser), "test", zerolog.Nop()),
		parser: parser,
	}
}

func (ts *testServer) token(t *testing.T, uid, name string) string {
	t.Helper()
	raw, err := ts.parser.Sign(auth.Claims{
		Email: uid + "@example.com",
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return raw
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type sheetBody struct {
	ID             string          `json:"id"`
	JobNumber      int             `json:"jobNumber"`
	JobNumberLabel string          `json:"jobNumberLabel"`
	Status         model.JobStatus `json:"status"`
	Position       struct {
		Number int `json:"number"`
		Count  int `json:"count"`
	} `json:"position"`
}

type statusBody struct {
	Decision string `json:"decision"`
	Sheets   []struct {
		Status        model.JobStatus `json:"status"`
		InvoiceNumber *string         `json:"invoiceNumber"`
	} `json:"sheets"`
}

func TestHealthzNeedsNoToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodGet, "/job-sheets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = ts.do(t, http.MethodGet, "/job-sheets", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestJobSheetLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	tech := ts.token(t, "tech-1", "Sam")
	office := ts.token(t, "office-1", "")

	newSheet := map[string]interface{}{
		"companyName": "Acme Ltd",
		"orderType":   "S.L.A",
		"parts":       []map[string]interface{}{{"quantity": "2", "description": "Toner", "price": 10}},
	}

	code, env := ts.do(t, http.MethodPost, "/job-sheets", tech, newSheet)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "company_choice_required", env.Code)

	newSheet["createCompanyProfile"] = true
	code, env = ts.do(t, http.MethodPost, "/job-sheets", tech, newSheet)
	require.Equal(t, http.StatusCreated, code, env.Error)
	primary := decode[sheetBody](t, env.Data)
	assert.Equal(t, "J-0001", primary.JobNumberLabel)
	assert.Equal(t, model.JobStatusOpen, primary.Status)

	code, env = ts.do(t, http.MethodGet, "/job-sheets/next-number", tech, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, decode[map[string]int](t, env.Data)["jobNumber"])

	code, env = ts.do(t, http.MethodPost, "/job-sheets/"+primary.ID+"/sheets", tech, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
	second := decode[sheetBody](t, env.Data)
	assert.Equal(t, 1, second.JobNumber)
	assert.Equal(t, 2, second.Position.Number)

	code, env = ts.do(t, http.MethodGet, "/job-sheets/"+primary.ID+"/navigate?direction=1", tech, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, second.ID, decode[map[string]string](t, env.Data)["sheetId"])

	code, _ = ts.do(t, http.MethodDelete, "/job-sheets/"+primary.ID, tech, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(t, http.MethodPut, "/job-sheets/"+primary.ID+"/status", tech, map[string]string{"status": "Invoiced"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = ts.do(t, http.MethodPut, "/job-sheets/"+primary.ID+"/status", office, map[string]string{"status": "Invoiced"})
	require.Equal(t, http.StatusAccepted, code, env.Error)
	assert.Equal(t, string(lifecycle.DecisionInvoiceNumberRequired), decode[statusBody](t, env.Data).Decision)

	code, env = ts.do(t, http.MethodPut, "/job-sheets/"+primary.ID+"/status", office, map[string]string{
		"status":        "Invoiced",
		"invoiceNumber": "INV-7",
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	result := decode[statusBody](t, env.Data)
	require.Len(t, result.Sheets, 2)
	for _, sheet := range result.Sheets {
		assert.Equal(t, model.JobStatusInvoiced, sheet.Status)
		require.NotNil(t, sheet.InvoiceNumber)
		assert.Equal(t, "INV-7", *sheet.InvoiceNumber)
	}

	code, env = ts.do(t, http.MethodGet, "/job-sheets/"+second.ID, office, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.JobStatusInvoiced, decode[sheetBody](t, env.Data).Status)
}

func TestAddSheetReadsChunkedBody(t *testing.T) {
	ts := newTestServer(t)
	office := ts.token(t, "office-1", "")

	code, env := ts.do(t, http.MethodPost, "/job-sheets", office, map[string]interface{}{
		"companyName":          "Acme Ltd",
		"createCompanyProfile": false,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	primary := decode[sheetBody](t, env.Data)

	req := httptest.NewRequest(http.MethodPost, "/job-sheets/"+primary.ID+"/sheets",
		strings.NewReader(`{"date":"2024-07-01","technicianName":"Lee"}`))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+office)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	added := decode[map[string]interface{}](t, created.Data)
	assert.Equal(t, "2024-07-01", added["date"])
	assert.Equal(t, "Lee", added["technicianName"])

	code, env = ts.do(t, http.MethodPost, "/job-sheets/"+primary.ID+"/sheets", office, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
}

func TestNotFoundAndValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	office := ts.token(t, "office-1", "")

	code, _ := ts.do(t, http.MethodGet, "/job-sheets/missing", office, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, http.MethodGet, "/quotes/missing", office, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = ts.do(t, http.MethodPost, "/job-sheets", office, map[string]string{"orderType": "Order #"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = ts.do(t, http.MethodGet, "/job-sheets/any/navigate?direction=up", office, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCompaniesAndQuotesOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	office := ts.token(t, "office-1", "")

	code, env := ts.do(t, http.MethodPost, "/companies", office, map[string]interface{}{
		"companyName": "Globex",
		"contacts":    []map[string]string{{"name": "Hank"}},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = ts.do(t, http.MethodGet, "/companies/resolve?name=globex", office, nil)
	require.Equal(t, http.StatusOK, code)
	resolved := decode[service.ResolveResult](t, env.Data)
	require.NotNil(t, resolved.Matched)
	require.NotNil(t, resolved.Selection.Contact)
	assert.Equal(t, "Hank", resolved.Selection.Contact.Name)

	code, env = ts.do(t, http.MethodPost, "/quotes", office, map[string]interface{}{
		"companyName":  "globex",
		"documentType": "Report",
		"items":        []map[string]interface{}{{"description": "Audit", "quantity": 1, "price": 1234.5}},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	quote := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "R-0001", quote["quoteNumberLabel"])
	assert.Equal(t, "R 1,234.50", quote["totalLabel"])

	code, env = ts.do(t, http.MethodGet, "/quotes", office, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)
}

func TestMeOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	tech := ts.token(t, "tech-1", "Sam")

	code, env := ts.do(t, http.MethodPut, "/me", tech, map[string]string{"displayName": "Samantha"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = ts.do(t, http.MethodGet, "/me", tech, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Samantha", decode[model.UserProfile](t, env.Data).DisplayName)
}
