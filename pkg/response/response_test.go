package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

func TestErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("nil pointer dereference on relation teacher"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "nil pointer")
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors.String(), "nil pointer")
}

func TestErrorForwardsDomainMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, appErrors.Clone(appErrors.ErrConflict, "attendance already recorded for student on date"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
	assert.Equal(t, "attendance already recorded for student on date", envelope.Error.Message)
	assert.Empty(t, c.Errors)
}

func TestErrorUsesFixedMessageForWrappedInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, appErrors.Wrap(errors.New("pq: relation missing"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades"))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInternal.Message, envelope.Error.Message)
	assert.Contains(t, c.Errors.String(), "pq: relation missing")
}

func TestJSONEnvelopeCarriesDataAndMetaOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	JSON(c, http.StatusOK, []string{"a1"}, map[string]interface{}{"cache": "hit"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.JSONEq(t, `["a1"]`, string(body["data"]))
	assert.JSONEq(t, `{"cache":"hit"}`, string(body["meta"]))
}

func TestCreatedOmitsMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Created(c, map[string]string{"id": "a1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"a1"}}`, rec.Body.String())
}
