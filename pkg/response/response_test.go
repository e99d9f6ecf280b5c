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

	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

func TestErrorNeverLeaksCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Internal(errors.New("pq: connection refused"), "Gagal mengambil data kelas"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Gagal mengambil data kelas", body["error"]["message"])
	require.Len(t, c.Errors, 1)
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "laporan_2024-01.xlsx", "application/octet-stream", []byte("PK"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="laporan_2024-01.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String())
}

func TestMessageAndEmptyMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusOK, MessageBody{Message: "Nilai berhasil disimpan"}, nil, map[string]interface{}{})

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"message":"Nilai berhasil disimpan"}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Message(c, "Logout berhasil")
	assert.JSONEq(t, `{"data":{"message":"Logout berhasil"}}`, w.Body.String())
}
