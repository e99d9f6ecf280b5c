package service

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

func TestMapStoreError(t *testing.T) {
	msgs := storeMessages{notFound: "Kelas tidak ditemukan", conflict: "Nama kelas sudah ada", internal: "Gagal menyimpan kelas"}
	logger := zap.NewNop()

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"no rows", fmt.Errorf("update class: %w", sql.ErrNoRows), http.StatusNotFound, msgs.notFound},
		{"unique", fmt.Errorf("create class: %w", &pq.Error{Code: "23505"}), http.StatusConflict, msgs.conflict},
		{"foreign key", &pq.Error{Code: "23503"}, http.StatusNotFound, msgs.notFound},
		{"other", errors.New("connection refused"), http.StatusInternalServerError, msgs.internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := appErrors.FromError(mapStoreError(logger, "op", tc.err, msgs))
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.msg, appErr.Message)
		})
	}

	assert.Nil(t, mapStoreError(logger, "op", nil, msgs))
}

func TestNewValidatorCustomTags(t *testing.T) {
	v := NewValidator()
	type payload struct {
		Month  string `validate:"month_key"`
		Status string `validate:"attendance_status"`
	}
	assert.NoError(t, v.Struct(payload{Month: "2024-01", Status: "Sakit"}))
	assert.Error(t, v.Struct(payload{Month: "2024-13", Status: "Sakit"}))
	assert.Error(t, v.Struct(payload{Month: "2024-01", Status: "Bolos"}))
}
