package utils_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code   string `json:"code" validate:"required"`
	Amount int    `json:"amount" validate:"gte=1"`
}

func TestDecodeBody(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"code":"SAVE10","amount":2}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"code":`, wantErr: true},
		{name: "trailing object", body: `{"code":"A"}{"code":"B"}`, wantErr: true},
		{name: "too large", body: `{"code":"` + strings.Repeat("x", 1<<20) + `"}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := utils.DecodeBody(r, &p)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SAVE10", p.Code)
		})
	}
}

func TestWriteValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(payload{})
	require.Error(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, utils.WriteValidationError(w, err))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"message":"invalid request","fields":{"code":"required","amount":"gte"}}`, w.Body.String())
}
