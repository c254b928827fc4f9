package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMercadoPagoPaymentID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		body     string
		wantKind string
		wantID   int
	}{
		{"json string id", "", `{"type":"payment","data":{"id":"123456"}}`, "payment", 123456},
		{"json numeric id", "", `{"type":"payment","data":{"id":987}}`, "payment", 987},
		{"legacy query", "?topic=payment&id=42", "", "payment", 42},
		{"query data.id", "?type=payment&data.id=77", "", "payment", 77},
		{"body type with query id", "?data.id=5", `{"type":"payment"}`, "payment", 5},
		{"merchant order", "?topic=merchant_order&id=9", "", "merchant_order", 9},
		{"no id", "", `{"type":"payment"}`, "payment", 0},
		{"garbage", "", `not json`, "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/webhook"+tc.query, nil)

			kind, id := mercadoPagoPaymentID(c, []byte(tc.body))
			assert.Equal(t, tc.wantKind, kind)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestRawID(t *testing.T) {
	assert.Equal(t, 12, rawID([]byte(`12`)))
	assert.Equal(t, 12, rawID([]byte(`"12"`)))
	assert.Equal(t, 0, rawID(nil))
	assert.Equal(t, 0, rawID([]byte(`"abc"`)))
}
