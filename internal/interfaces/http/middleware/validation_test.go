package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refundInput struct {
	Gross      decimal.Decimal `json:"gross" binding:"decimal_gte0"`
	Deductions decimal.Decimal `json:"deductions" binding:"decimal_gte0"`
}

type initiateInput struct {
	ReturnQty      int    `json:"return_qty" binding:"required,min=1"`
	ReasonCategory string `json:"reason_category" binding:"required,return_reason"`
}

func TestRegisterValidations_CustomTags(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))

	t.Run("decimal_gte0 accepts zero and positive amounts", func(t *testing.T) {
		assert.NoError(t, v.Struct(refundInput{Gross: decimal.RequireFromString("1299.50")}))
		assert.NoError(t, v.Struct(refundInput{}))
	})

	t.Run("decimal_gte0 rejects negative amounts", func(t *testing.T) {
		err := v.Struct(refundInput{Gross: decimal.NewFromInt(100), Deductions: decimal.NewFromInt(-5)})
		require.Error(t, err)
		errs := err.(validator.ValidationErrors)
		require.Len(t, errs, 1)
		assert.Equal(t, "deductions", errs[0].Field())
		assert.Equal(t, "decimal_gte0", errs[0].Tag())
	})

	t.Run("return_reason accepts catalog values only", func(t *testing.T) {
		assert.NoError(t, v.Struct(initiateInput{ReturnQty: 1, ReasonCategory: "fit_size"}))

		err := v.Struct(initiateInput{ReturnQty: 1, ReasonCategory: "bored"})
		require.Error(t, err)
		assert.Equal(t, "return_reason", err.(validator.ValidationErrors)[0].Tag())
	})
}

func TestHandleValidationError(t *testing.T) {
	require.NoError(t, SetupValidator())

	router := gin.New()
	router.Use(RequestID())
	router.POST("/initiate", func(c *gin.Context) {
		var in initiateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) (*httptest.ResponseRecorder, dto.Response) {
		req := httptest.NewRequest(http.MethodPost, "/initiate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-val")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var resp dto.Response
		if w.Code != http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	t.Run("lists failing fields by json name", func(t *testing.T) {
		w, resp := post(`{"return_qty": 0, "reason_category": "bored"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-val", resp.Error.RequestID)
		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"return_qty", "reason_category"}, fields)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		w, resp := post(`{"return_qty":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid body passes", func(t *testing.T) {
		w, _ := post(`{"return_qty": 2, "reason_category": "wrong_item"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
