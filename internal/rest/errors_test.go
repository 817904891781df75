package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"myShop/domain"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrProductNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", domain.ErrOrderNotFound), http.StatusNotFound},
		{domain.ErrCartItemNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{fmt.Errorf("%w: tea", domain.ErrInsufficientStock), http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: expired", domain.ErrUnauthorized), http.StatusUnauthorized},
		{domain.ErrEmptyCart, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		got, _ := ErrorStatus(tt.err)
		assert.Equal(t, tt.want, got, tt.err.Error())
	}
}
