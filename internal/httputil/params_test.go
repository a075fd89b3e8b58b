package httputil_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/custody/internal/httputil"
)

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		value       string
		expected    int64
		expectError bool
	}{
		{value: "1", expected: 1},
		{value: "9223372036854775807", expected: 9223372036854775807},
		{value: "0", expectError: true},
		{value: "-1", expectError: true},
		{value: "abc", expectError: true},
		{value: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c := &gin.Context{Params: gin.Params{{Key: "id", Value: tt.value}}}

			id, err := httputil.ParseIDParam(c, "id")

			if tt.expectError {
				assert.EqualError(t, err, "invalid id parameter: must be a positive integer")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
