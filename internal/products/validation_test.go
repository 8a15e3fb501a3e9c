package products

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	validate := NewValidator()

	t.Run("required and oneof", func(t *testing.T) {
		err := Describe(validate.Struct(Fields{Category: "vip"}))

		var validationError *ValidationError
		require.ErrorAs(t, err, &validationError)
		require.ErrorIs(t, err, ErrorInvalidInput)
		require.Equal(t, []string{
			"name is required",
			"category must be one of: standard, premium, exclusive",
		}, validationError.Problems)
	})

	t.Run("negative price", func(t *testing.T) {
		err := Describe(validate.Struct(Fields{Name: "a", Category: CategoryStandard, Price: -1}))
		require.EqualError(t, err, "price must be greater than or equal to 0")
	})

	t.Run("long name", func(t *testing.T) {
		err := Describe(validate.Struct(Fields{Name: strings.Repeat("a", 256), Category: CategoryStandard}))
		require.EqualError(t, err, "name must be at most 255 characters")
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		require.Same(t, boom, Describe(boom))
	})

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validate.Struct(Fields{Name: "a", Category: CategoryPremium}))
	})
}
