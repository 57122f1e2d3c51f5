package global

import (
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ConcurrentCallsShareInstance(t *testing.T) {
	const workers = 32
	results := make([]*validator.Validate, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Validator()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for i, v := range results {
		assert.Same(t, results[0], v, "goroutine %d nhận validator khác", i)
	}

	InitValidator()
	assert.Same(t, results[0], Validator(), "gọi InitValidator lần nữa không được tạo lại")
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	type payload struct {
		Email string `json:"accountEmail,omitempty" validate:"required"`
	}

	err := Validator().Struct(payload{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "accountEmail", verrs[0].Field())
}
