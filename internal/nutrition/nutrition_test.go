package nutrition

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFoodQuery(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		q, err := ParseFoodQuery("  Chicken Breast ")
		require.NoError(t, err)
		assert.Equal(t, "Chicken Breast", q.String())
		assert.False(t, q.IsZero())
	})

	t.Run("Unicode letters", func(t *testing.T) {
		q, err := ParseFoodQuery("crème brûlée")
		require.NoError(t, err)
		assert.Equal(t, "crème brûlée", q.String())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseFoodQuery("   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	for _, raw := range []string{"Chicken Breast!!", "apple1", "rice_cake", "egg-white"} {
		t.Run("Invalid "+raw, func(t *testing.T) {
			q, err := ParseFoodQuery(raw)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.True(t, q.IsZero())
		})
	}
}

func TestResult(t *testing.T) {
	var nilResult *Result
	assert.True(t, nilResult.Empty())
	assert.True(t, (&Result{}).Empty())
	assert.False(t, (&Result{Foods: []Record{{Name: "apple"}}}).Empty())
}

func TestPresent(t *testing.T) {
	assert.True(t, Present(Value(0)))
	assert.True(t, Present(Value(95)))
	assert.False(t, Present(nil))
	assert.False(t, Present(Value(math.NaN())))
	assert.False(t, Present(Value(math.Inf(1))))
}

func TestFailure(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("fetch: %w", &Failure{Kind: KindService, Status: 503, Err: base})

	assert.Equal(t, KindService, KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "service failure (status 503): boom")

	assert.Equal(t, KindUnknown, KindOf(base))
	assert.Equal(t, "no_match", KindNoMatch.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
