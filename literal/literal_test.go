package literal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfluke/ndarray/ndarray"
)

const example = "[\n  [1, 2, 3, 0, 0],\n  [1, 2, 3, 4, 5]\n]"

func TestParseFlowList(t *testing.T) {
	a, err := Parse[int]("[[1, 2, 3], [1, 2, 3, 4, 5]]", 2, 5)
	require.NoError(t, err)

	if diff := cmp.Diff(example, a.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ndarray.Shape{2, 5}, a.Dims())
}

func TestParseBlockList(t *testing.T) {
	src := `
- [1, 2, 3]
- - 1
  - 2
  - 3
  - 4
  - 5
`
	a, err := Parse[int](src, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, example, a.String())
}

func TestParseAnchors(t *testing.T) {
	a, err := Parse[int]("[&row [1, 2], *row, *row]", 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1, 2, 1, 2}, a.Flat())
}

func TestParseBroadcastAndDefault(t *testing.T) {
	full, err := Parse[float64]("2.5", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, full.Flat())

	for _, src := range []string{"", "null", "~"} {
		zero, err := Parse[string](src, 3)
		require.NoError(t, err, "src %q", src)
		assert.Equal(t, []string{"", "", ""}, zero.Flat())
	}
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		shape []int
	}{
		{"outer list too short", "[[1, 2]]", []int{2, 2}},
		{"outer list too long", "[[1], [2], [3]]", []int{2, 1}},
		{"innermost too long", "[1, 2, 3]", []int{2}},
		{"scalar where list expected", "[1, 2]", []int{2, 2}},
		{"list where scalar expected", "[[[1]]]", []int{1, 1}},
		{"mapping", "{a: 1}", []int{1}},
		{"invalid shape", "[1]", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse[int](tt.src, tt.shape...)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ndarray.ErrInvalidShape)
		})
	}
}

func TestParseElementError(t *testing.T) {
	_, err := Parse[int]("[1, two]", 2)
	require.ErrorIs(t, err, ErrElement)
	assert.Contains(t, err.Error(), "line 1")
	assert.NotErrorIs(t, err, ndarray.ErrInvalidShape)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse[int]("[1, 2", 2)
	assert.Error(t, err)
}

func TestParseChecksLengthBeforeChildren(t *testing.T) {
	// the bad element in the first row must not mask the outer length error
	_, err := Parse[int]("[[1, two], [3], [4]]", 2, 2)
	require.ErrorIs(t, err, ndarray.ErrInvalidShape)
	assert.NotErrorIs(t, err, ErrElement)
	assert.Contains(t, err.Error(), "got 3 lists for extent 2")

	// aliased rows are rejected at the top without expanding each copy
	_, err = Parse[int]("[&m [&r [1], *r, *r], *m, *m, *m]", 2, 3, 1)
	require.ErrorIs(t, err, ndarray.ErrInvalidShape)
	assert.Contains(t, err.Error(), "line 1, column 1")

	_, err = Parse[int]("[1, 2, two]", 2)
	require.ErrorIs(t, err, ndarray.ErrInvalidShape)
	assert.Contains(t, err.Error(), "got 3 values for extent 2")
}
