package rangeset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = cmp.AllowUnexported(ContiguousRange{})

func cr(start, end float64) ContiguousRange {
	return ContiguousRange{start: start, end: end}
}

func TestNewContiguousRange(t *testing.T) {
	cases := map[string]struct {
		start, end  float64
		expectedErr bool
	}{
		"Normal":     {start: 0, end: 2},
		"Empty":      {start: 3, end: 3},
		"Unbounded":  {start: math.Inf(-1), end: math.Inf(1)},
		"Descending": {start: 1, end: 0, expectedErr: true},
		"NaNStart":   {start: math.NaN(), end: 1, expectedErr: true},
		"NaNEnd":     {start: 0, end: math.NaN(), expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := NewContiguousRange(tc.start, tc.end)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.start, c.Start())
			assert.Equal(t, tc.end, c.End())
		})
	}
}

func TestContiguousRangeFromSlice(t *testing.T) {
	c, err := ContiguousRangeFromSlice([]float64{0, 2})
	require.NoError(t, err)
	assert.Equal(t, cr(0, 2), c)

	_, err = ContiguousRangeFromSlice([]float64{1, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ContiguousRangeFromSlice([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var argErr *InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "ContiguousRangeFromSlice", argErr.Op)
	assert.Equal(t, []any{[]float64{1, 2, 3}}, argErr.Args)
}

func TestParseContiguousRange(t *testing.T) {
	cases := map[string]struct {
		text        string
		expected    ContiguousRange
		expectedErr bool
	}{
		"Pair":       {text: "0-2", expected: cr(0, 2)},
		"Single":     {text: "7", expected: cr(7, 8)},
		"Multi":      {text: "0-2, 4-7", expectedErr: true},
		"Blank":      {text: "", expectedErr: true},
		"Descending": {text: "2-0", expectedErr: true},
		"Garbage":    {text: "x", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := ParseContiguousRange(tc.text)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestContiguousRangeObservers(t *testing.T) {
	c := cr(2, 5)
	assert.Equal(t, 3.0, c.Length())
	assert.False(t, c.Empty())
	assert.True(t, c.Contains(2))
	assert.False(t, c.Contains(5))
	assert.Equal(t, "[2 5)", c.String())
	assert.Equal(t, "4", cr(4, 5).String())

	inf := cr(math.Inf(1), math.Inf(1))
	assert.True(t, inf.Empty())
	assert.Equal(t, 0.0, inf.Length())
	assert.True(t, math.IsInf(cr(0, math.Inf(1)).Length(), 1))
}

func TestContiguousRangeSubtract(t *testing.T) {
	cases := map[string]struct {
		a, b     ContiguousRange
		expected []ContiguousRange
	}{
		"BeforeDisjoint":   {a: cr(0, 2), b: cr(3, 5), expected: []ContiguousRange{cr(0, 2)}},
		"BeforeTouching":   {a: cr(0, 2), b: cr(2, 5), expected: []ContiguousRange{cr(0, 2)}},
		"OverlapsStartOfB": {a: cr(0, 3), b: cr(2, 5), expected: []ContiguousRange{cr(0, 2)}},
		"EndsWithB":        {a: cr(0, 5), b: cr(2, 5), expected: []ContiguousRange{cr(0, 2)}},
		"BInMiddle":        {a: cr(0, 10), b: cr(3, 5), expected: []ContiguousRange{cr(0, 3), cr(5, 10)}},
		"AfterDisjoint":    {a: cr(5, 7), b: cr(0, 2), expected: []ContiguousRange{cr(5, 7)}},
		"AfterTouching":    {a: cr(5, 7), b: cr(0, 5), expected: []ContiguousRange{cr(5, 7)}},
		"OverlapsEndOfB":   {a: cr(3, 7), b: cr(0, 5), expected: []ContiguousRange{cr(5, 7)}},
		"SameStart":        {a: cr(0, 7), b: cr(0, 5), expected: []ContiguousRange{cr(5, 7)}},
		"Identical":        {a: cr(0, 5), b: cr(0, 5), expected: nil},
		"CoveredByB":       {a: cr(2, 3), b: cr(0, 5), expected: nil},
		"EmptyA":           {a: cr(3, 3), b: cr(5, 6), expected: nil},
		"EmptyBInside":     {a: cr(0, 10), b: cr(5, 5), expected: []ContiguousRange{cr(0, 10)}},
		"UnboundedB":       {a: cr(0, 10), b: cr(math.Inf(-1), math.Inf(1)), expected: nil},
		"UnboundedA": {
			a:        cr(math.Inf(-1), math.Inf(1)),
			b:        cr(0, 1),
			expected: []ContiguousRange{cr(math.Inf(-1), 0), cr(1, math.Inf(1))},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.a.Subtract(tc.b)
			if diff := cmp.Diff(tc.expected, got.parts, cmpOpts); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}
