package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillableUnits(t *testing.T) {
	tests := []struct {
		description     string
		requestedLength int
		unitLength      int
		expected        int64
	}{
		{
			description:     "shorter than one unit rounds up to one",
			requestedLength: 30,
			unitLength:      60,
			expected:        1,
		},
		{
			description:     "exactly one unit",
			requestedLength: 60,
			unitLength:      60,
			expected:        1,
		},
		{
			description:     "one minute over a unit is charged as two",
			requestedLength: 61,
			unitLength:      60,
			expected:        2,
		},
		{
			description:     "partial second unit rounds up",
			requestedLength: 90,
			unitLength:      60,
			expected:        2,
		},
		{
			description:     "zero length still bills one unit",
			requestedLength: 0,
			unitLength:      60,
			expected:        1,
		},
		{
			description:     "non-positive unit length degenerates to one unit",
			requestedLength: 120,
			unitLength:      0,
			expected:        1,
		},
	}

	for _, test := range tests {
		assert.Equalf(t, test.expected, BillableUnits(test.requestedLength, test.unitLength), test.description)
	}
}
