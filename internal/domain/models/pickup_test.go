package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePickupMode(t *testing.T) {
	tests := []struct {
		in   string
		want PickupMode
	}{
		{"Delivery", PickupDelivery},
		{"delivery", PickupDelivery},
		{"DELIVERY", PickupDelivery},
		{"Carryout", PickupCarryout},
		{"carryout", PickupCarryout},
		{" Carryout ", PickupCarryout},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePickupMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePickupModeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "drone", "pickup"} {
		_, err := ParsePickupMode(in)
		assert.Error(t, err, "input %q", in)
	}
}
