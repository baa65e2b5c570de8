package webapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "braced uppercase guid",
			in:   "{9B3A15C2-0F4D-4E8A-B1D0-6F2E7C8A9B01}",
			want: "9b3a15c2-0f4d-4e8a-b1d0-6f2e7c8a9b01",
		},
		{
			name: "already canonical",
			in:   "9b3a15c2-0f4d-4e8a-b1d0-6f2e7c8a9b01",
			want: "9b3a15c2-0f4d-4e8a-b1d0-6f2e7c8a9b01",
		},
		{
			name: "surrounding whitespace",
			in:   "  {9B3A15C2-0F4D-4E8A-B1D0-6F2E7C8A9B01}  ",
			want: "9b3a15c2-0f4d-4e8a-b1d0-6f2e7c8a9b01",
		},
		{
			name: "non-guid falls back to lowercase",
			in:   "NOT-A-GUID",
			want: "not-a-guid",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}
