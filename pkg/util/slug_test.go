package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Simple name", "Jeans", "jeans"},
		{"Spaces and case", "Slim Fit Jeans", "slim-fit-jeans"},
		{"Special characters", "Men's T-Shirts & Polos", "men-s-t-shirts-polos"},
		{"Leading and trailing noise", "  --Jackets!  ", "jackets"},
		{"Digits preserved", "Levi's 501", "levi-s-501"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
