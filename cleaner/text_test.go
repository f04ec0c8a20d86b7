package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  Great \n\n  product\t here ", "Great product here"},
		{"empty", "   ", ""},
		{
			name: "strips inline script",
			in:   "Works well. (function() { P.when('A').register('x'); });  Would buy again.",
			want: "Works well. Would buy again.",
		},
		{
			name: "strips read-more expander css",
			in:   "Solid build .review-text-read-more-expander { max-height: 100px } Read more",
			want: "Solid build",
		},
		{
			name: "multiline injected script",
			in:   "A\n(function() {\n  var a = 1;\n});\nB",
			want: "A B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIsIdempotent(t *testing.T) {
	in := "  x (function() { y(); }); z  "
	once := Text(in)
	assert.Equal(t, once, Text(once))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("one two  three"))
	assert.Equal(t, 2, WordCount("# heading -- text"))
}
