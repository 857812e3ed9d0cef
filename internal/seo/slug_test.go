package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"excavator", "Excavator"},
		{"mini-excavator", "Mini Excavator"},
		{"john-deere", "John Deere"},
		{"oil-and-gas", "Oil And Gas"},
		{"5-ton-excavator", "5 Ton Excavator"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Humanize(tt.in), tt.in)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mini-excavator", Slugify("Mini Excavator"))
	assert.Equal(t, "john-deere", Slugify("  John Deere "))
	assert.Equal(t, "320", Slugify("320"))
}

func TestHumanizeSlugifyRoundTrip(t *testing.T) {
	for _, x := range []string{
		"Excavator",
		"mini excavator",
		"SKID STEER",
		"boom lift 60",
		"Caterpillar 320",
		"a b c",
	} {
		assert.Equal(t, Humanize(x), Humanize(Slugify(x)), x)
	}

	for _, s := range []string{"mini-excavator", "boom-lift-60", "john-deere-310sl"} {
		assert.Equal(t, s, Slugify(Humanize(s)), s)
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, "skid steer", Words("Skid-Steer"))
}
