package driver

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDevice struct{ output string }

func (nopDevice) BeginPage(Page) error                                  { return nil }
func (nopDevice) Line(x1, y1, x2, y2 float64, c color.Color, w float64) {}
func (nopDevice) Text(x, y float64, c color.Color, s string)            {}
func (nopDevice) EndPage() error                                        { return nil }
func (nopDevice) Close() error                                          { return nil }

func TestRegistry(t *testing.T) {
	Register("nop", func(output string) (Device, error) {
		return nopDevice{output}, nil
	})
	t.Cleanup(func() { Unregister("nop") })

	assert.Contains(t, Available(), "nop")

	d, err := Open("nop", "out")
	require.NoError(t, err)
	assert.Equal(t, nopDevice{"out"}, d)

	Unregister("nop")
	_, err = Open("nop", "out")
	assert.True(t, errors.Is(err, ErrUnknown), "got %v", err)
}

func TestOpenFactoryError(t *testing.T) {
	cause := errors.New("disk full")
	Register("broken", func(string) (Device, error) { return nil, cause })
	t.Cleanup(func() { Unregister("broken") })

	_, err := Open("broken", "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), `failed to open device "broken"`)
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		output string
		page   int
		want   string
	}{
		{"plot.png", 1, "plot.png"},
		{"plot.png", 3, "plot.png"},
		{"plot-%d.png", 1, "plot-1.png"},
		{"plot-%d.png", 12, "plot-12.png"},
		{"", 1, ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, PagePath(test.output, test.page), "%q page %d", test.output, test.page)
	}
}
