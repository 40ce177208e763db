//go:build noplot

package render

import "github.com/Alextopher/lisscope/generators"

func Render(buf *generators.Buffer, opts Options) (*Figure, error) {
	return nil, ErrRenderingUnavailable
}
