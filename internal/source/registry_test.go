package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"HackerNews/internal/domain"
)

type namedSource string

func (n namedSource) Name() string { return string(n) }

func (n namedSource) TopStoryIDs(context.Context) ([]domain.StoryID, error) { return nil, nil }

func (n namedSource) Story(context.Context, domain.StoryID) (domain.Story, error) {
	return domain.Story{}, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(namedSource("web"))
	reg.Register(namedSource("api"))

	got, err := reg.Resolve("api")
	require.NoError(t, err)
	require.Equal(t, namedSource("api"), got)
	require.Equal(t, []string{"api", "web"}, reg.Names())

	_, err = reg.Resolve("gopher")
	require.ErrorContains(t, err, `"gopher" is not registered`)
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(namedSource("rss"))

	_, err := reg.Resolve("rss")
	require.NoError(t, err)
}
