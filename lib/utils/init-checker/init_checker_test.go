package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type providerImpl struct{}

func (p *providerImpl) Name() string { return "impl" }

func TestCheck(t *testing.T) {
	t.Run(`all set`, func(t *testing.T) {
		var p provider = &providerImpl{}
		require.NoError(t, Check(Dep("provider", p), Dep("map", map[string]int{})))
	})
	t.Run(`nil interface`, func(t *testing.T) {
		var p provider
		err := Check(Dep("state", p))
		require.Error(t, err)
		require.Contains(t, err.Error(), "state")
	})
	t.Run(`typed nil`, func(t *testing.T) {
		var impl *providerImpl
		var p provider = impl
		require.Error(t, Check(Dep("board", p)))
	})
	t.Run(`must check panics`, func(t *testing.T) {
		require.Panics(t, func() { MustCheck(Dep("history", nil)) })
	})
}
