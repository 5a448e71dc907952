package cache

import (
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

type memcachedConfig struct {
	hosts []string
}

func (c memcachedConfig) Hosts() []string { return c.hosts }

func (memcachedConfig) KeyPrefix() string { return "tracker:" }

func Test_OnUnreachableServer_ShouldFailToConnect(t *testing.T) {
	_, err := NewMemcache(memcachedConfig{hosts: []string{"127.0.0.1:1"}})
	assert.Error(t, err)
}

func Test_FormatKey_ShouldPrefix(t *testing.T) {
	mc := &MemcacheClient{prefix: "tracker:"}
	assert.Equal(t, "tracker:expenses", mc.formatKey("expenses"))
}

func Test_OnClose_ShouldReleaseClient(t *testing.T) {
	mc := &MemcacheClient{client: memcache.New("127.0.0.1:1"), prefix: "tracker:"}
	assert.NoError(t, mc.Close())
}
