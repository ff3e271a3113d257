package nacos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerConfigs(t *testing.T) {
	cfgs, err := ParseServerConfigs([]string{"10.0.0.1:8848", "nacos:8849"})
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "10.0.0.1", cfgs[0].IpAddr)
	assert.Equal(t, uint64(8848), cfgs[0].Port)
	assert.Equal(t, "nacos", cfgs[1].IpAddr)

	_, err = ParseServerConfigs(nil)
	assert.Error(t, err)

	_, err = ParseServerConfigs([]string{"nacos"})
	assert.ErrorContains(t, err, "invalid nacos address")

	_, err = ParseServerConfigs([]string{"nacos:http"})
	assert.ErrorContains(t, err, "invalid port")
}
