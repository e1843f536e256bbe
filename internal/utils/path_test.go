package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/internal/utils"
)

func TestEscapePathPreservingSlashes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"courses/go.imscc", "courses/go.imscc"},
		{"courses/go basics.imscc", "courses/go%20basics.imscc"},
		{"курсы/go.imscc", "%D0%BA%D1%83%D1%80%D1%81%D1%8B/go.imscc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, utils.EscapePathPreservingSlashes(tt.input), tt.input)
	}
}

func TestJoinURLPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "http://s3:9000/b/k", utils.JoinURLPath("http://s3:9000/", "/b/", "k"))
	assert.Equal(t, "http://s3:9000/b", utils.JoinURLPath("http://s3:9000", "b", ""))
	assert.Equal(t, "http://s3:9000", utils.JoinURLPath("http://s3:9000/"))
}
