package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Empty(t, PkgAlias(""))
	assert.Equal(t, "instance", PkgAlias("tagmapper/examples/instance"))
}

func TestGeneratedFilename(t *testing.T) {
	assert.Equal(t, "instance_tags_gen.go", GeneratedFilename("Instance"))
	assert.Equal(t, "s3bucket_tags_gen.go", GeneratedFilename("S3Bucket"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Dedupe([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, Dedupe([]string(nil)))

	v, ok := First([]int{3, 4})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
}
