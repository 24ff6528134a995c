//go:build !swagger

package httpapi

import "testing"

func TestMountSwaggerStubIsNoop(t *testing.T) {
	MountSwagger(nil)
}
