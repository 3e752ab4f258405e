//go:build !darwin

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOtherPlatformsAreAlwaysFrontmost(t *testing.T) {
	BringToFront()
	require.True(t, Frontmost())
}
