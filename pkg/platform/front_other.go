//go:build !darwin

package platform

// Frontmost always reports true; window managers here do not expose it
func Frontmost() bool {
	return true
}

// BringToFront is a no-op outside macOS
func BringToFront() {}
