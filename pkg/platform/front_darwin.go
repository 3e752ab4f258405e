//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int isFrontmost() {
    return [NSApp isActive] ? 1 : 0;
}

void bringToFront() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// Frontmost reports whether the application currently has focus
func Frontmost() bool {
	return C.isFrontmost() == 1
}

// BringToFront activates the application over other apps
func BringToFront() {
	C.bringToFront()
}
