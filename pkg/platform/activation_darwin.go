//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

void useAccessoryPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}
*/
import "C"

// SetActivationPolicy marks the app as an accessory so it lives in the menu
// bar without a Dock icon.
func SetActivationPolicy() {
	C.useAccessoryPolicy()
}
