package analogsdk

import (
	"errors"
	"fmt"
)

// Sentinel kinds for SDK errors, matchable with errors.Is. Every
// failure here ends the session; there is no retry policy.
var (
	ErrLibraryNotFound    = errors.New("analog SDK library not found")
	ErrNoDevice           = errors.New("no analog keyboard found")
	ErrDeviceDisconnected = errors.New("analog keyboard disconnected")
	ErrUninitialized      = errors.New("analog SDK not initialized")
)

// Native result codes returned by the wrapper library. Positive values
// are success (for initialise, the connected device count); everything
// below zero is one of these.
const (
	resultOk                 int32 = 1
	resultUninitialized      int32 = -2000
	resultNoDevices          int32 = -1999
	resultDeviceDisconnected int32 = -1998
	resultFailure            int32 = -1997
	resultInvalidArgument    int32 = -1996
	resultNoPlugins          int32 = -1995
	resultFunctionNotFound   int32 = -1994
	resultNoMapping          int32 = -1993
	resultNotAvailable       int32 = -1992
	resultCouldNotInitialise int32 = -1991
	resultDLLNotFound        int32 = -1990
)

// translateResult maps a native result code onto the error taxonomy.
// Codes without a dedicated sentinel surface as a plain error carrying
// the raw value, so nothing from the native side is swallowed.
func translateResult(code int32) error {
	switch code {
	case resultUninitialized:
		return ErrUninitialized
	case resultNoDevices:
		return ErrNoDevice
	case resultDeviceDisconnected:
		return ErrDeviceDisconnected
	case resultDLLNotFound, resultNoPlugins, resultCouldNotInitialise:
		return fmt.Errorf("%w: native code %d", ErrLibraryNotFound, code)
	default:
		return fmt.Errorf("analog SDK error %d", code)
	}
}
