package analogsdk

import (
	"errors"
	"testing"
)

func TestTranslateResult(t *testing.T) {
	cases := []struct {
		code int32
		want error
	}{
		{resultUninitialized, ErrUninitialized},
		{resultNoDevices, ErrNoDevice},
		{resultDeviceDisconnected, ErrDeviceDisconnected},
		{resultDLLNotFound, ErrLibraryNotFound},
		{resultNoPlugins, ErrLibraryNotFound},
		{resultCouldNotInitialise, ErrLibraryNotFound},
	}
	for _, tc := range cases {
		if err := translateResult(tc.code); !errors.Is(err, tc.want) {
			t.Fatalf("code %d: got %v, want %v", tc.code, err, tc.want)
		}
	}
}

func TestTranslateResultUnknown(t *testing.T) {
	err := translateResult(resultFailure)
	if err == nil {
		t.Fatalf("expected an error for a negative result")
	}
	for _, sentinel := range []error{ErrUninitialized, ErrNoDevice, ErrDeviceDisconnected, ErrLibraryNotFound} {
		if errors.Is(err, sentinel) {
			t.Fatalf("generic failure should not match %v", sentinel)
		}
	}
}
