//go:build !linux

package mpris

import "github.com/llehouerou/cadence/internal/playback"

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ playback.Service) (*Adapter, error) {
	return &Adapter{}, nil
}

// Err returns a channel that never receives on non-Linux platforms.
func (a *Adapter) Err() <-chan error {
	return nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
