package playback

import (
	"context"
	"fmt"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// Device finds a device by exact name, or returns the first device when name is empty.
func (e *Engine) Device(ctx context.Context, name string) (models.Device, error) {
	devices, err := e.remote.Devices(ctx)
	if err != nil {
		return models.Device{}, err
	}

	if name == "" {
		if len(devices) == 0 {
			return models.Device{}, shared.ErrNoDevicesFound
		}
		return devices[0], nil
	}

	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return models.Device{}, fmt.Errorf("%w: %q", shared.ErrDeviceNotFound, name)
}

// ActiveDevice returns the device of the current session, or nil when there is no session.
func (e *Engine) ActiveDevice(ctx context.Context) (*models.Device, error) {
	snapshot, err := e.remote.CurrentPlayback(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}
	device := snapshot.Device
	return &device, nil
}

// DeviceList lists every device as "{type} {name} — {id}".
func (e *Engine) DeviceList(ctx context.Context) (formatter.Response, error) {
	devices, err := e.remote.Devices(ctx)
	if err != nil {
		return formatter.Response{}, err
	}

	lines := make([]string, 0, len(devices))
	for _, d := range devices {
		lines = append(lines, fmt.Sprintf("%s %s — %s", d.Type, d.Name, deviceID(d)))
	}
	return formatter.Listing(lines...), nil
}

// DeviceConnect transfers playback to the named device, or to the first device when name is empty.
func (e *Engine) DeviceConnect(ctx context.Context, name string) (formatter.Response, error) {
	device, err := e.Device(ctx, name)
	if err != nil {
		return formatter.Response{}, err
	}
	if device.ID == "" {
		return formatter.Response{}, fmt.Errorf("%w: %s", shared.ErrMissingDeviceID, device.Name)
	}

	if err := e.remote.TransferPlayback(ctx, device.ID); err != nil {
		return formatter.Response{}, err
	}
	return formatter.Ack("Connected to " + device.Name), nil
}

// DeviceStatus describes the device of the current session.
func (e *Engine) DeviceStatus(ctx context.Context) (formatter.Response, error) {
	device, err := e.ActiveDevice(ctx)
	if err != nil {
		return formatter.Response{}, err
	}
	if device == nil {
		return formatter.Listing("No playback"), nil
	}

	return formatter.Listing(
		"Device: "+device.Name,
		"Id: "+deviceID(*device),
		fmt.Sprintf("Active: %t", device.Active),
		"Type: "+device.Type,
	), nil
}

func deviceID(d models.Device) string {
	if d.ID == "" {
		return "None"
	}
	return d.ID
}
