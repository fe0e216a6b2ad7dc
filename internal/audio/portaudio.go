package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceManager enumerates input-capable devices and hands them off, one at
// a time, to capture streams.
type DeviceManager struct {
	devices []*portaudio.DeviceInfo
}

// NewDeviceManager initializes PortAudio and enumerates input devices.
func NewDeviceManager() (*DeviceManager, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	all, err := portaudio.Devices()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	var devices []*portaudio.DeviceInfo
	for _, d := range all {
		if d.MaxInputChannels > 0 {
			devices = append(devices, d)
		}
	}
	if len(devices) == 0 {
		portaudio.Terminate()
		return nil, errors.New("no input devices found")
	}

	return &DeviceManager{devices: devices}, nil
}

// Count returns the number of available input devices.
func (m *DeviceManager) Count() int {
	return len(m.devices)
}

// Name returns the device name at the given index.
func (m *DeviceManager) Name(index int) (string, error) {
	if index < 0 || index >= len(m.devices) {
		return "", fmt.Errorf("device index %d out of range", index)
	}
	return m.devices[index].Name, nil
}

// Config returns the device's default input configuration.
func (m *DeviceManager) Config(index int) (StreamConfig, error) {
	if index < 0 || index >= len(m.devices) {
		return StreamConfig{}, fmt.Errorf("device index %d out of range", index)
	}
	return defaultConfig(m.devices[index]), nil
}

// Take removes the device at the given index from the enumerated set and
// returns it as a Source. A taken device cannot be taken twice, so at most
// one stream ever owns it.
func (m *DeviceManager) Take(index int) (Source, error) {
	if index < 0 || index >= len(m.devices) {
		return nil, fmt.Errorf("device index %d out of range", index)
	}
	info := m.devices[index]
	m.devices = append(m.devices[:index], m.devices[index+1:]...)
	return &paSource{info: info}, nil
}

// Close releases the PortAudio runtime. Call after all streams are closed.
func (m *DeviceManager) Close() error {
	return portaudio.Terminate()
}

// defaultConfig derives a stream configuration from the device defaults.
// Devices with more than two input channels are opened as stereo.
func defaultConfig(info *portaudio.DeviceInfo) StreamConfig {
	channels := info.MaxInputChannels
	if channels > 2 {
		channels = 2
	}
	return StreamConfig{
		Channels:   channels,
		SampleRate: int(info.DefaultSampleRate),
	}
}

type paSource struct {
	info *portaudio.DeviceInfo
}

func (s *paSource) Name() string {
	return s.info.Name
}

func (s *paSource) DefaultConfig() (StreamConfig, error) {
	return defaultConfig(s.info), nil
}

func (s *paSource) OpenInputStream(cfg StreamConfig, onData func([]float32), onErr func(error)) (Stream, error) {
	params := portaudio.LowLatencyParameters(s.info, nil)
	params.Input.Channels = cfg.Channels
	params.SampleRate = float64(cfg.SampleRate)

	cb := func(in []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		if flags&portaudio.InputOverflow != 0 {
			onErr(fmt.Errorf("input overflow on %s: hardware buffer dropped samples", s.info.Name))
		}
		onData(in)
	}

	stream, err := portaudio.OpenStream(params, cb)
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream on %s: %w", s.info.Name, err)
	}
	return &paStream{stream: stream}, nil
}

type paStream struct {
	stream *portaudio.Stream
}

func (p *paStream) Start() error {
	return p.stream.Start()
}

func (p *paStream) Stop() error {
	return p.stream.Stop()
}

func (p *paStream) Close() error {
	return p.stream.Close()
}
