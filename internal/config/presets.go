package config

import "sort"

// Presets for common tracing scenarios, keyed by name.
var Presets = map[string]*Config{
	"flyby": {
		Mass: 1.0, Spin: 0,
		Camera: CameraConfig{Origin: [3]float64{8, 0, 0}, Direction: [3]float64{-1, 0.15, 0}, FOV: 60},
		Stepper: StepperConfig{
			AbsTol: 1e-6, RelTol: 1e-6, MinStep: 1e-8, MaxStep: 1.0,
			Safety: 0.9, InitialStep: 0.01, MaxSteps: 10000,
		},
		Render: RenderConfig{Width: 256, Height: 256, Workers: 4},
	},
	"plunge": {
		Mass: 1.0, Spin: 0,
		Camera: CameraConfig{Origin: [3]float64{10, 0, 0}, Direction: [3]float64{-1, 0, 0}, FOV: 60},
		Stepper: StepperConfig{
			AbsTol: 1e-6, RelTol: 1e-6, MinStep: 1e-8, MaxStep: 1.0,
			Safety: 0.9, InitialStep: 0.01, MaxSteps: 10000,
		},
		Render: RenderConfig{Width: 256, Height: 256, Workers: 4},
	},
	"photon_sphere": {
		Mass: 1.0, Spin: 0,
		Camera: CameraConfig{Origin: [3]float64{3.1, 0, 0}, Direction: [3]float64{0, 0.9, 0}, FOV: 80},
		Stepper: StepperConfig{
			AbsTol: 1e-8, RelTol: 1e-8, MinStep: 1e-10, MaxStep: 0.1,
			Safety: 0.9, InitialStep: 0.001, MaxSteps: 50000,
		},
		Render: RenderConfig{Width: 256, Height: 256, Workers: 4},
	},
	"kerr_moderate": {
		Mass: 1.0, Spin: 0.6,
		Camera: CameraConfig{Origin: [3]float64{12, 0, 0}, Direction: [3]float64{-1, 0, 0}, FOV: 60},
		Stepper: StepperConfig{
			AbsTol: 1e-6, RelTol: 1e-6, MinStep: 1e-8, MaxStep: 1.0,
			Safety: 0.9, InitialStep: 0.01, MaxSteps: 10000,
		},
		Render: RenderConfig{Width: 256, Height: 256, Workers: 4},
	},
	"kerr_extremal": {
		Mass: 1.0, Spin: 1.0,
		Camera: CameraConfig{Origin: [3]float64{12, 0, 0}, Direction: [3]float64{-1, 0, 0}, FOV: 60},
		Stepper: StepperConfig{
			AbsTol: 1e-6, RelTol: 1e-6, MinStep: 1e-8, MaxStep: 0.5,
			Safety: 0.9, InitialStep: 0.01, MaxSteps: 20000,
		},
		Render: RenderConfig{Width: 256, Height: 256, Workers: 4},
	},
	"far_field": {
		Mass: 1.0, Spin: 0,
		Camera: CameraConfig{Origin: [3]float64{0, 0, 200}, Direction: [3]float64{0, 0, 1}, FOV: 60},
		Stepper: StepperConfig{
			AbsTol: 1e-6, RelTol: 1e-6, MinStep: 1e-8, MaxStep: 1.0,
			Safety: 0.9, InitialStep: 0.1, MaxSteps: 1000,
		},
		Render: RenderConfig{Width: 128, Height: 128, Workers: 4},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
