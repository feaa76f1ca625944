package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMass        = 1.0
	DefaultAbsTol      = 1e-6
	DefaultRelTol      = 1e-6
	DefaultMinStep     = 1e-8
	DefaultMaxStep     = 1.0
	DefaultSafety      = 0.9
	DefaultInitialStep = 0.01
	DefaultMaxSteps    = 10000
	DefaultFOV         = 60.0
	DefaultImageSize   = 256
)

type Config struct {
	Mass    float64       `yaml:"mass"`
	Spin    float64       `yaml:"spin"`
	Camera  CameraConfig  `yaml:"camera"`
	Stepper StepperConfig `yaml:"stepper"`
	Render  RenderConfig  `yaml:"render"`
}

type CameraConfig struct {
	Origin    [3]float64 `yaml:"origin"`
	Direction [3]float64 `yaml:"direction"`
	FOV       float64    `yaml:"fov"`
}

type StepperConfig struct {
	AbsTol      float64 `yaml:"abs_tol"`
	RelTol      float64 `yaml:"rel_tol"`
	MinStep     float64 `yaml:"min_step"`
	MaxStep     float64 `yaml:"max_step"`
	Safety      float64 `yaml:"safety"`
	InitialStep float64 `yaml:"initial_step"`
	MaxSteps    int     `yaml:"max_steps"`
}

type RenderConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass: DefaultMass,
		Spin: 0,
		Camera: CameraConfig{
			Origin:    [3]float64{0, 0, 20},
			Direction: [3]float64{0, 0, -1},
			FOV:       DefaultFOV,
		},
		Stepper: StepperConfig{
			AbsTol:      DefaultAbsTol,
			RelTol:      DefaultRelTol,
			MinStep:     DefaultMinStep,
			MaxStep:     DefaultMaxStep,
			Safety:      DefaultSafety,
			InitialStep: DefaultInitialStep,
			MaxSteps:    DefaultMaxSteps,
		},
		Render: RenderConfig{
			Width:   DefaultImageSize,
			Height:  DefaultImageSize,
			Workers: 4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
