// Package config loads the acquisition profile.
//
// The profile is a YAML file with one section per environment, so the same
// installation can switch between a deployment rig and a testing setup
// without editing paths:
//
//	environment: deployment
//	deployment:
//	  save_dir: /data/raman
//	  spectrometer: openraman
//	  excitation_wavelength_nm: 532.0
//	testing:
//	  save_dir: /tmp/raman
//	  spectrometer: simulated
//	  simulate: true
//
// Components receive the resolved Profile by value; there is no package
// level state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Errors returned by Load.
var (
	ErrNoEnvironment      = errors.New("config: profile selects no environment")
	ErrUnknownEnvironment = errors.New("config: selected environment not present in profile")
)

// DefaultExcitationWavelengthNm is used when the profile does not set one.
const DefaultExcitationWavelengthNm = 532.0

// Profile is the resolved configuration for one environment.
type Profile struct {
	Environment            string
	SaveDir                string
	Spectrometer           string
	ShutterName            string
	ExcitationWavelengthNm float64
	Simulate               bool
}

// environment is the YAML shape of a single profile section.
type environment struct {
	SaveDir                string  `yaml:"save_dir"`
	Spectrometer           string  `yaml:"spectrometer"`
	ShutterName            string  `yaml:"shutter_name"`
	ExcitationWavelengthNm float64 `yaml:"excitation_wavelength_nm"`
	Simulate               bool    `yaml:"simulate"`
}

// file is the YAML shape of the whole profile.
type file struct {
	Environment  string                 `yaml:"environment"`
	Environments map[string]environment `yaml:",inline"`
}

// DefaultPath returns the conventional profile location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}

	return filepath.Join(home, "autoraman", "profile.yml"), nil
}

// Load reads a profile file and resolves the section named by environment.
// An empty environment argument falls back to the file's own selection.
func Load(path, env string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: %w", err)
	}

	return parse(data, env)
}

func parse(data []byte, env string) (Profile, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Profile{}, fmt.Errorf("config: %w", err)
	}

	if env == "" {
		env = f.Environment
	}

	if env == "" {
		return Profile{}, ErrNoEnvironment
	}

	section, ok := f.Environments[env]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}

	p := Profile{
		Environment:            env,
		SaveDir:                section.SaveDir,
		Spectrometer:           section.Spectrometer,
		ShutterName:            section.ShutterName,
		ExcitationWavelengthNm: section.ExcitationWavelengthNm,
		Simulate:               section.Simulate,
	}

	if p.ExcitationWavelengthNm <= 0 {
		p.ExcitationWavelengthNm = DefaultExcitationWavelengthNm
	}

	if p.SaveDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Profile{}, fmt.Errorf("config: %w", err)
		}

		p.SaveDir = filepath.Join(home, "autoraman", "data")
	}

	return p, nil
}
