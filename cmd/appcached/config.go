package main

import (
	"os"

	"gopkg.in/yaml.v3"

	overriderules "github.com/appcacheshim/appcache/pkg/response-transformer"
)

// FileConfig is the YAML config file shape, an analog of the teacher's own
// Config/ConfigOrigin pair collapsed to one origin per gateway process
// (SPEC_FULL.md Non-goals: "one origin per gateway").
type FileConfig struct {
	Origin        string              `yaml:"origin"`
	Port          int                 `yaml:"port"`
	DB            string              `yaml:"db"`
	Manifests     []string            `yaml:"manifests"`
	PollSeconds   int                 `yaml:"pollSeconds"`
	DisableUpdate bool                `yaml:"disableUpdate"`
	Overrides     overriderules.Rules `yaml:"overrides"`
}

func readConfig(filename string) (FileConfig, error) {
	var config FileConfig
	raw, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(raw, &config)
	return config, err
}
