package node

import (
	"encoding/json"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/wildosvpn/fleet/structs"
)

// xrayConfig is the subset of an xray-core config the node inspects.
type xrayConfig struct {
	Inbounds []struct {
		Tag      string `json:"tag"`
		Protocol string `json:"protocol"`
		Port     int    `json:"port"`
		Listen   string `json:"listen"`
	} `json:"inbounds"`
}

func parseXrayInbounds(config string) ([]structs.Inbound, error) {
	var cfg xrayConfig
	if err := json.Unmarshal([]byte(config), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse xray config: %w", err)
	}
	var inbounds []structs.Inbound
	for _, in := range cfg.Inbounds {
		if in.Tag == "" {
			continue
		}
		inbounds = append(inbounds, structs.Inbound{
			Tag:      in.Tag,
			Protocol: in.Protocol,
			Port:     in.Port,
		})
	}
	return inbounds, nil
}

// NewXrayBackend runs an xray-core process with a JSON config.
func NewXrayBackend(logger hclog.Logger, name, binary, configPath, version string) (Backend, error) {
	return NewProcessBackend(logger, ProcessConfig{
		Name:       name,
		Type:       structs.BackendTypeXray,
		Binary:     binary,
		ConfigPath: configPath,
		Format:     structs.ConfigFormatJSON,
		Args: func(configPath string) []string {
			return []string{"run", "-c", configPath}
		},
		ParseInbounds: parseXrayInbounds,
		Version:       version,
	})
}

// hysteriaConfig is the subset of a hysteria2 YAML config the node inspects.
// Hysteria exposes a single listener, so the backend name doubles as the tag.
type hysteriaConfig struct {
	Listen string `yaml:"listen"`
}

func parseHysteriaInbounds(name string) func(config string) ([]structs.Inbound, error) {
	return func(config string) ([]structs.Inbound, error) {
		var cfg hysteriaConfig
		if err := yaml.Unmarshal([]byte(config), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse hysteria2 config: %w", err)
		}
		port := 443
		if cfg.Listen != "" {
			fmt.Sscanf(cfg.Listen, ":%d", &port)
		}
		return []structs.Inbound{{
			Tag:      name,
			Protocol: "hysteria2",
			Port:     port,
		}}, nil
	}
}

// NewHysteria2Backend runs a hysteria2 server process with a YAML config.
func NewHysteria2Backend(logger hclog.Logger, name, binary, configPath, version string) (Backend, error) {
	return NewProcessBackend(logger, ProcessConfig{
		Name:       name,
		Type:       structs.BackendTypeHysteria,
		Binary:     binary,
		ConfigPath: configPath,
		Format:     structs.ConfigFormatYAML,
		Args: func(configPath string) []string {
			return []string{"server", "-c", configPath}
		},
		ParseInbounds: parseHysteriaInbounds(name),
		Version:       version,
	})
}

// singBoxConfig is the subset of a sing-box config the node inspects.
type singBoxConfig struct {
	Inbounds []struct {
		Tag        string `json:"tag"`
		Type       string `json:"type"`
		ListenPort int    `json:"listen_port"`
	} `json:"inbounds"`
}

func parseSingBoxInbounds(config string) ([]structs.Inbound, error) {
	var cfg singBoxConfig
	if err := json.Unmarshal([]byte(config), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sing-box config: %w", err)
	}
	var inbounds []structs.Inbound
	for _, in := range cfg.Inbounds {
		if in.Tag == "" {
			continue
		}
		inbounds = append(inbounds, structs.Inbound{
			Tag:      in.Tag,
			Protocol: in.Type,
			Port:     in.ListenPort,
		})
	}
	return inbounds, nil
}

// NewSingBoxBackend runs a sing-box process with a JSON config.
func NewSingBoxBackend(logger hclog.Logger, name, binary, configPath, version string) (Backend, error) {
	return NewProcessBackend(logger, ProcessConfig{
		Name:       name,
		Type:       structs.BackendTypeSingBox,
		Binary:     binary,
		ConfigPath: configPath,
		Format:     structs.ConfigFormatJSON,
		Args: func(configPath string) []string {
			return []string{"run", "-c", configPath}
		},
		ParseInbounds: parseSingBoxInbounds,
		Version:       version,
	})
}
