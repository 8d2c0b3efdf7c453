package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProxyConfig struct {
	Mode     string   `yaml:"mode"` // disabled|list
	List     []string `yaml:"list"`
	FailOpen bool     `yaml:"fail_open"`
}

type AddressConfig struct {
	Street     string `yaml:"street"`
	City       string `yaml:"city"`
	Region     string `yaml:"region"`
	PostalCode int    `yaml:"postal_code"`
}

type CustomerConfig struct {
	FirstName   string        `yaml:"first_name"`
	LastName    string        `yaml:"last_name"`
	Email       string        `yaml:"email"`
	PhoneNumber string        `yaml:"phone_number"`
	Address     AddressConfig `yaml:"address"`
}

type Root struct {
	Env   string      `yaml:"env"`
	Proxy ProxyConfig `yaml:"proxy"`
	Local Config      `yaml:"local"`
	Dev   Config      `yaml:"dev"`
	Prod  Config      `yaml:"prod"`
}

type Config struct {
	Env string `yaml:"-"`

	Log struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		AddSource bool   `yaml:"add_source"`
	} `yaml:"log"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Dominos struct {
		BaseURL    string `yaml:"base_url"`
		PickupMode string `yaml:"pickup_mode"` // Delivery|Carryout
	} `yaml:"dominos"`

	Customer CustomerConfig `yaml:"customer"`

	CLI struct {
		OutputFile string `yaml:"output_file"`
	} `yaml:"cli"`

	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		Retries        int `yaml:"retries"`
	} `yaml:"http"`

	Proxy ProxyConfig `yaml:"proxy"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}

	env := strings.TrimSpace(strings.ToLower(root.Env))
	if env == "" {
		env = "local"
	}

	var p Config
	switch env {
	case "local":
		p = root.Local
	case "dev":
		p = root.Dev
	case "prod":
		p = root.Prod
	default:
		return nil, fmt.Errorf("unknown env=%q (expected local|dev|prod)", env)
	}
	p.Env = env

	if isProxyEmpty(p.Proxy) && !isProxyEmpty(root.Proxy) {
		p.Proxy = root.Proxy
	}

	applyDefaults(&p)
	return &p, nil
}

func isProxyEmpty(px ProxyConfig) bool {
	return strings.TrimSpace(px.Mode) == "" && len(px.List) == 0
}

func applyDefaults(p *Config) {
	if p.Dominos.BaseURL == "" {
		p.Dominos.BaseURL = "https://order.dominos.com"
	}
	if p.Dominos.PickupMode == "" {
		p.Dominos.PickupMode = "Carryout"
	}

	if p.Server.Host == "" {
		p.Server.Host = "0.0.0.0"
	}
	if p.Server.Port == 0 {
		p.Server.Port = 7892
	}

	if p.HTTP.TimeoutSeconds <= 0 {
		p.HTTP.TimeoutSeconds = 30
	}
	if p.HTTP.Retries < 0 {
		p.HTTP.Retries = 0
	}

	if p.Log.Level == "" {
		if p.Env == "prod" {
			p.Log.Level = "info"
		} else {
			p.Log.Level = "debug"
		}
	}
	if p.Log.Format == "" {
		if p.Env == "prod" {
			p.Log.Format = "json"
		} else {
			p.Log.Format = "text"
		}
	}

	p.Proxy.Mode = strings.ToLower(strings.TrimSpace(p.Proxy.Mode))
	if p.Proxy.Mode == "" {
		p.Proxy.Mode = "disabled"
	}

	if len(p.Proxy.List) > 0 {
		clean := make([]string, 0, len(p.Proxy.List))
		for _, s := range p.Proxy.List {
			s = strings.TrimSpace(s)
			if s != "" {
				clean = append(clean, s)
			}
		}
		p.Proxy.List = clean
	}
}
