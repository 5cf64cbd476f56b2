package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"picodeck/internal/seriallink"
)

// Config is the padhost configuration file.
type Config struct {
	Serial seriallink.Config `yaml:"serial"`
	MQTT   MQTTConfig        `yaml:"mqtt"`
}

// MQTTConfig configures the bridge command.
type MQTTConfig struct {
	// Broker is a URL such as tcp://localhost:1883.
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
	// DeviceID names the device in topics. Empty derives one from the machine id.
	DeviceID string `yaml:"device_id"`
}

func DefaultConfig() Config {
	return Config{
		Serial: seriallink.DefaultConfig(),
		MQTT: MQTTConfig{
			Broker:      "tcp://localhost:1883",
			TopicPrefix: "picodeck",
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the MQTT section.
func (m MQTTConfig) Validate() error {
	if m.Broker == "" {
		return fmt.Errorf("mqtt broker cannot be empty")
	}
	u, err := url.Parse(m.Broker)
	if err != nil {
		return fmt.Errorf("mqtt broker: %w", err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "tls", "ws", "wss", "mqtt":
	default:
		return fmt.Errorf("mqtt broker: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("mqtt broker: missing host")
	}
	for _, v := range []string{m.TopicPrefix, m.DeviceID} {
		if strings.ContainsAny(v, "+#") {
			return fmt.Errorf("mqtt topic part %q contains a wildcard", v)
		}
	}
	return nil
}

// brokerURL maps the mqtt:// alias onto the tcp transport paho expects.
func (m MQTTConfig) brokerURL() string {
	if rest, ok := strings.CutPrefix(m.Broker, "mqtt://"); ok {
		return "tcp://" + rest
	}
	return m.Broker
}

func topic(prefix, device, leaf string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{strings.Trim(prefix, "/"), device, leaf} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}
