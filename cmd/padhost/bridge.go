package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"picodeck/keypad"
	"picodeck/proto"
)

var bridgeOpts struct {
	broker   string
	prefix   string
	deviceID string
}

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Bridge the device to an MQTT broker",
	Long: `Publish the device's key events to <prefix>/<device>/key as JSON and
forward frames received on <prefix>/<device>/screen to the device.

A screen payload is one host frame, for example
  title_and_paginator=Menu/1of2&data_lines=alpha,beta&cursor_index=0`,
	Args: cobra.NoArgs,
	RunE: runBridge,
}

func init() {
	f := bridgeCmd.Flags()
	f.StringVar(&bridgeOpts.broker, "broker", "", "broker URL (overrides config)")
	f.StringVar(&bridgeOpts.prefix, "prefix", "", "topic prefix (overrides config)")
	f.StringVar(&bridgeOpts.deviceID, "device", "", "device id used in topics (overrides config)")
}

// keyMessage is the JSON payload published for every key event.
type keyMessage struct {
	Key    string `json:"key"`
	Code   string `json:"kc"`
	HoldMS uint32 `json:"hold_ms"`
}

func newKeyMessage(ev keypad.Event) keyMessage {
	return keyMessage{Key: ev.Key.String(), Code: string(ev.Key.Char()), HoldMS: ev.HoldMS}
}

// screenFrame validates an MQTT screen payload and returns it as a
// terminated host frame.
func screenFrame(payload []byte) ([]byte, error) {
	body := bytes.TrimRight(payload, "\r\n")
	if len(body)+len(proto.FrameTerminator) > proto.MaxFrameBytes {
		return nil, fmt.Errorf("%w: screen payload is %d bytes", proto.ErrCapacityExceeded, len(body))
	}
	if bytes.ContainsAny(body, "\r\n") {
		return nil, fmt.Errorf("screen payload holds more than one frame")
	}
	if _, err := proto.ParseHostState(string(body)); err != nil {
		return nil, err
	}
	frame := make([]byte, 0, len(body)+len(proto.FrameTerminator))
	frame = append(frame, body...)
	return append(frame, proto.FrameTerminator...), nil
}

func defaultDeviceID() (string, error) {
	id, err := machineid.ProtectedID("picodeck")
	if err != nil {
		return "", fmt.Errorf("device id: %w", err)
	}
	return id[:12], nil
}

func runBridge(cmd *cobra.Command, _ []string) error {
	m := cfg.MQTT
	flags := cmd.Flags()
	if flags.Changed("broker") {
		m.Broker = bridgeOpts.broker
	}
	if flags.Changed("prefix") {
		m.TopicPrefix = bridgeOpts.prefix
	}
	if flags.Changed("device") {
		m.DeviceID = bridgeOpts.deviceID
	}
	if m.DeviceID == "" {
		id, err := defaultDeviceID()
		if err != nil {
			return err
		}
		m.DeviceID = id
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ClientID == "" {
		m.ClientID = "padhost-" + m.DeviceID
	}

	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()
	closeOnDone(cmd.Context(), port)

	keyTopic := topic(m.TopicPrefix, m.DeviceID, "key")
	screenTopic := topic(m.TopicPrefix, m.DeviceID, "screen")

	var writeMu sync.Mutex
	onScreen := func(_ paho.Client, msg paho.Message) {
		frame, err := screenFrame(msg.Payload())
		if err != nil {
			glog.Warningf("dropped screen payload on %s: %v", msg.Topic(), err)
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if _, err := port.Write(frame); err != nil {
			glog.Errorf("write to device: %v", err)
			return
		}
		if glog.V(2) {
			glog.Infof("SEND %q", frame)
		}
	}

	opts := paho.NewClientOptions().
		AddBroker(m.brokerURL()).
		SetClientID(m.ClientID).
		SetAutoReconnect(true).
		SetCleanSession(true)
	opts.SetOnConnectHandler(func(c paho.Client) {
		glog.Infof("connected to %s, SUB %q", m.Broker, screenTopic)
		if tok := c.Subscribe(screenTopic, 1, onScreen); tok.Wait() && tok.Error() != nil {
			glog.Errorf("subscribe %s: %v", screenTopic, tok.Error())
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		glog.Warningf("connection to %s lost: %v", m.Broker, err)
	})

	client := paho.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("connect %s: %w", m.Broker, tok.Error())
	}
	defer client.Disconnect(250)

	return readEvents(port, func(ev keypad.Event) error {
		payload, err := json.Marshal(newKeyMessage(ev))
		if err != nil {
			return err
		}
		tok := client.Publish(keyTopic, 1, false, payload)
		if tok.Wait() && tok.Error() != nil {
			glog.Errorf("publish %s: %v", keyTopic, tok.Error())
		}
		return nil
	})
}
