package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/heronarts/opc2serial/ledwire"
)

const (
	defaultOpcAddress = "127.0.0.1"
	defaultOpcPort    = 7890
)

type config struct {
	OpcAddress     string
	OpcPort        int
	OpcChannel     byte
	SerialPort     string
	Protocol       ledwire.Protocol
	SerialBaudRate int
	ListPorts      bool
	Debug          bool
}

// fileConfig mirrors config for the optional TOML file. Only keys present
// in the file are applied, so zero values never clobber defaults.
type fileConfig struct {
	OpcAddress     string `toml:"opc_address"`
	OpcPort        int    `toml:"opc_port"`
	OpcChannel     int    `toml:"opc_channel"`
	SerialPort     string `toml:"serial_port"`
	SerialProtocol string `toml:"serial_protocol"`
	SerialBaudRate int    `toml:"serial_baud_rate"`
	Debug          bool   `toml:"debug"`
}

// parseConfig resolves the effective configuration: defaults, then the
// TOML file named by -config, then explicit flags.
func parseConfig(args []string) (*config, error) {
	fs := flag.NewFlagSet("opc2serial", flag.ContinueOnError)

	configFile := fs.String("config", "", "TOML configuration file")
	opcAddress := fs.String("opc-address", defaultOpcAddress, "Network address to bind")
	opcPort := fs.Int("opc-port", defaultOpcPort, "UDP port to listen to")
	opcChannel := fs.Int("opc-channel", 0, "OPC channel to listen for (0 = broadcast)")
	serialPort := fs.String("serial-port", "", "Serial port for output")
	protocolName := fs.String("serial-protocol", ledwire.Adalight.String(),
		fmt.Sprintf("Protocol for serial output (%s)", ledwire.Names()))
	baudRate := fs.Int("serial-baud-rate", 0, "Serial port baud rate (0 = protocol default)")
	listPorts := fs.Bool("list-ports", false, "List available serial ports and exit")
	debug := fs.Bool("debug", false, "Log debugging output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &config{
		OpcAddress: defaultOpcAddress,
		OpcPort:    defaultOpcPort,
		Protocol:   ledwire.Adalight,
	}
	if *configFile != "" {
		if err := loadConfigFile(*configFile, cfg); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["opc-address"] {
		cfg.OpcAddress = *opcAddress
	}
	if set["opc-port"] {
		cfg.OpcPort = *opcPort
	}
	if set["opc-channel"] {
		if *opcChannel < 0 || *opcChannel > 255 {
			return nil, fmt.Errorf("opc-channel %d out of range 0-255", *opcChannel)
		}
		cfg.OpcChannel = byte(*opcChannel)
	}
	if set["serial-port"] {
		cfg.SerialPort = *serialPort
	}
	if set["serial-protocol"] {
		p, err := ledwire.ParseProtocol(*protocolName)
		if err != nil {
			return nil, err
		}
		cfg.Protocol = p
	}
	if set["serial-baud-rate"] {
		cfg.SerialBaudRate = *baudRate
	}
	cfg.ListPorts = *listPorts
	cfg.Debug = cfg.Debug || *debug

	if !cfg.ListPorts && cfg.SerialPort == "" {
		return nil, fmt.Errorf("no serial port specified, use -serial-port")
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if meta.IsDefined("opc_address") {
		cfg.OpcAddress = strings.TrimSpace(raw.OpcAddress)
	}
	if meta.IsDefined("opc_port") {
		cfg.OpcPort = raw.OpcPort
	}
	if meta.IsDefined("opc_channel") {
		if raw.OpcChannel < 0 || raw.OpcChannel > 255 {
			return fmt.Errorf("opc_channel %d out of range 0-255", raw.OpcChannel)
		}
		cfg.OpcChannel = byte(raw.OpcChannel)
	}
	if meta.IsDefined("serial_port") {
		cfg.SerialPort = strings.TrimSpace(raw.SerialPort)
	}
	if meta.IsDefined("serial_protocol") {
		p, err := ledwire.ParseProtocol(strings.TrimSpace(raw.SerialProtocol))
		if err != nil {
			return err
		}
		cfg.Protocol = p
	}
	if meta.IsDefined("serial_baud_rate") {
		cfg.SerialBaudRate = raw.SerialBaudRate
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	return nil
}
