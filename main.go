// Command opc2serial relays Open Pixel Control frames from a UDP socket to
// an LED controller on a serial port, re-framed as Adalight, AWA or TPM2.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/heronarts/opc2serial/relay"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.ListPorts {
		if err := listPorts(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := run(cfg); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func listPorts() error {
	ports, err := relay.AvailablePorts()
	if err != nil {
		return err
	}
	fmt.Println("Available serial ports:")
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func run(cfg *config) error {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	baudRate := cfg.SerialBaudRate
	if baudRate <= 0 {
		baudRate = cfg.Protocol.DefaultBaudRate()
	}

	log.Infof("OPC: %s on UDP port %d", cfg.OpcAddress, cfg.OpcPort)
	log.Infof("Serial: %s at %d baud on port %s", cfg.Protocol, baudRate, cfg.SerialPort)

	conn, err := relay.Open(cfg.SerialPort, baudRate)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.SerialPort, err)
	}
	defer conn.Close()

	if cfg.Protocol.NeedsHandshake() {
		log.Infof("Waiting %v for Ada\\n handshake...", relay.HandshakeTimeout)
		if err := relay.Handshake(conn, relay.HandshakeTimeout); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
	}

	addr := net.JoinHostPort(cfg.OpcAddress, strconv.Itoa(cfg.OpcPort))
	sock, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	defer sock.Close()

	log.Info("Starting OPC->Serial relay loop...")
	r := relay.New(relay.Config{
		Channel:  cfg.OpcChannel,
		Protocol: cfg.Protocol,
		Debug:    cfg.Debug,
	}, sock, conn)
	return r.Run()
}
