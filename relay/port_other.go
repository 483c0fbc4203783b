//go:build !darwin

package relay

func filterPorts(ports []string) []string {
	return ports
}
