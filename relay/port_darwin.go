package relay

import (
	"strings"
)

const darwinPortPrefix = "/dev/cu."

var darwinPortSkip = []string{"AirPod", "iPhone", "iPad"}

func filterPorts(ports []string) []string {
	var filtered []string
	for _, v := range ports {
		if !strings.HasPrefix(v, darwinPortPrefix) {
			continue
		}
		skip := false
		for _, s := range darwinPortSkip {
			if strings.Contains(v, s) {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
