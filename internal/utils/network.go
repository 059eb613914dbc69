package utils

import "net"

// IsValidIP checks if a string is a valid IPv4 address
func IsValidIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	return parsedIP != nil && parsedIP.To4() != nil
}
