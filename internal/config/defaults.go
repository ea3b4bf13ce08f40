package config

import "time"

// Default configuration values. The offer defaults describe a single
// /24 lab network behind 192.168.44.1.
const (
	DefaultInterface   = "ens4"
	DefaultBindAddress = "0.0.0.0:67"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultOfferIP     = "192.168.44.2"
	DefaultSubnetMask  = "255.255.255.0"
	DefaultRouter      = "192.168.44.1"
	DefaultLeaseTime   = 30 * time.Second
)

// DefaultDNSServers are offered when [offer] names none.
var DefaultDNSServers = []string{"8.8.8.8", "8.8.4.4"}
