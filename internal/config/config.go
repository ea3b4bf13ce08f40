// Package config handles TOML configuration parsing and validation for bhcq.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/miekg/dns"

	"github.com/KOBA789/bhcq/internal/logging"
)

// Config is the top-level configuration for bhcq.
type Config struct {
	Server ServerConfig `toml:"server"`
	Offer  OfferConfig  `toml:"offer"`
}

// ServerConfig holds core server settings.
type ServerConfig struct {
	Interface     string `toml:"interface"`
	BindAddress   string `toml:"bind_address"`
	ServerID      string `toml:"server_id"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	MetricsListen string `toml:"metrics_listen"`
}

// OfferConfig describes the one lease handed to every client.
type OfferConfig struct {
	Address    string   `toml:"address"`
	SubnetMask string   `toml:"subnet_mask"`
	Routers    []string `toml:"routers"`
	DNSServers []string `toml:"dns_servers"`
	LeaseTime  string   `toml:"lease_time"`
	DomainName string   `toml:"domain_name"`
}

// LeaseParams is the parsed form of OfferConfig plus the server identifier.
type LeaseParams struct {
	Address    net.IP
	SubnetMask net.IPMask
	Routers    []net.IP
	DNSServers []net.IP
	LeaseTime  time.Duration
	DomainName string
	ServerID   net.IP
}

// Load reads and parses a TOML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyDefaults(cfg, md)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg, toml.MetaData{})
	return cfg
}

// Validate re-checks cfg, e.g. after command-line overrides.
func (cfg *Config) Validate() error {
	return validate(cfg)
}

// applyDefaults fills in default values for unset fields. An interface
// given as "" in the file is kept and means every interface.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.Server.Interface == "" && !md.IsDefined("server", "interface") {
		cfg.Server.Interface = DefaultInterface
	}
	if cfg.Server.BindAddress == "" {
		cfg.Server.BindAddress = DefaultBindAddress
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = DefaultLogLevel
	}
	if cfg.Server.LogFormat == "" {
		cfg.Server.LogFormat = DefaultLogFormat
	}

	if cfg.Offer.Address == "" {
		cfg.Offer.Address = DefaultOfferIP
	}
	if cfg.Offer.SubnetMask == "" {
		cfg.Offer.SubnetMask = DefaultSubnetMask
	}
	if cfg.Offer.Routers == nil {
		cfg.Offer.Routers = []string{DefaultRouter}
	}
	if cfg.Offer.DNSServers == nil {
		cfg.Offer.DNSServers = append([]string(nil), DefaultDNSServers...)
	}
	if cfg.Offer.LeaseTime == "" {
		cfg.Offer.LeaseTime = DefaultLeaseTime.String()
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if !logging.ValidLevel(cfg.Server.LogLevel) {
		return fmt.Errorf("server.log_level %q is not one of trace, debug, info, warn, error", cfg.Server.LogLevel)
	}
	if !logging.ValidFormat(cfg.Server.LogFormat) {
		return fmt.Errorf("server.log_format must be \"json\" or \"text\", got %q", cfg.Server.LogFormat)
	}
	if _, err := net.ResolveUDPAddr("udp4", cfg.Server.BindAddress); err != nil {
		return fmt.Errorf("server.bind_address %q: %w", cfg.Server.BindAddress, err)
	}
	if cfg.Server.MetricsListen != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.MetricsListen); err != nil {
			return fmt.Errorf("server.metrics_listen %q: %w", cfg.Server.MetricsListen, err)
		}
	}

	// Server ID must be a valid IPv4 address
	if cfg.Server.ServerID != "" {
		if parseIPv4(cfg.Server.ServerID) == nil {
			return fmt.Errorf("server.server_id %q is not a valid IPv4 address", cfg.Server.ServerID)
		}
	}

	if parseIPv4(cfg.Offer.Address) == nil {
		return fmt.Errorf("offer.address %q is not a valid IPv4 address", cfg.Offer.Address)
	}
	mask := parseIPv4(cfg.Offer.SubnetMask)
	if mask == nil {
		return fmt.Errorf("offer.subnet_mask %q is not a valid IPv4 address", cfg.Offer.SubnetMask)
	}
	if ones, bits := net.IPMask(mask).Size(); ones == 0 && bits == 0 {
		return fmt.Errorf("offer.subnet_mask %q is not a contiguous mask", cfg.Offer.SubnetMask)
	}
	for i, r := range cfg.Offer.Routers {
		if parseIPv4(r) == nil {
			return fmt.Errorf("offer.routers[%d] %q is not a valid IPv4 address", i, r)
		}
	}
	for i, s := range cfg.Offer.DNSServers {
		if parseIPv4(s) == nil {
			return fmt.Errorf("offer.dns_servers[%d] %q is not a valid IPv4 address", i, s)
		}
	}

	// One option carries at most 255 bytes, i.e. 63 addresses.
	if len(cfg.Offer.Routers) > 63 {
		return fmt.Errorf("offer.routers: %d entries, at most 63 fit in one option", len(cfg.Offer.Routers))
	}
	if len(cfg.Offer.DNSServers) > 63 {
		return fmt.Errorf("offer.dns_servers: %d entries, at most 63 fit in one option", len(cfg.Offer.DNSServers))
	}

	d, err := time.ParseDuration(cfg.Offer.LeaseTime)
	if err != nil {
		return fmt.Errorf("offer.lease_time: %w", err)
	}
	if d < time.Second {
		return fmt.Errorf("offer.lease_time %s is shorter than one second", d)
	}

	if cfg.Offer.DomainName != "" {
		if len(cfg.Offer.DomainName) > 255 {
			return fmt.Errorf("offer.domain_name is longer than 255 bytes")
		}
		if _, ok := dns.IsDomainName(cfg.Offer.DomainName); !ok {
			return fmt.Errorf("offer.domain_name %q is not a valid domain name", cfg.Offer.DomainName)
		}
	}

	return nil
}

// LeaseParams returns the parsed offer. It assumes cfg has been validated.
func (cfg *Config) LeaseParams() LeaseParams {
	lt, err := time.ParseDuration(cfg.Offer.LeaseTime)
	if err != nil {
		lt = DefaultLeaseTime
	}
	return LeaseParams{
		Address:    parseIPv4(cfg.Offer.Address),
		SubnetMask: net.IPMask(parseIPv4(cfg.Offer.SubnetMask)),
		Routers:    parseIPv4List(cfg.Offer.Routers),
		DNSServers: parseIPv4List(cfg.Offer.DNSServers),
		LeaseTime:  lt,
		DomainName: cfg.Offer.DomainName,
		ServerID:   cfg.ServerIP(),
	}
}

// ServerIP returns the parsed server identifier IP.
func (cfg *Config) ServerIP() net.IP {
	if cfg.Server.ServerID == "" {
		return nil
	}
	return parseIPv4(cfg.Server.ServerID)
}

func parseIPv4(s string) net.IP {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	return ip.To4()
}

func parseIPv4List(ss []string) []net.IP {
	ips := make([]net.IP, 0, len(ss))
	for _, s := range ss {
		if ip := parseIPv4(s); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips
}
