package node

import (
	"fmt"
	"strconv"

	"github.com/coreos/go-iptables/iptables"
	hclog "github.com/hashicorp/go-hclog"
)

// Firewall opens and closes host ports for backend listeners using the
// system iptables. Rules are appended idempotently, so repeated opens of the
// same port leave a single rule behind.
type Firewall struct {
	logger hclog.Logger
	ipt    *iptables.IPTables
}

// NewFirewall connects to the host iptables over the IPv4 protocol.
func NewFirewall(logger hclog.Logger) (*Firewall, error) {
	ipt, err := iptables.NewWithProtocol(iptables.ProtocolIPv4)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize iptables: %w", err)
	}
	return &Firewall{logger: logger.Named("firewall"), ipt: ipt}, nil
}

func portRule(port int, protocol string) []string {
	return []string{"-p", protocol, "--dport", strconv.Itoa(port), "-j", "ACCEPT"}
}

func validPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range", port)
	}
	return nil
}

func normalizeProtocol(protocol string) (string, error) {
	switch protocol {
	case "", "tcp":
		return "tcp", nil
	case "udp":
		return "udp", nil
	default:
		return "", fmt.Errorf("unsupported protocol %q", protocol)
	}
}

// OpenPort inserts an ACCEPT rule for the port on the INPUT chain.
func (f *Firewall) OpenPort(port int, protocol string) error {
	if err := validPort(port); err != nil {
		return err
	}
	proto, err := normalizeProtocol(protocol)
	if err != nil {
		return err
	}
	if err := f.ipt.AppendUnique("filter", "INPUT", portRule(port, proto)...); err != nil {
		return fmt.Errorf("failed to open port %d/%s: %w", port, proto, err)
	}
	f.logger.Info("opened host port", "port", port, "protocol", proto)
	return nil
}

// ClosePort removes the ACCEPT rule for the port. Closing a port that was
// never opened is a no-op.
func (f *Firewall) ClosePort(port int, protocol string) error {
	if err := validPort(port); err != nil {
		return err
	}
	proto, err := normalizeProtocol(protocol)
	if err != nil {
		return err
	}
	if err := f.ipt.DeleteIfExists("filter", "INPUT", portRule(port, proto)...); err != nil {
		return fmt.Errorf("failed to close port %d/%s: %w", port, proto, err)
	}
	f.logger.Info("closed host port", "port", port, "protocol", proto)
	return nil
}
