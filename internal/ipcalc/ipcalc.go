// Package ipcalc holds the IPv4 range arithmetic used by allocation and migration:
// host enumeration, subnet sizing and overlap detection. IPv6 input is rejected
// with domain.ErrInvalidRange.
package ipcalc

import (
	"bytes"
	"fmt"
	"iter"
	"net"
	"net/netip"

	"github.com/apparentlymart/go-cidr/cidr"
	"go4.org/netipx"

	"github.com/ispcore/ipam/internal/domain"
)

const addressBits = 32

// SubnetRef is the minimal view of a stored subnet needed for overlap checks
type SubnetRef struct {
	ID           uint64
	Network      string
	PrefixLength int
}

// Prefix returns the masked IPv4 prefix of the subnet
func (s SubnetRef) Prefix() (netip.Prefix, error) {
	return ParsePrefix(s.Network, s.PrefixLength)
}

// ParsePrefix builds a masked IPv4 prefix from a network address and prefix length
func ParsePrefix(network string, prefixLength int) (netip.Prefix, error) {
	addr, err := netip.ParseAddr(network)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q is not an IP address", domain.ErrInvalidRange, network)
	}
	if !addr.Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: %s is not an IPv4 address", domain.ErrInvalidRange, network)
	}
	if prefixLength < 0 || prefixLength > addressBits {
		return netip.Prefix{}, fmt.Errorf("%w: prefix length %d out of range", domain.ErrInvalidRange, prefixLength)
	}
	return netip.PrefixFrom(addr, prefixLength).Masked(), nil
}

// ParseCIDR parses "a.b.c.d/n" notation into a masked IPv4 prefix
func ParseCIDR(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q is not a CIDR", domain.ErrInvalidRange, s)
	}
	if !p.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: %s is not an IPv4 CIDR", domain.ErrInvalidRange, s)
	}
	return p.Masked(), nil
}

// ParseRange parses an inclusive start/end IPv4 range as used by pools
func ParseRange(start, end string) (netipx.IPRange, error) {
	from, err := netip.ParseAddr(start)
	if err != nil || !from.Is4() {
		return netipx.IPRange{}, fmt.Errorf("%w: start %q is not an IPv4 address", domain.ErrInvalidRange, start)
	}
	to, err := netip.ParseAddr(end)
	if err != nil || !to.Is4() {
		return netipx.IPRange{}, fmt.Errorf("%w: end %q is not an IPv4 address", domain.ErrInvalidRange, end)
	}
	r := netipx.IPRangeFrom(from, to)
	if !r.IsValid() {
		return netipx.IPRange{}, fmt.Errorf("%w: %s is after %s", domain.ErrInvalidRange, start, end)
	}
	return r, nil
}

// SubnetSize returns the number of usable hosts for a prefix length,
// excluding the network and broadcast addresses.
func SubnetSize(prefixLength int) int {
	if prefixLength < 0 || prefixLength > addressBits {
		return 0
	}
	return max(0, 1<<(addressBits-prefixLength)-2)
}

// Hosts yields the usable host addresses of p in ascending order.
// /31 and /32 have no usable hosts, consistent with SubnetSize.
func Hosts(p netip.Prefix) iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if !p.Addr().Is4() || SubnetSize(p.Bits()) == 0 {
			return
		}
		first, last := cidr.AddressRange(netipx.PrefixIPNet(p.Masked()))
		first, last = first.To4(), last.To4()
		for cur := cidr.Inc(first); bytes.Compare(cur, last) < 0; cur = cidr.Inc(cur) {
			addr, ok := netipx.FromStdIP(cur)
			if !ok || !yield(addr) {
				return
			}
		}
	}
}

// ExpandRange enumerates every usable host in network/prefixLength in ascending order.
// Blocks wider than domain.MinSubnetPrefix are refused; walk them with Hosts instead.
func ExpandRange(network string, prefixLength int) ([]netip.Addr, error) {
	p, err := ParsePrefix(network, prefixLength)
	if err != nil {
		return nil, err
	}
	if prefixLength < domain.MinSubnetPrefix {
		return nil, fmt.Errorf("%w: /%d is too wide to expand, the limit is /%d",
			domain.ErrInvalidRange, prefixLength, domain.MinSubnetPrefix)
	}
	hosts := make([]netip.Addr, 0, SubnetSize(prefixLength))
	for addr := range Hosts(p) {
		hosts = append(hosts, addr)
	}
	return hosts, nil
}

// FirstFree returns the lowest usable host in p for which used reports false
func FirstFree(p netip.Prefix, used func(netip.Addr) bool) (netip.Addr, bool) {
	for addr := range Hosts(p) {
		if !used(addr) {
			return addr, true
		}
	}
	return netip.Addr{}, false
}

// Contains reports whether addr is a usable host of network/prefixLength
func Contains(network string, prefixLength int, addr string) bool {
	p, err := ParsePrefix(network, prefixLength)
	if err != nil {
		return false
	}
	a, err := netip.ParseAddr(addr)
	if err != nil || !p.Contains(a) {
		return false
	}
	ipNet := netipx.PrefixIPNet(p)
	first, last := cidr.AddressRange(ipNet)
	ip := net.IP(a.AsSlice())
	return SubnetSize(prefixLength) > 0 && !ip.Equal(first) && !ip.Equal(last)
}

// RangeSize counts the addresses of an inclusive range
func RangeSize(r netipx.IPRange) uint64 {
	if !r.IsValid() || !r.From().Is4() {
		return 0
	}
	from := r.From().As4()
	to := r.To().As4()
	return uint64(be32(to)) - uint64(be32(from)) + 1
}

// DetectOverlap returns the existing subnets whose address interval intersects candidate.
// Identical, containing, contained and partially overlapping blocks all match.
// A subnet whose id equals excludeID is skipped, which lets updates ignore themselves.
func DetectOverlap(candidate netip.Prefix, existing []SubnetRef, excludeID *uint64) ([]SubnetRef, error) {
	if !candidate.Addr().Is4() {
		return nil, fmt.Errorf("%w: %s is not an IPv4 prefix", domain.ErrInvalidRange, candidate)
	}
	want := netipx.RangeOfPrefix(candidate.Masked())

	var matches []SubnetRef
	for _, s := range existing {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		p, err := s.Prefix()
		if err != nil {
			return nil, err
		}
		if netipx.RangeOfPrefix(p).Overlaps(want) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

func be32(b [4]byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
