package cache

import "testing"

func TestHashIP(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		a := hashIP("192.168.1.1")
		b := hashIP("192.168.1.1")
		if a != b {
			t.Errorf("same IP hashed differently: %q vs %q", a, b)
		}
	})

	t.Run("distinct_ips", func(t *testing.T) {
		t.Parallel()
		a := hashIP("192.168.1.1")
		b := hashIP("192.168.1.2")
		if a == b {
			t.Error("different IPs produced the same hash")
		}
	})

	t.Run("fixed_length", func(t *testing.T) {
		t.Parallel()
		for _, ip := range []string{"10.0.0.1", "2001:db8::1", ""} {
			if got := hashIP(ip); len(got) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", ip, len(got))
			}
		}
	})

	t.Run("no_raw_ip_leak", func(t *testing.T) {
		t.Parallel()
		const ip = "203.0.113.7"
		if got := hashIP(ip); got == ip {
			t.Error("hash must not equal the raw IP")
		}
	})
}
