package config

import "testing"

func TestConfig_New(t *testing.T) {
	t.Parallel()

	c := New("nick", "irc.example.net")
	if exp, val := defaultIrcPort, c.Port; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := defaultPingInterval, c.PingInterval; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := defaultPingFraction, c.PingFraction; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if !c.ShouldCheckServerPing() || !c.ShouldRemoveAfterCallback() ||
		!c.ShouldDisconnectOnFatal() || !c.ShouldCreateFake() || !c.ShouldAutoListMode() {
		t.Error("Policy flags should default to true")
	}
	if c.AddLastLine {
		t.Error("addlastline should default to false")
	}
}

func TestConfig_SetDefaultsTLS(t *testing.T) {
	t.Parallel()

	c := &Config{Nick: "nick", Server: "s", SSL: true}
	c.SetDefaults()
	if exp, val := defaultIrcTLSPort, c.Port; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	c = &Config{Nick: "nick", Server: "s", SSL: true, Port: 7000}
	c.SetDefaults()
	if exp, val := uint16(7000), c.Port; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestConfig_NilPolicies(t *testing.T) {
	t.Parallel()

	var c Config
	if !c.ShouldCheckServerPing() || !c.ShouldCreateFake() {
		t.Error("Unset policies should read as true")
	}

	f := false
	c.CreateFake = &f
	if c.ShouldCreateFake() {
		t.Error("Explicit false should be kept")
	}
	c.SetDefaults()
	if c.ShouldCreateFake() {
		t.Error("SetDefaults must not overwrite explicit values")
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	c := New("nick", "server")
	c.Channels = []string{"#a"}
	cpy := c.Clone()

	*cpy.AutoListMode = false
	cpy.Channels[0] = "#b"
	if !c.ShouldAutoListMode() || c.Channels[0] != "#a" {
		t.Error("Clone should not share pointers or slices")
	}
}
