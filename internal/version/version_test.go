package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
	if info.GoVersion == "" {
		t.Error("expected go version to be set")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("expected platform in os/arch form, got %q", info.Platform)
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.Contains(s, ApplicationName) {
		t.Errorf("expected version string to contain %q, got %q", ApplicationName, s)
	}
	if !strings.Contains(s, Version) {
		t.Errorf("expected version string to contain %q, got %q", Version, s)
	}
}

func TestShort(t *testing.T) {
	s := Short()
	if !strings.HasPrefix(s, ApplicationName+" ") {
		t.Errorf("expected short string to start with app name, got %q", s)
	}
}

func TestJSON(t *testing.T) {
	var info Info
	if err := json.Unmarshal([]byte(JSON()), &info); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	if info.Version != Version {
		t.Errorf("expected version %q, got %q", Version, info.Version)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if ua != ApplicationName+"/"+Version {
		t.Errorf("unexpected user agent %q", ua)
	}
}
