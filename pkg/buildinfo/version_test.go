package buildinfo

import (
	"strings"
	"testing"
)

func TestGetPrefersLdflags(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.2.3", "abc123", "2024-05-01"
	got := Get()
	if got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2024-05-01"}) {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
