package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

func TestSettings_ShowSetGet(t *testing.T) {
	rt, kv := newTestRuntime(t)

	out := mustRun(t, rt, "settings", "show")
	if !strings.HasPrefix(out, "SETTING") || !strings.Contains(out, "nudgeIntensity") {
		t.Errorf("settings show = %q", out)
	}
	if strings.Index(out, "tone") > strings.Index(out, "overwhelmedLevel") {
		t.Error("settings are not in display order")
	}

	if out := mustRun(t, rt, "settings", "set", "tone", "real-talk"); out != "tone = real-talk\n" {
		t.Errorf("set output = %q", out)
	}
	if out := mustRun(t, rt, "settings", "get", "TONE"); out != "real-talk\n" {
		t.Errorf("get output = %q", out)
	}
	if got := stored(t, kv).Settings.Tone; got != domain.ToneRealTalk {
		t.Errorf("stored tone = %q", got)
	}

	jsonOut := mustRun(t, rt, "-o", "json", "settings", "show")
	if !strings.Contains(jsonOut, `"tone": "real-talk"`) {
		t.Errorf("json settings = %s", jsonOut)
	}
}

func TestSettings_Errors(t *testing.T) {
	rt, _ := newTestRuntime(t)

	tests := []struct {
		args    []string
		wantErr error
	}{
		{[]string{"settings", "set", "tone", "harsh"}, domain.ErrSettingInvalid},
		{[]string{"settings", "set", "colour", "blue"}, domain.ErrSettingUnknown},
		{[]string{"settings", "get", "colour"}, domain.ErrSettingUnknown},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			if _, err := runCLI(t, rt, tt.args...); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := runCLI(t, rt, "settings", "set", "tone"); err == nil {
		t.Error("set with one argument should fail")
	}
	if _, err := runCLI(t, rt, "settings", "get"); err == nil {
		t.Error("get without name should fail")
	}
}
