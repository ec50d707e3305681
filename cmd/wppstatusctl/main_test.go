package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/config"
)

func TestParseParticipants(t *testing.T) {
	acts, err := parseParticipants([]string{"ana:recording_voice", "bruno", "caio:juggling"}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []activity.Kind{activity.RecordingVoice, activity.TypingText, activity.Other}
	for i, a := range acts {
		if a.Kind != want[i] {
			t.Errorf("acts[%d].Kind = %q, want %q", i, a.Kind, want[i])
		}
		if a.Participant.Direct {
			t.Errorf("acts[%d] marked direct", i)
		}
	}
}

func TestParseParticipantsErrors(t *testing.T) {
	if _, err := parseParticipants([]string{":typing_text"}, false); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := parseParticipants([]string{"ana", "bruno"}, true); err == nil {
		t.Error("expected error for two participants in a direct chat")
	}
}

func TestCmdSummarize(t *testing.T) {
	var buf bytes.Buffer
	err := cmdSummarize(&buf, config.Default(), []string{"ana:recording_voice"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[recording] recording audio…\n" {
		t.Errorf("output = %q", got)
	}
}

func TestCmdSummarizeJSON(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--group", "--locale", "pt-BR", "ana:uploading_photo", "bruno:uploading_photo"}
	if err := cmdSummarize(&buf, config.Default(), args, true); err != nil {
		t.Fatal(err)
	}
	var out summaryOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Animation != "uploading" || !strings.HasPrefix(out.Text, "2 ") {
		t.Errorf("output = %+v", out)
	}
}

func TestCmdSummarizeNobody(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdSummarize(&buf, config.Default(), nil, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "nobody") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCmdLocales(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdLocales(&buf, false); err != nil {
		t.Fatal(err)
	}
	if first, _, _ := strings.Cut(buf.String(), "\n"); first != "en" {
		t.Errorf("first locale = %q, want en", first)
	}
}
