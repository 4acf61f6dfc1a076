package main

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDumpCommand_Text(t *testing.T) {
	path := writeConfig(t, "port=8080\nname=hello\nport=9090\n# skipped\n")

	out, err := runCmd(t, "dump", path)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if want := "port=8080\nname=hello\nport=9090\n"; out != want {
		t.Errorf("dump output = %q, want %q", out, want)
	}
}

func TestDumpCommand_JSON(t *testing.T) {
	path := writeConfig(t, "port=8080\nbig=4294967296\nname=hello\n")

	out, err := runCmd(t, "dump", path, "--format", "json")
	if err != nil {
		t.Fatalf("dump --format json failed: %v", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, out)
	}
	if len(entries) != 3 {
		t.Fatalf("decoded %d entries, want 3", len(entries))
	}

	if entries[0]["key"] != "port" || entries[0]["kind"] != "int" {
		t.Errorf("entries[0] = %v, want key port kind int", entries[0])
	}
	if v, ok := entries[0]["value"].(float64); !ok || v != 8080 {
		t.Errorf("entries[0] value = %v, want 8080", entries[0]["value"])
	}
	if entries[1]["kind"] != "int64" {
		t.Errorf("entries[1] kind = %v, want int64", entries[1]["kind"])
	}
	if v, ok := entries[1]["value"].(float64); !ok || v != 4294967296 {
		t.Errorf("entries[1] value = %v, want 4294967296", entries[1]["value"])
	}
	if entries[2]["kind"] != "string" || entries[2]["value"] != "hello" {
		t.Errorf("entries[2] = %v, want kind string value hello", entries[2])
	}
}

func TestDumpCommand_YAML(t *testing.T) {
	path := writeConfig(t, "port=8080\nname=hello\n")

	out, err := runCmd(t, "dump", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("dump --format yaml failed: %v", err)
	}

	var entries []map[string]any
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(entries))
	}

	if entries[0]["key"] != "port" || entries[0]["kind"] != "int" {
		t.Errorf("entries[0] = %v, want key port kind int", entries[0])
	}
	if v, ok := entries[0]["value"].(int); !ok || v != 8080 {
		t.Errorf("entries[0] value = %v, want 8080", entries[0]["value"])
	}
	if entries[1]["value"] != "hello" {
		t.Errorf("entries[1] value = %v, want hello", entries[1]["value"])
	}
}

func TestDumpCommand_Expand(t *testing.T) {
	path := writeConfig(t, "host=example.com\nurl=${host}/api\n")

	out, err := runCmd(t, "dump", path, "--expand")
	if err != nil {
		t.Fatalf("dump --expand failed: %v", err)
	}
	if want := "host=example.com\nurl=example.com/api\n"; out != want {
		t.Errorf("dump --expand output = %q, want %q", out, want)
	}
}

func TestDumpCommand_ExpandJSON(t *testing.T) {
	path := writeConfig(t, "host=example.com\nurl=${host}/api\n")

	out, err := runCmd(t, "dump", path, "--format", "json", "--expand")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, out)
	}
	if entries[1]["value"] != "example.com/api" {
		t.Errorf("entries[1] value = %v, want expanded url", entries[1]["value"])
	}
}

func TestDumpCommand_BadFormat(t *testing.T) {
	path := writeConfig(t, "port=8080\n")

	_, err := runCmd(t, "dump", path, "--format", "xml")
	if err == nil {
		t.Fatal("unknown --format should return an error")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("error = %v, want mention of unknown format", err)
	}
}
