package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/rediswire-go/internal/resp"
)

func sampleReply() *resp.Reply {
	return &resp.Reply{
		Status: "OK",
		Rows:   3,
		Fields: []resp.Field{{Str: "a"}, {Null: true}, {Str: "b"}},
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []Format{FormatTable, FormatJSON, FormatYAML, ""} {
		if _, err := NewFormatter(format); err != nil {
			t.Errorf("NewFormatter(%q): %v", format, err)
		}
	}
	if _, err := NewFormatter("xml"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, sampleReply()); err != nil {
		t.Fatalf("format: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"VALUE", "(nil)", "a", "b", "(3 rows, status OK)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_StatusOnly(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, &resp.Reply{Status: "PONG"}); err != nil {
		t.Fatalf("format: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "PONG" {
		t.Errorf("output = %q, want bare status", buf.String())
	}
}

func TestJSONFormatter_NullIsNull(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(&buf, sampleReply()); err != nil {
		t.Fatalf("format: %v", err)
	}

	var doc struct {
		Status string    `json:"status"`
		Rows   int       `json:"rows"`
		Values []*string `json:"values"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Rows != 3 || len(doc.Values) != 3 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Values[1] != nil {
		t.Error("null field encoded as non-null")
	}
	if *doc.Values[0] != "a" || *doc.Values[2] != "b" {
		t.Error("values out of order")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	if err := f.Format(&buf, sampleReply()); err != nil {
		t.Fatalf("format: %v", err)
	}

	var doc struct {
		Status string    `yaml:"status"`
		Values []*string `yaml:"values"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if doc.Status != "OK" || len(doc.Values) != 3 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Values[1] != nil {
		t.Error("null field encoded as non-null")
	}
}
