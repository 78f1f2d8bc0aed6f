package workflow

import "testing"

func TestParseRequestPlain(t *testing.T) {
	text := "Plain request\nwith two lines\n"
	p, err := ParseRequest(text)
	if err != nil {
		t.Fatal(err)
	}
	if p.Prompt != text {
		t.Errorf("expected full text as prompt, got %q", p.Prompt)
	}
	if p.SystemPrompt != "" || p.Temperature != nil || p.Model != "" {
		t.Errorf("expected no overrides, got %+v", p)
	}
}

func TestParseRequestFrontMatter(t *testing.T) {
	text := "+++\nmodel = \"gpt-test\"\ntemperature = 0.3\nsystem = \"persona\"\n+++\n\nBody here\n"
	p, err := ParseRequest(text)
	if err != nil {
		t.Fatal(err)
	}
	if p.Model != "gpt-test" {
		t.Errorf("expected model gpt-test, got %q", p.Model)
	}
	if p.Temperature == nil || *p.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", p.Temperature)
	}
	if p.SystemPrompt != "persona" {
		t.Errorf("expected system persona, got %q", p.SystemPrompt)
	}
	if p.Prompt != "Body here\n" {
		t.Errorf("expected body without front matter, got %q", p.Prompt)
	}
}

func TestParseRequestCRLF(t *testing.T) {
	p, err := ParseRequest("+++\r\nmodel = \"m\"\r\n+++\r\nBody\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if p.Model != "m" {
		t.Errorf("expected model m, got %q", p.Model)
	}
	if p.Prompt != "Body\r\n" {
		t.Errorf("unexpected prompt %q", p.Prompt)
	}
}

func TestParseRequestUnterminatedFence(t *testing.T) {
	text := "+++\nmodel = \"m\"\nno closing fence\n"
	p, err := ParseRequest(text)
	if err != nil {
		t.Fatal(err)
	}
	if p.Prompt != text || p.Model != "" {
		t.Errorf("expected unterminated fence to be treated as prompt, got %+v", p)
	}
}

func TestParseRequestInvalidTOML(t *testing.T) {
	if _, err := ParseRequest("+++\nmodel = \n+++\nbody"); err == nil {
		t.Error("expected error for invalid front matter")
	}
}

func TestParseRequestFenceOnlyBody(t *testing.T) {
	p, err := ParseRequest("+++\nsystem = \"s\"\n+++")
	if err != nil {
		t.Fatal(err)
	}
	if p.Prompt != "" {
		t.Errorf("expected empty prompt, got %q", p.Prompt)
	}
}
